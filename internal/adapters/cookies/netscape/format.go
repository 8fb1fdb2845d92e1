package netscape

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/smart-image-cli/internal/domain"
)

const (
	fileHeader  = "# Netscape HTTP Cookie File"
	fieldCount  = 7
	cookieTTL   = 365 * 24 * time.Hour
	boolTrue    = "TRUE"
	defaultPath = "/"
)

// Encode writes creds as a Netscape cookie file scoped to domain, expiring one year after now.
func Encode(w io.Writer, creds domain.CredentialSet, cookieDomain string, now time.Time) error {
	expires := now.Add(cookieTTL).Unix()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n# Generated by sig\n\n", fileHeader); err != nil {
		return err
	}

	for _, name := range creds.Names() {
		line := strings.Join([]string{
			cookieDomain,
			boolTrue,
			defaultPath,
			boolTrue,
			strconv.FormatInt(expires, 10),
			name,
			creds[name],
		}, "\t")
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Decode reads name/value pairs. Comments, blank lines and short lines are
// skipped; empty values are kept so a saved set loads back unchanged.
func Decode(r io.Reader) (domain.CredentialSet, error) {
	creds := domain.CredentialSet{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		// Only the line ending is trimmed: an empty value leaves a trailing tab.
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < fieldCount {
			continue
		}

		name := strings.TrimSpace(fields[5])
		if name == "" {
			continue
		}
		creds[name] = fields[6]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan cookie file: %w", err)
	}

	return creds, nil
}
