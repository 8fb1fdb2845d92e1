// Package gemini talks to the Gemini web frontend the way a signed-in browser tab does.
package gemini

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/bnema/smart-image-cli/internal/domain"
)

const (
	DefaultAppURL           = "https://gemini.google.com/app"
	DefaultGenerateEndpoint = "https://gemini.google.com/_/BardChatUi/data/assistant.lamda.BardFrontendService/StreamGenerate"
	DefaultCookieDomain     = ".gemini.google.com"
	DefaultModel            = "gemini-pro"

	origin    = "https://gemini.google.com"
	referer   = "https://gemini.google.com/"
	host      = "gemini.google.com"
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	modelHeader      = "x-goog-ext-525001261-jspb"
	modelHeaderValue = `[1,null,null,null,"9d8ca3786ebdfbea",null,null,0,[4]]`

	acceptEncoding = "gzip, deflate, br"
	maxBodyBytes   = 64 << 20
)

// ErrBodyTooLarge is returned when a response body exceeds the read limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

var accessTokenPattern = regexp.MustCompile(`"SNlM0e":"([^"]+)"`)

func setCookieHeader(h http.Header, creds domain.CredentialSet) {
	if header := creds.CookieHeader(); header != "" {
		h.Set("Cookie", header)
	}
}

// readBody drains resp.Body, undoing any Content-Encoding we negotiated ourselves.
func readBody(resp *http.Response) ([]byte, error) {
	return readBodyLimit(resp, maxBodyBytes)
}

// readBodyLimit is readBody with an explicit decoded size limit.
func readBodyLimit(resp *http.Response, limit int64) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	case "deflate":
		fl, err := deflateReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open deflate body: %w", err)
		}
		defer func() { _ = fl.Close() }()
		reader = fl
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}

	body, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}

	return body, nil
}

// deflateReader accepts zlib-wrapped deflate, which is what HTTP "deflate"
// means, and falls back to raw deflate streams sent by some servers.
func deflateReader(r io.Reader) (io.ReadCloser, error) {
	buffered := bufio.NewReader(r)

	header, err := buffered.Peek(2)
	if err == nil && isZlibHeader(header) {
		return zlib.NewReader(buffered)
	}

	return flate.NewReader(buffered), nil
}

// isZlibHeader checks the RFC 1950 CMF/FLG pair: deflate method and a valid check value.
func isZlibHeader(h []byte) bool {
	cmf, flg := h[0], h[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
