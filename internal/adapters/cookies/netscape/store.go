package netscape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const (
	storeDirMode    = 0o700
	cookieFileMode  = 0o600
	tempFilePattern = ".cookies-*.txt.tmp"
)

type Store struct {
	path   string
	domain string
	clock  ports.Clock
	mu     sync.RWMutex
}

var _ ports.CookieStore = (*Store)(nil)

func NewStore(path, cookieDomain string, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{path: filepath.Clean(path), domain: cookieDomain, clock: clock}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *Store) Load(ctx context.Context) (domain.CredentialSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("open cookie file: %w", err)
	}
	defer func() { _ = file.Close() }()

	creds, err := Decode(file)
	if err != nil {
		return nil, err
	}
	if creds.Empty() {
		return nil, domain.ErrCredentialsNotFound
	}

	return creds, nil
}

func (s *Store) Save(ctx context.Context, creds domain.CredentialSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if creds.Empty() {
		return errors.New("refusing to persist empty credential set")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, creds, s.domain, s.clock.Now()); err != nil {
		return fmt.Errorf("encode cookie file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create cookie directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cookie file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(buf.Bytes()); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp cookie file: %w", err)
	}
	if err := tempFile.Chmod(cookieFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp cookie file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cookie file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace cookie file: %w", err)
	}
	cleanup = false

	if err := os.Chmod(s.path, cookieFileMode); err != nil {
		return fmt.Errorf("chmod cookie file: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete cookie file: %w", err)
	}

	return nil
}
