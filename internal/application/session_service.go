package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const (
	DefaultLoginAttempts = 1
	DefaultRetryBackoff  = 5 * time.Second
)

type SessionOptions struct {
	// LoginAttempts bounds browser sign-ins per EnsureSession. Each attempt opens a window.
	LoginAttempts int
	RetryBackoff  time.Duration
	DataDir       string
}

// SessionService owns the credential set and access token. Callers only ever
// see copies; every change replaces the whole session under the lock.
type SessionService struct {
	store  ports.CookieStore
	login  ports.BrowserLogin
	probe  ports.SessionProbe
	opts   SessionOptions
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error

	mu      sync.RWMutex
	session domain.Session
}

func NewSessionService(store ports.CookieStore, login ports.BrowserLogin, probe ports.SessionProbe, opts SessionOptions, logger *zap.Logger) *SessionService {
	if opts.LoginAttempts <= 0 {
		opts.LoginAttempts = DefaultLoginAttempts
	}
	if opts.RetryBackoff < 0 {
		opts.RetryBackoff = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionService{
		store:  store,
		login:  login,
		probe:  probe,
		opts:   opts,
		logger: logger.Named("session"),
		sleep:  sleepContext,
	}
}

// EnsureSession reuses saved credentials when they still pass the readiness
// probe, and only otherwise signs in through the browser.
func (s *SessionService) EnsureSession(ctx context.Context) (domain.Session, error) {
	creds, err := s.store.Load(ctx)
	switch {
	case err == nil:
		if s.probe.Ready(ctx, creds) {
			s.logger.Info("reusing saved session", zap.Int("cookies", len(creds)))
			if err := s.adopt(ctx, creds); err != nil {
				return domain.Session{}, err
			}
			return s.Session(), nil
		}
		s.logger.Info("saved session is no longer valid")
	case errors.Is(err, domain.ErrCredentialsNotFound):
		s.logger.Info("no saved session")
	default:
		s.logger.Warn("could not read saved session", zap.Error(err))
	}

	return s.signIn(ctx)
}

func (s *SessionService) signIn(ctx context.Context) (domain.Session, error) {
	var lastErr error
	for attempt := 1; attempt <= s.opts.LoginAttempts; attempt++ {
		s.logger.Info("signing in through the browser",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.opts.LoginAttempts))

		err := s.trySignIn(ctx)
		if err == nil {
			return s.Session(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Session{}, fmt.Errorf("sign in: %w", ctxErr)
		}

		lastErr = err
		s.logger.Warn("sign-in attempt failed", zap.Int("attempt", attempt), zap.Error(err))

		if attempt < s.opts.LoginAttempts {
			s.logger.Info("retrying sign-in", zap.Duration("backoff", s.opts.RetryBackoff))
			if err := s.sleep(ctx, s.opts.RetryBackoff); err != nil {
				return domain.Session{}, fmt.Errorf("sign in: %w", err)
			}
		}
	}

	return domain.Session{}, fmt.Errorf("%w after %d attempt(s): %w", domain.ErrLoginFailed, s.opts.LoginAttempts, lastErr)
}

func (s *SessionService) trySignIn(ctx context.Context) error {
	creds, err := s.login.AcquireCredentials(ctx)
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	return s.adopt(ctx, creds)
}

// adopt fetches a token for creds and installs both as the current session.
func (s *SessionService) adopt(ctx context.Context, creds domain.CredentialSet) error {
	token, err := s.probe.AccessToken(ctx, creds)
	if err != nil {
		return fmt.Errorf("refresh access token: %w", err)
	}

	s.mu.Lock()
	s.session = domain.Session{Credentials: creds.Clone(), AccessToken: token, Ready: true}
	s.mu.Unlock()

	return nil
}

// RefreshAccessToken re-derives the token from the current credentials.
func (s *SessionService) RefreshAccessToken(ctx context.Context) error {
	s.mu.RLock()
	creds := s.session.Credentials.Clone()
	s.mu.RUnlock()

	if creds.Empty() {
		return fmt.Errorf("refresh access token: %w", domain.ErrNotInitialized)
	}

	return s.adopt(ctx, creds)
}

func (s *SessionService) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.Clone()
}

// Logout forgets the in-memory session and removes the cookie file and browser profile.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()

	var errs []error
	if err := s.store.Delete(ctx); err != nil {
		errs = append(errs, fmt.Errorf("delete cookie file: %w", err))
	}
	if err := s.login.ResetProfile(ctx); err != nil {
		errs = append(errs, fmt.Errorf("remove browser profile: %w", err))
	}

	return errors.Join(errs...)
}

// Status reports what is on disk. With probe set it also checks the saved
// credentials against the live service.
func (s *SessionService) Status(ctx context.Context, probe bool) (domain.SessionStatus, error) {
	status := domain.SessionStatus{
		CookieFileExists: s.store.Exists(),
		ProfileExists:    s.login.ProfileExists(),
		DataDir:          s.opts.DataDir,
	}
	if !status.CookieFileExists {
		return status, nil
	}

	creds, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialsNotFound) {
			return status, nil
		}
		return status, fmt.Errorf("read saved session: %w", err)
	}

	status.MarkerPresent = creds.HasMarker()
	if probe && status.MarkerPresent {
		status.Probed = true
		status.Ready = s.probe.Ready(ctx, creds)
	}

	return status, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
