// Package browser drives a real, user-visible browser through its remote-debugging
// port until the user has signed in, then harvests the session cookies.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/target"
	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/adapters/cdp"
	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const (
	DefaultAppURL          = "https://gemini.google.com/app"
	defaultDebuggerWait    = 30 * time.Second
	debuggerPollInterval   = 200 * time.Millisecond
	defaultLoginTimeout    = 300 * time.Second
	defaultPollInterval    = time.Second
	defaultCookieTimeout   = 10 * time.Second
	defaultCloseTimeout    = 5 * time.Second
	defaultKillGracePeriod = 2 * time.Second
)

// DefaultCookieURLs are the origins whose cookies make up a signed-in session.
var DefaultCookieURLs = []string{
	"https://gemini.google.com/",
	"https://accounts.google.com/",
	"https://www.google.com/",
}

type Config struct {
	ProfileDir      string
	AppURL          string
	CookieURLs      []string
	DebuggerWait    time.Duration
	LoginTimeout    time.Duration
	PollInterval    time.Duration
	CallTimeout     time.Duration
	CookieTimeout   time.Duration
	CloseTimeout    time.Duration
	KillGracePeriod time.Duration
}

func (c Config) withDefaults() Config {
	if c.AppURL == "" {
		c.AppURL = DefaultAppURL
	}
	if len(c.CookieURLs) == 0 {
		c.CookieURLs = DefaultCookieURLs
	}
	if c.DebuggerWait <= 0 {
		c.DebuggerWait = defaultDebuggerWait
	}
	if c.LoginTimeout <= 0 {
		c.LoginTimeout = defaultLoginTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = cdp.DefaultCallTimeout
	}
	if c.CookieTimeout <= 0 {
		c.CookieTimeout = defaultCookieTimeout
	}
	if c.CloseTimeout <= 0 {
		c.CloseTimeout = defaultCloseTimeout
	}
	if c.KillGracePeriod <= 0 {
		c.KillGracePeriod = defaultKillGracePeriod
	}
	return c
}

// Orchestrator implements ports.BrowserLogin.
type Orchestrator struct {
	cfg      Config
	launcher Launcher
	probe    ports.SessionProbe
	logger   *zap.Logger
	http     *http.Client
	freePort func() (int, error)
}

var _ ports.BrowserLogin = (*Orchestrator)(nil)

func NewOrchestrator(cfg Config, launcher Launcher, probe ports.SessionProbe, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		cfg:      cfg.withDefaults(),
		launcher: launcher,
		probe:    probe,
		logger:   logger.Named("browser"),
		http:     &http.Client{Timeout: 5 * time.Second},
		freePort: FreePort,
	}
}

// AcquireCredentials opens the app in a dedicated profile and blocks until the
// harvested cookies form a ready session or the login timeout elapses. The
// browser is always shut down before returning.
func (o *Orchestrator) AcquireCredentials(ctx context.Context) (domain.CredentialSet, error) {
	if err := os.MkdirAll(o.cfg.ProfileDir, 0o700); err != nil {
		return nil, fmt.Errorf("create browser profile: %w", err)
	}

	port, err := o.freePort()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}

	proc, err := o.launcher.Launch(ctx, LaunchSpec{
		Port:       port,
		ProfileDir: o.cfg.ProfileDir,
		URL:        o.cfg.AppURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: launch browser: %v", domain.ErrConnection, err)
	}
	defer o.terminate(proc)

	wsURL, err := o.waitForDebugger(ctx, port)
	if err != nil {
		return nil, err
	}

	conn, err := cdp.Dial(ctx, wsURL, cdp.WithLogger(o.logger), cdp.WithDefaultTimeout(o.cfg.CallTimeout))
	if err != nil {
		return nil, err
	}
	defer o.closeBrowser(conn)

	sessionID, err := o.openApp(ctx, conn)
	if err != nil {
		return nil, err
	}

	o.logger.Info("waiting for sign-in in the opened browser window",
		zap.Duration("timeout", o.cfg.LoginTimeout))

	return o.pollCredentials(ctx, conn, sessionID)
}

func (o *Orchestrator) ResetProfile(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(o.cfg.ProfileDir); err != nil {
		return fmt.Errorf("remove browser profile: %w", err)
	}

	return nil
}

func (o *Orchestrator) ProfileExists() bool {
	info, err := os.Stat(o.cfg.ProfileDir)
	return err == nil && info.IsDir()
}

type versionInfo struct {
	Browser              string `json:"Browser"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

func (o *Orchestrator) waitForDebugger(ctx context.Context, port int) (string, error) {
	endpoint := "http://127.0.0.1:" + strconv.Itoa(port) + "/json/version"
	deadline := time.Now().Add(o.cfg.DebuggerWait)

	var lastErr error
	for {
		info, err := o.fetchVersion(ctx, endpoint)
		if err == nil && info.WebSocketDebuggerURL != "" {
			o.logger.Debug("debug endpoint ready",
				zap.String("browser", info.Browser),
				zap.Int("port", port))
			return info.WebSocketDebuggerURL, nil
		}
		if err == nil {
			err = errors.New("no webSocketDebuggerUrl advertised")
		}
		lastErr = err

		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: debug port %d not ready after %s: %v",
				domain.ErrConnection, port, o.cfg.DebuggerWait, lastErr)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(debuggerPollInterval):
		}
	}
}

func (o *Orchestrator) fetchVersion(ctx context.Context, endpoint string) (versionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return versionInfo{}, err
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return versionInfo{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return versionInfo{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var info versionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return versionInfo{}, err
	}

	return info, nil
}

// openApp creates a window on the app URL, attaches to it in flat mode and
// enables the network domain on that session.
func (o *Orchestrator) openApp(ctx context.Context, conn *cdp.Conn) (string, error) {
	var created target.CreateTargetReturns
	if err := conn.Call(ctx, target.CommandCreateTarget,
		target.CreateTarget(o.cfg.AppURL).WithNewWindow(true), &created); err != nil {
		return "", fmt.Errorf("open app window: %w", err)
	}

	var attached target.AttachToTargetReturns
	if err := conn.Call(ctx, target.CommandAttachToTarget,
		target.AttachToTarget(created.TargetID).WithFlatten(true), &attached); err != nil {
		return "", fmt.Errorf("attach to app window: %w", err)
	}

	sessionID := string(attached.SessionID)
	if err := conn.Call(ctx, network.CommandEnable, network.Enable(), nil,
		cdp.WithSessionID(sessionID)); err != nil {
		return "", fmt.Errorf("enable network domain: %w", err)
	}

	return sessionID, nil
}

func (o *Orchestrator) pollCredentials(ctx context.Context, conn *cdp.Conn, sessionID string) (domain.CredentialSet, error) {
	deadline := time.NewTimer(o.cfg.LoginTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		creds, err := o.readCookies(ctx, conn, sessionID)
		switch {
		case err != nil && (errors.Is(err, domain.ErrConnection) || ctx.Err() != nil):
			return nil, err
		case err != nil:
			o.logger.Debug("cookie poll failed", zap.Int("attempt", attempt), zap.Error(err))
		case o.probe.Ready(ctx, creds):
			o.logger.Info("sign-in detected", zap.Int("cookies", len(creds)))
			return creds, nil
		default:
			o.logger.Debug("session not ready yet",
				zap.Int("attempt", attempt),
				zap.Bool("marker", creds.HasMarker()))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("%w: no signed-in session after %s", domain.ErrLoginTimeout, o.cfg.LoginTimeout)
		case <-ticker.C:
		}
	}
}

func (o *Orchestrator) readCookies(ctx context.Context, conn *cdp.Conn, sessionID string) (domain.CredentialSet, error) {
	var out network.GetCookiesReturns
	err := conn.Call(ctx, network.CommandGetCookies,
		network.GetCookies().WithUrls(o.cfg.CookieURLs), &out,
		cdp.WithSessionID(sessionID), cdp.WithTimeout(o.cfg.CookieTimeout))
	if err != nil {
		return nil, err
	}

	creds := make(domain.CredentialSet, len(out.Cookies))
	for _, cookie := range out.Cookies {
		if cookie == nil || cookie.Name == "" {
			continue
		}
		creds[cookie.Name] = cookie.Value
	}

	return creds, nil
}

// closeBrowser runs on every exit path, so it must not depend on the caller's context.
func (o *Orchestrator) closeBrowser(conn *cdp.Conn) {
	if _, err := conn.Send(context.Background(), cdpbrowser.CommandClose, cdpbrowser.Close(),
		cdp.WithTimeout(o.cfg.CloseTimeout)); err != nil {
		o.logger.Debug("browser close command failed", zap.Error(err))
	}
	if err := conn.Close(); err != nil {
		o.logger.Debug("close debug connection", zap.Error(err))
	}
}

func (o *Orchestrator) terminate(proc Process) {
	select {
	case <-proc.Done():
		return
	default:
	}

	if err := proc.Terminate(); err != nil {
		o.logger.Debug("terminate browser", zap.Error(err))
	}

	grace := time.NewTimer(o.cfg.KillGracePeriod)
	defer grace.Stop()

	select {
	case <-proc.Done():
	case <-grace.C:
		o.logger.Warn("browser still running after grace period, killing",
			zap.Duration("grace", o.cfg.KillGracePeriod))
		if err := proc.Kill(); err != nil {
			o.logger.Debug("kill browser", zap.Error(err))
		}
	}
}
