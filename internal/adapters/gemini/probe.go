package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const defaultProbeTimeout = 30 * time.Second

// Probe loads the app page with a credential set. A signed-in page embeds the
// access token; a signed-out one does not.
type Probe struct {
	client *http.Client
	appURL string
	logger *zap.Logger
}

var _ ports.SessionProbe = (*Probe)(nil)

func NewProbe(client *http.Client, appURL string, logger *zap.Logger) *Probe {
	if client == nil {
		client = &http.Client{Timeout: defaultProbeTimeout}
	}
	if appURL == "" {
		appURL = DefaultAppURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Probe{client: client, appURL: appURL, logger: logger.Named("probe")}
}

func (p *Probe) Ready(ctx context.Context, creds domain.CredentialSet) bool {
	if !creds.HasMarker() {
		return false
	}

	if _, err := p.AccessToken(ctx, creds); err != nil {
		p.logger.Debug("session not ready", zap.Error(err))
		return false
	}

	return true
}

// AccessToken extracts the per-page token sent as "at" on backend calls.
func (p *Probe) AccessToken(ctx context.Context, creds domain.CredentialSet) (string, error) {
	page, err := p.fetchApp(ctx, creds)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenRefresh, err)
	}

	match := accessTokenPattern.FindSubmatch(page)
	if match == nil {
		return "", fmt.Errorf("%w: token marker not found in app page", domain.ErrTokenRefresh)
	}

	return string(match[1]), nil
}

func (p *Probe) fetchApp(ctx context.Context, creds domain.CredentialSet) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.appURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build app request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	setCookieHeader(req.Header, creds)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load app page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("load app page: status %d", resp.StatusCode)
	}

	return readBody(resp)
}
