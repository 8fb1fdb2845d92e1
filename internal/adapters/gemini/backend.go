package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const defaultGenerateTimeout = 300 * time.Second

type BackendConfig struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
	// ImagePrefix identifies generated image URLs in replies. Empty means ImageURLPrefix.
	ImagePrefix string
}

// Backend posts prompts to StreamGenerate and decodes the streamed reply.
type Backend struct {
	client      *http.Client
	endpoint    string
	model       string
	imagePrefix string
	logger      *zap.Logger
}

var _ ports.GenerationBackend = (*Backend)(nil)

func NewBackend(client *http.Client, cfg BackendConfig, logger *zap.Logger) *Backend {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGenerateEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerateTimeout
	}
	if cfg.ImagePrefix == "" {
		cfg.ImagePrefix = ImageURLPrefix
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	} else if client.Timeout == 0 {
		copied := *client
		copied.Timeout = cfg.Timeout
		client = &copied
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Backend{
		client:      client,
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		imagePrefix: cfg.ImagePrefix,
		logger:      logger.Named("gemini"),
	}
}

func (b *Backend) Generate(ctx context.Context, session domain.Session, prompt string) (domain.GenerationResult, error) {
	if session.AccessToken == "" {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", domain.ErrNotInitialized)
	}

	form, err := EncodeRequest(prompt, session.AccessToken)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: build request: %w", err)
	}
	req.Host = host
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Origin", origin)
	req.Header.Set("Referer", referer)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Same-Domain", "1")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set(modelHeader, modelHeaderValue)
	setCookieHeader(req.Header, session.Credentials)

	b.logger.Debug("submitting prompt", zap.Int("prompt_length", len(prompt)))

	resp, err := b.client.Do(req)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.GenerationResult{}, fmt.Errorf("generate: unexpected status %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := readBody(resp)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}

	result, err := DecodeWithPrefix(body, b.imagePrefix)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: decode response: %w", err)
	}
	result.Model = b.model

	b.logger.Debug("response decoded",
		zap.Int("text_length", len(result.Text)),
		zap.Int("images", len(result.Images)))

	return result, nil
}
