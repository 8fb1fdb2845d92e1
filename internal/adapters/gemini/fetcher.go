package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const (
	DefaultSizeSuffix   = "=s2048"
	DefaultMaxRedirects = 10

	defaultDownloadTimeout = 30 * time.Second
	imageAccept            = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"
)

type FetcherConfig struct {
	SizeSuffix   string
	MaxRedirects int
	Timeout      time.Duration
	// MaxBytes caps the decoded image size. Zero means 64 MiB.
	MaxBytes int64
}

// Fetcher downloads generated images. Redirects are followed by hand so the
// credential cookie travels with every hop.
type Fetcher struct {
	client       *http.Client
	sizeSuffix   string
	maxRedirects int
	maxBytes     int64
	logger       *zap.Logger
}

var _ ports.ArtifactFetcher = (*Fetcher)(nil)

func NewFetcher(client *http.Client, cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if cfg.SizeSuffix == "" {
		cfg.SizeSuffix = DefaultSizeSuffix
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDownloadTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = maxBodyBytes
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	manual := *client
	if manual.Timeout == 0 {
		manual.Timeout = cfg.Timeout
	}
	manual.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{
		client:       &manual,
		sizeSuffix:   cfg.SizeSuffix,
		maxRedirects: cfg.MaxRedirects,
		maxBytes:     cfg.MaxBytes,
		logger:       logger.Named("fetcher"),
	}
}

// Save downloads imageURL at full resolution into dir/filename and returns the written path.
func (f *Fetcher) Save(ctx context.Context, imageURL, dir, filename string, creds domain.CredentialSet) (string, error) {
	target := imageURL + f.sizeSuffix

	resp, err := f.follow(ctx, target, creds)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.DownloadError{URL: resp.Request.URL.String(), StatusCode: resp.StatusCode}
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" && !strings.Contains(contentType, "image") {
		f.logger.Warn("downloaded content is not an image",
			zap.String("content_type", contentType),
			zap.String("url", resp.Request.URL.String()))
	}

	data, err := readBodyLimit(resp, f.maxBytes)
	if err != nil {
		return "", &domain.DownloadError{URL: resp.Request.URL.String(), Reason: err.Error()}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	f.logger.Info("image saved", zap.String("path", path), zap.Int("bytes", len(data)))

	return path, nil
}

func (f *Fetcher) follow(ctx context.Context, start string, creds domain.CredentialSet) (*http.Response, error) {
	current := start
	for hops := 0; ; hops++ {
		resp, err := f.get(ctx, current, creds)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 300 || resp.StatusCode > 399 {
			return resp, nil
		}
		_ = resp.Body.Close()

		if hops >= f.maxRedirects {
			return nil, &domain.DownloadError{
				URL:    start,
				Reason: fmt.Sprintf("more than %d redirects", f.maxRedirects),
			}
		}

		location := resp.Header.Get("Location")
		if location == "" {
			return nil, &domain.DownloadError{
				URL:        current,
				StatusCode: resp.StatusCode,
				Reason:     "redirect without Location header",
			}
		}

		next, err := resp.Request.URL.Parse(location)
		if err != nil {
			return nil, &domain.DownloadError{URL: current, Reason: fmt.Sprintf("invalid redirect location %q", location)}
		}
		current = next.String()

		f.logger.Debug("following redirect", zap.Int("hop", hops+1), zap.String("location", redactQuery(next)))
	}
}

func (f *Fetcher) get(ctx context.Context, target string, creds domain.CredentialSet) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.DownloadError{URL: target, Reason: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", imageAccept)
	req.Header.Set("Referer", referer)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	setCookieHeader(req.Header, creds)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("download: %w", ctxErr)
		}
		return nil, &domain.DownloadError{URL: target, Reason: err.Error()}
	}

	return resp, nil
}

func redactQuery(u *url.URL) string {
	clone := *u
	clone.RawQuery = ""
	return clone.String()
}
