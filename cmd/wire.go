package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/adapters/browser"
	"github.com/bnema/smart-image-cli/internal/adapters/cookies/netscape"
	"github.com/bnema/smart-image-cli/internal/adapters/gemini"
	statusadapter "github.com/bnema/smart-image-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/smart-image-cli/internal/adapters/repo/toml"
	"github.com/bnema/smart-image-cli/internal/application"
	"github.com/bnema/smart-image-cli/internal/config"
	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/logging"
	"github.com/bnema/smart-image-cli/internal/ports"
)

type app struct {
	cfg             config.Config
	logger          *zap.Logger
	closeLog        func() error
	client          *application.Client
	statusRenderer  func(domain.SessionStatus, statusadapter.RenderOptions) (string, error)
	historyRenderer func([]domain.GenerationRecord, statusadapter.RenderOptions) (string, error)
	now             func() time.Time
}

func wireApp() (*app, error) {
	dataDir, err := config.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("wire data directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), dataDir)
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	probe := gemini.NewProbe(&http.Client{Timeout: cfg.Gemini.ProbeTimeout}, cfg.Gemini.AppURL, logger)
	store := netscape.NewStore(cfg.CookiePath(), cfg.Gemini.CookieDomain, ports.SystemClock{})

	orchestrator := browser.NewOrchestrator(browser.Config{
		ProfileDir:      cfg.ProfileDir(),
		AppURL:          cfg.Gemini.AppURL,
		DebuggerWait:    cfg.Browser.DebuggerWait,
		LoginTimeout:    cfg.Browser.LoginTimeout,
		PollInterval:    cfg.Browser.PollInterval,
		CallTimeout:     cfg.Browser.RPCTimeout,
		KillGracePeriod: cfg.Browser.KillGrace,
	}, browser.ExecLauncher{ExecutablePath: cfg.Browser.ChromePath}, probe, logger)

	sessions := application.NewSessionService(store, orchestrator, probe, application.SessionOptions{
		LoginAttempts: cfg.Session.LoginAttempts,
		RetryBackoff:  cfg.Session.RetryBackoff,
		DataDir:       cfg.DataDir,
	}, logger)

	backend := gemini.NewBackend(&http.Client{}, gemini.BackendConfig{
		Endpoint:    cfg.Gemini.GenerateEndpoint,
		Model:       cfg.Gemini.Model,
		Timeout:     cfg.Gemini.GenerateTimeout,
		ImagePrefix: cfg.Gemini.ImagePrefix,
	}, logger)

	fetcher := gemini.NewFetcher(&http.Client{}, gemini.FetcherConfig{
		SizeSuffix:   cfg.Download.SizeSuffix,
		MaxRedirects: cfg.Download.MaxRedirects,
		Timeout:      cfg.Download.Timeout,
	}, logger)

	history, err := tomlrepo.NewHistoryRepository(cfg.HistoryPath())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("wire history repository: %w", err)
	}

	return &app{
		cfg:             cfg,
		logger:          logger,
		closeLog:        closeLog,
		client:          application.NewClient(sessions, backend, fetcher, history, ports.SystemClock{}, logger),
		statusRenderer:  statusadapter.Render,
		historyRenderer: statusadapter.RenderHistory,
		now:             time.Now,
	}, nil
}
