// Package config resolves sig's settings from config.toml in the data
// directory, SIG_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "SIG"
	DataDirEnv     = "SIG_DATA_DIR"
	DefaultDataDir = "~/.local/share/smart-image-generator"
	FileName       = "config.toml"

	cookieFileName  = "cookies.txt"
	profileDirName  = "chrome-profile"
	historyFileName = "history.toml"
	logDirName      = "logs"

	configFileMode = 0o600
	configDirMode  = 0o700
)

var ErrConfigExists = errors.New("config file already exists")

type Config struct {
	DataDir  string         `mapstructure:"-"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Session  SessionConfig  `mapstructure:"session"`
	Download DownloadConfig `mapstructure:"download"`
	Log      LogConfig      `mapstructure:"log"`
}

type GeminiConfig struct {
	AppURL           string        `mapstructure:"app_url"`
	GenerateEndpoint string        `mapstructure:"generate_endpoint"`
	CookieDomain     string        `mapstructure:"cookie_domain"`
	Model            string        `mapstructure:"model"`
	ImagePrefix      string        `mapstructure:"image_prefix"`
	GenerateTimeout  time.Duration `mapstructure:"generate_timeout"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout"`
}

type BrowserConfig struct {
	ChromePath   string        `mapstructure:"chrome_path"`
	DebuggerWait time.Duration `mapstructure:"debugger_wait"`
	LoginTimeout time.Duration `mapstructure:"login_timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	RPCTimeout   time.Duration `mapstructure:"rpc_timeout"`
	KillGrace    time.Duration `mapstructure:"kill_grace"`
}

type SessionConfig struct {
	LoginAttempts int           `mapstructure:"login_attempts"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
}

type DownloadConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRedirects int           `mapstructure:"max_redirects"`
	SizeSuffix   string        `mapstructure:"size_suffix"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func (c Config) CookiePath() string  { return filepath.Join(c.DataDir, cookieFileName) }
func (c Config) ProfileDir() string  { return filepath.Join(c.DataDir, profileDirName) }
func (c Config) HistoryPath() string { return filepath.Join(c.DataDir, historyFileName) }
func (c Config) ConfigPath() string  { return filepath.Join(c.DataDir, FileName) }

var defaults = map[string]any{
	"gemini.app_url":           "https://gemini.google.com/app",
	"gemini.generate_endpoint": "https://gemini.google.com/_/BardChatUi/data/assistant.lamda.BardFrontendService/StreamGenerate",
	"gemini.cookie_domain":     ".gemini.google.com",
	"gemini.model":             "gemini-pro",
	"gemini.image_prefix":      "https://lh3.googleusercontent.com/gg-dl/",
	"gemini.generate_timeout":  5 * time.Minute,
	"gemini.probe_timeout":     30 * time.Second,
	"browser.chrome_path":      "",
	"browser.debugger_wait":    30 * time.Second,
	"browser.login_timeout":    5 * time.Minute,
	"browser.poll_interval":    time.Second,
	"browser.rpc_timeout":      15 * time.Second,
	"browser.kill_grace":       2 * time.Second,
	"session.login_attempts":   1,
	"session.retry_backoff":    5 * time.Second,
	"download.timeout":         30 * time.Second,
	"download.max_redirects":   10,
	"download.size_suffix":     "=s2048",
	"log.level":                "info",
	"log.format":               "console",
	"log.file":                 "",
	"log.max_size_mb":          10,
	"log.max_backups":          3,
	"log.max_age_days":         28,
}

// ResolveDataDir returns SIG_DATA_DIR or the default, with "~" expanded.
func ResolveDataDir() (string, error) {
	dir := strings.TrimSpace(os.Getenv(DataDirEnv))
	if dir == "" {
		dir = DefaultDataDir
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("expand data directory: %w", err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}

	return filepath.Clean(abs), nil
}

// Load reads dataDir/config.toml when present. Environment variables win over the file.
func Load(v *viper.Viper, dataDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(filepath.Join(dataDir, FileName))
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = dataDir

	if cfg.Browser.ChromePath != "" {
		path, err := homedir.Expand(cfg.Browser.ChromePath)
		if err != nil {
			return Config{}, fmt.Errorf("expand chrome path: %w", err)
		}
		cfg.Browser.ChromePath = path
	}
	if cfg.Log.File != "" {
		path, err := homedir.Expand(cfg.Log.File)
		if err != nil {
			return Config{}, fmt.Errorf("expand log file: %w", err)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(dataDir, logDirName, path)
		}
		cfg.Log.File = path
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Session.LoginAttempts < 1 {
		errs = append(errs, errors.New("session.login_attempts must be at least 1"))
	}
	if c.Download.MaxRedirects < 1 {
		errs = append(errs, errors.New("download.max_redirects must be at least 1"))
	}
	if c.Browser.PollInterval <= 0 {
		errs = append(errs, errors.New("browser.poll_interval must be positive"))
	}
	if c.Browser.LoginTimeout <= 0 {
		errs = append(errs, errors.New("browser.login_timeout must be positive"))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

type fileGemini struct {
	AppURL           string `toml:"app_url"`
	GenerateEndpoint string `toml:"generate_endpoint"`
	CookieDomain     string `toml:"cookie_domain"`
	Model            string `toml:"model"`
	ImagePrefix      string `toml:"image_prefix"`
	GenerateTimeout  string `toml:"generate_timeout"`
	ProbeTimeout     string `toml:"probe_timeout"`
}

type fileBrowser struct {
	ChromePath   string `toml:"chrome_path"`
	DebuggerWait string `toml:"debugger_wait"`
	LoginTimeout string `toml:"login_timeout"`
	PollInterval string `toml:"poll_interval"`
	RPCTimeout   string `toml:"rpc_timeout"`
	KillGrace    string `toml:"kill_grace"`
}

type fileSession struct {
	LoginAttempts int    `toml:"login_attempts"`
	RetryBackoff  string `toml:"retry_backoff"`
}

type fileDownload struct {
	Timeout      string `toml:"timeout"`
	MaxRedirects int    `toml:"max_redirects"`
	SizeSuffix   string `toml:"size_suffix"`
}

type fileLog struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type fileConfig struct {
	Gemini   fileGemini   `toml:"gemini"`
	Browser  fileBrowser  `toml:"browser"`
	Session  fileSession  `toml:"session"`
	Download fileDownload `toml:"download"`
	Log      fileLog      `toml:"log"`
}

func toFile(c Config) fileConfig {
	return fileConfig{
		Gemini: fileGemini{
			AppURL:           c.Gemini.AppURL,
			GenerateEndpoint: c.Gemini.GenerateEndpoint,
			CookieDomain:     c.Gemini.CookieDomain,
			Model:            c.Gemini.Model,
			ImagePrefix:      c.Gemini.ImagePrefix,
			GenerateTimeout:  c.Gemini.GenerateTimeout.String(),
			ProbeTimeout:     c.Gemini.ProbeTimeout.String(),
		},
		Browser: fileBrowser{
			ChromePath:   c.Browser.ChromePath,
			DebuggerWait: c.Browser.DebuggerWait.String(),
			LoginTimeout: c.Browser.LoginTimeout.String(),
			PollInterval: c.Browser.PollInterval.String(),
			RPCTimeout:   c.Browser.RPCTimeout.String(),
			KillGrace:    c.Browser.KillGrace.String(),
		},
		Session: fileSession{
			LoginAttempts: c.Session.LoginAttempts,
			RetryBackoff:  c.Session.RetryBackoff.String(),
		},
		Download: fileDownload{
			Timeout:      c.Download.Timeout.String(),
			MaxRedirects: c.Download.MaxRedirects,
			SizeSuffix:   c.Download.SizeSuffix,
		},
		Log: fileLog{
			Level:      c.Log.Level,
			Format:     c.Log.Format,
			File:       c.Log.File,
			MaxSizeMB:  c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAgeDays: c.Log.MaxAgeDays,
		},
	}
}

// Encode renders c as config.toml content.
func Encode(c Config) ([]byte, error) {
	data, err := toml.Marshal(toFile(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Defaults returns the built-in configuration rooted at dataDir.
func Defaults(dataDir string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode defaults: %w", err)
	}
	cfg.DataDir = dataDir

	return cfg, nil
}

// WriteDefaults writes the built-in defaults to dataDir/config.toml. An
// existing file is left alone unless force is set.
func WriteDefaults(dataDir string, force bool) (string, error) {
	path := filepath.Join(dataDir, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	cfg, err := Defaults(dataDir)
	if err != nil {
		return "", err
	}

	data, err := Encode(cfg)
	if err != nil {
		return "", err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	return path, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Chmod(configFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	return nil
}
