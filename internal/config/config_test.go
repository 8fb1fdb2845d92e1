package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "https://gemini.google.com/app", cfg.Gemini.AppURL)
	assert.Equal(t, ".gemini.google.com", cfg.Gemini.CookieDomain)
	assert.Equal(t, "https://lh3.googleusercontent.com/gg-dl/", cfg.Gemini.ImagePrefix)
	assert.Equal(t, 5*time.Minute, cfg.Browser.LoginTimeout)
	assert.Equal(t, 30*time.Second, cfg.Browser.DebuggerWait)
	assert.Equal(t, time.Second, cfg.Browser.PollInterval)
	assert.Equal(t, 1, cfg.Session.LoginAttempts)
	assert.Equal(t, 5*time.Second, cfg.Session.RetryBackoff)
	assert.Equal(t, 10, cfg.Download.MaxRedirects)
	assert.Equal(t, "=s2048", cfg.Download.SizeSuffix)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.Equal(t, filepath.Join(dir, "cookies.txt"), cfg.CookiePath())
	assert.Equal(t, filepath.Join(dir, "chrome-profile"), cfg.ProfileDir())
	assert.Equal(t, filepath.Join(dir, "history.toml"), cfg.HistoryPath())
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
[browser]
login_timeout = "90s"
chrome_path = "/opt/chrome/chrome"

[session]
login_attempts = 3

[log]
format = "json"
file = "sig.log"
`), 0o600))

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Browser.LoginTimeout)
	assert.Equal(t, "/opt/chrome/chrome", cfg.Browser.ChromePath)
	assert.Equal(t, 3, cfg.Session.LoginAttempts)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join(dir, "logs", "sig.log"), cfg.Log.File)
	assert.Equal(t, 10, cfg.Download.MaxRedirects)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[session]\nlogin_attempts = 3\n"), 0o600))
	t.Setenv("SIG_SESSION_LOGIN_ATTEMPTS", "4")
	t.Setenv("SIG_DOWNLOAD_SIZE_SUFFIX", "=s1024")
	t.Setenv("SIG_GEMINI_IMAGE_PREFIX", "http://127.0.0.1:9000/img/")

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Session.LoginAttempts)
	assert.Equal(t, "=s1024", cfg.Download.SizeSuffix)
	assert.Equal(t, "http://127.0.0.1:9000/img/", cfg.Gemini.ImagePrefix)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
[session]
login_attempts = 0

[log]
format = "xml"
`), 0o600))

	_, err := Load(viper.New(), dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, "session.login_attempts")
	assert.ErrorContains(t, err, "log.format")
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[[[broken"), 0o600))

	_, err := Load(viper.New(), dir)
	assert.ErrorContains(t, err, "read config file")
}

func TestResolveDataDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv(DataDirEnv, custom)

	dir, err := ResolveDataDir()
	require.NoError(t, err)
	assert.Equal(t, custom, dir)

	home := t.TempDir()
	t.Setenv(DataDirEnv, "")
	t.Setenv("HOME", home)

	dir, err = ResolveDataDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "smart-image-generator", filepath.Base(dir))
}

func TestWriteDefaultsRoundTrips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	path, err := WriteDefaults(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[browser]")
	assert.Contains(t, string(data), "5m0s")

	loaded, err := Load(viper.New(), dir)
	require.NoError(t, err)
	defaults, err := Defaults(dir)
	require.NoError(t, err)
	assert.Equal(t, defaults, loaded)

	_, err = WriteDefaults(dir, false)
	assert.ErrorIs(t, err, ErrConfigExists)

	_, err = WriteDefaults(dir, true)
	assert.NoError(t, err)
}
