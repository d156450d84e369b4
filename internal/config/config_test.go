package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DALIL_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://172.16.172.70:8000", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, "DALIL_API_TOKEN", cfg.API.TokenEnv)
	require.Equal(t, "ar", cfg.UI.Locale)
	require.True(t, cfg.UI.RTL)
	require.Equal(t, filepath.Join(home, ".local", "share", "dalil", "dalil.db"), cfg.Database.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Metrics.Listen)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://workers.example.com"
timeout = "3s"

[ui]
rtl = false
`), 0o600))
	t.Setenv("DALIL_CONFIG", path)
	t.Setenv("DALIL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://workers.example.com", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.False(t, cfg.UI.RTL)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DALIL_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestInitCreatesMissingExplicitFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "new", "dalil.toml")
	t.Setenv("DALIL_CONFIG", path)
	t.Setenv("DALIL_API_BASE_URL", "http://10.1.1.1:8000")

	_, err := Load()
	require.Error(t, err)

	got, err := Init()
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.FileExists(t, path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://10.1.1.1:8000", cfg.API.BaseURL)
	require.Equal(t, "ar", cfg.UI.Locale)
}

func TestLoadOrDefaultsRejectsBrokenFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url = "), 0o600))
	t.Setenv("DALIL_CONFIG", path)

	_, err := LoadOrDefaults()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := Config{
		API:      APIConfig{BaseURL: "http://localhost:8000", Timeout: time.Second},
		Database: DatabaseConfig{Path: "/tmp/x.db"},
		UI:       UIConfig{Locale: "ar"},
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.API.BaseURL = "localhost:8000"
	require.Error(t, bad.Validate())

	bad = good
	bad.API.BaseURL = "ftp://host"
	require.Error(t, bad.Validate())

	bad = good
	bad.API.Timeout = 0
	require.Error(t, bad.Validate())

	bad = good
	bad.UI.Locale = "??"
	require.Error(t, bad.Validate())

	bad = good
	bad.Database.Path = " "
	require.Error(t, bad.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DALIL_CONFIG", filepath.Join(home, "cfg", "config.toml"))

	cfg := Config{
		API:      APIConfig{BaseURL: "http://10.0.0.2:8000", Timeout: 4 * time.Second, TokenEnv: "X_TOKEN", Token: "secret"},
		Database: DatabaseConfig{Path: filepath.Join(home, "d.db")},
		UI:       UIConfig{Locale: "fr", RTL: false},
		Log:      LogConfig{Path: filepath.Join(home, "d.log"), Level: "warn"},
	}
	require.NoError(t, Save(cfg))

	data, err := os.ReadFile(Path())
	require.NoError(t, err)
	require.NotContains(t, string(data), "secret")

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg.API.BaseURL, got.API.BaseURL)
	require.Equal(t, cfg.API.Timeout, got.API.Timeout)
	require.Equal(t, "X_TOKEN", got.API.TokenEnv)
	require.Equal(t, "fr", got.UI.Locale)
	require.False(t, got.UI.RTL)
	require.Equal(t, "warn", got.Log.Level)
}
