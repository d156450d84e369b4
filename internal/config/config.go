package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// APIConfig points at the workers backend.
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	TokenEnv string        `mapstructure:"token_env"`
	Token    string        `mapstructure:"token"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale string
	RTL    bool `mapstructure:"rtl"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string
	Level string
}

// MetricsConfig enables the prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string
}

// Load reads configuration from file and env. Env var overrides use prefix DALIL_.
// A file named by DALIL_CONFIG must exist.
func Load() (Config, error) {
	return load(true)
}

// LoadOrDefaults is Load without the existence check on DALIL_CONFIG, for
// callers about to create that file.
func LoadOrDefaults() (Config, error) {
	return load(false)
}

// Init writes the effective configuration to Path, creating the file if it
// does not exist yet, and returns the path written.
func Init() (string, error) {
	cfg, err := LoadOrDefaults()
	if err != nil {
		return "", err
	}
	if err := Save(cfg); err != nil {
		return "", err
	}
	return Path(), nil
}

func load(requireExplicit bool) (Config, error) {
	v := viper.New()
	home := os.Getenv("HOME")

	v.SetDefault("api.base_url", "http://172.16.172.70:8000")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.token_env", "DALIL_API_TOKEN")
	v.SetDefault("api.token", "")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "dalil", "dalil.db"))
	v.SetDefault("ui.locale", "ar")
	v.SetDefault("ui.rtl", true)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "dalil", "dalil.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.listen", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DALIL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "dalil"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DALIL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		// an explicitly named file must exist; the default location is optional
		if !missing || (cfgPath != "" && requireExplicit) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values the program cannot run without.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url %q: unsupported scheme %q", c.API.BaseURL, u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if _, err := language.Parse(c.UI.Locale); err != nil {
		return fmt.Errorf("ui.locale %q: %w", c.UI.Locale, err)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is empty")
	}
	return nil
}

// Path is where Save writes and where Load looks by default.
func Path() string {
	if p := os.Getenv("DALIL_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "dalil", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
// The API token is not written; keep it in the environment or the secret store.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.token_env", cfg.API.TokenEnv)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.rtl", cfg.UI.RTL)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("metrics.listen", cfg.Metrics.Listen)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
