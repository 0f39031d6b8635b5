package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/atlas/internal/countries"
)

const appName = "atlas"

// Config holds all atlas configuration. The file is only ever read.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the country data provider.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // empty: no timeout
	Source  string `yaml:"source"`  // optional raw provider dump used instead of the network
}

// UIConfig configures presentation.
type UIConfig struct {
	Theme  string `yaml:"theme"`  // dark, light
	Locale string `yaml:"locale"` // e.g. de-DE; empty follows LC_ALL/LANG
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: countries.DefaultBaseURL,
		},
		UI: UIConfig{
			Theme: "dark",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath is $UserConfigDir/atlas/config.yaml, or "" when unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load loads configuration from a YAML file and applies environment
// overrides. A missing file yields defaults. Callers apply their own
// overrides and then call Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ATLAS_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ATLAS_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("ATLAS_SOURCE"); v != "" {
		c.API.Source = v
	}
	if v := os.Getenv("ATLAS_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ATLAS_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("ATLAS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("ATLAS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	switch c.UI.Theme {
	case "":
		c.UI.Theme = "dark"
	case "dark", "light":
	default:
		return fmt.Errorf("invalid ui.theme %q: want dark or light", c.UI.Theme)
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}
	return nil
}

// FetchTimeout parses API.Timeout; zero means no timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid api.timeout %q: negative", c.API.Timeout)
	}
	return d, nil
}
