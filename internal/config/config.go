// Package config handles loading and saving user configuration for marketlab.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Timeout bounds.
const (
	MinTimeout = time.Second
	MaxTimeout = 5 * time.Minute
)

// Config holds all user configuration for marketlab.
type Config struct {
	Endpoint     string        `yaml:"endpoint"`      // Backend base URL
	Timeout      time.Duration `yaml:"timeout"`       // Per-request timeout, e.g. "20s"
	Locale       string        `yaml:"locale"`        // BCP 47 tag for price formatting
	QuickTickers []string      `yaml:"quick_tickers"` // Quick-select symbols
	Log          LogConfig     `yaml:"log"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Defaults to marketlab.log in the config dir
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:     "http://localhost:8000",
		Timeout:      20 * time.Second,
		Locale:       "en-US",
		QuickTickers: []string{"IWDA", "SWDA", "VUAA", "IEMB", "EIMI"},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config.yaml from dir on top of the defaults.
// A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to config.yaml in dir.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Merge applies values set through flags or MARKETLAB_* environment
// variables. Only keys that are explicitly set override the file.
func (c *Config) Merge(v *viper.Viper) {
	if v == nil {
		return
	}
	if v.IsSet("endpoint") {
		c.Endpoint = v.GetString("endpoint")
	}
	if v.IsSet("timeout") {
		c.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("locale") {
		c.Locale = v.GetString("locale")
	}
	if v.IsSet("quick_tickers") {
		c.QuickTickers = v.GetStringSlice("quick_tickers")
	}
	if v.IsSet("log.level") {
		c.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.file") {
		c.Log.File = v.GetString("log.file")
	}
	if v.GetBool("verbose") {
		c.Log.Level = "debug"
	}
}

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("parsing endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http or https URL: %q", c.Endpoint)
	}
	if c.Timeout < MinTimeout || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %s out of range [%s, %s]", c.Timeout, MinTimeout, MaxTimeout)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	for _, t := range c.QuickTickers {
		if strings.TrimSpace(t) == "" || strings.ContainsAny(t, ", \t\n") {
			return fmt.Errorf("invalid quick ticker %q", t)
		}
	}
	return nil
}

// LogPath resolves the log file location.
func (c *Config) LogPath(dir string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(dir, "marketlab.log")
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "marketlab"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// Template is the commented starter file written by `marketlab init`.
const Template = `# marketlab configuration
#
# Values here can be overridden with flags or MARKETLAB_* environment
# variables (MARKETLAB_ENDPOINT, MARKETLAB_TIMEOUT, MARKETLAB_LOCALE,
# MARKETLAB_LOG_LEVEL).

# Base URL of the price-lookup backend. Requests go to <endpoint>/api/etf.
endpoint: "http://localhost:8000"

# Give up on a lookup after this long (1s to 5m).
timeout: 20s

# Locale used to format prices, e.g. en-US, it-IT, de-DE.
locale: "en-US"

# Symbols offered as quick-select chips (alt+1..alt+N).
quick_tickers:
  - IWDA
  - SWDA
  - VUAA
  - IEMB
  - EIMI

log:
  # debug, info, warn, error
  level: info
  # Leave empty to write marketlab.log next to this file.
  file: ""
`
