package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the user's home directory.
const DefaultFileName = ".dinar.yaml"

// Config represents the dinar.yaml configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
}

// APIConfig locates the bank API and tunes the client.
type APIConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	FetchLimit int           `yaml:"fetch_limit"` // concurrent per-user lookups during resolution
}

// SessionConfig holds the logged-in identity.
type SessionConfig struct {
	Username string `yaml:"username,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// DisplayConfig tunes statement rendering.
type DisplayConfig struct {
	PageSize int `yaml:"page_size"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:        "https://api.dinarbank.example",
			Timeout:    30 * time.Second,
			FetchLimit: 4,
		},
		Display: DisplayConfig{
			PageSize: 50,
		},
	}
}

// DefaultPath returns the config path in the user's home directory, or the
// DINAR_CONFIG override.
func DefaultPath() (string, error) {
	if p := os.Getenv("DINAR_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Load reads a dinar.yaml file from disk, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file. The file holds the session token, so
// it is not world-readable.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.API.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url scheme %q: must be http or https", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid api timeout %s", c.API.Timeout)
	}
	if c.API.FetchLimit < 1 {
		return fmt.Errorf("invalid fetch_limit %d: must be at least 1", c.API.FetchLimit)
	}
	if c.Display.PageSize < 1 {
		return fmt.Errorf("invalid page_size %d: must be at least 1", c.Display.PageSize)
	}
	return nil
}

// applyEnv overrides config fields from DINAR_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DINAR_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("DINAR_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("DINAR_FETCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.FetchLimit = n
		}
	}
	if v := os.Getenv("DINAR_TOKEN"); v != "" {
		cfg.Session.Token = v
	}
	if v := os.Getenv("DINAR_USERNAME"); v != "" {
		cfg.Session.Username = v
	}
}
