// Package config loads dupcon configuration from a YAML file with
// environment overrides. A .env file in the working directory is honored
// so operators can keep the API endpoint out of shell history.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults. Page size and banner lifetime match the backoffice web client
// this console replaces; the merge settle delay covers the server-side
// regrouping window after a merge is acknowledged.
const (
	DefaultPageSize       = 10
	DefaultRequestTimeout = 30 * time.Second
	DefaultMergeSettle    = 1 * time.Second
	DefaultBannerTTL      = 3 * time.Second
	DefaultSearchDebounce = 250 * time.Millisecond
)

// Config holds everything the console needs to talk to the customer API
// and drive the review pages.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PageSize       int
	MergeSettle    time.Duration
	BannerTTL      time.Duration
	SearchDebounce time.Duration
	TokenPath      string
	LogPath        string
	LogLevel       string
}

// fileConfig is the on-disk shape. Durations are strings in Go duration
// syntax ("30s", "250ms") since yaml.v3 has no native duration support.
type fileConfig struct {
	APIBaseURL     string `yaml:"api_base_url"`
	RequestTimeout string `yaml:"request_timeout"`
	PageSize       int    `yaml:"page_size"`
	MergeSettle    string `yaml:"merge_settle_delay"`
	BannerTTL      string `yaml:"banner_ttl"`
	SearchDebounce string `yaml:"search_debounce"`
	TokenPath      string `yaml:"token_path"`
	LogPath        string `yaml:"log_path"`
	LogLevel       string `yaml:"log_level"`
}

func (f *fileConfig) apply(cfg *Config) error {
	if f.APIBaseURL != "" {
		cfg.APIBaseURL = f.APIBaseURL
	}
	if f.PageSize != 0 {
		cfg.PageSize = f.PageSize
	}
	if f.TokenPath != "" {
		cfg.TokenPath = f.TokenPath
	}
	if f.LogPath != "" {
		cfg.LogPath = f.LogPath
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	for _, d := range []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{f.RequestTimeout, "request_timeout", &cfg.RequestTimeout},
		{f.MergeSettle, "merge_settle_delay", &cfg.MergeSettle},
		{f.BannerTTL, "banner_ttl", &cfg.BannerTTL},
		{f.SearchDebounce, "search_debounce", &cfg.SearchDebounce},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = parsed
	}
	return nil
}

// DefaultPath returns the conventional config location under the user
// config dir. The file is optional; defaults apply when it is absent.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "dupcon", "config.yaml")
}

func defaults() *Config {
	cfg := &Config{
		RequestTimeout: DefaultRequestTimeout,
		PageSize:       DefaultPageSize,
		MergeSettle:    DefaultMergeSettle,
		BannerTTL:      DefaultBannerTTL,
		SearchDebounce: DefaultSearchDebounce,
		LogLevel:       "info",
	}
	if base, err := os.UserConfigDir(); err == nil {
		cfg.TokenPath = filepath.Join(base, "dupcon", "token")
		cfg.LogPath = filepath.Join(base, "dupcon", "dupcon.log")
	}
	return cfg
}

// Load reads the config file at path (optional), layers DUPCON_* environment
// variables on top, and validates the result. A missing file is not an
// error; a missing API base URL is.
func Load(path string) (*Config, error) {
	// Best effort: a .env in the working directory may hold
	// DUPCON_API_BASE_URL for local setups.
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		default:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
			}
			if err := fc.apply(cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DUPCON_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("DUPCON_TOKEN_PATH"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("DUPCON_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("DUPCON_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DUPCON_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("DUPCON_MERGE_SETTLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.MergeSettle = d
		}
	}
	if v := os.Getenv("DUPCON_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
}

// Validate checks the invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required (set it in the config file or DUPCON_API_BASE_URL)")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_base_url %q is not an absolute URL", c.APIBaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.BannerTTL <= 0 {
		return fmt.Errorf("banner_ttl must be positive, got %s", c.BannerTTL)
	}
	return nil
}
