// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration for transcript acquisition runs.
type Config struct {
	// OutputDir is the directory transcript records are written to
	OutputDir string `json:"output_dir"`
	// MaxVideos limits how many videos of the channel are considered (0 = all)
	MaxVideos int `json:"max_videos"`
	// RequestDelay is slept between processed videos
	RequestDelay time.Duration `json:"request_delay"`
	// DelaySkipped also applies RequestDelay after skipped videos
	DelaySkipped bool `json:"delay_skipped"`

	// Languages is the transcript language preference order
	Languages []string `json:"languages"`

	// CookieFile is an optional cookie blob passed to the HTTP session verbatim
	CookieFile string `json:"cookie_file"`
	// ProxyFile is an optional file listing proxy URLs, one per line
	ProxyFile string `json:"proxy_file"`

	// StatsEnabled controls statistics enrichment
	StatsEnabled bool `json:"stats_enabled"`
	// APIKey is the YouTube Data API key; empty disables enrichment
	APIKey string `json:"api_key"`

	// MaxRetries is the total attempt ceiling for transient failures
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the first retry delay
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff caps the retry delay
	MaxBackoff time.Duration `json:"max_backoff"`
	// BackoffMultiplier is the exponential backoff factor (must be > 1)
	BackoffMultiplier float64 `json:"backoff_multiplier"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:         "transcripts",
		MaxVideos:         0,
		RequestDelay:      3 * time.Second,
		Languages:         []string{"en", "en-US", "en-GB"},
		StatsEnabled:      true,
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytscribe.json in the current
// directory or under ~/.config/ytscribe/.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytscribe.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytscribe", "ytscribe.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTSCRIBE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("YTSCRIBE_MAX_VIDEOS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxVideos = n
		}
	}
	if v := os.Getenv("YTSCRIBE_REQUEST_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestDelay = d
		}
	}
	if v := os.Getenv("YTSCRIBE_DELAY_SKIPPED"); v != "" {
		c.DelaySkipped = v == "true" || v == "1"
	}
	if v := os.Getenv("YTSCRIBE_LANGUAGES"); v != "" {
		c.Languages = splitList(v)
	}
	if v := os.Getenv("YTSCRIBE_COOKIE_FILE"); v != "" {
		c.CookieFile = v
	}
	if v := os.Getenv("YTSCRIBE_PROXY_FILE"); v != "" {
		c.ProxyFile = v
	}
	if v := os.Getenv("YTSCRIBE_STATS_ENABLED"); v != "" {
		c.StatsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("YTSCRIBE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTSCRIBE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("YTSCRIBE_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("YTSCRIBE_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
}

// splitList parses a comma-separated list, trimming whitespace.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.MaxVideos < 0 {
		return fmt.Errorf("max_videos must be non-negative")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request_delay must be non-negative")
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("languages must not be empty")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff <= 0 {
		return fmt.Errorf("max_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	return nil
}

// LoadProxies reads the proxy list file: one URL per line, blank lines and
// #-comments ignored. A missing ProxyFile setting yields an empty list.
func (c *Config) LoadProxies() ([]string, error) {
	if c.ProxyFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.ProxyFile)
	if err != nil {
		return nil, fmt.Errorf("read proxy file: %w", err)
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}
