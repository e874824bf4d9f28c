// Package config assembles tootspan settings from defaults, an optional
// YAML file, and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied before any file or environment override.
const (
	DefaultInstanceURL   = "https://mastodon.social"
	DefaultPageLimit     = 40
	DefaultExcerptLength = 150
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultRetryAttempts = 1

	// maxPageLimit is the most statuses Mastodon serves per page.
	maxPageLimit = 40
)

// Config holds application-level configuration.
type Config struct {
	InstanceURL   string        // e.g. "https://mastodon.social"
	Token         string        // Literal access token; wins over TokenPath
	TokenPath     string        // Path to file containing the access token
	PageLimit     int           // Statuses requested per page, 1..40
	ExcerptLength int           // Excerpt budget in runes
	ArchivePath   string        // SQLite database holding saved posts
	HTTPTimeout   time.Duration // Per-request timeout
	RetryAttempts int           // Total tries per request; 1 disables retries
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Instance      string `yaml:"instance"`
	TokenPath     string `yaml:"token_path"`
	PageLimit     int    `yaml:"page_limit"`
	ExcerptLength int    `yaml:"excerpt_length"`
	ArchivePath   string `yaml:"archive_path"`
	HTTPTimeout   string `yaml:"http_timeout"`
	RetryAttempts int    `yaml:"retry_attempts"`
}

// Load assembles the configuration. Defaults are overridden by the YAML
// file, which is overridden by the environment. A .env file in the working
// directory is folded into the environment first.
//
//	TOOTSPAN_INSTANCE        — Mastodon instance URL (default: https://mastodon.social)
//	TOOTSPAN_TOKEN           — Literal access token
//	TOOTSPAN_TOKEN_PATH      — Path to token file (default: ~/.config/tootspan/token)
//	TOOTSPAN_CONFIG          — Path to config file (default: ~/.config/tootspan/config.yaml)
//	TOOTSPAN_PAGE_LIMIT      — Statuses per page, 1..40 (default: 40)
//	TOOTSPAN_EXCERPT_LENGTH  — Excerpt budget in runes (default: 150)
//	TOOTSPAN_ARCHIVE         — SQLite archive path (default: ~/.local/share/tootspan/archive.db)
//	TOOTSPAN_HTTP_TIMEOUT    — Request timeout, e.g. "30s"
//	TOOTSPAN_RETRY_ATTEMPTS  — Total tries per request (default: 1)
//
// MASTODON_INSTANCE and MASTODON_TOKEN are honoured as fallbacks for their
// TOOTSPAN_* counterparts.
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		InstanceURL:   DefaultInstanceURL,
		PageLimit:     DefaultPageLimit,
		ExcerptLength: DefaultExcerptLength,
		HTTPTimeout:   DefaultHTTPTimeout,
		RetryAttempts: DefaultRetryAttempts,
	}
	if err := cfg.applyFile(); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile() error {
	path := os.Getenv("TOOTSPAN_CONFIG")
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".config", "tootspan", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if fc.Instance != "" {
		c.InstanceURL = fc.Instance
	}
	if fc.TokenPath != "" {
		c.TokenPath = fc.TokenPath
	}
	if fc.PageLimit != 0 {
		c.PageLimit = fc.PageLimit
	}
	if fc.ExcerptLength != 0 {
		c.ExcerptLength = fc.ExcerptLength
	}
	if fc.ArchivePath != "" {
		c.ArchivePath = fc.ArchivePath
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("parsing %s: http_timeout: %w", path, err)
		}
		c.HTTPTimeout = d
	}
	if fc.RetryAttempts != 0 {
		c.RetryAttempts = fc.RetryAttempts
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := envString("TOOTSPAN_INSTANCE", "MASTODON_INSTANCE"); v != "" {
		c.InstanceURL = v
	}
	if v := envString("TOOTSPAN_TOKEN", "MASTODON_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("TOOTSPAN_TOKEN_PATH"); v != "" {
		c.TokenPath = v
	}
	if v := os.Getenv("TOOTSPAN_ARCHIVE"); v != "" {
		c.ArchivePath = v
	}
	if v := os.Getenv("TOOTSPAN_PAGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOOTSPAN_PAGE_LIMIT: %w", err)
		}
		c.PageLimit = n
	}
	if v := os.Getenv("TOOTSPAN_EXCERPT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOOTSPAN_EXCERPT_LENGTH: %w", err)
		}
		c.ExcerptLength = n
	}
	if v := os.Getenv("TOOTSPAN_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOOTSPAN_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v := os.Getenv("TOOTSPAN_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOOTSPAN_RETRY_ATTEMPTS: %w", err)
		}
		c.RetryAttempts = n
	}
	return nil
}

func (c *Config) normalize() error {
	parsed, err := url.Parse(c.InstanceURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid instance URL %q: must be an absolute URL", c.InstanceURL)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("invalid instance URL %q: only https is allowed", c.InstanceURL)
	}
	c.InstanceURL = strings.TrimRight(parsed.String(), "/")

	if c.PageLimit < 1 || c.PageLimit > maxPageLimit {
		c.PageLimit = DefaultPageLimit
	}
	if c.ExcerptLength < 1 {
		c.ExcerptLength = DefaultExcerptLength
	}
	if c.RetryAttempts < 1 {
		c.RetryAttempts = DefaultRetryAttempts
	}

	if c.TokenPath == "" || c.ArchivePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		if c.TokenPath == "" {
			c.TokenPath = filepath.Join(home, ".config", "tootspan", "token")
		}
		if c.ArchivePath == "" {
			c.ArchivePath = filepath.Join(home, ".local", "share", "tootspan", "archive.db")
		}
	}
	return nil
}

func envString(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
