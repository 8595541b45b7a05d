// Package config provides environment-driven configuration for the
// log-insight tools.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or
// marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all configuration values.
type Config struct {
	// Client side.
	APIURL          string
	APIKey          Secret
	PollInterval    time.Duration
	DebounceDelay   time.Duration
	MaxLookbackDays int
	PrefsPath       string
	LogLevel        string

	// Mock backend.
	Port           string
	ListenHost     string
	CORSOrigins    []string
	SeedRecords    int
	AppendInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:    envOrDefault("ULOG_URL", "http://127.0.0.1:3060"),
		APIKey:    Secret(envOrDefault("ULOG_API_KEY", "")),
		PrefsPath: envOrDefault("ULOG_PREFS_PATH", defaultPrefsPath()),
		LogLevel:  envOrDefault("ULOG_LOG_LEVEL", "info"),

		Port:       envOrDefault("ULOG_MOCK_PORT", "3060"),
		ListenHost: envOrDefault("ULOG_MOCK_HOST", "127.0.0.1"),
	}

	var err error
	if cfg.PollInterval, err = envDuration("ULOG_POLL_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.DebounceDelay, err = envDuration("ULOG_DEBOUNCE", 400*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.AppendInterval, err = envDuration("ULOG_MOCK_APPEND_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}

	maxDays, err := strconv.Atoi(envOrDefault("ULOG_MAX_LOOKBACK_DAYS", "0"))
	if err != nil || maxDays < 0 {
		return nil, fmt.Errorf("ULOG_MAX_LOOKBACK_DAYS must be a non-negative integer")
	}
	cfg.MaxLookbackDays = maxDays

	seed, err := strconv.Atoi(envOrDefault("ULOG_MOCK_SEED", "500"))
	if err != nil || seed < 0 {
		return nil, fmt.Errorf("ULOG_MOCK_SEED must be a non-negative integer")
	}
	cfg.SeedRecords = seed

	origins := envOrDefault("ULOG_MOCK_CORS_ORIGINS", "http://localhost:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Addr returns the mock backend listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.APIURL); err != nil {
		return fmt.Errorf("ULOG_URL is not a valid URL: %w", err)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("ULOG_MOCK_PORT must be a valid integer: %w", err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("ULOG_MOCK_PORT must be between 1 and 65535")
	}

	if c.PollInterval < time.Second {
		return fmt.Errorf("ULOG_POLL_INTERVAL must be at least 1s")
	}

	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("ULOG_MOCK_CORS_ORIGINS must not contain wildcard '*'")
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ULOG_MOCK_CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("ULOG_LOG_LEVEL must be one of trace|debug|info|warn|error, got %q", c.LogLevel)
	}

	return nil
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.ulog/prefs.json"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (e.g. 5s)", key)
	}
	return d, nil
}
