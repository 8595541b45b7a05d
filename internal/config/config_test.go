package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:3060" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.DebounceDelay != 400*time.Millisecond {
		t.Errorf("DebounceDelay = %v", cfg.DebounceDelay)
	}
	if cfg.Addr() != "127.0.0.1:3060" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ULOG_MOCK_PORT", "70000"},
		{"ULOG_MOCK_PORT", "nope"},
		{"ULOG_POLL_INTERVAL", "100ms"},
		{"ULOG_POLL_INTERVAL", "fast"},
		{"ULOG_MAX_LOOKBACK_DAYS", "-1"},
		{"ULOG_MOCK_CORS_ORIGINS", "*"},
		{"ULOG_MOCK_CORS_ORIGINS", "not-a-url"},
		{"ULOG_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Setenv(tt.key, tt.value)
		if _, err := Load(); err == nil {
			t.Errorf("%s=%s: expected error", tt.key, tt.value)
		}
		t.Setenv(tt.key, "")
	}
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("super-secret-key")
	if got := s.String(); strings.Contains(got, "super") {
		t.Errorf("String leaked the secret: %q", got)
	}
	if got, _ := s.MarshalText(); strings.Contains(string(got), "super") {
		t.Errorf("MarshalText leaked the secret: %q", got)
	}
	if s.Value() != "super-secret-key" {
		t.Errorf("Value = %q", s.Value())
	}
}
