package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func setRunEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "TIMEZONE", "POLL_INTERVAL_IN_MINS", "GATE_MODE",
		"SEEN_STORE", "SEEN_TTL_HOURS", "REDIS_DB", "GOOGLE_CAL_API_KEY", "GOOGLE_CAL_CAL_ID", "ICS_URL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("FEED_URL", "https://www.toronto.ca/data/fire/livecad.xml")
	t.Setenv("UNIT_ID", "P314")
	t.Setenv("CALENDAR_SOURCE", "file")
	t.Setenv("CALENDAR_FILE", "/etc/dispatch-watch/shifts.yaml")
}

func TestLoad_Defaults(t *testing.T) {
	setRunEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level: got %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.Location.String() != "America/Toronto" {
		t.Errorf("location: got %q, want %q", cfg.Location.String(), "America/Toronto")
	}
	if cfg.Feed.PollInterval != 5*time.Minute {
		t.Errorf("poll interval: got %v, want %v", cfg.Feed.PollInterval, 5*time.Minute)
	}
	if cfg.Feed.GateMode != "batch" {
		t.Errorf("gate mode: got %q, want %q", cfg.Feed.GateMode, "batch")
	}
	if cfg.Seen.Store != SeenStoreMemory {
		t.Errorf("seen store: got %q, want %q", cfg.Seen.Store, SeenStoreMemory)
	}
	if cfg.Seen.TTL != 720*time.Hour {
		t.Errorf("seen ttl: got %v, want %v", cfg.Seen.TTL, 720*time.Hour)
	}

	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("expected valid configuration, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"zero poll interval", "POLL_INTERVAL_IN_MINS", "0", ErrInvalidPollInterval},
		{"non numeric poll interval", "POLL_INTERVAL_IN_MINS", "five", ErrInvalidPollInterval},
		{"unknown timezone", "TIMEZONE", "Mars/Olympus", ErrInvalidTimezone},
		{"negative seen ttl", "SEEN_TTL_HOURS", "-1", ErrInvalidSeenTTL},
		{"bad redis db", "REDIS_DB", "zero", ErrInvalidRedisDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRunEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"missing feed url", map[string]string{"FEED_URL": ""}, ErrFeedURLMissing},
		{"missing unit id", map[string]string{"UNIT_ID": " "}, ErrUnitIDMissing},
		{"unknown gate mode", map[string]string{"GATE_MODE": "shift"}, ErrInvalidGateMode},
		{"unknown calendar source", map[string]string{"CALENDAR_SOURCE": "outlook"}, ErrUnknownCalendarSource},
		{"google without key", map[string]string{"CALENDAR_SOURCE": "google"}, ErrGoogleCalendarMissing},
		{"ics without url", map[string]string{"CALENDAR_SOURCE": "ics"}, ErrICSURLMissing},
		{"file without path", map[string]string{"CALENDAR_FILE": ""}, ErrCalendarFileMissing},
		{"unknown seen store", map[string]string{"SEEN_STORE": "sqlite"}, ErrUnknownSeenStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRunEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected load error: %v", err)
			}

			if err := ValidateForRun(cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateForRun_RedisOnlyWhenSelected(t *testing.T) {
	setRunEnv(t)
	t.Setenv("SEEN_STORE", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Redis.Addr = ""
	if err := ValidateForRun(cfg); !errors.Is(err, ErrRedisAddrMissing) {
		t.Errorf("expected %v, got %v", ErrRedisAddrMissing, err)
	}

	cfg.Seen.Store = SeenStoreMemory
	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("expected valid configuration, got %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.raw); got != tt.want {
			t.Errorf("parseLogLevel(%q): got %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestRedisConfig_Options(t *testing.T) {
	cfg := &RedisConfig{Addr: "redis:6379", Password: "secret", DB: 2, TLS: true, DialTimeout: time.Second}

	opts := cfg.Options()
	if opts.Addr != "redis:6379" || opts.Password != "secret" || opts.DB != 2 {
		t.Errorf("unexpected options: addr=%q db=%d", opts.Addr, opts.DB)
	}
	if opts.TLSConfig == nil {
		t.Error("expected TLS config when TLS is enabled")
	}

	cfg.TLS = false
	if cfg.Options().TLSConfig != nil {
		t.Error("expected no TLS config when TLS is disabled")
	}
}
