package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.Provider != "fixture" {
		t.Fatalf("unexpected default provider %q", cfg.Provider)
	}
	if cfg.PollInterval != 15*time.Second {
		t.Fatalf("unexpected default poll interval %v", cfg.PollInterval)
	}
	if cfg.AutosaveInterval != 10*time.Second {
		t.Fatalf("unexpected autosave interval %v", cfg.AutosaveInterval)
	}
	if cfg.SnapshotMaxAge != 4*time.Hour {
		t.Fatalf("unexpected snapshot max age %v", cfg.SnapshotMaxAge)
	}
	if cfg.CaptureRate != 2 {
		t.Fatalf("unexpected capture rate %d", cfg.CaptureRate)
	}
	if cfg.Session.Backend != "fs" {
		t.Fatalf("unexpected session backend %q", cfg.Session.Backend)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GAME_ID", "nba-2025-finals-g4")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("CAPTURE_RATE", "4")
	t.Setenv("SNAPSHOT_MAX_AGE", "2h")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("METRICS_ENABLED", "true")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Fatalf("port override ignored: %q", cfg.Port)
	}
	if cfg.GameID != "nba-2025-finals-g4" {
		t.Fatalf("game id override ignored: %q", cfg.GameID)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("poll interval override ignored: %v", cfg.PollInterval)
	}
	if cfg.CaptureRate != 4 {
		t.Fatalf("capture rate override ignored: %d", cfg.CaptureRate)
	}
	if cfg.SnapshotMaxAge != 2*time.Hour {
		t.Fatalf("snapshot max age override ignored: %v", cfg.SnapshotMaxAge)
	}
	if cfg.Session.Backend != "redis" || cfg.Session.RedisAddr != "redis:6379" {
		t.Fatalf("session overrides ignored: %+v", cfg.Session)
	}
	if !cfg.Metrics.Enabled {
		t.Fatalf("metrics enable override ignored")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")
	t.Setenv("CAPTURE_RATE", "-3")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()

	if cfg.PollInterval != 15*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.PollInterval)
	}
	if cfg.CaptureRate != 2 {
		t.Fatalf("expected default capture rate, got %d", cfg.CaptureRate)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("expected metrics disabled for unparseable value")
	}
}
