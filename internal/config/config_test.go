package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
	}
	if cfg.JWTTTL() != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.JWTTTL())
	}
	if cfg.Photos.Enabled() {
		t.Error("photos should be disabled without a bucket")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("GUEST_RATE_WINDOW_SECONDS", "60")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	if cfg.Addr() != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr())
	}
	if cfg.DBDriver != "mysql" {
		t.Errorf("expected mysql driver, got %s", cfg.DBDriver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if cfg.RateLimit.GuestWindow() != time.Minute {
		t.Errorf("expected 1m window, got %s", cfg.RateLimit.GuestWindow())
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Redis.DB)
	}
}
