package config_test

import (
	"testing"
	"time"

	"github.com/playmaker-live/playmaker/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected default CORS origins: %v", cfg.Server.CORSOrigins)
	}
	if cfg.Live.PollInterval != 30*time.Second {
		t.Errorf("expected default poll interval 30s, got %s", cfg.Live.PollInterval)
	}
	if cfg.Live.CacheTTL != 15*time.Second {
		t.Errorf("expected default cache TTL 15s, got %s", cfg.Live.CacheTTL)
	}
	if cfg.Provider.Timeout != 15*time.Second {
		t.Errorf("expected default provider timeout 15s, got %s", cfg.Provider.Timeout)
	}
	if cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Errorf("unexpected default model: %s", cfg.Gemini.Model)
	}
	if cfg.SMTP.GatewayDomain != "vtext.com" {
		t.Errorf("unexpected default gateway domain: %s", cfg.SMTP.GatewayDomain)
	}
	if cfg.Development {
		t.Error("expected development off by default")
	}
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("CORS_ORIGINS", "https://playmaker.live,https://staging.playmaker.live")
	t.Setenv("LIVE_POLL_INTERVAL", "10s")
	t.Setenv("DATABASE_URL", "postgres://localhost/playmaker")
	t.Setenv("DEVELOPMENT", "true")

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected :9999, got %s", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Live.PollInterval != 10*time.Second {
		t.Errorf("expected 10s poll interval, got %s", cfg.Live.PollInterval)
	}
	if cfg.Postgres.DSN != "postgres://localhost/playmaker" {
		t.Errorf("unexpected DSN: %s", cfg.Postgres.DSN)
	}
	if !cfg.Development {
		t.Error("expected development on")
	}
}

func TestNew_InvalidDuration(t *testing.T) {
	t.Setenv("LIVE_POLL_INTERVAL", "not-a-duration")

	if _, err := config.New(); err == nil {
		t.Error("expected error for invalid duration")
	}
}
