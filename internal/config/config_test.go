package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("FORECAST_HORIZON_DAYS", "")
	t.Setenv("ECOMLYTICS_CONFIG", "")

	cfg := Load()
	if cfg.NATSSubject != "analytics.recompute" {
		t.Fatalf("expected default nats subject, got %q", cfg.NATSSubject)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors default, got %v", cfg.CORSOrigins)
	}
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected default rate limit 50, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.ForecastHorizonDays != 7 {
		t.Fatalf("expected default horizon 7, got %d", cfg.ForecastHorizonDays)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("API_RATE_LIMIT_RPS", "5.5")
	t.Setenv("API_RATE_LIMIT_BURST", "10")
	t.Setenv("FORECAST_HORIZON_DAYS", "14")
	t.Setenv("ECOMLYTICS_CONFIG", "")

	cfg := Load()
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example.com" {
		t.Fatalf("expected trimmed cors origins, got %v", cfg.CORSOrigins)
	}
	if cfg.APIRateLimitRPS != 5.5 || cfg.APIRateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit settings: %v burst %d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if cfg.ForecastHorizonDays != 14 {
		t.Fatalf("expected horizon 14, got %d", cfg.ForecastHorizonDays)
	}
}

func TestLoadAppliesFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := "api_port: \"9999\"\nforecast_horizon_days: 10\ncors_origins:\n  - https://shop.example.com\n"
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	t.Setenv("API_PORT", "8080")
	t.Setenv("NATS_SUBJECT", "env.subject")
	t.Setenv("ECOMLYTICS_CONFIG", path)

	cfg := Load()
	if cfg.APIPort != "9999" {
		t.Fatalf("expected file overlay to win, got %q", cfg.APIPort)
	}
	if cfg.ForecastHorizonDays != 10 {
		t.Fatalf("expected horizon 10 from file, got %d", cfg.ForecastHorizonDays)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://shop.example.com" {
		t.Fatalf("expected cors from file, got %v", cfg.CORSOrigins)
	}
	if cfg.NATSSubject != "env.subject" {
		t.Fatalf("unset file fields must keep env values, got %q", cfg.NATSSubject)
	}
}
