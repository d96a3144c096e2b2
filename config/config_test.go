package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_API_ID", "12345")
	t.Setenv("TELEGRAM_API_HASH", "abcdef")
	t.Setenv("TELEGRAM_PHONE", "+15551234567")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:token")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Scrape.Cooldown != 24*time.Hour {
		t.Errorf("expected default cooldown 24h, got %v", cfg.Scrape.Cooldown)
	}
	if cfg.Scrape.Limit != 0 {
		t.Errorf("expected default limit 0 (all messages), got %d", cfg.Scrape.Limit)
	}
	if cfg.Database.Path != "./messages.db" {
		t.Errorf("expected default database path, got %q", cfg.Database.Path)
	}
	if cfg.Telegram.SessionDir != "./sessions" {
		t.Errorf("expected default session dir, got %q", cfg.Telegram.SessionDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	cases := []string{
		"TELEGRAM_API_ID",
		"TELEGRAM_API_HASH",
		"TELEGRAM_PHONE",
		"TELEGRAM_BOT_TOKEN",
	}

	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			if _, err := Load(); err == nil {
				t.Errorf("expected error when %s is missing", missing)
			}
		})
	}
}

func TestLoad_InvalidCooldown(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPE_COOLDOWN", "soon")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid SCRAPE_COOLDOWN")
	}
}

func TestLoad_CustomCooldown(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPE_COOLDOWN", "48h")
	t.Setenv("SCRAPE_LIMIT", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scrape.Cooldown != 48*time.Hour {
		t.Errorf("expected 48h cooldown, got %v", cfg.Scrape.Cooldown)
	}
	if cfg.Scrape.Limit != 500 {
		t.Errorf("expected limit 500, got %d", cfg.Scrape.Limit)
	}
}
