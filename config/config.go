package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the archive service
type Config struct {
	Telegram TelegramConfig
	Bot      BotConfig
	Database DatabaseConfig
	Scrape   ScrapeConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds MTProto client configuration
type TelegramConfig struct {
	APIID      int
	APIHash    string
	Phone      string
	SessionDir string
}

// BotConfig holds Telegram bot configuration
type BotConfig struct {
	Token string
}

// DatabaseConfig holds sqlite configuration
type DatabaseConfig struct {
	Path string
}

// ScrapeConfig holds ingestion configuration
type ScrapeConfig struct {
	Cooldown time.Duration
	Limit    int // 0 means all available messages
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result groups config sections for fx dependency injection
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Bot      *BotConfig
	Database *DatabaseConfig
	Scrape   *ScrapeConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and exposes its sections to the fx container
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Bot:      &cfg.Bot,
		Database: &cfg.Database,
		Scrape:   &cfg.Scrape,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	apiID, err := strconv.Atoi(getEnv("TELEGRAM_API_ID", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_API_ID: %w", err)
	}

	cooldown, err := time.ParseDuration(getEnv("SCRAPE_COOLDOWN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCRAPE_COOLDOWN: %w", err)
	}

	limit, err := strconv.Atoi(getEnv("SCRAPE_LIMIT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCRAPE_LIMIT: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			APIID:      apiID,
			APIHash:    getEnv("TELEGRAM_API_HASH", ""),
			Phone:      getEnv("TELEGRAM_PHONE", ""),
			SessionDir: getEnv("TELEGRAM_SESSION_DIR", "./sessions"),
		},
		Bot: BotConfig{
			Token: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./messages.db"),
		},
		Scrape: ScrapeConfig{
			Cooldown: cooldown,
			Limit:    limit,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "channel-archive"),
			Port: getEnv("SERVICE_PORT", "8080"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.APIID == 0 {
		return fmt.Errorf("TELEGRAM_API_ID is required")
	}

	if c.Telegram.APIHash == "" {
		return fmt.Errorf("TELEGRAM_API_HASH is required")
	}

	if c.Telegram.Phone == "" {
		return fmt.Errorf("TELEGRAM_PHONE is required")
	}

	if c.Bot.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Scrape.Cooldown <= 0 {
		return fmt.Errorf("SCRAPE_COOLDOWN must be positive")
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
