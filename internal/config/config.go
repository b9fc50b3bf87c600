// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	WebhookURL          string  `env:"DISCORD_WEBHOOK_URL,required"`
	OpenAIAPIKey        string  `env:"OPENAI_API_KEY"`
	CheckIntervalHours  int     `env:"CHECK_INTERVAL_HOURS" envDefault:"8"`
	PostedDealsFile     string  `env:"POSTED_DEALS_FILE" envDefault:"posted_deals.json"`
	ResetCacheOnStartup bool    `env:"RESET_CACHE_ON_STARTUP" envDefault:"false"`
	CacheResetHours     float64 `env:"CACHE_RESET_HOURS" envDefault:"0"`
	LogLevel            string  `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is consulted when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CheckIntervalHours <= 0 {
		return nil, fmt.Errorf("CHECK_INTERVAL_HOURS must be positive, got %d", cfg.CheckIntervalHours)
	}
	if cfg.CacheResetHours < 0 {
		return nil, fmt.Errorf("CACHE_RESET_HOURS must not be negative, got %g", cfg.CacheResetHours)
	}
	return cfg, nil
}

// CheckInterval returns the poll interval as a duration.
func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalHours) * time.Hour
}

// CacheResetInterval returns the periodic cache reset interval.
// Zero means the periodic reset is disabled.
func (c *Config) CacheResetInterval() time.Duration {
	return time.Duration(c.CacheResetHours * float64(time.Hour))
}
