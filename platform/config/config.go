// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// EngineConfig provides settings needed by the lifecycle engine.
type EngineConfig interface {
	GetDealCloseHorizon() time.Duration
}

// SeedConfig provides settings for seeding the store.
type SeedConfig interface {
	GetSeedFile() string
}

// FormatConfig provides settings for monetary rendering.
type FormatConfig interface {
	GetCurrency() string
}

// Config holds all application configuration.
type Config struct {
	Env              string
	Currency         string
	SeedFile         string
	DealCloseHorizon time.Duration
}

// GetDealCloseHorizon returns how far in the future a converted lead's
// deal is expected to close.
func (c *Config) GetDealCloseHorizon() time.Duration { return c.DealCloseHorizon }

// GetSeedFile returns the optional YAML fixture path.
func (c *Config) GetSeedFile() string { return c.SeedFile }

// GetCurrency returns the ISO 4217 currency code used for display.
func (c *Config) GetCurrency() string { return c.Currency }

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	horizonDays, err := strconv.Atoi(getEnv("DEAL_CLOSE_HORIZON_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEAL_CLOSE_HORIZON_DAYS: %w", err)
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("DEAL_CLOSE_HORIZON_DAYS must be positive, got %d", horizonDays)
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		Currency:         getEnv("CURRENCY", "USD"),
		SeedFile:         getEnv("SEED_FILE", ""),
		DealCloseHorizon: time.Duration(horizonDays) * 24 * time.Hour,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
