package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv      string
	LogLevel    string
	WorkspaceID string

	// Database. SQLitePath is used in local mode; DatabaseURL switches
	// snapshot storage to PostgreSQL when set.
	SQLitePath  string
	DatabaseURL string

	// Redis. Empty disables the score cache.
	RedisURL string
	CacheTTL time.Duration

	// RabbitMQ. Empty keeps events in-process.
	RabbitMQURL string

	// Scoring weights. They should sum to 1.0.
	RiskWeight           float64
	AgeWeight            float64
	ClassificationWeight float64

	// Worker
	RecalcInterval time.Duration

	// Brief
	BriefLimit int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		WorkspaceID: getEnv("GABLE_WORKSPACE_ID", "00000000-0000-0000-0000-000000000001"),

		SQLitePath:  getEnv("GABLE_SQLITE_PATH", defaultSQLitePath()),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDurationEnv("GABLE_CACHE_TTL", 15*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		RiskWeight:           getFloatEnv("GABLE_RISK_WEIGHT", 0.4),
		AgeWeight:            getFloatEnv("GABLE_AGE_WEIGHT", 0.3),
		ClassificationWeight: getFloatEnv("GABLE_CLASSIFICATION_WEIGHT", 0.3),

		RecalcInterval: getDurationEnv("GABLE_RECALC_INTERVAL", 15*time.Minute),

		BriefLimit: getIntEnv("GABLE_BRIEF_LIMIT", 5),
	}

	if cfg.BriefLimit <= 0 {
		return nil, fmt.Errorf("GABLE_BRIEF_LIMIT must be positive, got %d", cfg.BriefLimit)
	}
	if cfg.RecalcInterval <= 0 {
		return nil, fmt.Errorf("GABLE_RECALC_INTERVAL must be positive, got %s", cfg.RecalcInterval)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gable.db"
	}
	return filepath.Join(home, ".gable", "gable.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
