// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database (optional action-log archive; in-memory only if not set)
	DatabaseURL string

	// Simulation settings
	RetrySuccessRate  float64 // probability a retried payment completes
	NotifySuccessRate float64 // probability a notification is delivered

	// Observability
	OTLPEndpoint string // OTLP gRPC endpoint; tracing disabled if empty
}

// Defaults
const (
	DefaultPort              = "8080"
	DefaultEnv               = "development"
	DefaultLogLevel          = "info"
	DefaultRetrySuccessRate  = 0.70
	DefaultNotifySuccessRate = 0.95
)

// Load reads configuration from environment variables.
// It loads a .env file if present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", DefaultPort),
		Env:               getEnv("ENV", DefaultEnv),
		LogLevel:          getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RetrySuccessRate:  getEnvFloat("RETRY_SUCCESS_RATE", DefaultRetrySuccessRate),
		NotifySuccessRate: getEnvFloat("NOTIFY_SUCCESS_RATE", DefaultNotifySuccessRate),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.RetrySuccessRate < 0 || c.RetrySuccessRate > 1 {
		return fmt.Errorf("RETRY_SUCCESS_RATE must be between 0 and 1, got %v", c.RetrySuccessRate)
	}
	if c.NotifySuccessRate < 0 || c.NotifySuccessRate > 1 {
		return fmt.Errorf("NOTIFY_SUCCESS_RATE must be between 0 and 1, got %v", c.NotifySuccessRate)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
