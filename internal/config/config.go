// Package config provides centralized configuration loaded from environment
// variables, optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the scraper and storage layers.
type Config struct {
	// Storage
	OutputDir string

	// HTTP client
	Timeout      time.Duration
	RateLimitRPS float64

	// Per-page throttle window
	ThrottleMin time.Duration
	ThrottleMax time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		OutputDir:    envOr("STADIUMS_OUTPUT_DIR", "output"),
		Timeout:      time.Duration(envInt("STADIUMS_TIMEOUT_SECONDS", 15)) * time.Second,
		RateLimitRPS: envFloat("STADIUMS_RATE_LIMIT_RPS", 1.0),
		ThrottleMin:  time.Duration(envInt("STADIUMS_THROTTLE_MIN_MS", 800)) * time.Millisecond,
		ThrottleMax:  time.Duration(envInt("STADIUMS_THROTTLE_MAX_MS", 1500)) * time.Millisecond,
		LogLevel:     envOr("STADIUMS_LOG_LEVEL", "INFO"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
