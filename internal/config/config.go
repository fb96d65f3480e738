package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Remote API
	APIBaseURL        string
	APITimeoutSeconds int
	SessionToken      string

	// Presentation defaults
	PageSize int

	// Application
	AppEnv   string
	LogLevel string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
		APITimeoutSeconds: getEnvInt("API_TIMEOUT_SECONDS", 15),
		SessionToken:      getEnv("SESSION_TOKEN", ""),

		PageSize: getEnvInt("PAGE_SIZE", 9),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must start with http:// or https://")
	}
	if c.SessionToken == "" {
		return fmt.Errorf("SESSION_TOKEN is required")
	}
	if c.APITimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must use https in production")
	}

	return nil
}

func (c *Config) GetAPITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
