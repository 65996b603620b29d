package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string
	APIToken        string
	Role            string
	AnnualAllowance int
	HTTPTimeout     time.Duration
	LogLevel        string
	DevServerAddr   string
	ReportFile      string
}

// Load reads configuration from the environment, after merging in a .env
// file when one is present beside the binary.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:      getEnv("LEAVEEASE_API_URL", "http://localhost:8080"),
		APIToken:        getEnv("LEAVEEASE_API_TOKEN", ""),
		Role:            getEnv("LEAVEEASE_ROLE", "employee"),
		AnnualAllowance: getEnvInt("LEAVEEASE_ANNUAL_ALLOWANCE", 25),
		HTTPTimeout:     getEnvDuration("LEAVEEASE_HTTP_TIMEOUT", 15*time.Second),
		LogLevel:        getEnv("LEAVEEASE_LOG_LEVEL", "info"),
		DevServerAddr:   getEnv("LEAVEEASE_DEVSERVER_ADDR", ":8080"),
		ReportFile:      getEnv("LEAVEEASE_REPORT_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("LEAVEEASE_API_URL is required")
	}
	if _, err := url.ParseRequestURI(c.APIBaseURL); err != nil {
		return fmt.Errorf("LEAVEEASE_API_URL is not a valid URL: %w", err)
	}
	if c.AnnualAllowance <= 0 {
		return fmt.Errorf("LEAVEEASE_ANNUAL_ALLOWANCE must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("LEAVEEASE_HTTP_TIMEOUT must be positive")
	}
	switch strings.ToLower(c.Role) {
	case "employee", "hr":
	default:
		return fmt.Errorf("LEAVEEASE_ROLE must be employee or hr")
	}
	return nil
}
