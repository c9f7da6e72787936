package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration, sourced from the environment.
type Config struct {
	Port string

	// SheetsAPIURL is the spreadsheet-backed persistence endpoint. GET
	// returns the full member list, POST appends one member.
	SheetsAPIURL  string
	SheetsTimeout time.Duration

	// DirectoryPassword is the shared secret for the session gate. A single
	// shared credential is a deliberate soft deterrent, not a security
	// boundary.
	DirectoryPassword string
	SessionSigningKey string
	SessionTTL        time.Duration

	// GeminiAPIKey enables the optional sample-data generator when set.
	GeminiAPIKey string
}

// Load builds a Config from environment variables, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		SheetsAPIURL:      getEnvOrDefault("SHEETS_API_URL", ""),
		SheetsTimeout:     time.Duration(getEnvIntOrDefault("SHEETS_TIMEOUT_SECONDS", 30)) * time.Second,
		DirectoryPassword: getEnvOrDefault("DIRECTORY_PASSWORD", ""),
		SessionSigningKey: getEnvOrDefault("SESSION_SIGNING_KEY", ""),
		SessionTTL:        time.Duration(getEnvIntOrDefault("SESSION_TTL_HOURS", 12)) * time.Hour,
		GeminiAPIKey:      getEnvOrDefault("GEMINI_API_KEY", ""),
	}
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault gets an integer environment variable or returns the
// default when unset or unparseable.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
