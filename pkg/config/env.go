// Package config provides helpers for reading typed configuration from
// environment variables. Invalid values fall back to the default and log a
// warning instead of failing startup.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	apiURL := GetEnvString("API_URL", "http://localhost:5000/api")
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable as an integer.
//
// If the variable is set but cannot be parsed, the default is returned and a
// warning is logged.
//
// Example:
//
//	burst := GetEnvInt("AUTH_RATE_BURST", 5)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Int("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvFloat returns the value of an environment variable as a float64.
//
// Example:
//
//	perSecond := GetEnvFloat("AUTH_RATE_LIMIT", 0.5)
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		slog.Warn("invalid float value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Float64("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvBool returns the value of an environment variable as a boolean.
//
// Accepted values are those of strconv.ParseBool ("1", "t", "true", "0",
// "f", "false" and their upper-case forms).
//
// Example:
//
//	enabled := GetEnvBool("CSP_ENABLED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
//
// The value must be parseable by time.ParseDuration (e.g., "1m", "30s", "1h30m").
//
// Example:
//
//	timeout := GetEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvStringList returns a comma-separated list of strings from an environment variable.
// Values are trimmed and empty entries dropped.
//
// Example:
//
//	// CSP_CONNECT_SRC="https://api.example.com, https://auth.example.com"
//	origins := GetEnvStringList("CSP_CONNECT_SRC", nil)
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
