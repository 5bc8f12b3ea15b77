// Package config provides helpers for reading typed values from the
// process environment. Invalid values never fail: the default is used and
// a warning is logged so misconfiguration is visible.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the trimmed value of key and whether it is non-empty.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// parseOr applies parse to the value of key, falling back to def when the
// variable is unset or unparseable.
func parseOr[T any](key string, def T, kind string, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid "+kind+" value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	endpoint := GetEnvString("AZURE_OPENAI_ENDPOINT", "")
func GetEnvString(key, defaultValue string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the value of an environment variable as an integer.
//
// Example:
//
//	port := GetEnvInt("PORT", 8000)
func GetEnvInt(key string, defaultValue int) int {
	return parseOr(key, defaultValue, "integer", strconv.Atoi)
}

// GetEnvInt64 returns the value of an environment variable as an int64.
// It is used for byte sizes.
func GetEnvInt64(key string, defaultValue int64) int64 {
	return parseOr(key, defaultValue, "integer", func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// GetEnvFloat returns the value of an environment variable as a float64.
//
// Example:
//
//	temperature := GetEnvFloat("SUMMARIZER_TEMPERATURE", 0.5)
func GetEnvFloat(key string, defaultValue float64) float64 {
	return parseOr(key, defaultValue, "float", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool returns the value of an environment variable as a boolean.
// Accepted values are those of strconv.ParseBool.
func GetEnvBool(key string, defaultValue bool) bool {
	return parseOr(key, defaultValue, "boolean", strconv.ParseBool)
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
// The value must be parseable by time.ParseDuration (e.g., "10s", "1m30s").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return parseOr(key, defaultValue, "duration", time.ParseDuration)
}

// GetEnvStringList returns a comma-separated list of strings from an environment variable.
// Values are trimmed and empty entries are dropped.
//
// Example:
//
//	// ALLOWED_ORIGINS="https://a.example, https://b.example"
//	origins := GetEnvStringList("ALLOWED_ORIGINS", nil)
func GetEnvStringList(key string, defaultValue []string) []string {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
