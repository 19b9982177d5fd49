// Package util provides environment variable helpers shared across components.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// EnvDefault returns the value of the environment variable key, or fallback
// when the variable is unset or empty.
func EnvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// ParseBoolEnv parses a boolean environment variable. It accepts
// true/1/yes/on and false/0/no/off, case-insensitive. Unset or
// unrecognized values yield defaultValue.
func ParseBoolEnv(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		slog.Warn("ParseBoolEnv: unrecognized boolean value, using default", "key", key, "value", val, "default", defaultValue)
		return defaultValue
	}
}
