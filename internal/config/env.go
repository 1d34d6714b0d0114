package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// durationEnvOrDefault falls back on unparsable or non-positive values.
func durationEnvOrDefault(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func intEnvOrDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func boolEnvOrDefault(key string, fallback bool) bool {
	switch raw := strings.TrimSpace(os.Getenv(key)); {
	case raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes"):
		return true
	case raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no"):
		return false
	default:
		return fallback
	}
}
