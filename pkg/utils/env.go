package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	if v := GetEnvTrimmed(key); v != "" {
		return v
	}

	return defaultValue
}

// GetEnvBool returns defaultValue when key is unset or not a boolean.
func GetEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(GetEnvTrimmed(key))
	if err != nil {
		return defaultValue
	}
	return b
}

// GetEnvPositiveInt returns defaultValue unless key holds an integer > 0.
func GetEnvPositiveInt(key string, defaultValue int64) int64 {
	n, err := strconv.ParseInt(GetEnvTrimmed(key), 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// GetEnvPositiveDuration returns defaultValue unless key holds a duration > 0.
func GetEnvPositiveDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(GetEnvTrimmed(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
