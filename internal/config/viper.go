// Package config provides viper lookup helpers shared by the CLI.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// StringOr returns the value for key, or def when it is unset.
func StringOr(key, def string) string {
	if v := GetString(key); v != "" {
		return v
	}
	return def
}

// IntOr returns the integer value for key, or def when it is unset.
func IntOr(key string, def int) int {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetInt(key)
}

// DurationOr returns the duration for key, or def when it is unset or not
// positive.
func DurationOr(key string, def time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return def
}
