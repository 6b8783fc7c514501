package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer               string        // Issuer claim on session tokens (default: astroremedy)
	DatabaseFile         string        // Path to SQLite database file (default: ./astro.db)
	PepperFile           string        // Path to the password pepper, created if missing (default: ./pepper)
	SigningKeyFile       string        // Optional: Ed25519 PEM for session tokens; empty means a new key per process
	OTPTTL               time.Duration // How long a sent code stays valid (default: 5m)
	OTPMaxAttempts       int           // Wrong codes allowed per challenge (default: 5)
	OTPVerifiedWindow    time.Duration // How long a verified phone can be used to register (default: 30m)
	SessionTTL           time.Duration // Session token lifetime (default: 7 days)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Stale OTP cleanup interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("ASTRO_ISSUER", "astroremedy"),
		DatabaseFile:         getEnvOrDefault("ASTRO_DATABASE_FILE", "astro.db"),
		PepperFile:           getEnvOrDefault("ASTRO_PEPPER_FILE", "pepper"),
		SigningKeyFile:       os.Getenv("ASTRO_SIGNING_KEY_FILE"),
		OTPTTL:               getEnvDurationOrDefault("OTP_TTL", 5*time.Minute),
		OTPMaxAttempts:       getEnvIntOrDefault("OTP_MAX_ATTEMPTS", 5),
		OTPVerifiedWindow:    getEnvDurationOrDefault("OTP_VERIFIED_WINDOW", 30*time.Minute),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 7*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
