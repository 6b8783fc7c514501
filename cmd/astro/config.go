package main

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIURL         string        // Registration backend base URL (default: http://localhost:8080)
	SiteURL        string        // Site origin printed for the dashboard/login destination (default: http://localhost:3000)
	SessionFile    string        // Optional: where the session token is saved (default: user config dir)
	LogFile        string        // Log file path, the terminal is owned by the UI (default: ./astro.log)
	LogLevel       string        // Log level (debug, info, warn, error) (default: info)
	Env            string        // Environment (dev, staging, prod) (default: dev)
	RequestTimeout time.Duration // Per-request HTTP timeout (default: 10s)
	StartupRetries int           // Readiness checks before starting without a ready backend (default: 3)
}

func LoadConfig() Config {
	return Config{
		APIURL:         getEnvOrDefault("ASTRO_API_URL", "http://localhost:8080"),
		SiteURL:        getEnvOrDefault("ASTRO_SITE_URL", "http://localhost:3000"),
		SessionFile:    os.Getenv("ASTRO_SESSION_FILE"),
		LogFile:        getEnvOrDefault("ASTRO_LOG_FILE", "astro.log"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		Env:            getEnvOrDefault("ENV", "dev"),
		RequestTimeout: getEnvDurationOrDefault("ASTRO_REQUEST_TIMEOUT", 10*time.Second),
		StartupRetries: getEnvIntOrDefault("ASTRO_STARTUP_RETRIES", 3),
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
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
