// File: config.go
// Purpose: ambient environment-var configuration loader for the
// formula API server and CLI.
// Dependencies: github.com/joho/godotenv (optional .env file loading)

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's runtime configuration, populated from
// environment variables (and an optional .env file) with sane defaults.
type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Cache  CacheConfig
	Log    LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host        string
	Port        string
	Environment string
	Timeout     time.Duration
}

// CORSConfig holds allowed-origin settings for the public API.
type CORSConfig struct {
	AllowedOrigins []string
}

// CacheConfig holds settings for the optional Redis-backed AST mirror.
type CacheConfig struct {
	RedisURL string
	Capacity int
	TTL      time.Duration
}

// LogConfig holds structured-logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, first loading a .env
// file from the working directory if one is present (missing files are
// not an error: godotenv.Load returns one, which is ignored here).
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:        getEnv("HOST", "0.0.0.0"),
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			Timeout:     getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			Capacity: getEnvInt("AST_CACHE_CAPACITY", 1000),
			TTL:      getEnvDuration("AST_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
