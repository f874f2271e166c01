package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "HOST", "PORT", "ENVIRONMENT", "REQUEST_TIMEOUT",
		"CORS_ALLOWED_ORIGINS", "REDIS_URL", "AST_CACHE_CAPACITY",
		"AST_CACHE_TTL", "LOG_LEVEL", "LOG_FORMAT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Server.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if cfg.Cache.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.Cache.RedisURL)
	}
	if cfg.Cache.Capacity != 1000 {
		t.Errorf("Capacity = %d, want 1000", cfg.Cache.Capacity)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want {info json}", cfg.Log)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	clearEnv(t, "HOST", "PORT", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"AST_CACHE_CAPACITY", "AST_CACHE_TTL", "LOG_LEVEL")

	os.Setenv("HOST", "127.0.0.1")
	os.Setenv("PORT", "9090")
	os.Setenv("REQUEST_TIMEOUT", "30s")
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	os.Setenv("AST_CACHE_CAPACITY", "500")
	os.Setenv("AST_CACHE_TTL", "10m")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("AllowedOrigins = %v, want [https://a.example https://b.example]", cfg.CORS.AllowedOrigins)
	}
	if cfg.Cache.Capacity != 500 {
		t.Errorf("Capacity = %d, want 500", cfg.Cache.Capacity)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("TTL = %v, want 10m", cfg.Cache.TTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFallsBackOnMalformedOverrides(t *testing.T) {
	clearEnv(t, "REQUEST_TIMEOUT", "AST_CACHE_CAPACITY")
	os.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	os.Setenv("AST_CACHE_CAPACITY", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Server.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want fallback of 15s on malformed input", cfg.Server.Timeout)
	}
	if cfg.Cache.Capacity != 1000 {
		t.Errorf("Capacity = %d, want fallback of 1000 on malformed input", cfg.Cache.Capacity)
	}
}
