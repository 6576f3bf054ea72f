package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "CACHE_ENABLED", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"CACHE_PREFIX", "CACHE_TTL", "MCP_ENABLED", "MCP_PORT", "SHUTDOWN_TIMEOUT",
		"CACHE_BACKEND", "JETSTREAM_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	want := Config{
		HTTPPort:        3000,
		CacheBackend:    CacheBackendRedis,
		RedisAddr:       "localhost:6379",
		CachePrefix:     "calc:",
		CacheTTL:        10 * time.Minute,
		MCPPort:         8081,
		ShutdownTimeout: 30 * time.Second,
		JetStreamDir:    filepath.Join(os.TempDir(), "calculator-jetstream"),
	}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("MCP_ENABLED", "1")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("CACHE_BACKEND", " KV ")
	t.Setenv("JETSTREAM_DIR", "/var/lib/calculator")

	cfg := LoadConfig()

	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if !cfg.CacheEnabled {
		t.Error("CacheEnabled = false, want true")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if !cfg.MCPEnabled {
		t.Error("MCPEnabled = false, want true")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.CacheBackend != CacheBackendKV {
		t.Errorf("CacheBackend = %q, want %q", cfg.CacheBackend, CacheBackendKV)
	}
	if cfg.JetStreamDir != "/var/lib/calculator" {
		t.Errorf("JetStreamDir = %q", cfg.JetStreamDir)
	}
}

func TestGetEnvHelpers_InvalidFallBack(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{"int", func(t *testing.T) {
			t.Setenv("TEST_INT", "abc")
			if got := getEnvInt("TEST_INT", 7); got != 7 {
				t.Errorf("getEnvInt() = %d, want 7", got)
			}
		}},
		{"choice", func(t *testing.T) {
			t.Setenv("TEST_CHOICE", "memcached")
			if got := getEnvChoice("TEST_CHOICE", "redis", "redis", "kv"); got != "redis" {
				t.Errorf("getEnvChoice() = %q, want redis", got)
			}
		}},
		{"bool", func(t *testing.T) {
			t.Setenv("TEST_BOOL", "maybe")
			if got := getEnvBool("TEST_BOOL", true); !got {
				t.Error("getEnvBool() = false, want true")
			}
		}},
		{"duration", func(t *testing.T) {
			t.Setenv("TEST_DURATION", "soon")
			if got := getEnvDuration("TEST_DURATION", time.Second); got != time.Second {
				t.Errorf("getEnvDuration() = %v, want 1s", got)
			}
		}},
		{"string", func(t *testing.T) {
			t.Setenv("TEST_STRING", "")
			if got := getEnv("TEST_STRING", "fallback"); got != "fallback" {
				t.Errorf("getEnv() = %q, want fallback", got)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.check)
	}
}
