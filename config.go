package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration read from the environment.
type Config struct {
	HTTPPort        int
	CacheEnabled    bool
	CacheBackend    string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CachePrefix     string
	CacheTTL        time.Duration
	MCPEnabled      bool
	MCPPort         int
	ShutdownTimeout time.Duration
	JetStreamDir    string
}

// Cache backends.
const (
	CacheBackendRedis = "redis"
	CacheBackendKV    = "kv"
)

// LoadConfig reads the configuration, falling back to defaults for unset or
// invalid values.
func LoadConfig() Config {
	return Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 3000),
		CacheEnabled:    getEnvBool("CACHE_ENABLED", false),
		CacheBackend:    getEnvChoice("CACHE_BACKEND", CacheBackendRedis, CacheBackendRedis, CacheBackendKV),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CachePrefix:     getEnv("CACHE_PREFIX", "calc:"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		MCPEnabled:      getEnvBool("MCP_ENABLED", false),
		MCPPort:         getEnvInt("MCP_PORT", 8081),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		JetStreamDir:    getEnv("JETSTREAM_DIR", filepath.Join(os.TempDir(), "calculator-jetstream")),
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvChoice returns the environment variable if it is one of choices, or
// the default.
func getEnvChoice(key, defaultValue string, choices ...string) string {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	for _, c := range choices {
		if value == c {
			return value
		}
	}
	log.Printf("Warning: invalid value for %s: %s, using default: %s", key, value, defaultValue)
	return defaultValue
}
