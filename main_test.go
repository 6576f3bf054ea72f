package main

import (
	"testing"
	"time"

	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"

	"github.com/paichaigo43/project1/modules/cache"
)

func TestNewResultCache_Redis(t *testing.T) {
	cfg := Config{CacheBackend: CacheBackendRedis, RedisAddr: "redis:6379", CachePrefix: "calc:"}

	m, kvPlugin, err := newResultCache(cfg)
	if err != nil {
		t.Fatalf("newResultCache() error = %v", err)
	}
	if kvPlugin != nil {
		t.Error("expected no kv plugin for the redis backend")
	}
	if _, ok := m.(*cache.Module); !ok {
		t.Errorf("newResultCache() = %T, want *cache.Module", m)
	}
	if m.Name() != "cache" {
		t.Errorf("Name() = %q, want 'cache'", m.Name())
	}
}

func TestNewResultCache_KV(t *testing.T) {
	cfg := Config{CacheBackend: CacheBackendKV, CacheTTL: time.Minute}

	var kvPlugin *kvjetstream.PluginModule
	m, kvPlugin, err := newResultCache(cfg)
	if err != nil {
		t.Fatalf("newResultCache() error = %v", err)
	}
	if kvPlugin == nil {
		t.Fatal("expected a kv plugin for the kv backend")
	}
	if _, ok := m.(*cache.KVModule); !ok {
		t.Errorf("newResultCache() = %T, want *cache.KVModule", m)
	}
	if m.Name() != "kvcache" {
		t.Errorf("Name() = %q, want 'kvcache'", m.Name())
	}
}
