package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
)

// KVPluginAlias is the alias the kv-jetstream plugin is registered under.
const KVPluginAlias = "kv"

// KVModule provides the result cache backed by the kv-jetstream plugin.
type KVModule struct {
	results
	kv    *kvjetstream.PluginModule
	cache *KVCache
	ttl   time.Duration
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*KVModule)(nil)
	_ mono.UsePluginModule       = (*KVModule)(nil)
	_ mono.HealthCheckableModule = (*KVModule)(nil)
)

// NewKVModule creates a cache module storing results for ttl.
func NewKVModule(ttl time.Duration) *KVModule {
	return &KVModule{ttl: ttl}
}

// Name returns the module name.
func (m *KVModule) Name() string {
	return "kvcache"
}

// SetPlugin receives the kv-jetstream plugin from the framework.
func (m *KVModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != KVPluginAlias {
		return
	}
	if kv, ok := plugin.(*kvjetstream.PluginModule); ok {
		m.kv = kv
	}
}

// Init initializes the module (no-op, the plugin arrives before Start).
func (m *KVModule) Init(_ mono.ServiceContainer) error {
	return nil
}

// Start opens the results bucket.
func (m *KVModule) Start(_ context.Context) error {
	if m.kv == nil {
		return fmt.Errorf("required plugin %q not registered", KVPluginAlias)
	}

	bucket := m.kv.Bucket(KVBucket)
	if bucket == nil {
		return fmt.Errorf("kv bucket %q not found", KVBucket)
	}

	m.cache = NewKVCache(bucket, m.ttl)
	m.store = m.cache
	log.Printf("[cache] Using JetStream KV bucket %s (TTL: %s)", KVBucket, m.ttl)
	return nil
}

// Stop stops the module. The plugin owns the bucket.
func (m *KVModule) Stop(_ context.Context) error {
	log.Println("[cache] Module stopped")
	return nil
}

// Health reports whether the bucket is open.
func (m *KVModule) Health(_ context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cache not initialized",
		}
	}
	stats := m.cache.GetStats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"bucket":   KVBucket,
			"hit_rate": stats.HitRate,
		},
	}
}
