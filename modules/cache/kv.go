package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"

	"github.com/paichaigo43/project1/domain/calculation"
)

// KVBucket is the JetStream KV bucket holding cached results.
const KVBucket = "calc-results"

// kvBucket is the part of kvjetstream.KVStoragePort the cache uses.
type kvBucket interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Keys() ([]string, error)
}

// KVCache stores successful calculation results in a JetStream KV bucket of
// the embedded NATS server, so no external Redis is needed.
type KVCache struct {
	bucket kvBucket
	ttl    time.Duration
	stats  *Stats
}

// NewKVCache creates a cache on top of bucket.
func NewKVCache(bucket kvBucket, ttl time.Duration) *KVCache {
	return &KVCache{
		bucket: bucket,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// KVBucketConfig returns the bucket definition the kv-jetstream plugin must
// be created with.
func KVBucketConfig(ttl time.Duration) kvjetstream.BucketConfig {
	return kvjetstream.BucketConfig{
		Name:        KVBucket,
		Description: "Cached calculation results",
		TTL:         ttl,
		Storage:     kvjetstream.MemoryStorage,
	}
}

// GetResult looks up the result of calc. The boolean reports a cache hit.
func (c *KVCache) GetResult(_ context.Context, calc calculation.Calculation) (float64, bool, error) {
	raw, err := c.bucket.Get(kvKey(calc))
	if err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return 0, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return 0, false, fmt.Errorf("kv get error: %w", err)
	}

	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return 0, false, fmt.Errorf("kv decode error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return v, true, nil
}

// SetResult stores the result of calc with the configured TTL.
func (c *KVCache) SetResult(_ context.Context, calc calculation.Calculation, result float64) error {
	value := strconv.FormatFloat(result, 'g', -1, 64)

	if err := c.bucket.Set(kvKey(calc), []byte(value), c.ttl); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("kv set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Invalidate removes every cached result of op, or every cached result when
// op is empty. An empty bucket is not an error.
func (c *KVCache) Invalidate(ctx context.Context, op calculation.Operation) (int, error) {
	keys, err := c.bucket.Keys()
	if err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return 0, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return 0, fmt.Errorf("kv keys error: %w", err)
	}

	prefix := ""
	if op != "" {
		prefix = string(op) + "."
	}

	var deleted int
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if err := c.bucket.Delete(key); err != nil {
			atomic.AddUint64(&c.stats.Errors, 1)
			return deleted, fmt.Errorf("kv delete error: %w", err)
		}
		deleted++
	}
	return deleted, nil
}

// GetStats returns the current cache statistics.
func (c *KVCache) GetStats() StatsSnapshot {
	return c.stats.snapshot()
}

// ResetStats resets all statistics counters.
func (c *KVCache) ResetStats() {
	c.stats.reset()
}
