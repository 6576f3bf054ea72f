// Package cache provides a cache of calculation results using the
// cache-aside pattern, backed by Redis or by a JetStream KV bucket of the
// embedded NATS server.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paichaigo43/project1/domain/calculation"
)

// Cache stores successful calculation results in Redis.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *Stats
}

// Stats tracks cache statistics.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Sets   uint64 `json:"sets"`
	Errors uint64 `json:"errors"`
}

func (s *Stats) snapshot() StatsSnapshot {
	hits := atomic.LoadUint64(&s.Hits)
	misses := atomic.LoadUint64(&s.Misses)
	totalGets := hits + misses

	var hitRate float64
	if totalGets > 0 {
		hitRate = float64(hits) / float64(totalGets) * 100
	}

	return StatsSnapshot{
		Hits:      hits,
		Misses:    misses,
		Sets:      atomic.LoadUint64(&s.Sets),
		Errors:    atomic.LoadUint64(&s.Errors),
		HitRate:   hitRate,
		TotalGets: totalGets,
	}
}

func (s *Stats) reset() {
	atomic.StoreUint64(&s.Hits, 0)
	atomic.StoreUint64(&s.Misses, 0)
	atomic.StoreUint64(&s.Sets, 0)
	atomic.StoreUint64(&s.Errors, 0)
}

// StatsSnapshot is a point-in-time copy of the statistics.
type StatsSnapshot struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Sets      uint64  `json:"sets"`
	Errors    uint64  `json:"errors"`
	HitRate   float64 `json:"hit_rate"`
	TotalGets uint64  `json:"total_gets"`
}

// Config holds cache configuration.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		RedisAddr: "localhost:6379",
		Prefix:    "calc:",
		TTL:       10 * time.Minute,
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithRedisAddr sets the Redis server address.
func WithRedisAddr(addr string) Option {
	return func(c *Config) {
		c.RedisAddr = addr
	}
}

// WithRedisPassword sets the Redis authentication password.
func WithRedisPassword(password string) Option {
	return func(c *Config) {
		c.RedisPassword = password
	}
}

// WithRedisDB sets the Redis database number.
func WithRedisDB(db int) Option {
	return func(c *Config) {
		c.RedisDB = db
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Config) {
		c.Prefix = prefix
	}
}

// WithTTL sets how long results stay cached.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.TTL = ttl
	}
}

// New creates a new cache instance.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// GetResult looks up the result of c. The boolean reports a cache hit.
func (c *Cache) GetResult(ctx context.Context, calc calculation.Calculation) (float64, bool, error) {
	fullKey := c.prefix + Key(calc)

	raw, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return 0, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return 0, false, fmt.Errorf("cache get error: %w", err)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return 0, false, fmt.Errorf("cache decode error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return v, true, nil
}

// SetResult stores the result of c with the configured TTL.
func (c *Cache) SetResult(ctx context.Context, calc calculation.Calculation, result float64) error {
	fullKey := c.prefix + Key(calc)
	value := strconv.FormatFloat(result, 'g', -1, 64)

	if err := c.client.Set(ctx, fullKey, value, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Invalidate removes every cached result of op, or every cached result when
// op is empty.
func (c *Cache) Invalidate(ctx context.Context, op calculation.Operation) (int, error) {
	pattern := c.prefix + "*"
	if op != "" {
		pattern = c.prefix + string(op) + ":*"
	}

	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			atomic.AddUint64(&c.stats.Errors, 1)
			return deleted, fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				atomic.AddUint64(&c.stats.Errors, 1)
				return deleted, fmt.Errorf("cache delete error: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// GetStats returns the current cache statistics.
func (c *Cache) GetStats() StatsSnapshot {
	return c.stats.snapshot()
}

// ResetStats resets all statistics counters.
func (c *Cache) ResetStats() {
	c.stats.reset()
}

// Ping checks if the Redis connection is healthy.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
