package cache

import (
	"context"
	"log"

	"github.com/paichaigo43/project1/domain/calculation"
)

// store is a result cache backend.
type store interface {
	GetResult(ctx context.Context, calc calculation.Calculation) (float64, bool, error)
	SetResult(ctx context.Context, calc calculation.Calculation, result float64) error
	Invalidate(ctx context.Context, op calculation.Operation) (int, error)
	GetStats() StatsSnapshot
	ResetStats()
}

var (
	_ store = (*Cache)(nil)
	_ store = (*KVCache)(nil)
)

// results lets a cache module be handed to consumers before its backend is
// ready. Every call fails with ErrNotInitialized until store is set.
type results struct {
	store store
}

// GetResult looks up a cached result.
func (r *results) GetResult(ctx context.Context, calc calculation.Calculation) (float64, bool, error) {
	if r.store == nil {
		return 0, false, ErrNotInitialized
	}
	return r.store.GetResult(ctx, calc)
}

// SetResult stores a result.
func (r *results) SetResult(ctx context.Context, calc calculation.Calculation, result float64) error {
	if r.store == nil {
		return ErrNotInitialized
	}
	return r.store.SetResult(ctx, calc, result)
}

// CacheStats returns the cache statistics. The boolean is false before the
// backend is ready.
func (r *results) CacheStats() (StatsSnapshot, bool) {
	if r.store == nil {
		return StatsSnapshot{}, false
	}
	return r.store.GetStats(), true
}

// ResetCacheStats clears the statistics counters.
func (r *results) ResetCacheStats() bool {
	if r.store == nil {
		return false
	}
	r.store.ResetStats()
	log.Println("[cache] Statistics reset")
	return true
}

// InvalidateResults removes cached results of op, or all results when op is
// empty.
func (r *results) InvalidateResults(ctx context.Context, op calculation.Operation) (int, error) {
	if r.store == nil {
		return 0, ErrNotInitialized
	}
	n, err := r.store.Invalidate(ctx, op)
	if err != nil {
		return n, err
	}
	log.Printf("[cache] Invalidated %d cached results (operation: %q)", n, op)
	return n, nil
}
