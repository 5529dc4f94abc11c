package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
)

// Cache keys. One stable key per cacheable collection or entity; mutations
// invalidate exactly the keys whose underlying data they changed.
const JobsKey = "jobs"

func JobKey(id domain.JobID) string {
	return "job:" + string(id)
}

func CandidatesKey(jobID domain.JobID) string {
	return "candidates:" + string(jobID)
}

func CandidateKey(id domain.CandidateID) string {
	return "candidate:" + string(id)
}

type cacheEntry struct {
	data      any
	fetchedAt time.Time
	stale     bool
}

// Cache keeps the last known server state per key and guarantees at most one
// in-flight loader per key: concurrent callers for the same key share the
// pending result instead of issuing duplicate requests.
type Cache struct {
	clock ports.Clock
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	flight singleflight.Group
}

// NewCache builds a cache whose entries stay fresh for ttl after a load.
// A non-positive ttl keeps entries fresh until explicitly invalidated.
func NewCache(clock ports.Clock, ttl time.Duration) *Cache {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Cache{
		clock:   clock,
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

// Fetch returns the cached value when fresh, otherwise runs loader through
// the flight group so overlapping callers trigger it exactly once. A loader
// failure leaves any previous entry untouched.
func (c *Cache) Fetch(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if data, ok := c.fresh(key); ok {
		return data, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		// A caller that lost the race may find the entry already refreshed.
		if data, ok := c.fresh(key); ok {
			return data, nil
		}

		data, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{data: data, fetchedAt: c.clock.Now()}
		c.mu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Invalidate marks entries stale, forcing the next Fetch to reload. The held
// data stays readable through Peek until the reload lands.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		entry, ok := c.entries[key]
		if !ok {
			continue
		}
		entry.stale = true
		c.entries[key] = entry
	}
}

// Peek returns whatever the cache currently holds for key, stale or not,
// without triggering a load.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

func (c *Cache) fresh(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.stale {
		return nil, false
	}
	if c.ttl > 0 && c.clock.Now().Sub(entry.fetchedAt) > c.ttl {
		return nil, false
	}

	return entry.data, true
}

// fetchAs adapts Cache.Fetch to a concrete type for the services.
func fetchAs[T any](ctx context.Context, c *Cache, key string, loader func(context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q holds %T", key, v)
	}

	return typed, nil
}
