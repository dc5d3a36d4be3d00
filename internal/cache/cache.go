// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/schoolscout/internal/metrics"
)

// Stats is a point-in-time view of the cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Loader computes a value for a missing key. Returning store=false hands the
// value to the caller without caching it.
type Loader func() (value interface{}, store bool)

type item struct {
	value   interface{}
	expires time.Time
}

func (it item) liveAt(t time.Time) bool { return t.Before(it.expires) }

// Cache is a thread-safe in-memory cache with per-entry TTL, lazy expiry and
// get-or-compute semantics. Concurrent misses for the same key share one
// Loader call.
type Cache struct {
	name       string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu    sync.RWMutex
	items map[string]item

	hits, misses, evictions, size atomic.Int64
	lastCleanup                   atomic.Int64 // unix nanos

	flight singleflight.Group

	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Cache.
type Option func(*Cache)

// WithName labels the cache in Prometheus metrics. Unnamed caches are not
// exported.
func WithName(name string) Option {
	return func(c *Cache) { c.name = name }
}

// WithMaxEntries bounds the cache. When full, expired entries are purged
// first, then the entry closest to expiry is evicted.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithCleanupInterval starts a janitor goroutine that drops expired entries
// every d. Zero disables it; expiry is still enforced lazily on access.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			go c.janitor(d)
		}
	}
}

// New creates a cache whose entries live for ttl.
//
//	postal := cache.New(24*time.Hour, cache.WithName("geocode_postal"))
//	v := postal.GetOrCompute("postal:238823", func() (interface{}, bool) {
//	    return lookup("238823"), true
//	})
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]item),
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastCleanup.Store(c.now().UnixNano())
	return c
}

// Get returns the value for key if present and unexpired. Expired entries
// are removed on access.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	switch {
	case !ok:
	case it.liveAt(c.now()):
		c.lookup(true)
		return it.value, true
	default:
		c.mu.Lock()
		// A writer may have refreshed the key since the read lock was dropped.
		if cur, still := c.items[key]; still && !cur.liveAt(c.now()) {
			delete(c.items, key)
			c.evictions.Add(1)
		}
		c.resize(len(c.items))
		c.mu.Unlock()
	}
	c.lookup(false)
	return nil, false
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL. Last writer wins.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.makeRoomLocked()
	}
	c.items[key] = item{value: value, expires: c.now().Add(ttl)}
	c.resize(len(c.items))
}

// GetOrCompute returns the cached value for key, or runs load on a miss.
// Concurrent callers missing on the same key wait for a single load.
func (c *Cache) GetOrCompute(key string, load Loader) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}

	v, _, _ := c.flight.Do(key, func() (interface{}, error) {
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		value, store := load()
		if store {
			c.Set(key, value)
		}
		return value, nil
	})
	return v
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; ok {
		delete(c.items, key)
		c.evictions.Add(1)
	}
	c.resize(len(c.items))
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictions.Add(int64(len(c.items)))
	c.items = make(map[string]item)
	c.resize(0)
}

// Len returns the number of stored entries, including expired ones not yet
// removed.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		TotalKeys:   c.size.Load(),
		LastCleanup: time.Unix(0, c.lastCleanup.Load()).In(c.now().Location()),
	}
}

// HitRate returns hits as a percentage of lookups, or 0 before any lookup.
func (c *Cache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return 100 * float64(hits) / float64(hits+misses)
}

// Close stops the janitor goroutine, if any. The cache remains usable.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// peek reads without touching counters or expiring entries.
func (c *Cache) peek(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if it, ok := c.items[key]; ok && it.liveAt(c.now()) {
		return it.value, true
	}
	return nil, false
}

// makeRoomLocked must be called with mu held.
func (c *Cache) makeRoomLocked() {
	now := c.now()
	victim, victimExpiry := "", time.Time{}
	for key, it := range c.items {
		if !it.liveAt(now) {
			delete(c.items, key)
			c.evictions.Add(1)
			continue
		}
		if victim == "" || it.expires.Before(victimExpiry) {
			victim, victimExpiry = key, it.expires
		}
	}
	if victim != "" && len(c.items) >= c.maxEntries {
		delete(c.items, victim)
		c.evictions.Add(1)
	}
}

func (c *Cache) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep drops every expired entry.
func (c *Cache) sweep() {
	now := c.now()

	c.mu.Lock()
	for key, it := range c.items {
		if !it.liveAt(now) {
			delete(c.items, key)
			c.evictions.Add(1)
		}
	}
	c.resize(len(c.items))
	c.mu.Unlock()

	c.lastCleanup.Store(now.UnixNano())
}

func (c *Cache) lookup(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	if c.name != "" {
		metrics.RecordCacheLookup(c.name, hit)
	}
}

func (c *Cache) resize(n int) {
	c.size.Store(int64(n))
	if c.name != "" {
		metrics.SetCacheEntries(c.name, n)
	}
}
