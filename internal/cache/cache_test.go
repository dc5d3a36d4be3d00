// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/schoolscout/internal/metrics"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestCache_SetAndGet(t *testing.T) {
	c := New(1 * time.Minute)

	c.Set("key1", "value1")

	value, found := c.Get("key1")
	if !found {
		t.Fatal("Expected to find key1")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected missing key to be absent")
	}
}

func TestCache_Expiration(t *testing.T) {
	clock := newFakeClock()
	c := New(10*time.Minute, WithClock(clock.Now))

	c.Set("address:1 raffles place", "hit")

	clock.Advance(9*time.Minute + 59*time.Second)
	if _, found := c.Get("address:1 raffles place"); !found {
		t.Fatal("entry expired before its TTL")
	}

	clock.Advance(time.Second)
	if _, found := c.Get("address:1 raffles place"); found {
		t.Error("entry must be a miss exactly at its expiry")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on access, len = %d", c.Len())
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Hour, WithClock(clock.Now))

	c.SetWithTTL("short", 1, time.Second)
	c.Set("long", 2)

	clock.Advance(2 * time.Second)

	if _, found := c.Get("short"); found {
		t.Error("short entry should have expired")
	}
	if _, found := c.Get("long"); !found {
		t.Error("long entry should still be live")
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("deleted key still present")
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", c.Len())
	}
	if stats := c.GetStats(); stats.Evictions != 3 {
		t.Errorf("evictions = %d, want 3", stats.Evictions)
	}
}

func TestCache_LastWriterWins(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "first")
	c.Set("k", "second")

	v, _ := c.Get("k")
	if v != "second" {
		t.Errorf("got %v, want second", v)
	}
}

func TestCache_GetOrCompute(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now))

	calls := 0
	load := func() (interface{}, bool) {
		calls++
		return calls, true
	}

	if v := c.GetOrCompute("k", load); v != 1 {
		t.Errorf("first = %v, want 1", v)
	}
	if v := c.GetOrCompute("k", load); v != 1 {
		t.Errorf("cached = %v, want 1", v)
	}
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1", calls)
	}

	clock.Advance(time.Minute)
	if v := c.GetOrCompute("k", load); v != 2 {
		t.Errorf("after expiry = %v, want 2", v)
	}
}

func TestCache_GetOrComputeUncacheable(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	load := func() (interface{}, bool) {
		calls++
		return []string{}, false
	}

	c.GetOrCompute("schools", load)
	c.GetOrCompute("schools", load)

	if calls != 2 {
		t.Errorf("uncacheable results must not be stored, loader calls = %d", calls)
	}
	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}
}

func TestCache_GetOrComputeCollapsesConcurrentMisses(t *testing.T) {
	c := New(time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func() (interface{}, bool) {
		calls.Add(1)
		<-release
		return "v", true
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v := c.GetOrCompute("postal:238823", load); v != "v" {
				t.Errorf("got %v, want v", v)
			}
		}()
	}

	// Give the goroutines time to pile up on the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("loader calls = %d, want 1", n)
	}
}

func TestCache_MaxEntries(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now), WithMaxEntries(2))

	c.Set("oldest", 1)
	clock.Advance(time.Second)
	c.Set("newer", 2)
	clock.Advance(time.Second)
	c.Set("newest", 3)

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if _, found := c.Get("oldest"); found {
		t.Error("entry closest to expiry should have been evicted")
	}
	if _, found := c.Get("newest"); !found {
		t.Error("newest entry missing")
	}
}

func TestCache_MaxEntriesPurgesExpiredFirst(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now), WithMaxEntries(3))

	c.SetWithTTL("stale1", 1, time.Second)
	c.SetWithTTL("stale2", 2, time.Second)
	c.Set("live", 3)
	clock.Advance(2 * time.Second)

	c.Set("fresh", 4)

	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
	if _, found := c.Get("live"); !found {
		t.Error("live entry should survive when expired entries free room")
	}
}

func TestCache_Cleanup(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now))

	c.Set("a", 1)
	c.SetWithTTL("b", 2, time.Hour)
	clock.Advance(2 * time.Minute)

	c.sweep()

	if c.Len() != 1 {
		t.Errorf("len after cleanup = %d, want 1", c.Len())
	}
	if stats := c.GetStats(); !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.Now())
	}
}

func TestCache_CleanupLoopStopsOnClose(t *testing.T) {
	c := New(time.Millisecond, WithCleanupInterval(5*time.Millisecond))
	c.Set("a", 1)

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Error("janitor did not remove expired entry")
	}

	c.Close()
	c.Close() // idempotent
}

func TestCache_HitRate(t *testing.T) {
	c := New(time.Minute)
	if c.HitRate() != 0 {
		t.Errorf("empty hit rate = %v, want 0", c.HitRate())
	}

	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	if rate := c.HitRate(); rate != 75.0 {
		t.Errorf("hit rate = %v, want 75", rate)
	}
}

func TestCache_NamedMetrics(t *testing.T) {
	c := New(time.Minute, WithName("cache_test_named"))

	hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("cache_test_named"))
	misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("cache_test_named"))

	c.Get("k")
	c.Set("k", 1)
	c.Get("k")

	if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("cache_test_named")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("cache_test_named")); got != misses+1 {
		t.Errorf("misses = %v, want %v", got, misses+1)
	}
	if got := testutil.ToFloat64(metrics.CacheEntries.WithLabelValues("cache_test_named")); got != 1 {
		t.Errorf("entries = %v, want 1", got)
	}
}

func TestFetch(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	load := func() ([]string, bool) {
		calls++
		return []string{"ACS (BARKER ROAD)"}, true
	}

	got := Fetch(c, "schools", load)
	if len(got) != 1 || got[0] != "ACS (BARKER ROAD)" {
		t.Errorf("Fetch = %v", got)
	}
	Fetch(c, "schools", load)
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1", calls)
	}

	// A foreign type under the key is replaced.
	c.Set("typed", 42)
	if v := Fetch(c, "typed", func() (string, bool) { return "ok", true }); v != "ok" {
		t.Errorf("Fetch over foreign type = %q, want ok", v)
	}
}
