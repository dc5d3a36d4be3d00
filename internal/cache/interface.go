// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package cache

import "time"

// Cacher is the cache contract the geocode resolver and dataset catalog
// depend on. *Cache is the production implementation.
type Cacher interface {
	// Get retrieves a value. Returns false if absent or expired.
	Get(key string) (interface{}, bool)

	// Set stores a value with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// GetOrCompute returns the cached value or computes it with load.
	GetOrCompute(key string, load Loader) interface{}

	// Delete removes a value.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// Len returns the number of stored entries.
	Len() int

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the hit rate as a percentage.
	HitRate() float64
}

// Fetch is a typed wrapper over GetOrCompute. A cached value of another
// type is treated as a miss and recomputed.
//
//	schools := cache.Fetch(c, "schools", func() ([]models.School, bool) {
//	    rows, err := client.FetchAll(ctx, id)
//	    return normalize(rows), err == nil
//	})
func Fetch[T any](c Cacher, key string, load func() (T, bool)) T {
	loader := func() (interface{}, bool) {
		return load()
	}
	if v, ok := c.GetOrCompute(key, loader).(T); ok {
		return v
	}
	c.Delete(key)
	v, _ := c.GetOrCompute(key, loader).(T)
	return v
}

var _ Cacher = (*Cache)(nil)
