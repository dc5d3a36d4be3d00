// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

/*
Package cache provides the injected TTL cache used by the geocode resolver
and the dataset catalog.

# Semantics

  - Every entry carries its own expiry; Get treats an expired entry as a miss
    and removes it ("pull" invalidation). There is no background refresh.
  - GetOrCompute runs the Loader on a miss. Concurrent misses for the same
    key are collapsed with golang.org/x/sync/singleflight, so a burst of
    requests performs one upstream call.
  - The Loader decides whether its result is cached. The geocode resolver
    caches negative results; the dataset catalog does not cache failed
    fetches.
  - Writes are last-writer-wins. Values must be treated as immutable by
    callers since they are shared.

# Usage

	addresses := cache.New(10*time.Minute,
	    cache.WithName("geocode_address"),
	    cache.WithMaxEntries(50000),
	    cache.WithCleanupInterval(5*time.Minute),
	)
	defer addresses.Close()

	v := addresses.GetOrCompute(key, func() (interface{}, bool) {
	    return resolve(ctx, key), true
	})

Named caches export hit, miss and size series through internal/metrics.
*/
package cache
