// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

/*
Package geocode resolves Singapore postal codes and addresses to
coordinates.

Input is trimmed and whitespace-collapsed. Exactly six ASCII digits take the
postal route; anything else non-empty takes the address route; empty input
is not found without any I/O.

Providers are tried in order (OneMap, then Nominatim). Each one sits behind
a golang.org/x/time/rate limiter and a circuit breaker from
internal/breaker. Any provider failure falls through to the next provider;
when all fail the result is simply not found.

Results, including misses, are cached per route: postal codes for 24h and
addresses for 10m by default. Concurrent lookups of the same key share one
provider round trip.

	resolver := geocode.NewFromConfig(cfg.Geocode)
	defer resolver.Close()

	if res, ok := resolver.Resolve(ctx, "238823"); ok {
	    fmt.Println(res.Lat, res.Lon, res.Provider)
	}
*/
package geocode
