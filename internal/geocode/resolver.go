// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package geocode

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/tomtom215/schoolscout/internal/cache"
	"github.com/tomtom215/schoolscout/internal/config"
	"github.com/tomtom215/schoolscout/internal/logging"
	"github.com/tomtom215/schoolscout/internal/metrics"
)

// Route is the lookup path chosen for an input.
type Route string

const (
	RoutePostal  Route = "postal"
	RouteAddress Route = "address"
	RouteNone    Route = "none"
)

// Result is a resolution outcome. Negative results are cached too, so a
// Result with Found=false is a real value rather than an error.
type Result struct {
	Found    bool    `json:"found"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	Provider string  `json:"provider,omitempty"`
}

// Point returns the coordinates of a found result.
func (r Result) Point() Point {
	return Point{Lat: r.Lat, Lon: r.Lon}
}

// Resolver turns postal codes and addresses into coordinates, trying each
// provider in order and caching hits and misses per route.
type Resolver struct {
	providers []Provider
	postal    cache.Cacher
	address   cache.Cacher
	log       zerolog.Logger
}

// NewResolver creates a resolver over providers (tried in order) with one
// cache per route.
func NewResolver(providers []Provider, postal, address cache.Cacher) *Resolver {
	return &Resolver{
		providers: providers,
		postal:    postal,
		address:   address,
		log:       logging.WithComponent("geocode"),
	}
}

// NewFromConfig wires OneMap as primary and Nominatim as secondary with
// their own TTL caches. Call Close on shutdown.
func NewFromConfig(cfg config.GeocodeConfig) *Resolver {
	pc := ProviderConfig{
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.RateBurst,
	}
	primary := pc
	primary.BaseURL = cfg.PrimaryURL
	secondary := pc
	secondary.BaseURL = cfg.SecondaryURL

	return NewResolver(
		[]Provider{NewOneMapProvider(primary), NewNominatimProvider(secondary)},
		cache.New(cfg.PostalTTL,
			cache.WithName("geocode_postal"),
			cache.WithMaxEntries(100000),
			cache.WithCleanupInterval(time.Hour)),
		cache.New(cfg.AddressTTL,
			cache.WithName("geocode_address"),
			cache.WithMaxEntries(50000),
			cache.WithCleanupInterval(5*time.Minute)),
	)
}

// Close stops the cache janitors when the caches support it.
func (r *Resolver) Close() {
	for _, c := range []cache.Cacher{r.postal, r.address} {
		if closer, ok := c.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

// Resolve geocodes location. It never fails: provider errors, timeouts and
// empty input all come back as a not-found Result.
func (r *Resolver) Resolve(ctx context.Context, location string) (Result, bool) {
	route, normalized := Classify(location)

	var c cache.Cacher
	switch route {
	case RoutePostal:
		c = r.postal
	case RouteAddress:
		c = r.address
	default:
		metrics.RecordGeocodeLookup(string(RouteNone), "skipped")
		return Result{}, false
	}

	key := cacheKey(route, normalized)
	res := cache.Fetch(c, key, func() (Result, bool) {
		res := r.lookup(ctx, route, normalized)
		// A cancelled caller must not leave a negative entry behind for
		// everyone else.
		return res, res.Found || ctx.Err() == nil
	})

	outcome := "not_found"
	if res.Found {
		outcome = "found"
	}
	metrics.RecordGeocodeLookup(string(route), outcome)
	return res, res.Found
}

// Coordinates adapts Resolve to the (lat, lon, ok) shape the ranking engine
// uses.
func (r *Resolver) Coordinates(ctx context.Context, location string) (lat, lon float64, ok bool) {
	res, ok := r.Resolve(ctx, location)
	return res.Lat, res.Lon, ok
}

func (r *Resolver) lookup(ctx context.Context, route Route, value string) Result {
	for _, p := range r.providers {
		var (
			pt  Point
			err error
		)
		if route == RoutePostal {
			pt, err = p.LookupPostal(ctx, value)
		} else {
			pt, err = p.SearchAddress(ctx, value)
		}
		if err == nil {
			return Result{Found: true, Lat: pt.Lat, Lon: pt.Lon, Provider: p.Name()}
		}

		event := r.log.Debug().Str("provider", p.Name()).Str("route", string(route))
		if !errors.Is(err, ErrNotFound) {
			event = event.Err(err)
		}
		event.Msg("Geocode provider had no result, trying next")

		if ctx.Err() != nil {
			break
		}
	}
	return Result{}
}

// Classify trims and collapses whitespace and picks the route: exactly six
// ASCII digits is a postal code, anything else non-empty is an address.
func Classify(location string) (Route, string) {
	normalized := strings.Join(strings.Fields(location), " ")
	switch {
	case normalized == "":
		return RouteNone, ""
	case IsPostalCode(normalized):
		return RoutePostal, normalized
	default:
		return RouteAddress, normalized
	}
}

// IsPostalCode reports whether s is exactly six ASCII digits.
func IsPostalCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func cacheKey(route Route, normalized string) string {
	if route == RouteAddress {
		// Casers carry state and cannot be shared across goroutines.
		normalized = cases.Fold().String(normalized)
	}
	return string(route) + ":" + normalized
}
