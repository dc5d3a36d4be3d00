// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/schoolscout/internal/breaker"
	"github.com/tomtom215/schoolscout/internal/metrics"
)

var (
	// ErrNotFound means the provider answered but had no match.
	ErrNotFound = errors.New("geocode: no match")

	// ErrProviderUnavailable wraps transport, status and decode failures and
	// open-circuit rejections.
	ErrProviderUnavailable = errors.New("geocode: provider unavailable")
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// Provider looks up coordinates for postal codes and free-form addresses.
// Implementations return ErrNotFound for an empty answer and wrap every
// other failure in ErrProviderUnavailable.
type Provider interface {
	// Name returns the provider name for logging and metrics.
	Name() string

	// LookupPostal resolves a 6-digit postal code.
	LookupPostal(ctx context.Context, code string) (Point, error)

	// SearchAddress resolves a free-form address.
	SearchAddress(ctx context.Context, query string) (Point, error)
}

// ProviderConfig holds the transport settings shared by HTTP providers.
type ProviderConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RatePerSecond limits outbound calls. Zero disables limiting.
	RatePerSecond float64
	Burst         int
}

// upstream is the HTTP plumbing every provider shares: a timeout-bound
// client, an outbound rate limiter and a circuit breaker.
type upstream struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *breaker.Breaker[struct{}]
}

func newUpstream(name string, cfg ProviderConfig) *upstream {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &upstream{
		name:      name,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
		breaker:   breaker.New[struct{}]("geocode-"+name, breaker.Settings{}),
	}
}

// getJSON issues a GET and decodes the body into out. Every failure comes
// back wrapped in ErrProviderUnavailable.
func (u *upstream) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			metrics.RecordGeocodeProviderRequest(u.name, "rate_limited")
			return fmt.Errorf("%w: %s rate limit wait: %v", ErrProviderUnavailable, u.name, err)
		}
	}

	_, err := u.breaker.Execute(func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if u.userAgent != "" {
			req.Header.Set("User-Agent", u.userAgent)
		}

		resp, err := u.client.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to query %s: %w", u.name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return struct{}{}, fmt.Errorf("%s returned status %d", u.name, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return struct{}{}, fmt.Errorf("failed to decode %s response: %w", u.name, err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		metrics.RecordGeocodeProviderRequest(u.name, "error")
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return nil
}

// parseCoordinate parses one of the string-encoded coordinates both
// providers return and range checks it.
func parseCoordinate(s string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, false
	}
	return v, true
}

func parsePoint(lat, lon string) (Point, bool) {
	la, ok := parseCoordinate(lat, 90)
	if !ok {
		return Point{}, false
	}
	lo, ok := parseCoordinate(lon, 180)
	if !ok {
		return Point{}, false
	}
	return Point{Lat: la, Lon: lo}, true
}
