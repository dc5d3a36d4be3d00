// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package geocode

import (
	"context"
	"net/url"

	"github.com/tomtom215/schoolscout/internal/metrics"
)

// NominatimProvider queries an OpenStreetMap Nominatim instance. The public
// instance requires an identifying User-Agent and at most 1 req/s.
type NominatimProvider struct {
	*upstream
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimProvider creates the secondary provider.
func NewNominatimProvider(cfg ProviderConfig) *NominatimProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "schoolscout/1.0"
	}
	return &NominatimProvider{upstream: newUpstream("nominatim", cfg)}
}

// Name returns the provider name.
func (p *NominatimProvider) Name() string {
	return "nominatim"
}

// LookupPostal resolves a Singapore postal code.
func (p *NominatimProvider) LookupPostal(ctx context.Context, code string) (Point, error) {
	q := url.Values{}
	q.Set("postalcode", code)
	q.Set("country", "Singapore")
	return p.search(ctx, q)
}

// SearchAddress resolves a free-form address restricted to Singapore.
func (p *NominatimProvider) SearchAddress(ctx context.Context, query string) (Point, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("countrycodes", "sg")
	return p.search(ctx, q)
}

func (p *NominatimProvider) search(ctx context.Context, q url.Values) (Point, error) {
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	var places []nominatimPlace
	if err := p.getJSON(ctx, p.baseURL+"/search?"+q.Encode(), &places); err != nil {
		return Point{}, err
	}
	for _, place := range places {
		if pt, ok := parsePoint(place.Lat, place.Lon); ok {
			metrics.RecordGeocodeProviderRequest(p.name, "success")
			return pt, nil
		}
	}
	metrics.RecordGeocodeProviderRequest(p.name, "not_found")
	return Point{}, ErrNotFound
}
