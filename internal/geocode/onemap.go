// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package geocode

import (
	"context"
	"net/url"
	"strings"

	"github.com/tomtom215/schoolscout/internal/metrics"
)

// OneMapProvider queries the OneMap elastic search endpoint. It needs no
// token for search.
type OneMapProvider struct {
	*upstream
}

type oneMapResponse struct {
	Found   int            `json:"found"`
	Results []oneMapResult `json:"results"`
}

type oneMapResult struct {
	SearchVal string `json:"SEARCHVAL"`
	Address   string `json:"ADDRESS"`
	Postal    string `json:"POSTAL"`
	Latitude  string `json:"LATITUDE"`
	Longitude string `json:"LONGITUDE"`
}

// NewOneMapProvider creates the primary provider.
func NewOneMapProvider(cfg ProviderConfig) *OneMapProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.onemap.gov.sg"
	}
	return &OneMapProvider{upstream: newUpstream("onemap", cfg)}
}

// Name returns the provider name.
func (p *OneMapProvider) Name() string {
	return "onemap"
}

// LookupPostal prefers the result whose POSTAL equals code, falling back to
// the first result with usable coordinates.
func (p *OneMapProvider) LookupPostal(ctx context.Context, code string) (Point, error) {
	results, err := p.search(ctx, code)
	if err != nil {
		return Point{}, err
	}
	for _, r := range results {
		if strings.TrimSpace(r.Postal) != code {
			continue
		}
		if pt, ok := parsePoint(r.Latitude, r.Longitude); ok {
			metrics.RecordGeocodeProviderRequest(p.name, "success")
			return pt, nil
		}
	}
	return p.first(results)
}

// SearchAddress takes the first result with usable coordinates.
func (p *OneMapProvider) SearchAddress(ctx context.Context, query string) (Point, error) {
	results, err := p.search(ctx, query)
	if err != nil {
		return Point{}, err
	}
	return p.first(results)
}

func (p *OneMapProvider) first(results []oneMapResult) (Point, error) {
	for _, r := range results {
		if pt, ok := parsePoint(r.Latitude, r.Longitude); ok {
			metrics.RecordGeocodeProviderRequest(p.name, "success")
			return pt, nil
		}
	}
	metrics.RecordGeocodeProviderRequest(p.name, "not_found")
	return Point{}, ErrNotFound
}

func (p *OneMapProvider) search(ctx context.Context, value string) ([]oneMapResult, error) {
	q := url.Values{}
	q.Set("searchVal", value)
	q.Set("returnGeom", "Y")
	q.Set("getAddrDetails", "Y")
	q.Set("pageNum", "1")

	var resp oneMapResponse
	if err := p.getJSON(ctx, p.baseURL+"/api/common/elastic/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
