// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/schoolscout/internal/models"
	"github.com/tomtom215/schoolscout/internal/recommend"
)

const maxBodyBytes = 64 << 10

var errBadBody = errors.New("request body is not valid JSON")

// recommendRequest is the lenient wire form of a recommendation request.
// ccas and travel_km are accepted as aliases of activities and
// max_distance_km. level is a scored preference only; narrowing by level
// uses filter_level.
type recommendRequest struct {
	Level         flexString                 `json:"level"`
	Subjects      flexList                   `json:"subjects"`
	Activities    flexList                   `json:"activities"`
	CCAs          flexList                   `json:"ccas"`
	MaxDistanceKM flexFloat                  `json:"max_distance_km"`
	TravelKM      flexFloat                  `json:"travel_km"`
	Location      flexString                 `json:"location"`
	Lat           flexFloat                  `json:"lat"`
	Lon           flexFloat                  `json:"lon"`
	Limit         flexFloat                  `json:"limit"`
	FilterLevel   flexString                 `json:"filter_level"`
	Zone          flexString                 `json:"zone"`
	Type          flexString                 `json:"type"`
	Weights       *recommend.WeightOverrides `json:"weights"`
}

// recommendDoc is the documented shape of recommendRequest. The wire form
// also takes numbers as strings and lists as comma-separated strings.
type recommendDoc struct {
	Level         string                     `json:"level" example:"sec"`
	Subjects      []string                   `json:"subjects"`
	Activities    []string                   `json:"activities" example:"Choir"`
	CCAs          []string                   `json:"ccas"`
	MaxDistanceKM float64                    `json:"max_distance_km" example:"5"`
	TravelKM      float64                    `json:"travel_km"`
	Location      string                     `json:"location" example:"238823"`
	Lat           float64                    `json:"lat"`
	Lon           float64                    `json:"lon"`
	Limit         int                        `json:"limit"`
	FilterLevel   string                     `json:"filter_level"`
	Zone          string                     `json:"zone"`
	Type          string                     `json:"type"`
	Weights       *recommend.WeightOverrides `json:"weights"`
}

// decodeRecommendBody reads an optional JSON body. An empty body is not an
// error.
func decodeRecommendBody(w http.ResponseWriter, r *http.Request, req *recommendRequest) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, req); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

// applyQuery fills fields the body left unset from query parameters.
func applyQuery(r *http.Request, req *recommendRequest) error {
	q := r.URL.Query()

	setString := func(dst *flexString, keys ...string) {
		if *dst == "" {
			*dst = flexString(firstQuery(q, keys...))
		}
	}
	setFloat := func(dst *flexFloat, keys ...string) {
		if dst.v == nil {
			dst.v = parseFloat(firstQuery(q, keys...))
		}
	}
	setList := func(dst *flexList, key string) {
		if len(*dst) == 0 {
			*dst = splitList(q[key]...)
		}
	}

	setString(&req.Level, "level")
	setString(&req.Location, "location")
	setString(&req.FilterLevel, "filter_level")
	setString(&req.Zone, "zone")
	setString(&req.Type, "type")
	setList(&req.Subjects, "subjects")
	setList(&req.Activities, "activities")
	setList(&req.CCAs, "ccas")
	setFloat(&req.MaxDistanceKM, "max_distance_km")
	setFloat(&req.TravelKM, "travel_km")
	setFloat(&req.Lat, "lat")
	setFloat(&req.Lon, "lon")
	setFloat(&req.Limit, "limit")

	// Weights travel as a JSON object in a single parameter.
	if raw := q.Get("weights"); raw != "" && req.Weights == nil {
		var w recommend.WeightOverrides
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			return fmt.Errorf("%w: weights: %w", errBadBody, err)
		}
		req.Weights = &w
	}
	return nil
}

// preferences maps the request onto models.Preferences, dropping
// malformed or out-of-range numbers.
func (req *recommendRequest) preferences() models.Preferences {
	prefs := models.Preferences{
		Level:      string(req.Level),
		Subjects:   req.Subjects,
		Activities: append(append([]string(nil), req.Activities...), req.CCAs...),
		Location:   string(req.Location),
	}

	dist := req.MaxDistanceKM.v
	if dist == nil {
		dist = req.TravelKM.v
	}
	if dist != nil && *dist >= 0 {
		prefs.MaxDistanceKM = dist
	}

	lat, lon := req.Lat.v, req.Lon.v
	if lat != nil && lon != nil && *lat >= -90 && *lat <= 90 && *lon >= -180 && *lon <= 180 {
		prefs.Latitude, prefs.Longitude = lat, lon
	}

	return prefs.Normalized()
}

// filters never reads Level, so a zero level weight leaves the candidate
// set untouched.
func (req *recommendRequest) filters() recommend.Filters {
	return recommend.Filters{
		Level: string(req.FilterLevel),
		Zone:  string(req.Zone),
		Type:  string(req.Type),
	}
}

// limit returns 0 (engine default) for absent or malformed values.
func (req *recommendRequest) limit() int {
	n, ok := wholeNumber(req.Limit.v)
	if !ok || n < 1 || n > recommend.DefaultLimit {
		return 0
	}
	return n
}

// searchRequest is validated strictly after lenient parsing.
type searchRequest struct {
	Text   string `json:"q" validate:"max=200"`
	Level  string `json:"level" validate:"max=64"`
	Zone   string `json:"zone" validate:"max=64"`
	Type   string `json:"type" validate:"max=64"`
	Limit  int    `json:"limit" validate:"min=1,max=500"`
	Offset int    `json:"offset" validate:"min=0"`
}

func parseSearchRequest(r *http.Request) searchRequest {
	q := r.URL.Query()
	req := searchRequest{
		Text:  strings.TrimSpace(q.Get("q")),
		Level: strings.TrimSpace(q.Get("level")),
		Zone:  strings.TrimSpace(q.Get("zone")),
		Type:  strings.TrimSpace(q.Get("type")),
		Limit: 20,
	}
	if n, ok := wholeNumber(parseFloat(q.Get("limit"))); ok {
		req.Limit = n
	}
	if n, ok := wholeNumber(parseFloat(q.Get("offset"))); ok {
		req.Offset = n
	}
	return req
}
