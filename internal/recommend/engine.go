// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/schoolscout/internal/logging"
	"github.com/tomtom215/schoolscout/internal/metrics"
	"github.com/tomtom215/schoolscout/internal/models"
)

// Engine ranks schools against user preferences. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	config  Config
	logger  zerolog.Logger
	schools SchoolSource
	details DetailSource
	locator Locator
}

// NewEngine creates an engine. details and locator may be nil, in which
// case schools are scored with whatever the pool already carries.
func NewEngine(cfg Config, schools SchoolSource, details DetailSource, locator Locator) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if schools == nil {
		return nil, fmt.Errorf("school source is required")
	}
	return &Engine{
		config:  cfg,
		logger:  logging.WithComponent("recommend"),
		schools: schools,
		details: details,
		locator: locator,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Recommend resolves the user's location, loads the catalog and ranks it.
// weights nil means the configured defaults.
func (e *Engine) Recommend(ctx context.Context, prefs models.Preferences, weights *Weights, filters Filters, limit int) (*Response, error) {
	start := time.Now()
	prefs = prefs.Normalized()

	w := e.config.Weights
	if weights != nil {
		if err := weights.Validate(); err != nil {
			return nil, err
		}
		w = *weights
	}

	user := e.userCoords(ctx, &prefs)

	items, candidates, filtered := e.rank(ctx, RankRequest{
		Schools:     e.schools.ListSchools(ctx),
		Preferences: prefs,
		Weights:     w,
		UserCoords:  user,
		Filters:     filters,
		Limit:       limit,
	})

	elapsed := time.Since(start)
	metrics.RecordRecommend(candidates, elapsed)

	e.logger.Debug().
		Int("candidates", candidates).
		Int("results", len(items)).
		Bool("filtered", filtered).
		Bool("user_located", user != nil).
		Dur("latency", elapsed).
		Msg("Recommendation ranked")

	return &Response{
		Items:           items,
		Count:           len(items),
		PreferencesUsed: prefs,
		Metadata: ResponseMetadata{
			LatencyMS:   elapsed.Milliseconds(),
			Candidates:  candidates,
			Filtered:    filtered,
			UserLocated: user != nil,
			Timestamp:   time.Now().UTC(),
		},
	}, nil
}

// Rank scores and orders req.Schools. The result is sorted by score
// descending, then by case-insensitive name.
func (e *Engine) Rank(ctx context.Context, req RankRequest) []ScoredResult {
	items, _, _ := e.rank(ctx, req)
	return items
}

func (e *Engine) rank(ctx context.Context, req RankRequest) ([]ScoredResult, int, bool) {
	pool, filtered := Prefilter(req.Schools, req.Filters)
	prefs := req.Preferences

	if len(prefs.Activities) > 0 || len(prefs.Subjects) > 0 {
		pool = e.enrich(ctx, pool)
	}
	if distanceLive(&prefs, req.Weights, req.UserCoords) {
		pool = e.locate(ctx, pool)
	}

	results := make([]ScoredResult, 0, len(pool))
	for i := range pool {
		s := &pool[i]
		score, reasons := Score(s, &prefs, req.Weights, req.UserCoords)
		results = append(results, ScoredResult{
			Name:         s.Name,
			Level:        s.Level,
			Zone:         s.Zone,
			Type:         s.Type,
			Address:      s.Address,
			PostalCode:   s.PostalCode,
			Score:        score,
			ScorePercent: ScorePercent(score),
			Reasons:      reasons,
			foldedName:   fold(s.Name),
		})
	}

	Sort(results)

	limit := req.Limit
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, len(pool), filtered
}

// Prefilter keeps schools matching every non-empty filter. Level compares
// canonical levels; zone and type compare case-insensitively. If nothing
// survives, the full pool is returned and filtered is false.
func Prefilter(schools []models.School, f Filters) ([]models.School, bool) {
	if f.IsZero() {
		return slices.Clone(schools), false
	}

	level := models.NormalizeLevel(f.Level)
	zone := fold(f.Zone)
	kind := fold(f.Type)

	var out []models.School
	for i := range schools {
		s := &schools[i]
		if level != "" && models.NormalizeLevel(s.Level) != level {
			continue
		}
		if zone != "" && fold(s.Zone) != zone {
			continue
		}
		if kind != "" && fold(s.Type) != kind {
			continue
		}
		out = append(out, *s)
	}

	if len(out) == 0 {
		return slices.Clone(schools), false
	}
	return out, true
}

// Sort orders results by score descending, then folded name, then exact
// name so equal folds still have a stable order.
func Sort(results []ScoredResult) {
	for i := range results {
		if results[i].foldedName == "" {
			results[i].foldedName = fold(results[i].Name)
		}
	}
	slices.SortStableFunc(results, func(a, b ScoredResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := strings.Compare(a.foldedName, b.foldedName); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func distanceLive(prefs *models.Preferences, w Weights, user *Coords) bool {
	return user != nil && w.Distance > 0 && prefs.MaxDistanceKM != nil && *prefs.MaxDistanceKM > 0
}

// userCoords prefers an explicit lat/lon pair, then the location string.
func (e *Engine) userCoords(ctx context.Context, prefs *models.Preferences) *Coords {
	if prefs.Latitude != nil && prefs.Longitude != nil {
		return &Coords{Lat: *prefs.Latitude, Lon: *prefs.Longitude}
	}
	if prefs.Location == "" || e.locator == nil {
		return nil
	}
	lat, lon, ok := e.locator.Coordinates(ctx, prefs.Location)
	if !ok {
		e.logger.Debug().Str("location", prefs.Location).Msg("User location did not resolve")
		return nil
	}
	return &Coords{Lat: lat, Lon: lon}
}

// enrich replaces each school with its detailed record when one exists.
func (e *Engine) enrich(ctx context.Context, pool []models.School) []models.School {
	if e.details == nil {
		return pool
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.LocateConcurrency)
	for i := range pool {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if d, ok := e.details.GetDetails(gctx, pool[i].Name); ok {
				if !d.HasCoordinates() && pool[i].HasCoordinates() {
					d = d.WithCoordinates(*pool[i].Latitude, *pool[i].Longitude)
				}
				pool[i] = d
			}
			return nil
		})
	}
	_ = g.Wait()
	return pool
}

// locate fills in coordinates for schools that lack them, keyed by
// postal code.
func (e *Engine) locate(ctx context.Context, pool []models.School) []models.School {
	if e.locator == nil {
		return pool
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.LocateConcurrency)
	for i := range pool {
		if pool[i].HasCoordinates() || pool[i].PostalCode == "" {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if lat, lon, ok := e.locator.Coordinates(gctx, pool[i].PostalCode); ok {
				pool[i] = pool[i].WithCoordinates(lat, lon)
			}
			return nil
		})
	}
	_ = g.Wait()
	return pool
}
