// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"context"
	"time"

	"github.com/tomtom215/schoolscout/internal/dataset"
	"github.com/tomtom215/schoolscout/internal/models"
	"github.com/tomtom215/schoolscout/internal/recommend"
)

// Catalog is the read side of the school dataset.
type Catalog interface {
	Count(ctx context.Context) int
	Search(ctx context.Context, q dataset.Query) models.SchoolPage
	GetDetails(ctx context.Context, name string) (models.School, bool)
	Options(ctx context.Context) models.Options
}

// Recommender ranks schools.
type Recommender interface {
	Config() recommend.Config
	Recommend(ctx context.Context, prefs models.Preferences, weights *recommend.Weights, filters recommend.Filters, limit int) (*recommend.Response, error)
}

// PreferenceStore holds preferences per authenticated subject.
type PreferenceStore interface {
	Get(ctx context.Context, subject string) (models.Preferences, error)
	Put(ctx context.Context, subject string, prefs models.Preferences) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_schools.go: search, details, options
//   - handlers_recommend.go: recommendations
//   - handlers_preferences.go: stored preferences
type Handler struct {
	catalog     Catalog
	recommender Recommender
	prefs       PreferenceStore
	startTime   time.Time
}

// NewHandler creates a handler. prefs may be nil, in which case stored
// preferences are unavailable and anonymous rules apply to everyone.
func NewHandler(catalog Catalog, recommender Recommender, prefs PreferenceStore) *Handler {
	return &Handler{
		catalog:     catalog,
		recommender: recommender,
		prefs:       prefs,
		startTime:   time.Now(),
	}
}
