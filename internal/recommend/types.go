// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/schoolscout/internal/models"
)

// Weights sets the contribution of each factor to the total score. Values
// must be non-negative; they need not sum to 1. A zero weight removes the
// factor from the total.
type Weights struct {
	// CCA weighs co-curricular activity overlap.
	CCA float64 `json:"cca" validate:"gte=0,finite"`

	// Subjects weighs subject overlap.
	Subjects float64 `json:"subjects" validate:"gte=0,finite"`

	// Level weighs the binary level match.
	Level float64 `json:"level" validate:"gte=0,finite"`

	// Distance weighs the linear distance decay.
	Distance float64 `json:"distance" validate:"gte=0,finite"`
}

// Coords is a resolved WGS84 location.
type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Reasons explains how a score was produced. Matches and distance are
// reported whenever they can be computed, regardless of weights.
type Reasons struct {
	CCAScore      float64 `json:"cca_score"`
	SubjectScore  float64 `json:"subject_score"`
	LevelScore    float64 `json:"level_score"`
	DistanceScore float64 `json:"distance_score"`

	// CCAMatches and SubjectMatches use the school's spelling, sorted.
	CCAMatches     []string `json:"cca_matches"`
	SubjectMatches []string `json:"subject_matches"`

	LevelMatch bool `json:"level_match"`

	// DistanceKM is nil when either side has no coordinates.
	DistanceKM *float64 `json:"distance_km"`

	Weights Weights `json:"weights"`
}

// ScoredResult is one ranked school. It only lives for one request.
type ScoredResult struct {
	Name       string `json:"school_name"`
	Level      string `json:"level,omitempty"`
	Zone       string `json:"zone,omitempty"`
	Type       string `json:"type,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`

	Score        float64 `json:"score"`
	ScorePercent int     `json:"score_percent"`
	Reasons      Reasons `json:"reasons"`

	foldedName string
}

// Filters narrow the candidate pool before scoring. Empty fields are
// ignored.
type Filters struct {
	Level string `json:"level,omitempty"`
	Zone  string `json:"zone,omitempty"`
	Type  string `json:"type,omitempty"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Level == "" && f.Zone == "" && f.Type == ""
}

// RankRequest is the full input of one ranking pass.
type RankRequest struct {
	Schools     []models.School
	Preferences models.Preferences
	Weights     Weights
	// UserCoords is nil when the user's location is unknown.
	UserCoords *Coords
	Filters    Filters
	// Limit <= 0 means the configured default.
	Limit int
}

// Response is the result of Engine.Recommend.
type Response struct {
	Items           []ScoredResult     `json:"items"`
	Count           int                `json:"count"`
	PreferencesUsed models.Preferences `json:"preferences_used"`
	Metadata        ResponseMetadata   `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// LatencyMS is the total ranking latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Candidates is the pool size after pre-filtering.
	Candidates int `json:"candidates"`

	// Filtered is false when no filter was set or when the filters matched
	// nothing and the full catalog was used instead.
	Filtered bool `json:"filtered"`

	// UserLocated reports whether the user's coordinates were known.
	UserLocated bool `json:"user_located"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// SchoolSource supplies the candidate pool.
type SchoolSource interface {
	ListSchools(ctx context.Context) []models.School
}

// DetailSource supplies a school's activities and subjects.
type DetailSource interface {
	GetDetails(ctx context.Context, name string) (models.School, bool)
}

// Locator resolves a postal code or address to coordinates.
type Locator interface {
	Coordinates(ctx context.Context, location string) (lat, lon float64, ok bool)
}
