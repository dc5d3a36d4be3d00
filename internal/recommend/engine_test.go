// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package recommend

import (
	"context"
	"math"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/schoolscout/internal/models"
)

type staticSchools []models.School

func (s staticSchools) ListSchools(context.Context) []models.School {
	return slices.Clone(s)
}

type mapDetails struct {
	calls  atomic.Int32
	byName map[string]models.School
}

func (m *mapDetails) GetDetails(_ context.Context, name string) (models.School, bool) {
	m.calls.Add(1)
	s, ok := m.byName[name]
	return s, ok
}

type mapLocator struct {
	mu      sync.Mutex
	queries []string
	points  map[string]Coords
}

func (m *mapLocator) Coordinates(_ context.Context, loc string) (float64, float64, bool) {
	m.mu.Lock()
	m.queries = append(m.queries, loc)
	m.mu.Unlock()
	p, ok := m.points[loc]
	return p.Lat, p.Lon, ok
}

func newTestEngine(t *testing.T, schools []models.School, details DetailSource, locator Locator) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), staticSchools(schools), details, locator)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func names(items []ScoredResult) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Name
	}
	return out
}

func TestNewEngine_Validation(t *testing.T) {
	if _, err := NewEngine(DefaultConfig(), nil, nil, nil); err == nil {
		t.Error("expected error without a school source")
	}
	bad := DefaultConfig()
	bad.Weights.CCA = -1
	if _, err := NewEngine(bad, staticSchools(nil), nil, nil); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestRank_AllZeroIsAlphabetical(t *testing.T) {
	schools := []models.School{
		{Name: "zeta Primary"},
		{Name: "Alpha Primary"},
		{Name: "beta Primary"},
		{Name: "Gamma Primary"},
	}
	e := newTestEngine(t, nil, nil, nil)

	got := e.Rank(context.Background(), RankRequest{
		Schools:     schools,
		Preferences: models.Preferences{Activities: []string{"Fencing"}},
		Weights:     DefaultWeights(),
	})

	want := []string{"Alpha Primary", "beta Primary", "Gamma Primary", "zeta Primary"}
	if !slices.Equal(names(got), want) {
		t.Errorf("order = %v, want %v", names(got), want)
	}
	for _, r := range got {
		if r.Score != 0 {
			t.Errorf("%s score = %v, want 0", r.Name, r.Score)
		}
	}
}

func TestRank_ScoreDescending(t *testing.T) {
	schools := []models.School{
		{Name: "B", Level: "SECONDARY"},
		{Name: "A", Level: "PRIMARY"},
		{Name: "C", Level: "PRIMARY", Activities: []string{"Chess"}},
	}
	e := newTestEngine(t, nil, nil, nil)

	got := e.Rank(context.Background(), RankRequest{
		Schools:     schools,
		Preferences: models.Preferences{Level: "primary", Activities: []string{"chess"}},
		Weights:     DefaultWeights(),
	})

	if want := []string{"C", "A", "B"}; !slices.Equal(names(got), want) {
		t.Fatalf("order = %v, want %v", names(got), want)
	}
	if !got[1].Reasons.LevelMatch || got[2].Reasons.LevelMatch {
		t.Errorf("level_match = %v/%v", got[1].Reasons.LevelMatch, got[2].Reasons.LevelMatch)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("not descending at %d", i)
		}
	}
}

func TestRank_ChoirNearby(t *testing.T) {
	schools := []models.School{
		{Name: "B", Level: "PRIMARY", Latitude: ptr(1.301), Longitude: ptr(103.801)},
		{Name: "A", Level: "SECONDARY", Activities: []string{"Choir", "Band"}, Latitude: ptr(1.301), Longitude: ptr(103.801)},
	}
	e := newTestEngine(t, nil, nil, nil)

	got := e.Rank(context.Background(), RankRequest{
		Schools: schools,
		Preferences: models.Preferences{
			Level:         "sec",
			Activities:    []string{"Choir"},
			Subjects:      []string{},
			MaxDistanceKM: ptr(5.0),
		},
		Weights:    DefaultWeights(),
		UserCoords: &Coords{Lat: 1.300, Lon: 103.800},
	})

	if want := []string{"A", "B"}; !slices.Equal(names(got), want) {
		t.Fatalf("order = %v, want %v", names(got), want)
	}
	a, b := got[0], got[1]
	if !(a.Score > b.Score) {
		t.Errorf("score(A)=%v should exceed score(B)=%v", a.Score, b.Score)
	}
	if !a.Reasons.LevelMatch || b.Reasons.LevelMatch {
		t.Errorf("level_match A=%v B=%v, want true/false", a.Reasons.LevelMatch, b.Reasons.LevelMatch)
	}
	if math.Abs(a.Score-0.744) > 0.001 || math.Abs(b.Score-0.194) > 0.001 {
		t.Errorf("scores = %v, %v; want about 0.744, 0.194", a.Score, b.Score)
	}
}

func TestRank_Deterministic(t *testing.T) {
	schools := []models.School{
		{Name: "b", Level: "PRIMARY"},
		{Name: "B", Level: "PRIMARY"},
		{Name: "a", Level: "SECONDARY"},
		{Name: "A", Level: "PRIMARY"},
	}
	e := newTestEngine(t, nil, nil, nil)
	req := RankRequest{
		Schools:     schools,
		Preferences: models.Preferences{Level: "primary"},
		Weights:     DefaultWeights(),
	}

	first := e.Rank(context.Background(), req)
	for range 5 {
		slices.Reverse(req.Schools)
		again := e.Rank(context.Background(), req)
		if !reflect.DeepEqual(names(first), names(again)) {
			t.Fatalf("order changed: %v vs %v", names(first), names(again))
		}
	}
	if want := []string{"A", "B", "b", "a"}; !slices.Equal(names(first), want) {
		t.Errorf("order = %v, want %v", names(first), want)
	}
}

func TestRank_Limit(t *testing.T) {
	schools := []models.School{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	e := newTestEngine(t, nil, nil, nil)

	got := e.Rank(context.Background(), RankRequest{Schools: schools, Weights: DefaultWeights(), Limit: 2})
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	got = e.Rank(context.Background(), RankRequest{Schools: schools, Weights: DefaultWeights()})
	if len(got) != 3 {
		t.Errorf("default limit len = %d, want 3", len(got))
	}
}

func TestPrefilter(t *testing.T) {
	schools := []models.School{
		{Name: "A", Level: "PRIMARY", Zone: "NORTH", Type: "GOVERNMENT SCHOOL"},
		{Name: "B", Level: "SECONDARY", Zone: "NORTH", Type: "GOVERNMENT SCHOOL"},
		{Name: "C", Level: "PRIMARY", Zone: "EAST", Type: "GOVERNMENT-AIDED SCH"},
	}

	tests := []struct {
		name         string
		filters      Filters
		want         []string
		wantFiltered bool
	}{
		{"none", Filters{}, []string{"A", "B", "C"}, false},
		{"level alias", Filters{Level: "pri"}, []string{"A", "C"}, true},
		{"zone case-insensitive", Filters{Zone: "north"}, []string{"A", "B"}, true},
		{"combined", Filters{Level: "primary", Zone: "East"}, []string{"C"}, true},
		{"type", Filters{Type: "government school"}, []string{"A", "B"}, true},
		{"no match falls back", Filters{Zone: "WEST"}, []string{"A", "B", "C"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, filtered := Prefilter(schools, tt.filters)
			var gotNames []string
			for _, s := range got {
				gotNames = append(gotNames, s.Name)
			}
			if !slices.Equal(gotNames, tt.want) {
				t.Errorf("Prefilter = %v, want %v", gotNames, tt.want)
			}
			if filtered != tt.wantFiltered {
				t.Errorf("filtered = %v, want %v", filtered, tt.wantFiltered)
			}
		})
	}
}

func TestRank_EnrichesOnlyWhenNeeded(t *testing.T) {
	schools := []models.School{{Name: "A", Level: "PRIMARY"}, {Name: "B", Level: "PRIMARY"}}
	details := &mapDetails{byName: map[string]models.School{
		"A": {Name: "A", Level: "PRIMARY", Activities: []string{"Chess"}},
		"B": {Name: "B", Level: "PRIMARY", Subjects: []string{"Art"}},
	}}
	e := newTestEngine(t, nil, details, nil)

	e.Rank(context.Background(), RankRequest{
		Schools:     schools,
		Preferences: models.Preferences{Level: "primary"},
		Weights:     DefaultWeights(),
	})
	if n := details.calls.Load(); n != 0 {
		t.Errorf("details called %d times without activity/subject preferences", n)
	}

	got := e.Rank(context.Background(), RankRequest{
		Schools:     schools,
		Preferences: models.Preferences{Activities: []string{"chess"}},
		Weights:     DefaultWeights(),
	})
	if n := details.calls.Load(); n != 2 {
		t.Errorf("details called %d times, want 2", n)
	}
	if got[0].Name != "A" || got[0].Reasons.CCAScore != 1 {
		t.Errorf("top = %+v", got[0])
	}
}

func TestRank_LocatesSchoolsForDistance(t *testing.T) {
	schools := []models.School{
		{Name: "Near", PostalCode: "111111"},
		{Name: "Far", PostalCode: "222222"},
		{Name: "Unknown", PostalCode: "333333"},
		{Name: "Placed", Latitude: ptr(1.30), Longitude: ptr(103.80)},
	}
	locator := &mapLocator{points: map[string]Coords{
		"111111": {1.301, 103.80},
		"222222": {1.40, 103.80},
	}}
	e := newTestEngine(t, nil, nil, locator)

	got := e.Rank(context.Background(), RankRequest{
		Schools:     schools,
		Preferences: models.Preferences{MaxDistanceKM: ptr(5.0)},
		Weights:     DefaultWeights(),
		UserCoords:  &Coords{1.30, 103.80},
	})

	if want := []string{"Placed", "Near", "Far", "Unknown"}; !slices.Equal(names(got), want) {
		t.Fatalf("order = %v, want %v", names(got), want)
	}
	if got[0].Reasons.DistanceScore != 1 {
		t.Errorf("placed distance_score = %v, want 1", got[0].Reasons.DistanceScore)
	}
	if got[2].Reasons.DistanceScore != 0 || got[2].Reasons.DistanceKM == nil {
		t.Errorf("far reasons = %+v", got[2].Reasons)
	}
	if got[3].Reasons.DistanceKM != nil {
		t.Errorf("unknown distance_km = %v, want nil", *got[3].Reasons.DistanceKM)
	}

	locator.mu.Lock()
	queried := slices.Clone(locator.queries)
	locator.mu.Unlock()
	slices.Sort(queried)
	if want := []string{"111111", "222222", "333333"}; !slices.Equal(queried, want) {
		t.Errorf("queried = %v, want %v", queried, want)
	}
}

func TestRank_SkipsLocatingWhenDistanceIsDead(t *testing.T) {
	schools := []models.School{{Name: "A", PostalCode: "111111"}}
	locator := &mapLocator{points: map[string]Coords{"111111": {1.3, 103.8}}}
	e := newTestEngine(t, nil, nil, locator)

	cases := []RankRequest{
		{Schools: schools, Weights: DefaultWeights(), UserCoords: &Coords{1.3, 103.8}},
		{Schools: schools, Weights: DefaultWeights(), Preferences: models.Preferences{MaxDistanceKM: ptr(5.0)}},
		{Schools: schools, Weights: Weights{CCA: 1}, UserCoords: &Coords{1.3, 103.8}, Preferences: models.Preferences{MaxDistanceKM: ptr(5.0)}},
	}
	for _, req := range cases {
		e.Rank(context.Background(), req)
	}
	if len(locator.queries) != 0 {
		t.Errorf("locator queried %v", locator.queries)
	}
}

func TestRecommend(t *testing.T) {
	schools := []models.School{
		{Name: "A", Level: "PRIMARY", Zone: "NORTH", Latitude: ptr(1.30), Longitude: ptr(103.80)},
		{Name: "B", Level: "SECONDARY", Zone: "NORTH", Latitude: ptr(1.30), Longitude: ptr(103.80)},
	}
	locator := &mapLocator{points: map[string]Coords{"560123": {1.30, 103.80}}}
	e := newTestEngine(t, schools, nil, locator)

	resp, err := e.Recommend(context.Background(), models.Preferences{
		Level:         " primary ",
		MaxDistanceKM: ptr(2.0),
		Location:      "560123",
		Activities:    []string{"", "  "},
	}, nil, Filters{}, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("count = %d, items = %d", resp.Count, len(resp.Items))
	}
	if resp.Items[0].Name != "A" {
		t.Errorf("top = %s, want A", resp.Items[0].Name)
	}
	if !approx(resp.Items[0].Score, 0.35) {
		t.Errorf("A score = %v, want 0.35", resp.Items[0].Score)
	}
	if resp.Items[0].ScorePercent != 35 {
		t.Errorf("A percent = %d, want 35", resp.Items[0].ScorePercent)
	}
	if !resp.Metadata.UserLocated || resp.Metadata.Candidates != 2 || resp.Metadata.Filtered {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
	if resp.PreferencesUsed.Level != "primary" || resp.PreferencesUsed.Activities != nil {
		t.Errorf("preferences_used = %+v", resp.PreferencesUsed)
	}
}

func TestRecommend_ExplicitCoordsWin(t *testing.T) {
	schools := []models.School{{Name: "A", Latitude: ptr(1.30), Longitude: ptr(103.80)}}
	locator := &mapLocator{points: map[string]Coords{}}
	e := newTestEngine(t, schools, nil, locator)

	resp, err := e.Recommend(context.Background(), models.Preferences{
		MaxDistanceKM: ptr(1.0),
		Location:      "somewhere",
		Latitude:      ptr(1.30),
		Longitude:     ptr(103.80),
	}, nil, Filters{}, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(locator.queries) != 0 {
		t.Errorf("locator queried %v despite explicit coordinates", locator.queries)
	}
	if resp.Items[0].Reasons.DistanceScore != 1 {
		t.Errorf("distance_score = %v", resp.Items[0].Reasons.DistanceScore)
	}
}

func TestRecommend_WeightOverride(t *testing.T) {
	schools := []models.School{
		{Name: "A", Level: "PRIMARY"},
		{Name: "B", Level: "SECONDARY"},
	}
	e := newTestEngine(t, schools, nil, nil)

	resp, err := e.Recommend(context.Background(), models.Preferences{Level: "primary"},
		&Weights{Level: 0}, Filters{}, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if want := []string{"A", "B"}; !slices.Equal(names(resp.Items), want) {
		t.Errorf("order = %v, want %v", names(resp.Items), want)
	}
	for _, it := range resp.Items {
		if it.Score != 0 {
			t.Errorf("%s score = %v with zero weights", it.Name, it.Score)
		}
	}

	if _, err := e.Recommend(context.Background(), models.Preferences{Level: "primary"},
		&Weights{CCA: -1}, Filters{}, 0); err == nil {
		t.Error("expected error for negative weight override")
	}
}
