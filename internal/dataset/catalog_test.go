// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package dataset

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/schoolscout/internal/cache"
	"github.com/tomtom215/schoolscout/internal/models"
)

// fakeFetcher serves canned tables and counts fetches per dataset.
type fakeFetcher struct {
	mu     sync.Mutex
	tables map[string][]Row
	fail   map[string]bool
	calls  map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		tables: map[string][]Row{
			"schools": {
				{"school_name": "Raffles Institution", "postal_code": "575954", "mainlevel_code": "secondary", "zone_code": "north", "type_code": "independent school", "address": "1 Raffles Institution Lane", "dgp_code": "BISHAN", "_id": "1"},
				{"school_name": "Ai Tong School", "postal_code": "579646", "mainlevel_code": "PRIMARY", "zone_code": "SOUTH", "type_code": "GOVERNMENT-AIDED SCH", "address": "100 Bright Hill Drive"},
				{"name": "admiralty primary school", "postal": "738907", "level": "PRIMARY", "zone": "NORTH", "type": "GOVERNMENT SCHOOL", "lat": "1.4427", "lon": "103.8006"},
				{"school_name": "", "postal_code": "000000"},
				{"school_name": "AI TONG SCHOOL", "postal_code": "dup"},
			},
			"ccas": {
				{"school_name": "RAFFLES INSTITUTION", "cca_generic_name": "Chess"},
				{"school_name": "Raffles Institution", "cca_generic_name": "chess"},
				{"school_name": "Raffles Institution", "cca_customized_name": "Astronomy"},
				{"school_name": "Ai Tong School", "cca_name": "Choir"},
			},
			"subjects": {
				{"school_name": "Raffles Institution", "subject_desc": "PHYSICS"},
				{"school_name": "Raffles Institution", "subject_desc": "Biology"},
				{"school_name": "Ai Tong School", "subject_name": "Mathematics"},
			},
			"cutoffs": {
				{"school_name": "Raffles Institution", "posting_group": "3", "cut_off_point": "6"},
				{"school_name": "Raffles Institution", "posting_group": "2", "cut_off_point": ""},
			},
		},
		fail:  map[string]bool{},
		calls: map[string]int{},
	}
}

func (f *fakeFetcher) FetchAll(_ context.Context, id string) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	if f.fail[id] {
		return nil, fmt.Errorf("%w: %s down", ErrUpstream, id)
	}
	return f.tables[id], nil
}

func (f *fakeFetcher) count(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func (f *fakeFetcher) setFail(id string, fail bool) {
	f.mu.Lock()
	f.fail[id] = fail
	f.mu.Unlock()
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var testIDs = IDs{Schools: "schools", Activities: "ccas", Subjects: "subjects", Cutoffs: "cutoffs"}

func newTestCatalog(f *fakeFetcher, clk *clock) *Catalog {
	return NewCatalog(f, cache.New(10*time.Minute, cache.WithClock(clk.Now)), testIDs)
}

func TestCatalog_ListSchoolsNormalizes(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCatalog(f, &clock{now: time.Now()})

	schools := c.ListSchools(context.Background())
	if len(schools) != 3 {
		t.Fatalf("schools = %d, want 3 (blank name dropped, duplicate collapsed)", len(schools))
	}

	names := make([]string, len(schools))
	for i, s := range schools {
		names[i] = s.Name
	}
	want := []string{"admiralty primary school", "Ai Tong School", "Raffles Institution"}
	if !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}

	ri := schools[2]
	if ri.Level != "SECONDARY" || ri.Zone != "NORTH" || ri.Type != "INDEPENDENT SCHOOL" {
		t.Errorf("codes not upper-cased: %+v", ri)
	}
	if ri.Extra["dgp_code"] != "BISHAN" {
		t.Errorf("unknown field not preserved: %v", ri.Extra)
	}
	if _, ok := ri.Extra["_id"]; ok {
		t.Error("_id should not be carried into Extra")
	}

	adm := schools[0]
	if adm.PostalCode != "738907" || !adm.HasCoordinates() || *adm.Latitude != 1.4427 {
		t.Errorf("aliased fields not mapped: %+v", adm)
	}
}

func TestCatalog_CachesWithinTTL(t *testing.T) {
	f := newFakeFetcher()
	clk := &clock{now: time.Now()}
	c := newTestCatalog(f, clk)
	ctx := context.Background()

	c.ListSchools(ctx)
	c.ListSchools(ctx)
	c.Count(ctx)
	if n := f.count("schools"); n != 1 {
		t.Errorf("fetches within TTL = %d, want 1", n)
	}

	clk.Advance(10 * time.Minute)
	c.ListSchools(ctx)
	if n := f.count("schools"); n != 2 {
		t.Errorf("fetches after TTL = %d, want 2", n)
	}
}

func TestCatalog_FailureIsEmptyAndNotCached(t *testing.T) {
	f := newFakeFetcher()
	f.setFail("schools", true)
	c := newTestCatalog(f, &clock{now: time.Now()})
	ctx := context.Background()

	if got := c.ListSchools(ctx); len(got) != 0 {
		t.Fatalf("schools = %d, want 0 on upstream failure", len(got))
	}
	if page := c.Search(ctx, Query{}); page.Total != 0 || len(page.Items) != 0 {
		t.Errorf("search on failed catalog = %+v", page)
	}

	f.setFail("schools", false)
	if got := c.ListSchools(ctx); len(got) != 3 {
		t.Errorf("schools after recovery = %d, want 3", len(got))
	}
}

func TestCatalog_GetDetails(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCatalog(f, &clock{now: time.Now()})
	ctx := context.Background()

	d, ok := c.GetDetails(ctx, "  raffles   INSTITUTION ")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if !slices.Equal(d.Activities, []string{"Astronomy", "Chess"}) {
		t.Errorf("Activities = %v, want [Astronomy Chess]", d.Activities)
	}
	if !slices.Equal(d.Subjects, []string{"Biology", "PHYSICS"}) {
		t.Errorf("Subjects = %v", d.Subjects)
	}
	if d.Cutoffs["3"] != "6" || d.Cutoffs["2"] != "N/A" {
		t.Errorf("Cutoffs = %v", d.Cutoffs)
	}

	if _, ok := c.GetDetails(ctx, "Hogwarts"); ok {
		t.Error("unknown school must be not found")
	}
	if _, ok := c.GetDetails(ctx, ""); ok {
		t.Error("empty name must be not found")
	}
}

func TestCatalog_GetDetailsMemoized(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCatalog(f, &clock{now: time.Now()})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c.GetDetails(ctx, "Ai Tong School")
		c.GetDetails(ctx, "Raffles Institution")
	}
	for _, id := range []string{"ccas", "subjects", "cutoffs"} {
		if n := f.count(id); n != 1 {
			t.Errorf("%s fetches = %d, want 1", id, n)
		}
	}
}

func TestCatalog_EnrichmentFailureLeavesFieldsEmpty(t *testing.T) {
	f := newFakeFetcher()
	f.setFail("ccas", true)
	c := newTestCatalog(f, &clock{now: time.Now()})
	ctx := context.Background()

	d, ok := c.GetDetails(ctx, "Raffles Institution")
	if !ok {
		t.Fatal("details must still resolve when a table fails")
	}
	if len(d.Activities) != 0 {
		t.Errorf("Activities = %v, want empty", d.Activities)
	}
	if len(d.Subjects) != 2 {
		t.Errorf("Subjects = %v, want 2 entries", d.Subjects)
	}

	// Degraded details are not memoized, so recovery shows up immediately.
	f.setFail("ccas", false)
	d, _ = c.GetDetails(ctx, "Raffles Institution")
	if len(d.Activities) != 2 {
		t.Errorf("Activities after recovery = %v", d.Activities)
	}
}

func TestCatalog_CutoffsOptional(t *testing.T) {
	f := newFakeFetcher()
	ids := testIDs
	ids.Cutoffs = ""
	c := NewCatalog(f, cache.New(time.Minute), ids)

	d, ok := c.GetDetails(context.Background(), "Raffles Institution")
	if !ok || d.Cutoffs != nil {
		t.Errorf("Cutoffs = %v, want nil when disabled", d.Cutoffs)
	}
	if f.count("cutoffs") != 0 {
		t.Error("disabled cut-off table must not be fetched")
	}
}

func TestCatalog_Options(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCatalog(f, &clock{now: time.Now()})

	opts := c.Options(context.Background())
	checks := []struct {
		name string
		got  []string
		want []string
	}{
		{"levels", opts.Levels, []string{"PRIMARY", "SECONDARY"}},
		{"zones", opts.Zones, []string{"NORTH", "SOUTH"}},
		{"activities", opts.Activities, []string{"Astronomy", "Chess", "Choir"}},
		{"subjects", opts.Subjects, []string{"Biology", "Mathematics", "PHYSICS"}},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCatalog_OptionsFallbackSamplesDetails(t *testing.T) {
	f := newFakeFetcher()
	f.setFail("subjects", true)
	c := newTestCatalog(f, &clock{now: time.Now()})

	opts := c.Options(context.Background())
	if !slices.Equal(opts.Activities, []string{"Astronomy", "Chess", "Choir"}) {
		t.Errorf("activities = %v", opts.Activities)
	}
	if opts.Subjects == nil || len(opts.Subjects) != 0 {
		t.Errorf("subjects = %#v, want empty non-nil", opts.Subjects)
	}
}

func TestCatalog_Search(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCatalog(f, &clock{now: time.Now()})
	ctx := context.Background()

	tests := []struct {
		name      string
		q         Query
		wantTotal int
		wantItems int
		wantPages int
	}{
		{"all", Query{}, 3, 3, 1},
		{"text", Query{Text: "primary"}, 1, 1, 1},
		{"address text", Query{Text: "bright hill"}, 1, 1, 1},
		{"level", Query{Level: models.LevelPrimary}, 2, 2, 1},
		{"zone lower-case", Query{Zone: "north"}, 2, 2, 1},
		{"type", Query{Type: "government school"}, 1, 1, 1},
		{"paged", Query{Limit: 2}, 3, 2, 2},
		{"second page", Query{Limit: 2, Offset: 2}, 3, 1, 2},
		{"offset past end", Query{Limit: 2, Offset: 10}, 3, 0, 2},
		{"no match", Query{Text: "zzz"}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := c.Search(ctx, tt.q)
			if page.Total != tt.wantTotal || len(page.Items) != tt.wantItems || page.TotalPages != tt.wantPages {
				t.Errorf("Search(%+v) total=%d items=%d pages=%d, want %d/%d/%d",
					tt.q, page.Total, len(page.Items), page.TotalPages, tt.wantTotal, tt.wantItems, tt.wantPages)
			}
		})
	}
}

func TestCatalog_ConcurrentMissesFetchOnce(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCatalog(f, &clock{now: time.Now()})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetDetails(context.Background(), "Ai Tong School")
		}()
	}
	wg.Wait()

	if n := f.count("schools"); n != 1 {
		t.Errorf("schools fetches = %d, want 1", n)
	}
}
