// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package dataset

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/schoolscout/internal/cache"
	"github.com/tomtom215/schoolscout/internal/config"
	"github.com/tomtom215/schoolscout/internal/logging"
	"github.com/tomtom215/schoolscout/internal/models"
)

// Cache keys. Details are memoized per folded name under detailsPrefix.
const (
	keySchools    = "schools"
	keyActivities = "activities"
	keySubjects   = "subjects"
	keyCutoffs    = "cutoffs"
	detailsPrefix = "details:"
)

// optionSampleSize bounds the details fallback used by Options when an
// enrichment table is unavailable.
const optionSampleSize = 50

// IDs names the upstream datasets. Cutoffs is optional.
type IDs struct {
	Schools    string
	Activities string
	Subjects   string
	Cutoffs    string
}

// Catalog serves the schools dataset and its enrichment tables from a TTL
// cache, refetching lazily on expiry. Upstream failures degrade to empty
// results and are never cached.
type Catalog struct {
	fetcher Fetcher
	cache   cache.Cacher
	ids     IDs
	log     zerolog.Logger
}

// snapshot is one fetched schools table with a folded-name index.
type snapshot struct {
	schools []models.School
	index   map[string]int
}

// listTable maps folded school names to a deduped, sorted value list.
type listTable struct {
	bySchool map[string][]string
	all      []string
}

// cutoffTable maps folded school names to posting group -> cut-off.
type cutoffTable struct {
	bySchool map[string]map[string]string
}

// NewCatalog creates a catalog over fetcher using c for every table.
func NewCatalog(fetcher Fetcher, c cache.Cacher, ids IDs) *Catalog {
	return &Catalog{
		fetcher: fetcher,
		cache:   c,
		ids:     ids,
		log:     logging.WithComponent("dataset"),
	}
}

// NewFromConfig wires a data.gov.sg client and a named TTL cache.
func NewFromConfig(cfg config.DatasetConfig) (*Catalog, error) {
	client, err := NewClient(ClientConfig{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		MaxPages: cfg.MaxPages,
	})
	if err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := cache.New(ttl,
		cache.WithName("dataset"),
		cache.WithCleanupInterval(ttl))

	return NewCatalog(client, c, IDs{
		Schools:    cfg.SchoolsID,
		Activities: cfg.ActivitiesID,
		Subjects:   cfg.SubjectsID,
		Cutoffs:    cfg.CutoffsID,
	}), nil
}

// Close stops the cache janitor when the cache supports it.
func (c *Catalog) Close() {
	if closer, ok := c.cache.(interface{ Close() }); ok {
		closer.Close()
	}
}

// ListSchools returns every school. The slice is a copy; the School values
// share their maps and slices with the cache and must not be mutated.
func (c *Catalog) ListSchools(ctx context.Context) []models.School {
	return slices.Clone(c.snapshot(ctx).schools)
}

// Count returns the number of schools currently served.
func (c *Catalog) Count(ctx context.Context) int {
	return len(c.snapshot(ctx).schools)
}

// GetDetails returns the school named name (case-insensitive) enriched with
// its activities, subjects and cut-off points.
func (c *Catalog) GetDetails(ctx context.Context, name string) (models.School, bool) {
	key := FoldKey(name)
	if key == "" {
		return models.School{}, false
	}

	snap := c.snapshot(ctx)
	idx, ok := snap.index[key]
	if !ok {
		return models.School{}, false
	}
	base := snap.schools[idx]

	school := cache.Fetch(c.cache, detailsPrefix+key, func() (models.School, bool) {
		return c.enrich(ctx, base, key)
	})
	return school, true
}

// Options returns the distinct filterable values. Activities and subjects
// come from the full enrichment tables, or from a sample of school details
// when a table is unavailable.
func (c *Catalog) Options(ctx context.Context) models.Options {
	snap := c.snapshot(ctx)

	levels := newDistinct()
	zones := newDistinct()
	types := newDistinct()
	for _, s := range snap.schools {
		levels.add(s.Level)
		zones.add(s.Zone)
		types.add(s.Type)
	}

	opts := models.Options{
		Levels: levels.sorted(),
		Zones:  zones.sorted(),
		Types:  types.sorted(),
	}

	var activities, subjects listTable
	var activitiesOK, subjectsOK bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		activities, activitiesOK = c.listTable(gctx, keyActivities, c.ids.Activities, ActivityOf)
		return nil
	})
	g.Go(func() error {
		subjects, subjectsOK = c.listTable(gctx, keySubjects, c.ids.Subjects, SubjectOf)
		return nil
	})
	_ = g.Wait()

	opts.Activities = activities.all
	opts.Subjects = subjects.all

	if !activitiesOK || !subjectsOK {
		sampledActivities, sampledSubjects := newDistinct(), newDistinct()
		for i, s := range snap.schools {
			if i >= optionSampleSize {
				break
			}
			d, ok := c.GetDetails(ctx, s.Name)
			if !ok {
				continue
			}
			for _, a := range d.Activities {
				sampledActivities.add(a)
			}
			for _, sub := range d.Subjects {
				sampledSubjects.add(sub)
			}
		}
		if !activitiesOK {
			opts.Activities = sampledActivities.sorted()
		}
		if !subjectsOK {
			opts.Subjects = sampledSubjects.sorted()
		}
	}

	if opts.Activities == nil {
		opts.Activities = []string{}
	}
	if opts.Subjects == nil {
		opts.Subjects = []string{}
	}
	return opts
}

// Query filters and paginates the catalog for search.
type Query struct {
	// Text is matched as a case-insensitive substring of name or address.
	Text string
	// Level must already be canonical (models.NormalizeLevel).
	Level  string
	Zone   string
	Type   string
	Limit  int
	Offset int
}

// Search returns one page of schools matching q, ordered by name.
func (c *Catalog) Search(ctx context.Context, q Query) models.SchoolPage {
	text := FoldKey(q.Text)
	zone := upper(q.Zone)
	typ := upper(q.Type)

	var matched []models.School
	for _, s := range c.snapshot(ctx).schools {
		if q.Level != "" && models.NormalizeLevel(s.Level) != q.Level {
			continue
		}
		if zone != "" && s.Zone != zone {
			continue
		}
		if typ != "" && s.Type != typ {
			continue
		}
		if text != "" && !strings.Contains(FoldKey(s.Name), text) && !strings.Contains(FoldKey(s.Address), text) {
			continue
		}
		matched = append(matched, s)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := max(q.Offset, 0)

	result := models.SchoolPage{
		Items:      []models.School{},
		Total:      len(matched),
		Limit:      limit,
		Offset:     offset,
		TotalPages: (len(matched) + limit - 1) / limit,
	}
	if offset < len(matched) {
		end := min(offset+limit, len(matched))
		result.Items = matched[offset:end]
	}
	return result
}

func (c *Catalog) snapshot(ctx context.Context) snapshot {
	return cache.Fetch(c.cache, keySchools, func() (snapshot, bool) {
		rows, err := c.fetcher.FetchAll(ctx, c.ids.Schools)
		if err != nil {
			c.log.Warn().Err(err).Str("dataset", c.ids.Schools).Msg("Schools fetch failed, serving empty catalog")
			return snapshot{index: map[string]int{}}, false
		}
		return buildSnapshot(rows), true
	})
}

func buildSnapshot(rows []Row) snapshot {
	snap := snapshot{
		schools: make([]models.School, 0, len(rows)),
		index:   make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		s, ok := NormalizeSchool(row)
		if !ok {
			continue
		}
		key := FoldKey(s.Name)
		if _, dup := snap.index[key]; dup {
			continue
		}
		snap.index[key] = len(snap.schools)
		snap.schools = append(snap.schools, s)
	}
	slices.SortStableFunc(snap.schools, func(a, b models.School) int {
		return compareFolded(a.Name, b.Name)
	})
	for i, s := range snap.schools {
		snap.index[FoldKey(s.Name)] = i
	}
	return snap
}

// enrich builds the details record. It is only memoized when every
// enrichment table was available.
func (c *Catalog) enrich(ctx context.Context, base models.School, key string) (models.School, bool) {
	var activities, subjects listTable
	var cutoffs cutoffTable
	var activitiesOK, subjectsOK, cutoffsOK bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		activities, activitiesOK = c.listTable(gctx, keyActivities, c.ids.Activities, ActivityOf)
		return nil
	})
	g.Go(func() error {
		subjects, subjectsOK = c.listTable(gctx, keySubjects, c.ids.Subjects, SubjectOf)
		return nil
	})
	g.Go(func() error {
		cutoffs, cutoffsOK = c.cutoffTable(gctx)
		return nil
	})
	_ = g.Wait()

	school := base
	school.Activities = nonNil(activities.bySchool[key])
	school.Subjects = nonNil(subjects.bySchool[key])
	if m := cutoffs.bySchool[key]; len(m) > 0 {
		school.Cutoffs = maps.Clone(m)
	}

	return school, activitiesOK && subjectsOK && cutoffsOK
}

func (c *Catalog) listTable(ctx context.Context, key, datasetID string, extract func(Row) (string, string)) (listTable, bool) {
	if datasetID == "" {
		return listTable{}, true
	}

	table := cache.Fetch(c.cache, key, func() (*listTable, bool) {
		rows, err := c.fetcher.FetchAll(ctx, datasetID)
		if err != nil {
			c.log.Warn().Err(err).Str("table", key).Msg("Enrichment fetch failed")
			return nil, false
		}
		return buildListTable(rows, extract), true
	})
	if table == nil {
		return listTable{}, false
	}
	return *table, true
}

func buildListTable(rows []Row, extract func(Row) (string, string)) *listTable {
	per := make(map[string]*distinct)
	all := newDistinct()
	for _, row := range rows {
		school, value := extract(row)
		if school == "" || value == "" {
			continue
		}
		key := FoldKey(school)
		d, ok := per[key]
		if !ok {
			d = newDistinct()
			per[key] = d
		}
		d.add(value)
		all.add(value)
	}

	table := &listTable{
		bySchool: make(map[string][]string, len(per)),
		all:      all.sorted(),
	}
	for key, d := range per {
		table.bySchool[key] = d.sorted()
	}
	return table
}

func (c *Catalog) cutoffTable(ctx context.Context) (cutoffTable, bool) {
	if c.ids.Cutoffs == "" {
		return cutoffTable{}, true
	}

	table := cache.Fetch(c.cache, keyCutoffs, func() (*cutoffTable, bool) {
		rows, err := c.fetcher.FetchAll(ctx, c.ids.Cutoffs)
		if err != nil {
			c.log.Warn().Err(err).Str("table", keyCutoffs).Msg("Enrichment fetch failed")
			return nil, false
		}
		t := &cutoffTable{bySchool: make(map[string]map[string]string)}
		for _, row := range rows {
			school, group, value := CutoffOf(row)
			if school == "" || group == "" {
				continue
			}
			key := FoldKey(school)
			if t.bySchool[key] == nil {
				t.bySchool[key] = make(map[string]string)
			}
			if _, exists := t.bySchool[key][group]; !exists {
				t.bySchool[key][group] = value
			}
		}
		return t, true
	})
	if table == nil {
		return cutoffTable{}, false
	}
	return *table, true
}

// distinct collects values deduped case-insensitively; the first spelling
// seen wins.
type distinct struct {
	seen   map[string]bool
	values []string
}

func newDistinct() *distinct {
	return &distinct{seen: make(map[string]bool)}
}

func (d *distinct) add(v string) {
	v = collapse(v)
	if v == "" {
		return
	}
	key := FoldKey(v)
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.values = append(d.values, v)
}

func (d *distinct) sorted() []string {
	out := slices.Clone(d.values)
	slices.SortFunc(out, compareFolded)
	if out == nil {
		out = []string{}
	}
	return out
}

// compareFolded orders case-insensitively, then by exact spelling.
func compareFolded(a, b string) int {
	if c := strings.Compare(FoldKey(a), FoldKey(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
