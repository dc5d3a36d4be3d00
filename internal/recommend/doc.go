// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package recommend scores and ranks schools against a user's preferences.
//
// # Scoring
//
// Each school receives four factor scores in [0,1]:
//
//   - cca: |wanted ∩ offered| / |wanted| over co-curricular activities
//   - subjects: the same ratio over subjects
//   - level: 1 when the canonical levels match, else 0
//   - distance: max(0, 1 - d/max) using the haversine distance d
//
// The total is the weighted sum. Weights default to {cca 0.4, subjects 0.25,
// level 0.15, distance 0.2} and may be overridden per request. Factors the
// user gave no input for score 0, as does distance whenever either side's
// coordinates are unknown.
//
// # Ranking
//
// Engine.Rank pre-filters on level, zone and type (falling back to the whole
// pool if the filters match nothing), fetches details only when activities
// or subjects are wanted, resolves missing school coordinates only when
// distance can contribute, and sorts by score descending then
// case-insensitive name. Ranking is deterministic for a given input.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalog, catalog, resolver)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, prefs, nil, recommend.Filters{}, 10)
package recommend
