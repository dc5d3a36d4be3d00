// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package recommend

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tomtom215/schoolscout/internal/models"
)

// Score computes the weighted total for one school:
//
//	total = w.CCA*cca + w.Subjects*subjects + w.Level*level + w.Distance*distance
//
// Every factor is in [0,1] and is always computed; a zero weight simply
// multiplies it away. userCoords may be nil.
func Score(school *models.School, prefs *models.Preferences, w Weights, userCoords *Coords) (float64, Reasons) {
	reasons := Reasons{Weights: w}

	reasons.CCAScore, reasons.CCAMatches = overlap(prefs.Activities, school.Activities)
	reasons.SubjectScore, reasons.SubjectMatches = overlap(prefs.Subjects, school.Subjects)

	if want := models.NormalizeLevel(prefs.Level); want != "" {
		reasons.LevelMatch = models.NormalizeLevel(school.Level) == want
	}
	if reasons.LevelMatch {
		reasons.LevelScore = 1
	}

	if userCoords != nil && school.HasCoordinates() {
		d := Haversine(*userCoords, Coords{Lat: *school.Latitude, Lon: *school.Longitude})
		reasons.DistanceKM = &d
		if prefs.MaxDistanceKM != nil {
			reasons.DistanceScore = DistanceScore(d, *prefs.MaxDistanceKM)
		}
	}

	total := w.CCA*reasons.CCAScore +
		w.Subjects*reasons.SubjectScore +
		w.Level*reasons.LevelScore +
		w.Distance*reasons.DistanceScore

	return total, reasons
}

// ScorePercent maps a total onto 0..100.
func ScorePercent(score float64) int {
	return int(math.Round(math.Max(0, math.Min(1, score)) * 100))
}

// overlap returns |want ∩ have| / |want| compared case-insensitively, and
// the matched values in have's spelling. An empty want scores 0.
func overlap(want, have []string) (float64, []string) {
	wanted := make(map[string]bool, len(want))
	for _, v := range want {
		if k := fold(v); k != "" {
			wanted[k] = true
		}
	}
	if len(wanted) == 0 {
		return 0, []string{}
	}

	matched := make(map[string]bool, len(wanted))
	matches := []string{}
	for _, v := range have {
		k := fold(v)
		if !wanted[k] || matched[k] {
			continue
		}
		matched[k] = true
		matches = append(matches, strings.TrimSpace(v))
	}
	slices.Sort(matches)

	return float64(len(matched)) / float64(len(wanted)), matches
}

func fold(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
