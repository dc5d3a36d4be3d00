// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package models

import "strings"

// Preferences is what a user wants from a school. Every field is optional.
// Location is either a 6-digit postal code or a free-form address; an
// explicit Latitude/Longitude pair takes priority over it.
type Preferences struct {
	Level         string   `json:"level,omitempty" validate:"omitempty,max=64"`
	MaxDistanceKM *float64 `json:"max_distance_km,omitempty" validate:"omitempty,gte=0,lte=1000"`
	Subjects      []string `json:"subjects,omitempty" validate:"omitempty,max=100,dive,max=128"`
	Activities    []string `json:"activities,omitempty" validate:"omitempty,max=100,dive,max=128"`
	Location      string   `json:"location,omitempty" validate:"omitempty,max=256"`
	Latitude      *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"lon,omitempty" validate:"omitempty,longitude"`
}

// IsEmpty reports whether none of the ranking inputs are set. Location on
// its own does not count: without a distance it cannot influence a score.
func (p *Preferences) IsEmpty() bool {
	if p == nil {
		return true
	}
	return strings.TrimSpace(p.Level) == "" &&
		p.MaxDistanceKM == nil &&
		len(nonBlank(p.Subjects)) == 0 &&
		len(nonBlank(p.Activities)) == 0
}

// Normalized returns a copy with list entries trimmed and blanks dropped.
func (p Preferences) Normalized() Preferences {
	p.Level = strings.TrimSpace(p.Level)
	p.Location = strings.TrimSpace(p.Location)
	p.Subjects = nonBlank(p.Subjects)
	p.Activities = nonBlank(p.Activities)
	return p
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
