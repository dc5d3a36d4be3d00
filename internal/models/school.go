// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package models

// School is one normalized row of the schools dataset, optionally enriched
// with its activities, subjects and cut-off points.
//
// Name is the identity and is compared case-insensitively. Fields the
// upstream returns that have no canonical slot are kept in Extra.
// A School is never mutated after it has been built; enrichment produces a
// copy.
type School struct {
	Name       string   `json:"school_name"`
	PostalCode string   `json:"postal_code,omitempty"`
	Level      string   `json:"level,omitempty"`
	Zone       string   `json:"zone,omitempty"`
	Type       string   `json:"type,omitempty"`
	Address    string   `json:"address,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`

	Activities []string          `json:"ccas,omitempty"`
	Subjects   []string          `json:"subjects,omitempty"`
	Cutoffs    map[string]string `json:"cutoffs,omitempty"`
}

// HasCoordinates reports whether both coordinates are known.
func (s *School) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// WithCoordinates returns a copy of s located at lat/lon.
func (s School) WithCoordinates(lat, lon float64) School {
	s.Latitude = &lat
	s.Longitude = &lon
	return s
}
