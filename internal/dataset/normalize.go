// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package dataset

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tomtom215/schoolscout/internal/models"
)

// Upstream column aliases, in priority order.
var (
	nameAliases      = []string{"school_name", "name"}
	postalAliases    = []string{"postal_code", "postal"}
	levelAliases     = []string{"mainlevel_code", "level"}
	zoneAliases      = []string{"zone_code", "zone"}
	typeAliases      = []string{"type_code", "type"}
	addressAliases   = []string{"address", "address1"}
	latitudeAliases  = []string{"latitude", "lat"}
	longitudeAliases = []string{"longitude", "lng", "lon"}

	activityAliases = []string{"cca_generic_name", "cca_customized_name", "cca_name", "cca"}
	subjectAliases  = []string{"subject_desc", "subject_name", "subject"}
	groupAliases    = []string{"posting_group", "group"}
	cutoffAliases   = []string{"cut_off_point", "cutoff", "cop"}
)

// knownSchoolFields are consumed by NormalizeSchool and never copied into
// School.Extra.
var knownSchoolFields = func() map[string]bool {
	known := make(map[string]bool)
	for _, list := range [][]string{
		nameAliases, postalAliases, levelAliases, zoneAliases,
		typeAliases, addressAliases, latitudeAliases, longitudeAliases,
	} {
		for _, k := range list {
			known[k] = true
		}
	}
	// data.gov.sg row id, meaningless outside the API.
	known["_id"] = true
	return known
}()

// pick returns the first non-empty value among aliases. Keys are matched
// exactly first, then case-insensitively.
func pick(row Row, aliases []string) string {
	for _, k := range aliases {
		if v := strings.TrimSpace(row[k]); v != "" {
			return v
		}
	}
	for _, k := range aliases {
		for rk, v := range row {
			if strings.EqualFold(rk, k) {
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// NormalizeSchool maps an upstream row onto models.School. Rows without a
// name are rejected.
func NormalizeSchool(row Row) (models.School, bool) {
	name := collapse(pick(row, nameAliases))
	if name == "" {
		return models.School{}, false
	}

	s := models.School{
		Name:       name,
		PostalCode: normalizePostal(pick(row, postalAliases)),
		Level:      upper(pick(row, levelAliases)),
		Zone:       upper(pick(row, zoneAliases)),
		Type:       upper(pick(row, typeAliases)),
		Address:    collapse(pick(row, addressAliases)),
	}

	lat, latOK := parseFloat(pick(row, latitudeAliases), 90)
	lon, lonOK := parseFloat(pick(row, longitudeAliases), 180)
	if latOK && lonOK {
		s.Latitude, s.Longitude = &lat, &lon
	}

	for k, v := range row {
		if knownSchoolFields[strings.ToLower(k)] || v == "" {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]string)
		}
		s.Extra[k] = v
	}

	return s, true
}

// ActivityOf extracts the (school name, activity) pair of an activity row.
func ActivityOf(row Row) (school, activity string) {
	return collapse(pick(row, nameAliases)), collapse(pick(row, activityAliases))
}

// SubjectOf extracts the (school name, subject) pair of a subject row.
func SubjectOf(row Row) (school, subject string) {
	return collapse(pick(row, nameAliases)), collapse(pick(row, subjectAliases))
}

// CutoffOf extracts (school name, posting group, value) from a cut-off row.
// Missing values become "N/A".
func CutoffOf(row Row) (school, group, value string) {
	school = collapse(pick(row, nameAliases))
	group = collapse(pick(row, groupAliases))
	value = pick(row, cutoffAliases)
	if value == "" || strings.EqualFold(value, "na") || strings.EqualFold(value, "n/a") || value == "-" {
		value = "N/A"
	}
	return school, group, value
}

// FoldKey returns the case-insensitive identity used for school names,
// activities and subjects.
func FoldKey(s string) string {
	return cases.Fold().String(collapse(s))
}

// normalizePostal restores leading zeros lost when the upstream serves a
// postal code as a number.
func normalizePostal(s string) string {
	if s == "" || len(s) >= 6 {
		return s
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
	}
	return strings.Repeat("0", 6-len(s)) + s
}

func parseFloat(s string, limit float64) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v || v < -limit || v > limit {
		return 0, false
	}
	return v, true
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func upper(s string) string {
	return strings.ToUpper(collapse(s))
}
