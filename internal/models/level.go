// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package models

import "strings"

// Canonical education levels as published in the schools dataset.
const (
	LevelPrimary              = "PRIMARY"
	LevelSecondary            = "SECONDARY"
	LevelJuniorCollege        = "JUNIOR COLLEGE"
	LevelMixed                = "MIXED LEVELS"
	LevelCentralisedInstitute = "CENTRALISED INSTITUTE"
)

var levelAliases = map[string]string{
	"primary":        LevelPrimary,
	"pri":            LevelPrimary,
	"p":              LevelPrimary,
	"ps":             LevelPrimary,
	"primary school": LevelPrimary,

	"secondary":        LevelSecondary,
	"sec":              LevelSecondary,
	"s":                LevelSecondary,
	"secondary school": LevelSecondary,

	"jc":              LevelJuniorCollege,
	"j.c.":            LevelJuniorCollege,
	"junior college":  LevelJuniorCollege,
	"junior colleges": LevelJuniorCollege,

	"mixed":        LevelMixed,
	"mixed level":  LevelMixed,
	"mixed levels": LevelMixed,

	"centralised institute": LevelCentralisedInstitute,
	"ci":                    LevelCentralisedInstitute,
}

// NormalizeLevel maps a free-text level onto its canonical form. Unknown
// values are upper-cased with whitespace collapsed; empty stays empty.
func NormalizeLevel(level string) string {
	collapsed := strings.Join(strings.Fields(level), " ")
	if collapsed == "" {
		return ""
	}
	if canonical, ok := levelAliases[strings.ToLower(collapsed)]; ok {
		return canonical
	}
	return strings.ToUpper(collapsed)
}
