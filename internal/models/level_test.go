// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package models

import "testing"

func TestNormalizeLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"primary", LevelPrimary},
		{"PRI", LevelPrimary},
		{"P", LevelPrimary},
		{"ps", LevelPrimary},
		{"Primary  School", LevelPrimary},
		{"sec", LevelSecondary},
		{"S", LevelSecondary},
		{" secondary ", LevelSecondary},
		{"JC", LevelJuniorCollege},
		{"j.c.", LevelJuniorCollege},
		{"Junior Colleges", LevelJuniorCollege},
		{"mixed", LevelMixed},
		{"MIXED LEVELS", LevelMixed},
		{"ci", LevelCentralisedInstitute},
		{"Centralised Institute", LevelCentralisedInstitute},
		{"international   baccalaureate", "INTERNATIONAL BACCALAUREATE"},
	}

	for _, tt := range tests {
		if got := NormalizeLevel(tt.in); got != tt.want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLevel_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"pri", "sec", "jc", "mixed", "ci", "other thing"} {
		once := NormalizeLevel(in)
		if twice := NormalizeLevel(once); twice != once {
			t.Errorf("NormalizeLevel not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
