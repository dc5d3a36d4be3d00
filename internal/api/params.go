// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"bytes"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// parseFloat returns nil for anything that is not a finite number.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// wholeNumber accepts integral values ("10", "10.0") of sane magnitude.
func wholeNumber(f *float64) (int, bool) {
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > 1e9 {
		return 0, false
	}
	return int(*f), true
}

// splitList splits comma-separated values and drops blanks.
func splitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// firstQuery returns the first non-blank value among keys.
func firstQuery(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// flexFloat decodes a JSON number or numeric string. Anything else,
// including non-finite values, decodes as absent without an error.
type flexFloat struct {
	v *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	f.v = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		f.v = parseFloat(s)
		return nil
	}
	f.v = parseFloat(string(data))
	return nil
}

// flexString decodes a JSON string or number as text; anything else is
// empty.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = flexString(strings.TrimSpace(v))
		}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*s = flexString(data)
	}
	return nil
}

// flexList decodes an array of strings or numbers, or a comma-separated
// string. Other element types are skipped.
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*l = splitList(s)
		}
	case '[':
		var items []flexString
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		for _, it := range items {
			if it != "" {
				*l = append(*l, string(it))
			}
		}
	}
	return nil
}
