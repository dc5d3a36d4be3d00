// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	_ "github.com/tomtom215/schoolscout/docs"
)

func TestRouter_SwaggerDocument(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.BasePath != "/api/v1" {
		t.Errorf("basePath = %q", doc.BasePath)
	}
	for _, path := range []string{
		"/health/live", "/health/ready",
		"/schools", "/schools/details", "/schools/options", "/schools/recommend",
		"/preferences",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("path %s is not documented", path)
		}
	}
}

func TestRecommendDoc_MatchesWireFields(t *testing.T) {
	t.Parallel()

	tags := func(v any) []string {
		var out []string
		typ := reflect.TypeOf(v)
		for i := range typ.NumField() {
			out = append(out, strings.Split(typ.Field(i).Tag.Get("json"), ",")[0])
		}
		slices.Sort(out)
		return out
	}

	if got, want := tags(recommendDoc{}), tags(recommendRequest{}); !slices.Equal(got, want) {
		t.Errorf("documented fields = %v, want %v", got, want)
	}
}
