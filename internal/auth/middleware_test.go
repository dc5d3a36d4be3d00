// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(r); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestIdentifier_Authenticate(t *testing.T) {
	m := newTestManager(t, "")
	id := NewIdentifier(m)
	token, _ := m.GenerateToken("user-1", time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := id.Authenticate(r); !errors.Is(err, ErrMissingToken) {
		t.Errorf("no header = %v, want ErrMissingToken", err)
	}

	r.Header.Set("Authorization", "Bearer "+token)
	subject, err := id.Authenticate(r)
	if err != nil || subject != "user-1" {
		t.Errorf("Authenticate = %q, %v", subject, err)
	}

	if _, err := NewIdentifier(nil).Authenticate(r); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("nil manager = %v, want ErrInvalidToken", err)
	}
}

func TestIdentifier_Middleware(t *testing.T) {
	m := newTestManager(t, "")
	token, _ := m.GenerateToken("user-7", time.Minute)

	var gotSubject string
	var gotOK bool
	handler := NewIdentifier(m).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, gotOK = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name        string
		header      string
		wantSubject string
		wantOK      bool
	}{
		{"anonymous", "", "", false},
		{"valid", "Bearer " + token, "user-7", true},
		{"invalid passes through", "Bearer nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != http.StatusNoContent {
				t.Errorf("status = %d, want 204", w.Code)
			}
			if gotSubject != tt.wantSubject || gotOK != tt.wantOK {
				t.Errorf("subject = %q/%v, want %q/%v", gotSubject, gotOK, tt.wantSubject, tt.wantOK)
			}
		})
	}
}

func TestSubjectFromContext(t *testing.T) {
	if _, ok := SubjectFromContext(context.Background()); ok {
		t.Error("empty context should have no subject")
	}
	if _, ok := SubjectFromContext(ContextWithSubject(context.Background(), "")); ok {
		t.Error("blank subject should not count")
	}
	if s, ok := SubjectFromContext(ContextWithSubject(context.Background(), "x")); !ok || s != "x" {
		t.Errorf("got %q/%v", s, ok)
	}
}
