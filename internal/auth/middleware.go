// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/schoolscout/internal/logging"
)

type contextKey string

const subjectContextKey contextKey = "auth-subject"

// Identifier resolves the bearer identity of a request. It never rejects a
// request on its own; handlers that need an identity check for one.
type Identifier struct {
	manager *JWTManager
}

// NewIdentifier wraps manager. A nil manager identifies nobody.
func NewIdentifier(manager *JWTManager) *Identifier {
	return &Identifier{manager: manager}
}

// Authenticate returns the subject of r's bearer token.
func (i *Identifier) Authenticate(r *http.Request) (string, error) {
	token := bearerToken(r)
	if token == "" {
		return "", ErrMissingToken
	}
	if i == nil || i.manager == nil {
		return "", ErrInvalidToken
	}
	claims, err := i.manager.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Middleware attaches the subject of a valid bearer token to the request
// context and passes every request through.
func (i *Identifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := i.Authenticate(r)
		switch {
		case err == nil:
			ctx := ContextWithSubject(r.Context(), subject)
			ctx = logging.ContextWithUserID(ctx, subject)
			r = r.WithContext(ctx)
		case errors.Is(err, ErrMissingToken):
		default:
			ev := logging.Ctx(r.Context()).Debug().Err(err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				ev = ev.Bool("expired", true)
			}
			ev.Msg("Ignoring bearer token")
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithSubject returns ctx carrying subject.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// SubjectFromContext returns the authenticated subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	return subject, ok && subject != ""
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
