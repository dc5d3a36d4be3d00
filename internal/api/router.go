// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/schoolscout/internal/auth"
	"github.com/tomtom215/schoolscout/internal/middleware"
)

// RouterOptions tunes the router.
type RouterOptions struct {
	// RequestTimeout bounds each API request. Zero disables the bound.
	RequestTimeout time.Duration

	// SlowRequest is the threshold for slow request warnings.
	SlowRequest time.Duration
}

// Router wires handlers and middleware.
type Router struct {
	handler       *Handler
	identifier    *auth.Identifier
	chiMiddleware *ChiMiddleware
	opts          RouterOptions
}

// NewRouter creates a router. identifier may be nil, in which case every
// request is anonymous.
func NewRouter(handler *Handler, identifier *auth.Identifier, mw *ChiMiddleware, opts RouterOptions) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		identifier:    identifier,
		chiMiddleware: mw,
		opts:          opts,
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics(router.opts.SlowRequest))
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// Probes stay outside the limiter.
		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chimiddleware.Compress(5, "application/json"))
			if router.opts.RequestTimeout > 0 {
				r.Use(chimiddleware.Timeout(router.opts.RequestTimeout))
			}
			if router.identifier != nil {
				r.Use(router.identifier.Middleware)
			}

			r.Get("/schools", router.handler.Schools)
			r.Get("/schools/details", router.handler.SchoolDetails)
			r.Get("/schools/options", router.handler.SchoolOptions)
			r.Get("/schools/recommend", router.handler.Recommend)
			r.Post("/schools/recommend", router.handler.Recommend)

			r.Get("/preferences", router.handler.GetPreferences)
			r.Put("/preferences", router.handler.PutPreferences)
		})
	})

	return r
}
