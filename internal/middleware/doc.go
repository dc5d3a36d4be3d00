// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

/*
Package middleware provides the service's own HTTP middleware. Generic
concerns (panic recovery, real IP, compression, CORS, rate limiting) come
from chi and its companion modules; this package adds the two pieces that
tie requests to our logging and metrics.

  - RequestID: accepts or generates an X-Request-ID and seeds the logging
    context with it and a fresh correlation id
  - Metrics: Prometheus request counters and latency keyed by the chi route
    pattern, plus a warning log for slow requests

Usage with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics(time.Second))
*/
package middleware
