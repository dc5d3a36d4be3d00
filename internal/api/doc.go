// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package api exposes school search, details, options, recommendations and
// stored preferences over HTTP using the chi router.
//
// Every response uses the models.APIResponse envelope:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":...,"request_id":...}}
//	{"status":"error","error":{"code":"UNAUTHORIZED","message":"..."},"metadata":{...}}
//
// Handlers depend on small interfaces (Catalog, Recommender, PreferenceStore)
// rather than concrete packages so they can be exercised with fakes.
//
// # Routes
//
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	GET  /metrics
//	GET  /api/v1/schools
//	GET  /api/v1/schools/details?name=
//	GET  /api/v1/schools/options
//	GET  /api/v1/schools/recommend
//	POST /api/v1/schools/recommend
//	GET  /api/v1/preferences
//	PUT  /api/v1/preferences
//
// Recommendation input is lenient: malformed numbers are treated as absent
// rather than rejected. Weights and stored preferences are strict.
package api
