// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" (see Data) or "error" (see Error).
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "count": 20},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 45,
//	    "request_id": "6f1c..."
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "UNAUTHORIZED",
//	    "message": "Preferences required: send them in the request or authenticate"
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - UNAUTHORIZED: Missing or invalid bearer identity where one is needed
//   - NOT_FOUND: Resource doesn't exist
//   - UPSTREAM_ERROR: Dataset or store unavailable
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SchoolPage is the paginated search result.
type SchoolPage struct {
	Items      []School `json:"items"`
	Total      int      `json:"total"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
	TotalPages int      `json:"total_pages"`
}

// Options lists the distinct values clients can filter and rank on.
type Options struct {
	Levels     []string `json:"levels"`
	Zones      []string `json:"zones"`
	Types      []string `json:"types"`
	Subjects   []string `json:"subjects"`
	Activities []string `json:"activities"`
}

// HealthStatus is returned by the readiness endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Schools int    `json:"schools"`
	Uptime  string `json:"uptime,omitempty"`
}
