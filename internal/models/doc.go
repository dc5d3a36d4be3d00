// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

/*
Package models defines the data structures shared across Schoolscout.

Key types:

  - School: a normalized schools-dataset row plus optional enrichment
    (activities, subjects, cut-off points). Unknown upstream fields are
    preserved in School.Extra.
  - Preferences: user ranking inputs (level, max distance, subjects,
    activities, location). Stored per user and accepted inline on
    recommend requests.
  - APIResponse, Metadata, APIError: the JSON envelope used by every HTTP
    endpoint.
  - SchoolPage, Options, HealthStatus: endpoint payloads.

Scored results live in internal/recommend since they only exist for the
duration of one request.
*/
package models
