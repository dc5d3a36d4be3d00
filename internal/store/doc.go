// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package store persists user preferences in BadgerDB, keyed by the bearer
// subject. An empty path opens an in-memory database, which is what tests
// and single-node development use.
//
// Values are JSON-encoded records carrying the preferences and the time they
// were last written. The store also runs as a supervised service that
// periodically reclaims value-log space.
package store
