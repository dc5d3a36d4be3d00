// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package logging provides zerolog-based structured logging for Schoolscout.
//
// # Overview
//
// A single global zerolog logger is configured once at startup with Init and
// read through the level helpers (Info, Warn, Debug, ...). Components derive
// their own child logger with WithComponent so every line carries a
// "component" field.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("schools", n).Msg("Catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Geocode provider failed")
//
// # Context
//
// HTTP middleware stores the request ID, a short correlation ID and, for
// authenticated calls, the user ID in the request context. Ctx(ctx) returns
// a logger with those fields pre-populated.
//
// # slog
//
// SlogHandler bridges slog to zerolog for libraries that require
// *slog.Logger, such as the supervisor's sutureslog event hook.
package logging
