// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

/*
Package main is the entry point for the Schoolscout server.

Schoolscout serves school search and personalised recommendations over a
JSON API. School records come from an open-data API and are cached in
memory; user locations are geocoded through OneMap with Nominatim as a
fallback.

# Process Layout

	RootSupervisor ("schoolscout")
	├── DataSupervisor ("data-layer")
	│   └── preference store value-log GC
	└── APISupervisor ("api-layer")
	    └── HTTP server

# Configuration

Configuration is loaded via Koanf v2 (environment > config file > defaults).
Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	JWT_SECRET=<32+ chars>       # enables stored preferences
	STORE_PATH=/data/prefs       # empty keeps preferences in memory
	DATASET_TTL=10m
	GEOCODE_POSTAL_TTL=720h
	CORS_ORIGINS=https://example.org

Set CONFIG_PATH to load a YAML file.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
up to SHUTDOWN_TIMEOUT, then caches and the store are closed.
*/
package main
