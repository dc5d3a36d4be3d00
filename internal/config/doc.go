// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package config loads Schoolscout configuration with koanf v2.
//
// # Sources
//
// Configuration is layered, later sources overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/schoolscout/config.yaml
//  3. Environment variables listed in envMappings
//
// # Environment Variables
//
// Server:
//   - HTTP_PORT, HTTP_HOST, READ_TIMEOUT, WRITE_TIMEOUT, SHUTDOWN_TIMEOUT, REQUEST_TIMEOUT
//
// Dataset:
//   - DATASET_BASE_URL, DATASET_SCHOOLS_ID, DATASET_ACTIVITIES_ID, DATASET_SUBJECTS_ID
//   - DATASET_CUTOFFS_ID (optional), DATASET_TIMEOUT, DATASET_TTL, DATASET_MAX_PAGES
//
// Geocoding:
//   - GEOCODE_PRIMARY_URL, GEOCODE_SECONDARY_URL, GEOCODE_USER_AGENT
//   - GEOCODE_TIMEOUT, GEOCODE_POSTAL_TTL, GEOCODE_ADDRESS_TTL
//   - GEOCODE_RATE_PER_SECOND, GEOCODE_RATE_BURST
//
// Ranking:
//   - RECOMMEND_WEIGHT_CCA, RECOMMEND_WEIGHT_SUBJECTS, RECOMMEND_WEIGHT_LEVEL, RECOMMEND_WEIGHT_DISTANCE
//   - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_LOCATE_CONCURRENCY
//
// Security and storage:
//   - CORS_ORIGINS (comma separated), RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//   - JWT_SECRET, JWT_ISSUER, STORE_PATH
//
// Durations accept Go duration syntax ("10m", "24h").
package config
