// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

/*
Package metrics provides Prometheus instrumentation for Schoolscout.

All collectors are registered on the default registry with promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - schoolscout_api_requests_total{method,endpoint,status}
  - schoolscout_api_request_duration_seconds{method,endpoint}
  - schoolscout_api_active_requests

Caches:
  - schoolscout_cache_hits_total{cache}
  - schoolscout_cache_misses_total{cache}
  - schoolscout_cache_entries{cache}

Upstreams:
  - schoolscout_geocode_lookups_total{route,outcome}
  - schoolscout_geocode_provider_requests_total{provider,outcome}
  - schoolscout_dataset_fetch_total{dataset,outcome}
  - schoolscout_dataset_fetch_duration_seconds{dataset}
  - schoolscout_dataset_rows{dataset}
  - schoolscout_circuit_breaker_state{name}
  - schoolscout_circuit_breaker_requests_total{name,result}
  - schoolscout_circuit_breaker_state_transitions_total{name,from_state,to_state}

Ranking and storage:
  - schoolscout_recommend_duration_seconds
  - schoolscout_recommend_candidates
  - schoolscout_preference_operations_total{operation,result}

Callers use the Record* helpers rather than the collectors directly.
*/
package metrics
