// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/schoolscout/internal/models"
)

// HealthLive reports that the process is serving.
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// HealthReady reports whether the school catalog has loaded. An empty
// catalog means the upstream dataset is unreachable.
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	n := h.catalog.Count(r.Context())
	health := models.HealthStatus{
		Status:  "ready",
		Schools: n,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}
	if n == 0 {
		health.Status = "not_ready"
		rw.Status(http.StatusServiceUnavailable, "error", health)
		return
	}
	rw.Success(health)
}
