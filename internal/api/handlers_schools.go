// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/schoolscout/internal/dataset"
	"github.com/tomtom215/schoolscout/internal/models"
	"github.com/tomtom215/schoolscout/internal/validation"
)

// Schools searches the catalog.
//
// Query: q, level, zone, type, limit (1..500, default 20), offset.
// @Summary Search schools
// @Tags Schools
// @Produce json
// @Param q query string false "Case-insensitive name substring"
// @Param level query string false "Level, aliases accepted (pri, sec, jc)"
// @Param zone query string false "Zone code"
// @Param type query string false "School type"
// @Param limit query int false "Page size, 1 to 500" default(20)
// @Param offset query int false "Items to skip"
// @Success 200 {object} models.APIResponse{data=models.SchoolPage}
// @Failure 400 {object} models.APIResponse
// @Router /schools [get]
func (h *Handler) Schools(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseSearchRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.APIError(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	rw.Success(h.catalog.Search(r.Context(), dataset.Query{
		Text:   req.Text,
		Level:  models.NormalizeLevel(req.Level),
		Zone:   req.Zone,
		Type:   req.Type,
		Limit:  req.Limit,
		Offset: req.Offset,
	}))
}

// SchoolDetails returns one school with its activities, subjects and
// cut-off points.
// @Summary School details
// @Tags Schools
// @Produce json
// @Param name query string true "School name, case-insensitive"
// @Success 200 {object} models.APIResponse{data=models.School}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /schools/details [get]
func (h *Handler) SchoolDetails(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		rw.BadRequest("name is required")
		return
	}

	school, ok := h.catalog.GetDetails(r.Context(), name)
	if !ok {
		rw.NotFound("School not found")
		return
	}
	rw.Success(school)
}

// SchoolOptions returns the distinct filter values.
// @Summary Filter values
// @Tags Schools
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Options}
// @Router /schools/options [get]
func (h *Handler) SchoolOptions(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.catalog.Options(r.Context()))
}
