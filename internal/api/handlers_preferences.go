// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/schoolscout/internal/auth"
	"github.com/tomtom215/schoolscout/internal/models"
	"github.com/tomtom215/schoolscout/internal/validation"
)

// GetPreferences returns the caller's stored preferences, or an empty
// object when none are stored.
// @Summary Stored preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Preferences}
// @Failure 401 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Security BearerAuth
// @Router /preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}
	if h.prefs == nil {
		rw.ServiceUnavailable("Preference storage is not configured", nil)
		return
	}

	prefs, err := h.storedPreferences(r, subject)
	if err != nil {
		rw.ServiceUnavailable("Preferences are temporarily unavailable", err)
		return
	}
	rw.Success(prefs)
}

// PutPreferences validates and stores the caller's preferences.
// @Summary Store preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param preferences body models.Preferences true "Preferences to store"
// @Success 200 {object} models.APIResponse{data=models.Preferences}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Security BearerAuth
// @Router /preferences [put]
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}
	if h.prefs == nil {
		rw.ServiceUnavailable("Preference storage is not configured", nil)
		return
	}

	var prefs models.Preferences
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&prefs); err != nil {
		rw.BadRequest("Invalid preferences body: " + err.Error())
		return
	}
	if verr := validation.ValidateStruct(&prefs); verr != nil {
		rw.APIError(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	prefs = prefs.Normalized()
	if err := h.prefs.Put(r.Context(), subject, prefs); err != nil {
		rw.ServiceUnavailable("Preferences could not be saved", err)
		return
	}
	rw.Success(prefs)
}
