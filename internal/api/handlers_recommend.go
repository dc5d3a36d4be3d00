// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/schoolscout/internal/auth"
	"github.com/tomtom215/schoolscout/internal/logging"
	"github.com/tomtom215/schoolscout/internal/models"
	"github.com/tomtom215/schoolscout/internal/store"
	"github.com/tomtom215/schoolscout/internal/validation"
)

// Recommend ranks schools for the caller. Input comes from the JSON body
// (POST, or GET with a body) and query parameters, body first.
//
// Without level, subjects, activities or distance the caller must be
// authenticated; their stored preferences are used instead. Anonymous
// callers get 401.
// @Summary Ranked recommendations
// @Description Scores every school against the preferences. level is scored only; filter_level, zone and type narrow the candidates.
// @Tags Recommend
// @Accept json
// @Produce json
// @Param request body recommendDoc false "Preferences, filters and weight overrides"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=recommend.Response}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Security BearerAuth
// @Router /schools/recommend [get]
// @Router /schools/recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	var req recommendRequest
	if err := decodeRecommendBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := applyQuery(r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if req.Weights != nil {
		if verr := validation.ValidateStruct(req.Weights); verr != nil {
			rw.APIError(http.StatusBadRequest, verr.ToAPIError())
			return
		}
	}

	prefs := req.preferences()
	if prefs.IsEmpty() {
		subject, ok := auth.SubjectFromContext(ctx)
		if !ok {
			rw.Unauthorized("Login required for personalized recommendations")
			return
		}
		stored, err := h.storedPreferences(r, subject)
		if err != nil {
			rw.ServiceUnavailable("Preferences are temporarily unavailable", err)
			return
		}
		prefs = mergeStored(stored, prefs)
	}

	weights := req.Weights.Apply(h.recommender.Config().Weights)
	resp, err := h.recommender.Recommend(ctx, prefs, &weights, req.filters(), req.limit())
	if err != nil {
		// Weights were validated above, so this is unexpected.
		rw.APIError(http.StatusBadRequest, &models.APIError{Code: ErrCodeValidation, Message: err.Error()})
		return
	}

	logging.Ctx(ctx).Debug().
		Int("results", resp.Count).
		Int("candidates", resp.Metadata.Candidates).
		Bool("user_located", resp.Metadata.UserLocated).
		Msg("Recommendations served")

	rw.Success(resp)
}

func (h *Handler) storedPreferences(r *http.Request, subject string) (models.Preferences, error) {
	if h.prefs == nil {
		return models.Preferences{}, nil
	}
	prefs, err := h.prefs.Get(r.Context(), subject)
	if errors.Is(err, store.ErrNotFound) {
		return models.Preferences{}, nil
	}
	return prefs, err
}

// mergeStored lets a location sent with the request override the stored
// one, so a signed-in user can rank around where they are now.
func mergeStored(stored, request models.Preferences) models.Preferences {
	if request.Location != "" {
		stored.Location = request.Location
	}
	if request.Latitude != nil && request.Longitude != nil {
		stored.Latitude, stored.Longitude = request.Latitude, request.Longitude
	}
	return stored.Normalized()
}
