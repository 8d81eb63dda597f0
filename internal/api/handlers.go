// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/motorgraph/internal/catalog"
	"github.com/tomtom215/motorgraph/internal/logging"
	"github.com/tomtom215/motorgraph/internal/metrics"
	"github.com/tomtom215/motorgraph/internal/recommend"
	"github.com/tomtom215/motorgraph/internal/validation"
)

// Handler serves the recommendation API against a loaded catalog.
type Handler struct {
	engine  *recommend.Engine
	catalog *recommend.Catalog
}

// NewHandler creates a Handler. The catalog may be nil until loading
// completes; the readiness probe reports it.
func NewHandler(engine *recommend.Engine, cat *recommend.Catalog) *Handler {
	return &Handler{engine: engine, catalog: cat}
}

// budgetDTO accepts budget bounds as plain rupee numbers or shorthand
// strings like "8 lakh", "1.2 crore" or "750k".
type budgetDTO struct {
	Min catalog.Money `json:"min"`
	Max catalog.Money `json:"max"`
}

// profileDTO is the wire form of a preference profile.
type profileDTO struct {
	Budget     budgetDTO         `json:"budget"`
	MinSeating int               `json:"min_seating" validate:"min=0"`
	FuelType   string            `json:"fuel_type" validate:"omitempty,fueltype"`
	BodyType   string            `json:"body_type" validate:"omitempty,bodytype"`
	Mode       string            `json:"mode" validate:"omitempty,filtermode"`
	Weights    recommend.Weights `json:"weights"`
}

// normalize folds recognized shorthand fuel and body names into their
// canonical categories before validation, so "EV" or "MPV" are accepted.
// Unrecognized values are left untouched for the validators to reject;
// a constraint is never rewritten into a different query.
func (p *profileDTO) normalize() {
	if p.FuelType != "" {
		if ft, ok := catalog.MatchFuel(p.FuelType); ok {
			p.FuelType = string(ft)
		}
	}
	if p.BodyType != "" {
		if bt, ok := catalog.NormalizeBody(p.BodyType); ok {
			p.BodyType = string(bt)
		}
	}
}

// toProfile converts the DTO to an engine profile. Call normalize and
// validation first; parsing cannot fail afterwards.
func (p *profileDTO) toProfile() recommend.PreferenceProfile {
	mode, _ := recommend.ParseFilterMode(p.Mode)
	return recommend.PreferenceProfile{
		Budget: recommend.BudgetRange{
			Min: int64(p.Budget.Min),
			Max: int64(p.Budget.Max),
		},
		MinSeating: p.MinSeating,
		Fuel:       recommend.FuelType(p.FuelType),
		Body:       recommend.BodyType(p.BodyType),
		Mode:       mode,
		Weights:    p.Weights,
	}
}

type recommendRequestDTO struct {
	Profile profileDTO `json:"profile"`
	K       int        `json:"k" validate:"min=0"`
}

type compareRequestDTO struct {
	Profile profileDTO `json:"profile"`
	IDs     []string   `json:"ids" validate:"min=2,dive,required"`
}

// suggestionDTO renders a relaxed profile in the same wire shape the
// recommend endpoint accepts, so clients can resubmit it verbatim.
func suggestionDTO(p recommend.PreferenceProfile) profileDTO {
	return profileDTO{
		Budget: budgetDTO{
			Min: catalog.Money(p.Budget.Min),
			Max: catalog.Money(p.Budget.Max),
		},
		MinSeating: p.MinSeating,
		FuelType:   string(p.Fuel),
		BodyType:   string(p.Body),
		Mode:       p.Mode.String(),
		Weights:    p.Weights,
	}
}

// carDTO augments a catalog record with a human-readable price.
type carDTO struct {
	recommend.CarRecord
	PriceDisplay string `json:"price_display"`
}

func toCarDTO(rec recommend.CarRecord) carDTO {
	return carDTO{CarRecord: rec, PriceDisplay: catalog.FormatMoney(rec.Price)}
}

// HandleRecommend ranks catalog cars for the submitted profile.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommendRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		metrics.ObserveRecommend("unknown", "invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}, nil)
		return
	}

	req.Profile.normalize()
	if err := validation.ValidateStruct(&req); err != nil {
		metrics.ObserveRecommend("unknown", "invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, validationAPIError(err), nil)
		return
	}

	profile := req.Profile.toProfile()
	mode := profile.Mode.String()

	resp, err := h.engine.Recommend(r.Context(), h.catalog, recommend.Request{
		Profile:   profile,
		K:         req.K,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondEngineError(w, r, mode, start, err)
		return
	}

	metrics.ObserveRecommend(mode, "ok", time.Since(start))
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HandleCompare builds a side-by-side table for the selected cars under
// the submitted profile.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req compareRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		metrics.ObserveCompare("invalid")
		respondError(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}, nil)
		return
	}

	req.Profile.normalize()
	if err := validation.ValidateStruct(&req); err != nil {
		metrics.ObserveCompare("invalid")
		respondError(w, http.StatusBadRequest, validationAPIError(err), nil)
		return
	}

	table, err := h.engine.Compare(r.Context(), h.catalog, req.Profile.toProfile(), req.IDs)
	if err != nil {
		h.respondCompareError(w, err)
		return
	}

	metrics.ObserveCompare("ok")
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   table,
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HandleListCars returns the full loaded catalog.
func (h *Handler) HandleListCars(w http.ResponseWriter, r *http.Request) {
	records := h.catalog.Records()
	cars := make([]carDTO, len(records))
	for i, rec := range records {
		cars[i] = toCarDTO(rec)
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"cars":  cars,
			"count": len(cars),
		},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// HandleGetCar returns one catalog record by its identifier.
func (h *Handler) HandleGetCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, ok := h.catalog.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, &APIError{
			Code:    "NOT_FOUND",
			Message: "unknown car identifier",
			Details: map[string]interface{}{"id": sanitizeLogValue(id)},
		}, nil)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     toCarDTO(rec),
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// HandleHealthLive is the liveness probe.
func (h *Handler) HandleHealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// HandleHealthReady reports readiness once the catalog is loaded.
func (h *Handler) HandleHealthReady(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil || h.catalog.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, &APIError{
			Code:    "NOT_READY",
			Message: "catalog not loaded",
		}, nil)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":       "ready",
			"catalog_size": h.catalog.Len(),
		},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// respondEngineError maps recommendation failures to HTTP statuses.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, mode string, start time.Time, err error) {
	var invalidErr *recommend.InvalidProfileError
	if errors.As(err, &invalidErr) {
		metrics.ObserveRecommend(mode, "invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: invalidErr.Error(),
			Details: map[string]interface{}{"field": invalidErr.Field},
		}, nil)
		return
	}

	var emptyErr *recommend.EmptyResultError
	if errors.As(err, &emptyErr) {
		metrics.EmptyResults.Inc()
		metrics.ObserveRecommend(mode, "empty", time.Since(start))
		respondError(w, http.StatusUnprocessableEntity, &APIError{
			Code:    "EMPTY_RESULT",
			Message: "no cars matched the profile; retry with the suggested relaxed profile",
			Details: map[string]interface{}{
				"catalog_size": emptyErr.CatalogSize,
				"suggestion":   suggestionDTO(emptyErr.Suggestion),
			},
		}, nil)
		return
	}

	metrics.ObserveRecommend(mode, "error", time.Since(start))
	logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation failed")
	respondError(w, http.StatusInternalServerError, &APIError{
		Code:    "INTERNAL_ERROR",
		Message: "recommendation failed",
	}, nil)
}

// respondCompareError maps comparison failures to HTTP statuses.
func (h *Handler) respondCompareError(w http.ResponseWriter, err error) {
	if errors.Is(err, recommend.ErrSelectionTooSmall) {
		metrics.ObserveCompare("too_small")
		respondError(w, http.StatusBadRequest, &APIError{
			Code:    "SELECTION_TOO_SMALL",
			Message: "comparison requires at least two cars",
		}, nil)
		return
	}

	var unknownErr *recommend.UnknownIdentifierError
	if errors.As(err, &unknownErr) {
		metrics.ObserveCompare("unknown_id")
		respondError(w, http.StatusNotFound, &APIError{
			Code:    "NOT_FOUND",
			Message: unknownErr.Error(),
			Details: map[string]interface{}{"id": sanitizeLogValue(unknownErr.ID)},
		}, nil)
		return
	}

	var invalidErr *recommend.InvalidProfileError
	if errors.As(err, &invalidErr) {
		metrics.ObserveCompare("invalid")
		respondError(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: invalidErr.Error(),
			Details: map[string]interface{}{"field": invalidErr.Field},
		}, nil)
		return
	}

	var emptyErr *recommend.EmptyResultError
	if errors.As(err, &emptyErr) {
		metrics.ObserveCompare("unknown_id")
		respondError(w, http.StatusNotFound, &APIError{
			Code:    "NOT_FOUND",
			Message: "selected cars are outside the filtered set",
		}, nil)
		return
	}

	metrics.ObserveCompare("error")
	respondError(w, http.StatusInternalServerError, &APIError{
		Code:    "INTERNAL_ERROR",
		Message: "comparison failed",
	}, err)
}

// validationAPIError converts a validation failure to an APIError with
// per-field details.
func validationAPIError(err error) *APIError {
	apiErr := &APIError{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
	}

	var ve *validation.RequestValidationError
	if errors.As(err, &ve) {
		details := make(map[string]interface{}, len(ve.Fields()))
		for _, fe := range ve.Fields() {
			details[fe.Field] = fe.Message
		}
		apiErr.Details = details
	}
	return apiErr
}
