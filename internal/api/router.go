// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/motorgraph/internal/config"
)

// NewRouter assembles the chi router with all middleware and routes.
func NewRouter(cfg *config.Config, handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware. CORS must be global to handle OPTIONS preflight.
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(SecurityHeaders)
		r.Get("/live", handler.HandleHealthLive)
		r.Get("/ready", handler.HandleHealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SecurityHeaders)
		r.Use(PrometheusMetrics)
		if cfg.Server.RateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.Server.RateLimit, cfg.Server.RateWindow))
		}

		r.Post("/recommend", handler.HandleRecommend)
		r.Post("/compare", handler.HandleCompare)
		r.Get("/cars", handler.HandleListCars)
		r.Get("/cars/{id}", handler.HandleGetCar)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusNotFound, &APIError{
			Code:    "NOT_FOUND",
			Message: "route not found",
		}, nil)
	})

	return r
}
