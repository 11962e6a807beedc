// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinelens/internal/config"
)

// NewRouter assembles the chi router with the full middleware stack and
// all Cinelens routes.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.API.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Health endpoints stay unthrottled for monitoring.
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
			r.Get("/", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow))

			r.With(Instrument("/api/v1/movies")).
				Get("/movies", h.Movies)

			r.Route("/recommendations", func(r chi.Router) {
				r.With(Instrument("/api/v1/recommendations/user")).
					Get("/user/{userID}", h.RecommendationsUser)
				r.With(Instrument("/api/v1/recommendations/similar")).
					Get("/similar", h.RecommendationsSimilar)
				r.With(Instrument("/api/v1/recommendations/hybrid")).
					Get("/hybrid", h.RecommendationsHybrid)
			})

			r.Route("/stats", func(r chi.Router) {
				r.With(Instrument("/api/v1/stats")).Get("/", h.Stats)
				r.With(Instrument("/api/v1/stats/genres")).Get("/genres", h.StatsGenres)
				r.With(Instrument("/api/v1/stats/popularity")).Get("/popularity", h.StatsPopularity)
				r.With(Instrument("/api/v1/stats/users")).Get("/users", h.StatsUsers)
			})

			r.With(Instrument("/api/v1/admin/rebuild")).
				Post("/admin/rebuild", h.AdminRebuild)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
