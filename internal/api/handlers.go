// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinelens/internal/analytics"
	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/config"
	"github.com/tomtom215/cinelens/internal/logging"
	"github.com/tomtom215/cinelens/internal/metrics"
	"github.com/tomtom215/cinelens/internal/recommend"
)

// Default query values for the analytics endpoints, matching the original
// dashboard views.
const (
	defaultPopularityMinRatings = 20
	defaultPopularityLimit      = 15
	defaultActiveUsersLimit     = 10
	defaultHybridWeight         = 0.5
)

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	rec       *recommend.Recommender
	analytics *analytics.Service
	cat       *catalog.Catalog
	limits    recommend.LimitsConfig
	validate  *validator.Validate

	// rebuildLimiter throttles admin-triggered model rebuilds globally;
	// a rebuild is expensive and idempotent, so excess requests are shed.
	rebuildLimiter *rate.Limiter
}

// NewHandler creates the handler set.
func NewHandler(rec *recommend.Recommender, svc *analytics.Service, cat *catalog.Catalog, cfg *config.Config) *Handler {
	return &Handler{
		rec:            rec,
		analytics:      svc,
		cat:            cat,
		limits:         cfg.Engine.Limits,
		validate:       validator.New(),
		rebuildLimiter: rate.NewLimiter(rate.Limit(cfg.API.RebuildsPerMinute/60.0), 1),
	}
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady reports readiness to serve recommendations.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"movies": h.cat.Len(),
	})
}

// Movies returns the sorted unique movie titles.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	titles := h.cat.Titles()
	respondJSON(w, r, http.StatusOK, MoviesResponse{Titles: titles, Count: len(titles)})
}

// RecommendationsUser serves collaborative recommendations for a user.
func (h *Handler) RecommendationsUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, "userID must be an integer")
		return
	}

	k, err := h.boundedK(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	q := userRecommendationsQuery{UserID: userID, K: k}
	if err := h.validate.Struct(q); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	titles, err := h.rec.ForUser(r.Context(), q.UserID, q.K)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsReturned.WithLabelValues("user").Observe(float64(len(titles)))
	respondJSON(w, r, http.StatusOK, RecommendationsResponse{Titles: titles, Count: len(titles)})
}

// RecommendationsSimilar serves content-based recommendations for a title.
func (h *Handler) RecommendationsSimilar(w http.ResponseWriter, r *http.Request) {
	k, err := h.boundedK(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	q := similarQuery{Title: r.URL.Query().Get("title"), K: k}
	if err := h.validate.Struct(q); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	titles, err := h.rec.SimilarTo(r.Context(), q.Title, q.K)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsReturned.WithLabelValues("similar").Observe(float64(len(titles)))
	respondJSON(w, r, http.StatusOK, RecommendationsResponse{Titles: titles, Count: len(titles)})
}

// RecommendationsHybrid serves blended recommendations.
func (h *Handler) RecommendationsHybrid(w http.ResponseWriter, r *http.Request) {
	userID, err := intQueryParam(r, "user_id", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	k, err := h.boundedK(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	weight, err := floatQueryParam(r, "weight", defaultHybridWeight)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	q := hybridQuery{
		UserID: userID,
		Title:  r.URL.Query().Get("title"),
		K:      k,
		Weight: weight,
	}
	if err := h.validate.Struct(q); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	titles, err := h.rec.Hybrid(r.Context(), q.UserID, q.Title, q.K, q.Weight)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsReturned.WithLabelValues("hybrid").Observe(float64(len(titles)))
	respondJSON(w, r, http.StatusOK, RecommendationsResponse{Titles: titles, Count: len(titles)})
}

// Stats returns the dataset summary.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.analytics.Summary())
}

// StatsGenres returns the genre distribution and per-genre mean ratings.
func (h *Handler) StatsGenres(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"distribution": h.analytics.GenreDistribution(),
		"mean_ratings": h.analytics.GenreMeanRatings(),
	})
}

// StatsPopularity returns the most-rated movies.
func (h *Handler) StatsPopularity(w http.ResponseWriter, r *http.Request) {
	minRatings, err := intQueryParam(r, "min_ratings", defaultPopularityMinRatings)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	limit, err := intQueryParam(r, "limit", defaultPopularityLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	q := popularityQuery{MinRatings: minRatings, Limit: limit}
	if err := h.validate.Struct(q); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	respondJSON(w, r, http.StatusOK, h.analytics.Popularity(q.MinRatings, q.Limit))
}

// StatsUsers returns the most active users.
func (h *Handler) StatsUsers(w http.ResponseWriter, r *http.Request) {
	limit, err := intQueryParam(r, "limit", defaultActiveUsersLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	q := usersQuery{Limit: limit}
	if err := h.validate.Struct(q); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	respondJSON(w, r, http.StatusOK, h.analytics.MostActiveUsers(q.Limit))
}

// AdminRebuild forces a collaborative model rebuild.
func (h *Handler) AdminRebuild(w http.ResponseWriter, r *http.Request) {
	if !h.rebuildLimiter.Allow() {
		respondError(w, r, http.StatusTooManyRequests, codeRateLimited, "rebuild throttled, try again later")
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Admin-triggered model rebuild")

	if err := h.rec.Rebuild(r.Context()); err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, RebuildResponse{Rebuilt: true})
}

// boundedK reads the k query parameter, applying the configured default and
// clamping to the configured maximum. A request can never pull more than
// MaxK titles through the API even though the engine itself has no cap.
func (h *Handler) boundedK(r *http.Request) (int, error) {
	k, err := intQueryParam(r, "k", h.limits.DefaultK)
	if err != nil {
		return 0, err
	}
	if k > h.limits.MaxK {
		k = h.limits.MaxK
	}
	return k, nil
}
