// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package metrics provides Prometheus instrumentation for Cinelens:
// API endpoint latency and throughput, collaborative model build cost,
// and model cache efficiency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts API requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes API request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelens_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RecommendationsReturned observes result-list sizes per operation.
	RecommendationsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelens_recommendations_returned",
			Help:    "Number of titles returned per recommendation request",
			Buckets: []float64{0, 1, 3, 5, 10, 15, 25, 50},
		},
		[]string{"operation"},
	)

	// ModelBuildsTotal counts collaborative model factorizations.
	ModelBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelens_model_builds_total",
			Help: "Total number of collaborative model builds",
		},
	)

	// ModelBuildDuration observes collaborative model build time.
	ModelBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinelens_model_build_duration_seconds",
			Help:    "Duration of collaborative model builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	// ModelCacheHits counts collaborative model cache hits.
	ModelCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelens_model_cache_hits_total",
			Help: "Total number of collaborative model cache hits",
		},
	)

	// ModelCacheMisses counts collaborative model cache misses.
	ModelCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelens_model_cache_misses_total",
			Help: "Total number of collaborative model cache misses",
		},
	)
)

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments an HTTP handler with request count and latency
// metrics, labeled by the given route pattern.
func Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		HTTPRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
