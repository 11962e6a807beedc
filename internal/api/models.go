// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package api provides the HTTP surface of Cinelens: recommendation,
// catalog, analytics, and admin endpoints on a chi router.
package api

import "time"

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// APIError is the error payload carried on failed requests.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in APIError.Code.
const (
	codeInvalidParameter = "invalid_parameter"
	codeTimeout          = "computation_timeout"
	codeComputation      = "computation_failed"
	codeRateLimited      = "rate_limited"
	codeInternal         = "internal_error"
)

// newMetadata stamps response metadata with the current server time.
func newMetadata(requestID string) Metadata {
	return Metadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// RecommendationsResponse is the payload of the recommendation endpoints.
type RecommendationsResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// MoviesResponse is the payload of GET /api/v1/movies.
type MoviesResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// RebuildResponse is the payload of POST /api/v1/admin/rebuild.
type RebuildResponse struct {
	Rebuilt bool `json:"rebuilt"`
}

// userRecommendationsQuery binds GET /recommendations/user/{userID}.
type userRecommendationsQuery struct {
	UserID int `validate:"required,min=1"`
	K      int `validate:"min=1"`
}

// similarQuery binds GET /recommendations/similar.
type similarQuery struct {
	Title string `validate:"required"`
	K     int    `validate:"min=1"`
}

// hybridQuery binds GET /recommendations/hybrid.
type hybridQuery struct {
	UserID int     `validate:"required,min=1"`
	Title  string  `validate:"required"`
	K      int     `validate:"min=1"`
	Weight float64 `validate:"min=0,max=1"`
}

// popularityQuery binds GET /stats/popularity.
type popularityQuery struct {
	MinRatings int `validate:"min=1"`
	Limit      int `validate:"min=1,max=100"`
}

// usersQuery binds GET /stats/users.
type usersQuery struct {
	Limit int `validate:"min=1,max=100"`
}
