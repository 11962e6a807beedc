// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinelens/internal/logging"
	"github.com/tomtom215/cinelens/internal/recommend"
)

// respondJSON writes a success envelope with the given status and payload.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeEnvelope(w, r, status, &APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: newMetadata(logging.RequestIDFromContext(r.Context())),
	})
}

// respondError writes an error envelope with the given status, code and message.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeEnvelope(w, r, status, &APIResponse{
		Status:   "error",
		Metadata: newMetadata(logging.RequestIDFromContext(r.Context())),
		Error:    &APIError{Code: code, Message: message},
	})
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, response *APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondEngineError maps engine errors to HTTP statuses:
// invalid parameters are client errors, build timeouts are gateway
// timeouts, everything else from the engine is a server error.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *recommend.InvalidParameterError
	if errors.As(err, &invalid) {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, invalid.Error())
		return
	}

	var timeout *recommend.ComputationTimeoutError
	if errors.As(err, &timeout) {
		respondError(w, r, http.StatusGatewayTimeout, codeTimeout, timeout.Error())
		return
	}

	var computation *recommend.ComputationError
	if errors.As(err, &computation) {
		logging.CtxErr(r.Context(), err).Msg("Recommendation computation failed")
		respondError(w, r, http.StatusInternalServerError, codeComputation, computation.Error())
		return
	}

	logging.CtxErr(r.Context(), err).Msg("Unexpected recommendation error")
	respondError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
}

// intQueryParam parses an optional integer query parameter, returning def
// when the parameter is absent or empty.
func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

// floatQueryParam parses an optional float query parameter, returning def
// when the parameter is absent or empty.
func floatQueryParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}
