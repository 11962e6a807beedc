// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ModelBuilder is the slice of the recommender the warmup service needs.
type ModelBuilder interface {
	// Rebuild computes the collaborative model and primes the cache.
	Rebuild(ctx context.Context) error
}

// WarmupService builds the collaborative model once at startup so the first
// recommendation request does not pay the factorization cost. The service
// then parks until shutdown; on failure it reports the error and lets
// suture's backoff schedule the retry.
type WarmupService struct {
	builder ModelBuilder
	timeout time.Duration
	logger  zerolog.Logger
}

// NewWarmupService creates a warmup service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmupService(builder ModelBuilder, timeout time.Duration, logger zerolog.Logger) *WarmupService {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &WarmupService{
		builder: builder,
		timeout: timeout,
		logger:  logger.With().Str("service", "warmup").Logger(),
	}
}

// Serve implements suture.Service.
func (s *WarmupService) Serve(ctx context.Context) error {
	s.logger.Info().Msg("Warming collaborative model")

	warmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.builder.Rebuild(warmCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error().Err(err).Msg("Model warmup failed")
		return err
	}

	s.logger.Info().Msg("Collaborative model warm")

	// Warmup is a one-shot; park until shutdown so suture does not
	// restart it.
	<-ctx.Done()
	return ctx.Err()
}

// String identifies the service in suture log messages.
func (s *WarmupService) String() string {
	return "model-warmup"
}
