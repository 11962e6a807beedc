// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Collaborative contains parameters for the SVD collaborative model.
	Collaborative CollaborativeConfig `json:"collaborative" koanf:"collaborative"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// CacheModel controls whether the collaborative model is memoized by
	// rating-store fingerprint. When false the model is rebuilt on every
	// collaborative call, matching the original per-request behavior.
	// Default: true.
	CacheModel bool `json:"cache_model" koanf:"cache_model"`
}

// CollaborativeConfig contains parameters for the SVD collaborative model.
type CollaborativeConfig struct {
	// Factors is the target latent dimensionality of the truncated SVD.
	// The effective rank is clamped to min(Factors, min(movies, users)-1)
	// for rating matrices smaller than Factors in either dimension.
	// Default: 12.
	Factors int `json:"factors" koanf:"factors"`

	// MaxIterations caps the power iterations per singular vector.
	// Default: 100.
	MaxIterations int `json:"max_iterations" koanf:"max_iterations"`

	// Tolerance is the convergence threshold for power iteration.
	// Default: 1e-10.
	Tolerance float64 `json:"tolerance" koanf:"tolerance"`

	// BuildTimeout bounds a single model build. Exceeding it reports a
	// ComputationTimeoutError instead of blocking the caller.
	// Default: 30s.
	BuildTimeout time.Duration `json:"build_timeout" koanf:"build_timeout"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of recommendations returned when the caller
	// does not specify one. Default: 5.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK is the maximum allowed K value. Default: 50.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		Collaborative: CollaborativeConfig{
			Factors:       12,
			MaxIterations: 100,
			Tolerance:     1e-10,
			BuildTimeout:  30 * time.Second,
		},
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		CacheModel: true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Collaborative.Factors < 1 {
		return fmt.Errorf("collaborative.factors must be positive, got %d", c.Collaborative.Factors)
	}
	if c.Collaborative.MaxIterations < 1 {
		return fmt.Errorf("collaborative.max_iterations must be positive, got %d", c.Collaborative.MaxIterations)
	}
	if c.Collaborative.Tolerance <= 0 {
		return fmt.Errorf("collaborative.tolerance must be positive, got %g", c.Collaborative.Tolerance)
	}
	if c.Collaborative.BuildTimeout <= 0 {
		return fmt.Errorf("collaborative.build_timeout must be positive, got %v", c.Collaborative.BuildTimeout)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	return &Config{
		Collaborative: c.Collaborative,
		Limits:        c.Limits,
		CacheModel:    c.CacheModel,
	}
}
