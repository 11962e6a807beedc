// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package config defines the Cinelens configuration structure and its
// layered loader (defaults, YAML file, environment variables).
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinelens/internal/recommend"
)

// Config is the root configuration for Cinelens.
type Config struct {
	Server  ServerConfig     `koanf:"server"`
	Dataset DatasetConfig    `koanf:"dataset"`
	Engine  recommend.Config `koanf:"engine"`
	API     APIConfig        `koanf:"api"`
	Logging LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8600
	Port int `koanf:"port"`

	// ReadTimeout bounds the time spent reading a request.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds the time spent writing a response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout is the grace period for in-flight requests on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatasetConfig locates the MovieLens-format dataset files.
type DatasetConfig struct {
	// Dir is the directory containing the dataset files. Default: /data/ml-100k
	Dir string `koanf:"dir"`

	// MoviesFile is the pipe-separated movie metadata file. Default: u.item
	MoviesFile string `koanf:"movies_file"`

	// RatingsFile is the tab-separated ratings file. Default: u.data
	RatingsFile string `koanf:"ratings_file"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	// CORSOrigins lists allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the per-client request budget per window.
	// Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window. Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RebuildsPerMinute throttles POST /admin/rebuild globally. Default: 2
	RebuildsPerMinute float64 `koanf:"rebuilds_per_minute"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line in logs. Default: false
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Dataset.Dir == "" {
		return fmt.Errorf("dataset.dir must not be empty")
	}
	if c.Dataset.MoviesFile == "" {
		return fmt.Errorf("dataset.movies_file must not be empty")
	}
	if c.Dataset.RatingsFile == "" {
		return fmt.Errorf("dataset.ratings_file must not be empty")
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be positive, got %d", c.API.RateLimitReqs)
	}
	if c.API.RebuildsPerMinute <= 0 {
		return fmt.Errorf("api.rebuilds_per_minute must be positive, got %g", c.API.RebuildsPerMinute)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
