// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/metrics"
	"github.com/tomtom215/cinelens/internal/ratings"
)

// Recommender is the recommendation facade. It owns the content similarity
// index (built once at construction) and the collaborative model cache, and
// exposes the three public recommendation operations.
//
// It is safe for concurrent use. All public methods are permissive on
// lookup misses: an unknown title or user yields an empty result, not an
// error, because the dashboard renders "no recommendations" as a normal
// state. Invalid parameters and factorization failures surface as typed
// errors.
type Recommender struct {
	config  *Config
	logger  zerolog.Logger
	catalog *catalog.Catalog
	store   *ratings.Store
	content *ContentIndex

	// Collaborative model memoization, keyed by store fingerprint. The
	// singleflight group collapses concurrent first builds into one.
	group singleflight.Group
	mu    sync.RWMutex
	cache map[uint64]*collabModel
}

// New creates a Recommender over an immutable catalog and rating store.
// The content similarity index is computed here and shared read-only by all
// subsequent calls.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *Config, cat *catalog.Catalog, store *ratings.Store, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	start := time.Now()
	content := NewContentIndex(cat)

	r := &Recommender{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: cat,
		store:   store,
		content: content,
		cache:   make(map[uint64]*collabModel),
	}

	r.logger.Info().
		Int("movies", cat.Len()).
		Int("ratings", store.Len()).
		Dur("content_index_build", time.Since(start)).
		Msg("recommender initialized")

	return r, nil
}

// ForUser returns up to k titles correlated with the user's taste, movies
// the user has already rated excluded. An unknown user yields an empty
// result.
func (r *Recommender) ForUser(ctx context.Context, userID, k int) ([]string, error) {
	if k <= 0 {
		return nil, &InvalidParameterError{Param: "k", Reason: fmt.Sprintf("must be positive, got %d", k)}
	}

	if !r.store.HasUser(userID) {
		r.logger.Debug().Int("user_id", userID).Msg("unknown user, returning empty result")
		return []string{}, nil
	}

	model, err := r.model(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := model.rankForUser(userID)
	if err != nil {
		var unknown *UnknownUserError
		if errors.As(err, &unknown) {
			return []string{}, nil
		}
		return nil, err
	}

	// Resolve IDs to titles; rated movies with no catalog entry are skipped.
	out := make([]string, 0, k)
	for _, id := range ranked {
		title, ok := r.catalog.TitleByID(id)
		if !ok {
			continue
		}
		out = append(out, title)
		if len(out) == k {
			break
		}
	}
	return out, nil
}

// SimilarTo returns up to k titles most similar to the given title by genre
// content, the query title itself excluded. An unknown title yields an
// empty result.
func (r *Recommender) SimilarTo(ctx context.Context, title string, k int) ([]string, error) {
	if k <= 0 {
		return nil, &InvalidParameterError{Param: "k", Reason: fmt.Sprintf("must be positive, got %d", k)}
	}
	if err := ctx.Err(); err != nil {
		return nil, contextError(ctx, "content ranking")
	}

	row, err := r.catalog.RowByTitle(title)
	if err != nil {
		r.logger.Debug().Str("title", title).Msg("unknown title, returning empty result")
		return []string{}, nil
	}

	rows := r.content.rankSimilar(row, k)
	out := make([]string, len(rows))
	for i, j := range rows {
		out[i] = r.catalog.At(j).Title
	}
	return out, nil
}

// Hybrid blends the two signal sources. weight in [0,1] is the content
// proportion: round(k*(1-weight)) results come from the collaborative path
// and the remainder from the content path, appended in ranked order with
// exact-title duplicates skipped. The result may be shorter than k when the
// content path duplicates collaborative picks; it is never backfilled.
func (r *Recommender) Hybrid(ctx context.Context, userID int, title string, k int, weight float64) ([]string, error) {
	if k <= 0 {
		return nil, &InvalidParameterError{Param: "k", Reason: fmt.Sprintf("must be positive, got %d", k)}
	}
	if weight < 0 || weight > 1 || math.IsNaN(weight) {
		return nil, &InvalidParameterError{Param: "weight", Reason: fmt.Sprintf("must be in [0,1], got %g", weight)}
	}

	collabCount := int(math.Round(float64(k) * (1.0 - weight)))
	contentCount := k - collabCount

	var collab, content []string
	var err error

	if collabCount > 0 {
		collab, err = r.ForUser(ctx, userID, collabCount)
		if err != nil {
			return nil, err
		}
	}
	if contentCount > 0 {
		content, err = r.SimilarTo(ctx, title, contentCount)
		if err != nil {
			return nil, err
		}
	}

	merged := make([]string, 0, len(collab)+len(content))
	seen := make(map[string]struct{}, len(collab)+len(content))
	for _, t := range collab {
		merged = append(merged, t)
		seen[t] = struct{}{}
	}
	for _, t := range content {
		if _, dup := seen[t]; dup {
			continue
		}
		merged = append(merged, t)
		seen[t] = struct{}{}
	}
	return merged, nil
}

// Rebuild discards any cached collaborative model and builds a fresh one.
// The rating store is immutable, so this is only useful operationally (for
// example after a config change to the factorization parameters).
func (r *Recommender) Rebuild(ctx context.Context) error {
	r.mu.Lock()
	r.cache = make(map[uint64]*collabModel)
	r.mu.Unlock()

	_, err := r.model(ctx)
	return err
}

// model returns the collaborative model for the current store snapshot,
// building it at most once per fingerprint when caching is enabled.
// Concurrent first calls share a single build via singleflight.
func (r *Recommender) model(ctx context.Context) (*collabModel, error) {
	key := r.store.Fingerprint()

	if r.config.CacheModel {
		r.mu.RLock()
		cached := r.cache[key]
		r.mu.RUnlock()
		if cached != nil {
			metrics.ModelCacheHits.Inc()
			return cached, nil
		}
		metrics.ModelCacheMisses.Inc()
	}

	v, err, shared := r.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		buildCtx, cancel := context.WithTimeout(ctx, r.config.Collaborative.BuildTimeout)
		defer cancel()

		start := time.Now()
		model, buildErr := buildCollabModel(buildCtx, r.store, r.config.Collaborative)
		if buildErr != nil {
			return nil, buildErr
		}

		elapsed := time.Since(start)
		metrics.ModelBuildsTotal.Inc()
		metrics.ModelBuildDuration.Observe(elapsed.Seconds())
		r.logger.Debug().
			Int("movies", len(model.movieIDs)).
			Dur("duration", elapsed).
			Msg("collaborative model built")

		if r.config.CacheModel {
			r.mu.Lock()
			r.cache[key] = model
			r.mu.Unlock()
		}
		return model, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug().Msg("collaborative model build shared across concurrent callers")
	}
	return v.(*collabModel), nil
}
