// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"context"
	"errors"
	"sort"

	"github.com/tomtom215/cinelens/internal/ratings"
)

var (
	errEmptyMatrix = errors.New("rating matrix is empty")
	errDegenerate  = errors.New("rating matrix too small to factorize")
)

// collabModel is the dimensionality-reduced latent representation of the
// rated movies, derived from a single rating-store snapshot. It is a pure
// function of that snapshot: the same store always yields the same model.
// Once built it is read-only and safe for concurrent use.
type collabModel struct {
	// movieIDs are the pivot rows: distinct rated movie IDs, ascending.
	movieIDs []int

	// userCol maps user ID to pivot column.
	userCol map[int]int

	// pivot is the movie x user rating matrix. Missing cells are zero;
	// absence is deliberately NOT treated as a middle rating, which
	// materially shapes the factorization.
	pivot [][]float64

	// corr[i][j] is the cosine similarity between the reduced
	// representations of pivot rows i and j.
	corr [][]float64
}

// buildCollabModel pivots the store into a movie x user matrix, reduces it
// with truncated SVD, and precomputes the movie-by-movie correlation matrix.
//
// The target dimensionality is cfg.Factors (12 in the reference), clamped
// to min(Factors, min(movies, users)-1) so small matrices reduce instead of
// failing. A matrix too small for even one component is degenerate and
// reports a ComputationError.
func buildCollabModel(ctx context.Context, store *ratings.Store, cfg CollaborativeConfig) (*collabModel, error) {
	movieIDs := store.MovieIDs()
	userIDs := store.UserIDs()

	m, u := len(movieIDs), len(userIDs)
	if m == 0 || u == 0 {
		return nil, &ComputationError{Stage: "pivot", Cause: errEmptyMatrix}
	}

	k := cfg.Factors
	if minDim := min(m, u); k > minDim-1 {
		k = minDim - 1
	}
	if k < 1 {
		return nil, &ComputationError{Stage: "truncated svd", Cause: errDegenerate}
	}

	movieRow := make(map[int]int, m)
	for row, id := range movieIDs {
		movieRow[id] = row
	}
	userCol := make(map[int]int, u)
	for col, id := range userIDs {
		userCol[id] = col
	}

	// Zero-filled pivot; on duplicate (user, movie) observations the last
	// one wins, which keeps the matrix deterministic for a given snapshot.
	pivot := make([][]float64, m)
	for i := range pivot {
		pivot[i] = make([]float64, u)
	}
	for _, r := range store.All() {
		pivot[movieRow[r.MovieID]][userCol[r.UserID]] = r.Value
	}

	factors, err := truncatedSVD(ctx, pivot, k, cfg.MaxIterations, cfg.Tolerance)
	if err != nil {
		return nil, err
	}

	corr := make([][]float64, m)
	for i := range corr {
		corr[i] = make([]float64, m)
	}
	for i := 0; i < m; i++ {
		if err := ctx.Err(); err != nil {
			return nil, contextError(ctx, "correlation matrix")
		}
		corr[i][i] = cosineSimilarity(factors[i], factors[i])
		for j := i + 1; j < m; j++ {
			s := cosineSimilarity(factors[i], factors[j])
			corr[i][j] = s
			corr[j][i] = s
		}
	}

	return &collabModel{
		movieIDs: movieIDs,
		userCol:  userCol,
		pivot:    pivot,
		corr:     corr,
	}, nil
}

// rankForUser scores every pivot movie against the user's zero-filled
// rating vector and returns movie IDs ranked by score descending, movies
// the user has already rated excluded. Ties keep ascending movie ID order.
func (cm *collabModel) rankForUser(userID int) ([]int, error) {
	col, ok := cm.userCol[userID]
	if !ok {
		return nil, &UnknownUserError{UserID: userID}
	}

	m := len(cm.movieIDs)

	userVec := make([]float64, m)
	rated := make(map[int]struct{})
	for row := 0; row < m; row++ {
		v := cm.pivot[row][col]
		userVec[row] = v
		if v != 0 {
			rated[cm.movieIDs[row]] = struct{}{}
		}
	}

	// One score per movie: similarity between the user's rating vector and
	// that movie's row of the correlation matrix.
	type scored struct {
		row   int
		score float64
	}
	results := make([]scored, 0, m)
	for row := 0; row < m; row++ {
		id := cm.movieIDs[row]
		if _, seen := rated[id]; seen {
			continue
		}
		results = append(results, scored{row: row, score: cosineSimilarity(userVec, cm.corr[row])})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	ranked := make([]int, len(results))
	for i, r := range results {
		ranked[i] = cm.movieIDs[r.row]
	}
	return ranked, nil
}
