// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"context"
	"math"
)

// truncatedSVD reduces the m x u matrix a to its rank-k projection a*V,
// where V holds the top k right singular vectors. It computes the dominant
// eigenvectors of the Gram matrix a'a by power iteration with
// orthogonalization against previously found vectors, which is equivalent
// to the reference transform up to singular-vector sign.
//
// Initialization is deterministic, so repeated builds over the same matrix
// produce identical factors. The context is honoured between iterations.
func truncatedSVD(ctx context.Context, a [][]float64, k, maxIter int, tol float64) ([][]float64, error) {
	m := len(a)
	if m == 0 || k < 1 {
		return nil, &ComputationError{Stage: "truncated svd", Cause: errEmptyMatrix}
	}
	u := len(a[0])

	gram := gramMatrix(a, m, u)

	// Right singular vectors, found one at a time.
	basis := make([][]float64, 0, k)

	for c := 0; c < k; c++ {
		if err := ctx.Err(); err != nil {
			return nil, contextError(ctx, "truncated svd")
		}

		v, lambda := dominantEigenvector(ctx, gram, basis, c, maxIter, tol)
		if v == nil {
			return nil, contextError(ctx, "truncated svd")
		}
		if lambda <= tol {
			// Remaining spectrum is numerically zero; the matrix rank is
			// below k. Pad with zero directions rather than failing.
			v = make([]float64, u)
		}
		basis = append(basis, v)
	}

	// Project: factors[i][c] = a[i] . basis[c]
	factors := make([][]float64, m)
	for i := 0; i < m; i++ {
		factors[i] = make([]float64, k)
		for c := 0; c < k; c++ {
			factors[i][c] = dot(a[i], basis[c])
		}
	}
	return factors, nil
}

// gramMatrix computes a'a for the m x u matrix a.
func gramMatrix(a [][]float64, m, u int) [][]float64 {
	gram := make([][]float64, u)
	for i := range gram {
		gram[i] = make([]float64, u)
	}
	for r := 0; r < m; r++ {
		row := a[r]
		for i := 0; i < u; i++ {
			if row[i] == 0 {
				continue
			}
			ri := row[i]
			for j := i; j < u; j++ {
				gram[i][j] += ri * row[j]
			}
		}
	}
	for i := 0; i < u; i++ {
		for j := 0; j < i; j++ {
			gram[i][j] = gram[j][i]
		}
	}
	return gram
}

// dominantEigenvector runs power iteration on gram, deflated against the
// already-found basis vectors. Returns nil if the context expires.
func dominantEigenvector(ctx context.Context, gram [][]float64, basis [][]float64, seed, maxIter int, tol float64) ([]float64, float64) {
	n := len(gram)

	// Deterministic non-degenerate start vector, varied per component so a
	// start orthogonal to the target direction is never reused.
	v := make([]float64, n)
	for i := range v {
		v[i] = 0.5 + float64((i*31+seed*17+7)%1000)/1000.0
	}
	orthogonalize(v, basis)
	normalize(v)

	w := make([]float64, n)
	var lambda float64

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, 0
		}

		matVec(gram, v, w)
		orthogonalize(w, basis)

		norm := normalize(w)
		if norm == 0 {
			// Nothing left in this subspace.
			return make([]float64, n), 0
		}

		// Convergence up to sign flip.
		var diff, diffNeg float64
		for i := range v {
			d := w[i] - v[i]
			diff += d * d
			d = w[i] + v[i]
			diffNeg += d * d
		}
		copy(v, w)

		if diff < tol || diffNeg < tol {
			break
		}
	}

	matVec(gram, v, w)
	lambda = dot(v, w)
	return v, lambda
}

// orthogonalize removes the components of v along each basis vector.
func orthogonalize(v []float64, basis [][]float64) {
	for _, b := range basis {
		p := dot(v, b)
		if p == 0 {
			continue
		}
		for i := range v {
			v[i] -= p * b[i]
		}
	}
}

// normalize scales v to unit length and returns the original norm.
func normalize(v []float64) float64 {
	norm := math.Sqrt(dot(v, v))
	if norm == 0 {
		return 0
	}
	for i := range v {
		v[i] /= norm
	}
	return norm
}

// matVec computes dst = m * v.
func matVec(m [][]float64, v, dst []float64) {
	for i := range m {
		dst[i] = dot(m[i], v)
	}
}

// cosineSimilarity computes cosine similarity between two vectors.
// Zero-norm inputs score zero.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// contextError maps a context failure to the engine's error taxonomy.
func contextError(ctx context.Context, stage string) error {
	if ctx.Err() == context.DeadlineExceeded {
		return &ComputationTimeoutError{Stage: stage}
	}
	return &ComputationError{Stage: stage, Cause: ctx.Err()}
}
