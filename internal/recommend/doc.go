// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package recommend implements the Cinelens recommendation engine.
//
// Two independent signal sources feed the facade:
//
//   - Content-based filtering: a precomputed pairwise genre-similarity
//     index over the catalog (TF-IDF term vectors scored with the linear
//     kernel, deliberately unnormalized).
//   - Collaborative filtering: a truncated-SVD latent representation of the
//     movie-by-user rating matrix, with a movie-by-movie correlation matrix
//     scored against the target user's zero-filled rating vector.
//
// The hybrid operation blends the two by a caller-supplied weight.
//
// # Concurrency
//
// The content index is built once at construction and is read-only. The
// collaborative model is a pure function of the rating-store snapshot; the
// facade memoizes it by store fingerprint and collapses concurrent first
// builds through singleflight, so no herd of identical factorizations can
// form. Every build is bounded by a configurable timeout.
package recommend
