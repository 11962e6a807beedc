// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import "fmt"

// The engine splits its error contract in two. Lookup misses by title or
// user on the public Recommender methods resolve to an empty result, never
// to an error: the dashboard treats "no recommendations" as a normal,
// displayable state. The typed errors below surface construction bugs,
// invalid parameters, and factorization failures, which callers must not
// swallow.

// NotFoundError indicates a title or movie ID absent from the catalog where
// an internal invariant required it to exist.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recommend: %s not found", e.Key)
}

// UnknownUserError indicates a user with no observations in the rating
// store. The public facade converts this to an empty result; it is exported
// for callers that use the model layer directly.
type UnknownUserError struct {
	UserID int
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("recommend: user %d has no ratings", e.UserID)
}

// InvalidParameterError indicates a caller-supplied parameter outside its
// documented domain (k <= 0, weight outside [0,1]).
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("recommend: invalid parameter %s: %s", e.Param, e.Reason)
}

// ComputationError indicates the matrix factorization failed, for example
// on a degenerate rating matrix too small to reduce. Computations are
// deterministic and pure; retrying will fail identically.
type ComputationError struct {
	Stage string
	Cause error
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recommend: %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("recommend: %s failed", e.Stage)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

// ComputationTimeoutError indicates the factorization exceeded its time
// budget and was abandoned rather than blocking the caller indefinitely.
type ComputationTimeoutError struct {
	Stage string
}

func (e *ComputationTimeoutError) Error() string {
	return fmt.Sprintf("recommend: %s timed out", e.Stage)
}
