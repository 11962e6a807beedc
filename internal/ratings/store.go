// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package ratings provides the immutable in-memory rating store.
//
// The Store is the engine's only source of collaborative signal. It is
// created once at load time and never mutated, so a single fingerprint can
// key derived models for the process lifetime.
package ratings

import (
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Rating is one (user, movie, rating) observation. Value domain is 1-5.
// Timestamp is carried for analytics but unused by the engine.
type Rating struct {
	UserID    int       `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Store is the immutable set of rating observations.
type Store struct {
	all    []Rating
	byUser map[int][]Rating

	movieIDs []int // sorted distinct
	userIDs  []int // sorted distinct

	fingerprint uint64
}

// NewStore builds a Store from the full observation set. The input slice is
// copied; callers may reuse it.
func NewStore(observations []Rating) *Store {
	s := &Store{
		all:    make([]Rating, len(observations)),
		byUser: make(map[int][]Rating),
	}
	copy(s.all, observations)

	movieSet := make(map[int]struct{})
	for _, r := range s.all {
		s.byUser[r.UserID] = append(s.byUser[r.UserID], r)
		movieSet[r.MovieID] = struct{}{}
	}

	s.movieIDs = make([]int, 0, len(movieSet))
	for id := range movieSet {
		s.movieIDs = append(s.movieIDs, id)
	}
	sort.Ints(s.movieIDs)

	s.userIDs = make([]int, 0, len(s.byUser))
	for id := range s.byUser {
		s.userIDs = append(s.userIDs, id)
	}
	sort.Ints(s.userIDs)

	s.fingerprint = computeFingerprint(s.all)
	return s
}

// Len returns the number of observations.
func (s *Store) Len() int {
	return len(s.all)
}

// All returns the full observation set. Callers must not mutate it.
func (s *Store) All() []Rating {
	return s.all
}

// ByUser returns the observations for one user, or nil if the user has none.
// Callers must not mutate the returned slice.
func (s *Store) ByUser(userID int) []Rating {
	return s.byUser[userID]
}

// HasUser reports whether the user has at least one observation.
func (s *Store) HasUser(userID int) bool {
	_, ok := s.byUser[userID]
	return ok
}

// MovieIDs returns the sorted distinct movie IDs present in the store.
// These are the pivot matrix rows, in order. Callers must not mutate it.
func (s *Store) MovieIDs() []int {
	return s.movieIDs
}

// UserIDs returns the sorted distinct user IDs present in the store.
// These are the pivot matrix columns, in order. Callers must not mutate it.
func (s *Store) UserIDs() []int {
	return s.userIDs
}

// Fingerprint returns a stable hash of the observation set, suitable for
// keying snapshot-derived model caches. Two stores with the same
// observations in the same order hash equal.
func (s *Store) Fingerprint() uint64 {
	return s.fingerprint
}

func computeFingerprint(all []Rating) uint64 {
	h := xxhash.New()
	var buf [8 * 3]byte
	for _, r := range all {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(r.UserID))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(r.MovieID))
		binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(r.Value))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
