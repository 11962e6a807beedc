// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinelens/internal/ratings"
)

func newTestRecommender(t *testing.T, cfg *Config) *Recommender {
	t.Helper()
	r, err := New(cfg, testCatalog(t), testStore(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestForUser(t *testing.T) {
	r := newTestRecommender(t, nil)

	got, err := r.ForUser(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if want := []string{"Gamma"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ForUser(1, 1) = %v, want %v", got, want)
	}
}

func TestForUserKLargerThanCatalog(t *testing.T) {
	r := newTestRecommender(t, nil)

	// User 1 rated two of the three movies; only one candidate remains no
	// matter how large k is.
	got, err := r.ForUser(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if want := []string{"Gamma"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ForUser(1, 50) = %v, want %v", got, want)
	}
}

func TestForUserUnknownUserEmpty(t *testing.T) {
	r := newTestRecommender(t, nil)

	got, err := r.ForUser(context.Background(), 99, 5)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ForUser(99, 5) = %v, want empty", got)
	}
}

func TestForUserInvalidK(t *testing.T) {
	r := newTestRecommender(t, nil)

	for _, k := range []int{0, -3} {
		_, err := r.ForUser(context.Background(), 1, k)
		var invalid *InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Errorf("ForUser(1, %d): got %v (%T), want *InvalidParameterError", k, err, err)
		}
	}
}

func TestSimilarTo(t *testing.T) {
	r := newTestRecommender(t, nil)

	tests := []struct {
		title string
		k     int
		want  []string
	}{
		{"Alpha", 1, []string{"Beta"}},
		{"Alpha", 5, []string{"Beta", "Gamma"}},
		{"Gamma", 1, []string{"Beta"}},
	}
	for _, tt := range tests {
		got, err := r.SimilarTo(context.Background(), tt.title, tt.k)
		if err != nil {
			t.Fatalf("SimilarTo(%q, %d): %v", tt.title, tt.k, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SimilarTo(%q, %d) = %v, want %v", tt.title, tt.k, got, tt.want)
		}
	}
}

func TestSimilarToUnknownTitleEmpty(t *testing.T) {
	r := newTestRecommender(t, nil)

	got, err := r.SimilarTo(context.Background(), "No Such Movie", 5)
	if err != nil {
		t.Fatalf("SimilarTo: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("SimilarTo(unknown) = %v, want empty", got)
	}
}

func TestSimilarToInvalidK(t *testing.T) {
	r := newTestRecommender(t, nil)

	_, err := r.SimilarTo(context.Background(), "Alpha", 0)
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v (%T), want *InvalidParameterError", err, err)
	}
}

func TestHybridWeights(t *testing.T) {
	r := newTestRecommender(t, nil)

	tests := []struct {
		name   string
		weight float64
		want   []string
	}{
		// weight 0: all collaborative; user 1 has one candidate.
		{"all collaborative", 0, []string{"Gamma"}},
		// weight 1: all content.
		{"all content", 1, []string{"Beta", "Gamma"}},
		// even split: one collaborative, one content.
		{"even split", 0.5, []string{"Gamma", "Beta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Hybrid(context.Background(), 1, "Alpha", 2, tt.weight)
			if err != nil {
				t.Fatalf("Hybrid: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Hybrid(weight=%g) = %v, want %v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestHybridDeduplicatesWithoutBackfill(t *testing.T) {
	r := newTestRecommender(t, nil)

	// Collaborative contributes Gamma; content contributes Beta then Gamma.
	// The duplicate Gamma is skipped and the result stays short of k.
	got, err := r.Hybrid(context.Background(), 1, "Alpha", 4, 0.5)
	if err != nil {
		t.Fatalf("Hybrid: %v", err)
	}
	if want := []string{"Gamma", "Beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hybrid = %v, want %v", got, want)
	}
}

func TestHybridInvalidParameters(t *testing.T) {
	r := newTestRecommender(t, nil)

	cases := []struct {
		name   string
		k      int
		weight float64
	}{
		{"zero k", 0, 0.5},
		{"negative weight", 5, -0.1},
		{"weight above one", 5, 1.5},
		{"NaN weight", 5, math.NaN()},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Hybrid(context.Background(), 1, "Alpha", tt.k, tt.weight)
			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("got %v (%T), want *InvalidParameterError", err, err)
			}
		})
	}
}

func TestRebuild(t *testing.T) {
	r := newTestRecommender(t, nil)

	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	got, err := r.ForUser(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("ForUser after rebuild: %v", err)
	}
	if want := []string{"Gamma"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ForUser after rebuild = %v, want %v", got, want)
	}
}

func TestForUserDegenerateStore(t *testing.T) {
	store := ratings.NewStore([]ratings.Rating{
		{UserID: 1, MovieID: 10, Value: 5},
		{UserID: 1, MovieID: 20, Value: 3},
	})
	r, err := New(nil, testCatalog(t), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = r.ForUser(context.Background(), 1, 5)
	var comp *ComputationError
	if !errors.As(err, &comp) {
		t.Fatalf("got %v (%T), want *ComputationError", err, err)
	}
}

func TestForUserBuildTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collaborative.BuildTimeout = 1 // one nanosecond, expired on arrival

	r := newTestRecommender(t, cfg)

	_, err := r.ForUser(context.Background(), 1, 5)
	var timeout *ComputationTimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("got %v (%T), want *ComputationTimeoutError", err, err)
	}
}

func TestCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheModel = false

	r := newTestRecommender(t, cfg)

	for i := 0; i < 3; i++ {
		got, err := r.ForUser(context.Background(), 1, 1)
		if err != nil {
			t.Fatalf("ForUser (uncached, call %d): %v", i, err)
		}
		if want := []string{"Gamma"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ForUser (uncached) = %v, want %v", got, want)
		}
	}
}

func TestConcurrentFirstUse(t *testing.T) {
	r := newTestRecommender(t, nil)

	const workers = 16
	results := make([][]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.ForUser(context.Background(), 1, 1)
		}(i)
	}
	wg.Wait()

	want := []string{"Gamma"}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !reflect.DeepEqual(results[i], want) {
			t.Errorf("worker %d = %v, want %v", i, results[i], want)
		}
	}
}
