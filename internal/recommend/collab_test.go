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
	"testing"

	"github.com/tomtom215/cinelens/internal/ratings"
)

func testStore() *ratings.Store {
	return ratings.NewStore([]ratings.Rating{
		{UserID: 1, MovieID: 10, Value: 5},
		{UserID: 1, MovieID: 20, Value: 3},
		{UserID: 2, MovieID: 20, Value: 4},
		{UserID: 2, MovieID: 30, Value: 5},
	})
}

func TestBuildCollabModelPivot(t *testing.T) {
	model, err := buildCollabModel(context.Background(), testStore(), DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("buildCollabModel: %v", err)
	}

	if got, want := model.movieIDs, []int{10, 20, 30}; !reflect.DeepEqual(got, want) {
		t.Errorf("movieIDs = %v, want %v", got, want)
	}

	wantPivot := [][]float64{
		{5, 0},
		{3, 4},
		{0, 5},
	}
	if !reflect.DeepEqual(model.pivot, wantPivot) {
		t.Errorf("pivot = %v, want %v", model.pivot, wantPivot)
	}
}

func TestBuildCollabModelDuplicateLastWins(t *testing.T) {
	store := ratings.NewStore([]ratings.Rating{
		{UserID: 1, MovieID: 10, Value: 2},
		{UserID: 1, MovieID: 20, Value: 3},
		{UserID: 2, MovieID: 10, Value: 4},
		{UserID: 1, MovieID: 10, Value: 5}, // re-rating
	})

	model, err := buildCollabModel(context.Background(), store, DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("buildCollabModel: %v", err)
	}
	if got := model.pivot[0][0]; got != 5 {
		t.Errorf("pivot[10][user 1] = %g, want 5 (last observation wins)", got)
	}
}

func TestBuildCollabModelRankOneCorrelation(t *testing.T) {
	// With two users the factorization is clamped to one component, so
	// every movie's reduced representation points the same way and all
	// pairwise correlations are 1.
	model, err := buildCollabModel(context.Background(), testStore(), DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("buildCollabModel: %v", err)
	}
	for i := range model.corr {
		for j := range model.corr[i] {
			if math.Abs(model.corr[i][j]-1) > 1e-9 {
				t.Errorf("corr[%d][%d] = %g, want 1", i, j, model.corr[i][j])
			}
		}
	}
}

func TestBuildCollabModelDegenerate(t *testing.T) {
	// A single user clamps the rank to zero: nothing to factorize.
	store := ratings.NewStore([]ratings.Rating{
		{UserID: 1, MovieID: 10, Value: 5},
		{UserID: 1, MovieID: 20, Value: 3},
	})

	_, err := buildCollabModel(context.Background(), store, DefaultConfig().Collaborative)
	var comp *ComputationError
	if !errors.As(err, &comp) {
		t.Fatalf("got %v (%T), want *ComputationError", err, err)
	}
}

func TestBuildCollabModelEmpty(t *testing.T) {
	_, err := buildCollabModel(context.Background(), ratings.NewStore(nil), DefaultConfig().Collaborative)
	var comp *ComputationError
	if !errors.As(err, &comp) {
		t.Fatalf("got %v (%T), want *ComputationError", err, err)
	}
}

func TestRankForUserExcludesRated(t *testing.T) {
	model, err := buildCollabModel(context.Background(), testStore(), DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("buildCollabModel: %v", err)
	}

	tests := []struct {
		userID int
		want   []int
	}{
		{1, []int{30}}, // rated 10 and 20
		{2, []int{10}}, // rated 20 and 30
	}
	for _, tt := range tests {
		got, err := model.rankForUser(tt.userID)
		if err != nil {
			t.Fatalf("rankForUser(%d): %v", tt.userID, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("rankForUser(%d) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}

func TestRankForUserUnknown(t *testing.T) {
	model, err := buildCollabModel(context.Background(), testStore(), DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("buildCollabModel: %v", err)
	}

	_, err = model.rankForUser(99)
	var unknown *UnknownUserError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v (%T), want *UnknownUserError", err, err)
	}
}

func TestBuildCollabModelDeterministic(t *testing.T) {
	a, err := buildCollabModel(context.Background(), testStore(), DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := buildCollabModel(context.Background(), testStore(), DefaultConfig().Collaborative)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !reflect.DeepEqual(a.corr, b.corr) {
		t.Error("repeated builds over the same store should produce identical correlation matrices")
	}
}
