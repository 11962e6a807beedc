// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package analytics

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/ratings"
)

func testService(t *testing.T) *Service {
	t.Helper()
	cat, err := catalog.New([]catalog.Movie{
		{ID: 10, Title: "Alpha", Genres: []string{"action"}},
		{ID: 20, Title: "Beta", Genres: []string{"action", "comedy"}},
		{ID: 30, Title: "Gamma", Genres: []string{"comedy"}},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	store := ratings.NewStore([]ratings.Rating{
		{UserID: 1, MovieID: 10, Value: 5},
		{UserID: 1, MovieID: 20, Value: 3},
		{UserID: 2, MovieID: 20, Value: 4},
		{UserID: 2, MovieID: 30, Value: 5},
		{UserID: 3, MovieID: 20, Value: 2},
	})
	return New(cat, store)
}

func TestSummary(t *testing.T) {
	s := testService(t).Summary()

	if s.Movies != 3 || s.Ratings != 5 || s.Users != 3 {
		t.Errorf("Summary = %+v, want 3 movies, 5 ratings, 3 users", s)
	}
	if want := (5.0 + 3 + 4 + 5 + 2) / 5; math.Abs(s.MeanRating-want) > 1e-12 {
		t.Errorf("MeanRating = %g, want %g", s.MeanRating, want)
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	cat, err := catalog.New(nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	s := New(cat, ratings.NewStore(nil)).Summary()

	if s.MeanRating != 0 {
		t.Errorf("MeanRating = %g, want 0 for empty store", s.MeanRating)
	}
}

func TestGenreDistribution(t *testing.T) {
	dist := testService(t).GenreDistribution()

	if len(dist) != len(catalog.GenreVocabulary) {
		t.Fatalf("got %d genres, want %d", len(dist), len(catalog.GenreVocabulary))
	}

	// action and comedy both tag two movies; action precedes comedy in the
	// vocabulary, so the stable sort keeps it first.
	if dist[0].Genre != "action" || dist[0].Movies != 2 {
		t.Errorf("dist[0] = %+v, want action with 2 movies", dist[0])
	}
	if dist[1].Genre != "comedy" || dist[1].Movies != 2 {
		t.Errorf("dist[1] = %+v, want comedy with 2 movies", dist[1])
	}
	for _, gc := range dist[2:] {
		if gc.Movies != 0 {
			t.Errorf("genre %s has %d movies, want 0", gc.Genre, gc.Movies)
		}
	}
}

func TestGenreMeanRatings(t *testing.T) {
	got := testService(t).GenreMeanRatings()

	// action: ratings for Alpha (5) and Beta (3, 4, 2); comedy: Beta
	// (3, 4, 2) and Gamma (5).
	want := []GenreRating{
		{Genre: "action", Ratings: 4, MeanRating: 3.5},
		{Genre: "comedy", Ratings: 4, MeanRating: 3.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenreMeanRatings = %v, want %v", got, want)
	}
}

func TestPopularity(t *testing.T) {
	got := testService(t).Popularity(1, 10)

	want := []MoviePopularity{
		{MovieID: 20, Title: "Beta", Ratings: 3, MeanRating: 3},
		{MovieID: 10, Title: "Alpha", Ratings: 1, MeanRating: 5},
		{MovieID: 30, Title: "Gamma", Ratings: 1, MeanRating: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Popularity = %v, want %v", got, want)
	}
}

func TestPopularityThresholdAndLimit(t *testing.T) {
	svc := testService(t)

	if got := svc.Popularity(2, 10); len(got) != 1 || got[0].MovieID != 20 {
		t.Errorf("Popularity(min 2) = %v, want only Beta", got)
	}
	if got := svc.Popularity(1, 2); len(got) != 2 {
		t.Errorf("Popularity(limit 2) returned %d entries, want 2", len(got))
	}
}

func TestMostActiveUsers(t *testing.T) {
	got := testService(t).MostActiveUsers(10)

	want := []UserActivity{
		{UserID: 1, Ratings: 2},
		{UserID: 2, Ratings: 2},
		{UserID: 3, Ratings: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MostActiveUsers = %v, want %v", got, want)
	}

	if got := testService(t).MostActiveUsers(1); len(got) != 1 || got[0].UserID != 1 {
		t.Errorf("MostActiveUsers(1) = %v, want user 1 only", got)
	}
}
