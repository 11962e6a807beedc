// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package analytics computes dataset statistics over the catalog and
// rating store: dataset summary, genre distribution, movie popularity,
// and user activity.
//
// All computations run against immutable inputs and are safe for
// concurrent use.
package analytics

import (
	"math"
	"sort"

	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/ratings"
)

// Service answers analytics queries for one loaded dataset.
type Service struct {
	cat   *catalog.Catalog
	store *ratings.Store
}

// New creates an analytics service over the given catalog and ratings.
func New(cat *catalog.Catalog, store *ratings.Store) *Service {
	return &Service{cat: cat, store: store}
}

// Summary holds headline dataset counts.
type Summary struct {
	Movies     int     `json:"movies"`
	Ratings    int     `json:"ratings"`
	Users      int     `json:"users"`
	MeanRating float64 `json:"mean_rating"`
}

// Summary returns the dataset summary. MeanRating is 0 for an empty store.
func (s *Service) Summary() Summary {
	all := s.store.All()

	var sum float64
	for _, r := range all {
		sum += r.Value
	}
	mean := 0.0
	if len(all) > 0 {
		mean = sum / float64(len(all))
	}

	return Summary{
		Movies:     s.cat.Len(),
		Ratings:    len(all),
		Users:      len(s.store.UserIDs()),
		MeanRating: mean,
	}
}

// GenreCount pairs a genre tag with the number of movies carrying it.
type GenreCount struct {
	Genre  string `json:"genre"`
	Movies int    `json:"movies"`
}

// GenreDistribution returns movie counts per genre tag, most common first.
// Ties keep the genre vocabulary order.
func (s *Service) GenreDistribution() []GenreCount {
	counts := make(map[string]int, len(catalog.GenreVocabulary))
	for row := 0; row < s.cat.Len(); row++ {
		for _, g := range s.cat.At(row).Genres {
			counts[g]++
		}
	}

	out := make([]GenreCount, 0, len(catalog.GenreVocabulary))
	for _, g := range catalog.GenreVocabulary {
		out = append(out, GenreCount{Genre: g, Movies: counts[g]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Movies > out[j].Movies
	})
	return out
}

// GenreRating pairs a genre tag with the mean rating of its movies.
type GenreRating struct {
	Genre      string  `json:"genre"`
	Ratings    int     `json:"ratings"`
	MeanRating float64 `json:"mean_rating"`
}

// GenreMeanRatings returns, per genre in vocabulary order, the mean of all
// ratings given to movies carrying that tag. Genres with no rated movies
// are omitted.
func (s *Service) GenreMeanRatings() []GenreRating {
	type acc struct {
		sum   float64
		count int
	}
	byGenre := make(map[string]*acc, len(catalog.GenreVocabulary))

	for _, r := range s.store.All() {
		m, err := s.cat.ByID(r.MovieID)
		if err != nil {
			continue
		}
		for _, g := range m.Genres {
			a := byGenre[g]
			if a == nil {
				a = &acc{}
				byGenre[g] = a
			}
			a.sum += r.Value
			a.count++
		}
	}

	out := make([]GenreRating, 0, len(byGenre))
	for _, g := range catalog.GenreVocabulary {
		a := byGenre[g]
		if a == nil || a.count == 0 {
			continue
		}
		out = append(out, GenreRating{
			Genre:      g,
			Ratings:    a.count,
			MeanRating: a.sum / float64(a.count),
		})
	}
	return out
}

// MoviePopularity describes how often and how well a movie is rated.
type MoviePopularity struct {
	MovieID    int     `json:"movie_id"`
	Title      string  `json:"title"`
	Ratings    int     `json:"ratings"`
	MeanRating float64 `json:"mean_rating"`
}

// Popularity returns movies with at least minRatings ratings, most rated
// first, capped at limit. Ties are broken by ascending movie ID. Mean
// ratings are rounded to two decimals.
func (s *Service) Popularity(minRatings, limit int) []MoviePopularity {
	type acc struct {
		sum   float64
		count int
	}
	byMovie := make(map[int]*acc)
	for _, r := range s.store.All() {
		a := byMovie[r.MovieID]
		if a == nil {
			a = &acc{}
			byMovie[r.MovieID] = a
		}
		a.sum += r.Value
		a.count++
	}

	out := make([]MoviePopularity, 0, len(byMovie))
	for _, id := range s.store.MovieIDs() {
		a := byMovie[id]
		if a == nil || a.count < minRatings {
			continue
		}
		title, ok := s.cat.TitleByID(id)
		if !ok {
			continue
		}
		out = append(out, MoviePopularity{
			MovieID:    id,
			Title:      title,
			Ratings:    a.count,
			MeanRating: math.Round(a.sum/float64(a.count)*100) / 100,
		})
	}

	// MovieIDs is ascending, so the stable sort keeps ID order on ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratings > out[j].Ratings
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UserActivity describes how many ratings a user has submitted.
type UserActivity struct {
	UserID  int `json:"user_id"`
	Ratings int `json:"ratings"`
}

// MostActiveUsers returns users ordered by rating count descending, capped
// at limit. Ties are broken by ascending user ID.
func (s *Service) MostActiveUsers(limit int) []UserActivity {
	ids := s.store.UserIDs()

	out := make([]UserActivity, 0, len(ids))
	for _, id := range ids {
		out = append(out, UserActivity{UserID: id, Ratings: len(s.store.ByUser(id))})
	}

	// UserIDs is ascending, so the stable sort keeps ID order on ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratings > out[j].Ratings
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
