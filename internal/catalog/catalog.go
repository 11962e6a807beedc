// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package catalog provides the immutable in-memory movie catalog.
//
// A Catalog is built once at startup from loader output and is read-only
// afterward, which makes it safe for unlimited concurrent access.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// GenreVocabulary is the fixed set of genre tags, in catalog column order.
// It matches the MovieLens 100K binary genre indicator columns.
var GenreVocabulary = []string{
	"unknown", "action", "adventure", "animation", "childrens",
	"comedy", "crime", "documentary", "drama", "fantasy",
	"film-noir", "horror", "musical", "mystery", "romance",
	"sci-fi", "thriller", "war", "western",
}

// Movie is a single catalog entry. Movies are created once at load time
// and never mutated.
type Movie struct {
	// ID is the unique integer key from the source dataset.
	ID int `json:"id"`

	// Title is the display title. Titles are not guaranteed unique; see
	// the RowByTitle documentation for how duplicates are resolved.
	Title string `json:"title"`

	// Genres is the movie's genre tags, drawn from GenreVocabulary.
	Genres []string `json:"genres"`
}

// NotFoundError indicates a movie ID or title is absent from the catalog.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s not found", e.Key)
}

// Catalog is the immutable, ordered collection of movies. Row positions
// are stable for the process lifetime and index the content similarity
// matrix.
type Catalog struct {
	movies  []Movie
	byID    map[int]int    // movie ID -> row
	byTitle map[string]int // title -> row, first occurrence wins
}

// New builds a Catalog from an ordered movie sequence. Duplicate movie IDs
// are a construction bug and are rejected. Duplicate titles are accepted:
// the reverse title index keeps the FIRST occurrence, a known, documented
// degradation of title-keyed lookups.
func New(movies []Movie) (*Catalog, error) {
	c := &Catalog{
		movies:  make([]Movie, len(movies)),
		byID:    make(map[int]int, len(movies)),
		byTitle: make(map[string]int, len(movies)),
	}
	copy(c.movies, movies)

	for row, m := range c.movies {
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate movie id %d", m.ID)
		}
		c.byID[m.ID] = row

		if _, dup := c.byTitle[m.Title]; !dup {
			c.byTitle[m.Title] = row
		}
	}

	return c, nil
}

// Len returns the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// At returns the movie at the given row position.
func (c *Catalog) At(row int) Movie {
	return c.movies[row]
}

// ByID looks up a movie by its dataset ID.
func (c *Catalog) ByID(id int) (Movie, error) {
	row, ok := c.byID[id]
	if !ok {
		return Movie{}, &NotFoundError{Key: fmt.Sprintf("movie id %d", id)}
	}
	return c.movies[row], nil
}

// TitleByID resolves a movie ID to its title.
func (c *Catalog) TitleByID(id int) (string, bool) {
	row, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return c.movies[row].Title, true
}

// RowByTitle resolves a title to its catalog row position. When two movies
// share a title, the first catalog occurrence is returned.
func (c *Catalog) RowByTitle(title string) (int, error) {
	row, ok := c.byTitle[title]
	if !ok {
		return 0, &NotFoundError{Key: fmt.Sprintf("title %q", title)}
	}
	return row, nil
}

// Titles returns the sorted set of unique titles.
func (c *Catalog) Titles() []string {
	titles := make([]string, 0, len(c.byTitle))
	for t := range c.byTitle {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

// GenreText returns the movie's genre tags joined by single spaces. This
// string is the input document for the content similarity index.
func (c *Catalog) GenreText(row int) string {
	return strings.Join(c.movies[row].Genres, " ")
}
