// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package dataset loads MovieLens 100K-format files into the catalog and
// rating store.
//
// Two files make up a dataset:
//
//   - the movies file (u.item): pipe-separated, Latin-1 encoded, one movie
//     per line with 19 trailing binary genre indicator columns
//   - the ratings file (u.data): tab-separated user/movie/rating/timestamp
//
// Loading is strict: malformed lines and ratings referencing unknown movies
// fail the load rather than being silently dropped.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/ratings"
)

// movieFieldCount is the column count of a movies-file line: id, title,
// release date, video release date, IMDb URL, then one indicator per genre.
const movieFieldCount = 5 + 19

// Load reads both dataset files from dir and returns the constructed
// catalog and rating store.
func Load(dir, moviesFile, ratingsFile string) (*catalog.Catalog, *ratings.Store, error) {
	movies, err := LoadMovies(filepath.Join(dir, moviesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load movies: %w", err)
	}

	cat, err := catalog.New(movies)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}

	rs, err := LoadRatings(filepath.Join(dir, ratingsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load ratings: %w", err)
	}

	for _, r := range rs {
		if _, ok := cat.TitleByID(r.MovieID); !ok {
			return nil, nil, fmt.Errorf("rating references unknown movie id %d", r.MovieID)
		}
	}

	return cat, ratings.NewStore(rs), nil
}

// LoadMovies parses a pipe-separated, Latin-1 encoded movies file.
func LoadMovies(path string) ([]catalog.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseMovies(charmap.ISO8859_1.NewDecoder().Reader(f))
}

// ParseMovies parses movie lines from r, which must already be UTF-8.
func ParseMovies(r io.Reader) ([]catalog.Movie, error) {
	var movies []catalog.Movie

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "|")
		if len(fields) != movieFieldCount {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, movieFieldCount, len(fields))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: movie id: %w", line, err)
		}

		genres := make([]string, 0, 4)
		for i, tag := range catalog.GenreVocabulary {
			flag := fields[5+i]
			switch flag {
			case "1":
				genres = append(genres, tag)
			case "0":
			default:
				return nil, fmt.Errorf("line %d: genre flag %q for %s", line, flag, tag)
			}
		}

		movies = append(movies, catalog.Movie{
			ID:     id,
			Title:  cleanTitle(fields[1]),
			Genres: genres,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// cleanTitle strips the trailing parenthesized year, turning
// "Toy Story (1995)" into "Toy Story". Only the first " (" matters, so
// titles with embedded parentheses keep their prefix intact.
func cleanTitle(title string) string {
	if cut, _, found := strings.Cut(title, " ("); found {
		title = cut
	}
	return strings.TrimSpace(title)
}

// LoadRatings parses a tab-separated ratings file.
func LoadRatings(path string) ([]ratings.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseRatings(f)
}

// ParseRatings parses rating lines from r.
func ParseRatings(r io.Reader) ([]ratings.Rating, error) {
	var out []ratings.Rating

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", line, len(fields))
		}

		userID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: user id: %w", line, err)
		}
		movieID, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: movie id: %w", line, err)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: rating: %w", line, err)
		}
		unix, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: timestamp: %w", line, err)
		}

		out = append(out, ratings.Rating{
			UserID:    userID,
			MovieID:   movieID,
			Value:     value,
			Timestamp: time.Unix(unix, 0).UTC(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
