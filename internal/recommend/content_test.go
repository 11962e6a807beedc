// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/cinelens/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Movie{
		{ID: 10, Title: "Alpha", Genres: []string{"action"}},
		{ID: 20, Title: "Beta", Genres: []string{"action", "comedy"}},
		{ID: 30, Title: "Gamma", Genres: []string{"comedy"}},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		doc  string
		want []string
	}{
		{"action comedy", []string{"action", "comedy"}},
		{"film-noir", []string{"film", "noir"}},
		{"Sci-Fi", []string{"sci", "fi"}},
		{"a x action", []string{"action"}}, // single-char runs dropped
		{"", nil},
		{"  ", nil},
		{"war", []string{"war"}},
	}
	for _, tt := range tests {
		if got := tokenize(tt.doc); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.doc, got, tt.want)
		}
	}
}

func TestContentIndexScores(t *testing.T) {
	ci := NewContentIndex(testCatalog(t))

	// Alpha and Gamma share no genre.
	if got := ci.Score(0, 2); got != 0 {
		t.Errorf("Score(Alpha, Gamma) = %g, want 0", got)
	}
	// Alpha and Beta share "action".
	if got := ci.Score(0, 1); got <= 0 {
		t.Errorf("Score(Alpha, Beta) = %g, want > 0", got)
	}
	// Symmetry.
	if ci.Score(1, 2) != ci.Score(2, 1) {
		t.Error("similarity matrix should be symmetric")
	}
}

func TestContentIndexSmoothIDF(t *testing.T) {
	ci := NewContentIndex(testCatalog(t))

	// Alpha's vector is a single "action" component with weight
	// idf = ln((1+3)/(1+2)) + 1, so its self-score is idf squared.
	idf := math.Log(4.0/3.0) + 1.0
	want := idf * idf
	if got := ci.Score(0, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("Score(Alpha, Alpha) = %g, want %g", got, want)
	}
}

func TestContentVectorsNotNormalized(t *testing.T) {
	ci := NewContentIndex(testCatalog(t))

	// Beta carries two equally-weighted terms, so its self-score is twice
	// Alpha's. Unit-normalized vectors would make both exactly 1.
	if got, single := ci.Score(1, 1), ci.Score(0, 0); math.Abs(got-2*single) > 1e-12 {
		t.Errorf("Score(Beta, Beta) = %g, want %g (2x single-term self-score)", got, 2*single)
	}
}

func TestRankSimilar(t *testing.T) {
	ci := NewContentIndex(testCatalog(t))

	if got, want := ci.rankSimilar(0, 1), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("rankSimilar(Alpha, 1) = %v, want %v", got, want)
	}

	// k larger than the candidate pool returns every other row, best first.
	if got, want := ci.rankSimilar(0, 10), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("rankSimilar(Alpha, 10) = %v, want %v", got, want)
	}

	// The query row never recommends itself.
	for _, row := range ci.rankSimilar(1, 10) {
		if row == 1 {
			t.Fatal("rankSimilar must exclude the query row")
		}
	}
}

func TestContentIndexExcludesStopWords(t *testing.T) {
	cat, err := catalog.New([]catalog.Movie{
		{ID: 1, Title: "One", Genres: []string{"the", "action"}},
		{ID: 2, Title: "Two", Genres: []string{"the", "comedy"}},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	ci := NewContentIndex(cat)

	// "the" is a stop word; the two movies share nothing else.
	if got := ci.Score(0, 1); got != 0 {
		t.Errorf("Score = %g, want 0 (stop word must not contribute)", got)
	}
}
