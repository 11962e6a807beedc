// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/cinelens/internal/catalog"
)

// ContentIndex holds precomputed pairwise genre-similarity scores over the
// catalog. It is built once from the catalog's genre-tag strings and is
// read-only afterward, safe for unlimited concurrent access.
//
// Each movie's genre string is weighted as a TF-IDF term vector (raw term
// counts, smooth inverse document frequency), and the pairwise score is the
// linear kernel - the plain dot product of the two vectors. The vectors are
// deliberately NOT unit-normalized, so the score is a linear-kernel score
// rather than true cosine similarity. Substituting normalized cosine here
// would change the ranking semantics the rest of the system depends on.
type ContentIndex struct {
	catalog *catalog.Catalog

	// sim[i][j] is the linear-kernel score between catalog rows i and j.
	sim [][]float64
}

// NewContentIndex builds the pairwise similarity matrix from the catalog.
func NewContentIndex(cat *catalog.Catalog) *ContentIndex {
	n := cat.Len()

	docs := make([][]string, n)
	for row := 0; row < n; row++ {
		docs[row] = tokenize(cat.GenreText(row))
	}

	vocab, df := buildVocabulary(docs)

	// idf(t) = ln((1+n) / (1+df(t))) + 1, the smooth formulation of the
	// reference vectorizer.
	idf := make([]float64, len(vocab))
	for term, col := range vocab {
		idf[col] = math.Log(float64(1+n)/float64(1+df[term])) + 1.0
	}

	// Term vectors: tf * idf, no normalization.
	vectors := make([][]float64, n)
	for row, doc := range docs {
		vec := make([]float64, len(vocab))
		for _, tok := range doc {
			if col, ok := vocab[tok]; ok {
				vec[col] += idf[col]
			}
		}
		vectors[row] = vec
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := dot(vectors[i], vectors[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	return &ContentIndex{catalog: cat, sim: sim}
}

// SimilarTo returns the similarity vector for a catalog row. Callers must
// not mutate the returned slice.
func (ci *ContentIndex) SimilarTo(row int) []float64 {
	return ci.sim[row]
}

// Score returns the similarity score between two catalog rows.
func (ci *ContentIndex) Score(i, j int) float64 {
	return ci.sim[i][j]
}

// rankSimilar returns up to k catalog rows most similar to the query row,
// excluding the query row itself. Ties are broken by original catalog row
// order (stable sort), which keeps repeated calls deterministic.
func (ci *ContentIndex) rankSimilar(row, k int) []int {
	scores := ci.sim[row]

	candidates := make([]int, 0, len(scores)-1)
	for j := range scores {
		if j != row {
			candidates = append(candidates, j)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// tokenize lowercases the document and splits it into alphanumeric runs of
// length >= 2, matching the reference vectorizer's word pattern: the tag
// "film-noir" contributes the terms "film" and "noir".
func tokenize(doc string) []string {
	doc = strings.ToLower(doc)

	var tokens []string
	start := -1
	for i, r := range doc {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if tok := doc[start:i]; len(tok) >= 2 {
				tokens = append(tokens, tok)
			}
			start = -1
		}
	}
	if start >= 0 {
		if tok := doc[start:]; len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// buildVocabulary assigns sorted column positions to every non-stop-word
// term and counts document frequencies.
func buildVocabulary(docs [][]string) (map[string]int, map[string]int) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, stop := englishStopWords[tok]; stop {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for col, t := range terms {
		vocab[t] = col
	}
	return vocab, df
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
