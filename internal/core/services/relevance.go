package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// MaxMatches is the number of documents returned by Score.
const MaxMatches = 2

// minTokenLength is the shortest query token that takes part in matching.
const minTokenLength = 3

// queryTokens lower-cases the query, splits it on whitespace and drops
// tokens shorter than minTokenLength characters. Order and duplicates are kept.
func queryTokens(query string) []string {
	fields := strings.Fields(foldCase(query))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Score ranks documents by keyword overlap with the query.
// For every query token it counts the document words that contain the
// token as a substring. Documents scoring zero are dropped, the rest are
// sorted by score descending with ties kept in input order, and at most
// MaxMatches are returned.
func Score(documents []domain.Document, query string) []domain.Match {
	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var matches []domain.Match
	for _, doc := range documents {
		words := strings.Fields(foldCase(doc.Text))

		score := 0
		for _, token := range tokens {
			for _, w := range words {
				if strings.Contains(w, token) {
					score++
				}
			}
		}
		if score > 0 {
			matches = append(matches, domain.Match{Document: doc, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}
