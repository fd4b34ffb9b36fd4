package domain

// Match pairs a document with its relevance score for one query.
// Matches are never persisted.
type Match struct {
	Document Document
	Score    int
}
