package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

func doc(id, text string) domain.Document {
	return domain.Document{ID: id, Name: id + ".txt", Text: text}
}

func TestQueryTokens(t *testing.T) {
	tests := []struct {
		query    string
		expected []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"a an of", []string{}},
		{"The Quick fox", []string{"the", "quick", "fox"}},
		{"fox  fox\tFOX", []string{"fox", "fox", "fox"}},
		{"über äö", []string{"über"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			tokens := queryTokens(tt.query)
			if len(tt.expected) == 0 {
				assert.Empty(t, tokens)
				return
			}
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestScore_QuickFox(t *testing.T) {
	docs := []domain.Document{doc("fox", "The quick brown fox")}

	matches := Score(docs, "quick fox")

	require.Len(t, matches, 1)
	assert.Equal(t, "fox", matches[0].Document.ID)
	assert.GreaterOrEqual(t, matches[0].Score, 2)
}

func TestScore_NoUsableTokens(t *testing.T) {
	docs := []domain.Document{doc("a", "an ox is on it")}

	assert.Empty(t, Score(docs, ""))
	assert.Empty(t, Score(docs, "   "))
	assert.Empty(t, Score(docs, "an ox is"))
}

func TestScore_SubstringCounts(t *testing.T) {
	docs := []domain.Document{doc("a", "testing tested contest test")}

	matches := Score(docs, "test")

	require.Len(t, matches, 1)
	assert.Equal(t, 4, matches[0].Score)
}

func TestScore_DuplicateTokensCountTwice(t *testing.T) {
	docs := []domain.Document{doc("a", "fox")}

	matches := Score(docs, "fox fox")

	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Score)
}

func TestScore_CaseInsensitive(t *testing.T) {
	docs := []domain.Document{doc("a", "GOLANG Rocks")}

	matches := Score(docs, "golang")

	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Score)
}

func TestScore_DropsZeroAndCapsAtTwo(t *testing.T) {
	docs := []domain.Document{
		doc("none", "nothing relevant here"),
		doc("one", "apple"),
		doc("three", "apple apple apple"),
		doc("two", "apple apple"),
	}

	matches := Score(docs, "apple")

	require.Len(t, matches, MaxMatches)
	assert.Equal(t, "three", matches[0].Document.ID)
	assert.Equal(t, "two", matches[1].Document.ID)
	for _, m := range matches {
		assert.Positive(t, m.Score)
	}
}

func TestScore_StableTies(t *testing.T) {
	docs := []domain.Document{
		doc("first", "kiwi"),
		doc("second", "kiwi"),
		doc("third", "kiwi"),
	}

	matches := Score(docs, "kiwi")

	require.Len(t, matches, 2)
	assert.Equal(t, "first", matches[0].Document.ID)
	assert.Equal(t, "second", matches[1].Document.ID)
}

func TestScore_Descending(t *testing.T) {
	docs := []domain.Document{
		doc("low", "pear"),
		doc("high", "pear pear plum plum"),
	}

	matches := Score(docs, "pear plum")

	require.Len(t, matches, 2)
	assert.Equal(t, "high", matches[0].Document.ID)
	assert.Equal(t, 4, matches[0].Score)
	assert.Equal(t, 1, matches[1].Score)
}

func TestScore_NoDocuments(t *testing.T) {
	assert.Empty(t, Score(nil, "anything"))
}
