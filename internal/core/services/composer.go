package services

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// Fixed fragments of composed responses.
const (
	noMatchPreamble = "I'm sorry, I couldn't find relevant information in your uploaded documents. " +
		"But here's my best attempt to answer your question:\n\n"
	noMatchAnswer = "[This is a mock response. Please upload documents for better answers.]"
	matchAnswer   = "[This is a mock response based on your uploaded documents.]"
	ellipsis      = "..."
)

// Composer builds the canned answer text from scorer output.
// It is deterministic and never fails.
type Composer struct {
	windowBefore   int
	windowAfter    int
	fallbackLength int
}

// NewComposer creates a composer. Non-positive sizes take their defaults.
func NewComposer(cfg domain.ComposerConfig) *Composer {
	defaults := domain.DefaultConfig().Composer
	if cfg.WindowBefore <= 0 {
		cfg.WindowBefore = defaults.WindowBefore
	}
	if cfg.WindowAfter <= 0 {
		cfg.WindowAfter = defaults.WindowAfter
	}
	if cfg.FallbackLength <= 0 {
		cfg.FallbackLength = defaults.FallbackLength
	}
	return &Composer{
		windowBefore:   cfg.WindowBefore,
		windowAfter:    cfg.WindowAfter,
		fallbackLength: cfg.FallbackLength,
	}
}

// Compose returns the answer for query given the system prompt, the
// matched documents and the selected model ID.
func (c *Composer) Compose(prompt, query string, matches []domain.Match, model string) string {
	var b strings.Builder

	if len(matches) == 0 {
		b.WriteString(noMatchPreamble)
		writePrompt(&b, prompt)
		b.WriteString("Q: " + query + "\nA: " + noMatchAnswer)
		b.WriteString("\n\n[Model: " + model + "]")
		return b.String()
	}

	writePrompt(&b, prompt)
	b.WriteString("Q: " + query + "\nA: ")
	tokens := queryTokens(query)
	for _, m := range matches {
		b.WriteString("From \"" + m.Document.Name + "\":\n")
		b.WriteString(c.excerpt(m.Document.Text, tokens))
		b.WriteString("\n\n")
	}
	b.WriteString(matchAnswer)
	b.WriteString("\n\n[Model: " + model + "]")
	return b.String()
}

func writePrompt(b *strings.Builder, prompt string) {
	if prompt != "" {
		b.WriteString(prompt + "\n\n")
	}
}

// excerpt cuts a window around the first query token found in text,
// or falls back to the beginning of the text.
func (c *Composer) excerpt(text string, tokens []string) string {
	runes := []rune(text)
	lowered := lowerRunes(runes)

	for _, token := range tokens {
		i := indexRunes(lowered, lowerRunes([]rune(token)))
		if i < 0 {
			continue
		}
		start := max(0, i-c.windowBefore)
		end := min(len(runes), i+c.windowAfter)
		return ellipsis + string(runes[start:end]) + ellipsis
	}

	end := min(len(runes), c.fallbackLength)
	return string(runes[:end]) + ellipsis
}

// foldCase lower-cases s with the same per-rune mapping the excerpt search uses.
func foldCase(s string) string {
	return string(lowerRunes([]rune(s)))
}

// lowerRunes lower-cases rune by rune so indexes stay aligned with the input.
func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexRunes returns the index of the first occurrence of sub in s, or -1.
func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
