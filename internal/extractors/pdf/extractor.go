// Package pdf decodes paginated documents with github.com/ledongthuc/pdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Glyphs closer than this fraction of the font size continue the same item.
const gapFactor = 0.3

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format this extractor decodes.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPaginated
}

// Extract returns the text of pages 1..N. Items on a page are joined with a
// single space and pages with a single newline.
func (e *Extractor) Extract(ctx context.Context, file *domain.File) (text string, err error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}

	// The decoder panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrParseFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.Join(mergeRuns(page.Content().Text), " "))
	}

	return strings.Join(pages, "\n"), nil
}

// mergeRuns groups positioned glyphs into text items. A glyph continues the
// current item when it sits on the same baseline and starts where the
// previous glyph ended.
func mergeRuns(glyphs []pdf.Text) []string {
	var (
		items []string
		cur   strings.Builder
		prev  pdf.Text
		have  bool
	)

	flush := func() {
		if cur.Len() > 0 {
			items = append(items, cur.String())
		}
		cur.Reset()
	}

	for _, g := range glyphs {
		if have && !continues(prev, g) {
			flush()
		}
		cur.WriteString(g.S)
		prev = g
		have = true
	}
	flush()

	return items
}

func continues(prev, next pdf.Text) bool {
	size := math.Max(prev.FontSize, next.FontSize)
	if size <= 0 {
		size = 1
	}
	if math.Abs(next.Y-prev.Y) > size/2 {
		return false
	}
	if next.X < prev.X {
		return false
	}
	return next.X-(prev.X+prev.W) < size*gapFactor
}
