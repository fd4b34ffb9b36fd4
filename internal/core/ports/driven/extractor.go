package driven

import (
	"context"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// Extractor decodes the raw bytes of one upload format into plain text.
type Extractor interface {
	// Format returns the format this extractor decodes.
	Format() domain.Format

	// Extract returns the full decoded text of the file.
	// Decoding failures wrap domain.ErrParseFailure.
	Extract(ctx context.Context, file *domain.File) (string, error)
}

// ExtractorRegistry maps each format to exactly one extractor.
type ExtractorRegistry interface {
	// ForFormat returns the extractor registered for format.
	ForFormat(format domain.Format) (Extractor, bool)
}
