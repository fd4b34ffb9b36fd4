// Package plaintext decodes .txt uploads.
package plaintext

import (
	"context"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format this extractor decodes.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPlainText
}

// Extract returns the file content verbatim.
func (e *Extractor) Extract(_ context.Context, file *domain.File) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}
	return string(file.Content), nil
}
