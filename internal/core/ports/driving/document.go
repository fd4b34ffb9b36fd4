package driving

import (
	"context"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// DocumentService manages the uploaded document collection.
type DocumentService interface {
	// Add extracts and stores a batch of files.
	// Per-file failures are reported in the result and never abort the batch.
	// A non-nil error wraps domain.ErrStorageUnavailable and is a warning:
	// the documents were added in memory but not persisted.
	Add(ctx context.Context, files []domain.File) (*domain.AddResult, error)

	// Remove deletes a document by ID. Removing a missing ID is a no-op.
	Remove(ctx context.Context, id string) error

	// Clear deletes all documents.
	Clear(ctx context.Context) error

	// List returns all documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)
}
