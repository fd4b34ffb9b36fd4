package filesystem

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// Tracker mirrors file changes into the document store. Each path maps to
// at most one document; a rewritten file replaces its previous document.
type Tracker struct {
	documents driving.DocumentService

	mu     sync.Mutex
	byPath map[string]string
}

// NewTracker creates a tracker writing to documents.
func NewTracker(documents driving.DocumentService) *Tracker {
	return &Tracker{
		documents: documents,
		byPath:    make(map[string]string),
	}
}

// Tracked returns the document ID for a path.
func (t *Tracker) Tracked(path string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.byPath[path]
	return id, ok
}

// Ingest loads the file at path and applies it as an upsert.
func (t *Tracker) Ingest(ctx context.Context, path string) (*domain.AddResult, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return t.Apply(ctx, Change{Type: ChangeUpserted, Path: path, File: &file})
}

// Apply writes one change to the document store. The result is nil for
// removals. Storage warnings are returned alongside a valid result.
func (t *Tracker) Apply(ctx context.Context, change Change) (*domain.AddResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch change.Type {
	case ChangeUpserted:
		if change.File == nil {
			return nil, domain.ErrInvalidInput
		}
		var warning error
		if id, ok := t.byPath[change.Path]; ok {
			if err := t.documents.Remove(ctx, id); err != nil {
				if !errors.Is(err, domain.ErrStorageUnavailable) {
					return nil, err
				}
				warning = err
			}
			delete(t.byPath, change.Path)
		}

		result, err := t.documents.Add(ctx, []domain.File{*change.File})
		if err != nil && !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, err
		}
		if err != nil {
			warning = err
		}
		if result != nil && len(result.Added) == 1 {
			t.byPath[change.Path] = result.Added[0].ID
			logger.Debug("tracked %s as %s", change.Path, result.Added[0].ID)
		}
		return result, warning

	case ChangeRemoved:
		id, ok := t.byPath[change.Path]
		if !ok {
			return nil, nil
		}
		delete(t.byPath, change.Path)
		logger.Debug("untracked %s", change.Path)
		return nil, t.documents.Remove(ctx, id)

	default:
		return nil, domain.ErrInvalidInput
	}
}
