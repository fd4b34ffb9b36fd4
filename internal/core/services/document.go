package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService ingests uploads and owns the persisted document collection.
type DocumentService struct {
	mu         sync.Mutex
	storage    driven.Storage
	extractors driven.ExtractorRegistry
	cfg        domain.DocumentConfig
	now        func() time.Time

	// snapshot is the last collection read or written.
	snapshot []domain.Document
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	storage driven.Storage,
	extractors driven.ExtractorRegistry,
	cfg domain.DocumentConfig,
) *DocumentService {
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = domain.MaxTextLength
	}
	return &DocumentService{
		storage:    storage,
		extractors: extractors,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Add extracts each file in order and appends the successful documents to
// the collection in a single write. Per-file failures are collected.
func (s *DocumentService) Add(ctx context.Context, files []domain.File) (*domain.AddResult, error) {
	logger.Section("Document Ingest")

	result := &domain.AddResult{}
	for i := range files {
		doc, err := s.ingest(ctx, &files[i])
		if err != nil {
			var fe domain.FileError
			if !errors.As(err, &fe) {
				fe = domain.NewFileError(files[i].Name, domain.ErrParseFailure, err)
			}
			logger.Debug("skipping %s: %v", fe.Name, fe.Err)
			result.Failures = append(result.Failures, fe)
			continue
		}
		logger.Debug("extracted %s (%d chars)", doc.Name, len([]rune(doc.Text)))
		result.Added = append(result.Added, doc)
	}

	if len(result.Added) == 0 {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, readErr := s.load(ctx)
	docs = append(docs, result.Added...)
	return result, firstErr(readErr, s.save(ctx, docs))
}

// ingest converts one file into a document.
func (s *DocumentService) ingest(ctx context.Context, file *domain.File) (domain.Document, error) {
	if s.cfg.MaxFileBytes > 0 && file.Size() > s.cfg.MaxFileBytes {
		return domain.Document{}, domain.NewFileError(file.Name, domain.ErrFileTooLarge,
			fmt.Errorf("%d bytes exceeds limit of %d", file.Size(), s.cfg.MaxFileBytes))
	}

	format, err := domain.Classify(file.Name, file.MIMEType)
	if err != nil {
		return domain.Document{}, domain.NewFileError(file.Name, domain.ErrUnsupportedFormat, nil)
	}

	extractor, ok := s.extractors.ForFormat(format)
	if !ok {
		return domain.Document{}, domain.NewFileError(file.Name, domain.ErrUnsupportedFormat,
			fmt.Errorf("no extractor for %s", format))
	}

	text, err := extractor.Extract(ctx, file)
	if err != nil {
		if errors.Is(err, domain.ErrParseFailure) {
			return domain.Document{}, domain.FileError{Name: file.Name, Err: err}
		}
		return domain.Document{}, domain.NewFileError(file.Name, domain.ErrParseFailure, err)
	}

	now := s.now()
	return domain.Document{
		ID:         newDocumentID(file.Name, now),
		Name:       file.Name,
		Extension:  format.Extension(),
		SizeBytes:  file.Size(),
		Text:       domain.TruncateText(text, s.cfg.MaxTextLength),
		UploadedAt: now,
	}, nil
}

// newDocumentID derives an ID from the file name and ingest time plus a random suffix.
func newDocumentID(name string, at time.Time) string {
	return fmt.Sprintf("%s-%d-%s", name, at.UnixMilli(), uuid.NewString()[:8])
}

// Remove deletes a document by ID.
func (s *DocumentService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, readErr := s.load(ctx)
	kept := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		return readErr
	}
	return firstErr(readErr, s.save(ctx, kept))
}

// Clear deletes all documents.
func (s *DocumentService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, []domain.Document{})
}

// List returns all documents in insertion order.
// A storage failure falls back to the last known collection.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, _ := s.load(ctx)
	return docs, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			doc := docs[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// load re-reads the persisted collection. Must be called with mu held.
func (s *DocumentService) load(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	found, err := loadJSON(ctx, s.storage, KeyUploadedDocs, &docs)
	if err != nil {
		return append([]domain.Document(nil), s.snapshot...), err
	}
	if !found {
		docs = nil
	}
	s.snapshot = docs
	return append([]domain.Document(nil), docs...), nil
}

// save writes the collection and updates the snapshot. Must be called with mu held.
func (s *DocumentService) save(ctx context.Context, docs []domain.Document) error {
	if docs == nil {
		docs = []domain.Document{}
	}
	s.snapshot = docs
	return saveJSON(ctx, s.storage, KeyUploadedDocs, docs)
}
