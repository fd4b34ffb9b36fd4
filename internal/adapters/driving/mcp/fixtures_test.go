package mcp

import (
	"context"
	"testing"

	"github.com/custodia-labs/ragchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
	"github.com/custodia-labs/ragchat/internal/core/services"
	"github.com/custodia-labs/ragchat/internal/extractors"
)

// newTestPorts wires real services over in-memory storage with instant streaming.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	cfg := domain.DefaultConfig()
	storage := memory.NewStorage()
	docs := services.NewDocumentService(storage, extractors.Default(), cfg.Documents)
	sessions := services.NewSessionService(storage)
	settings := services.NewSettingsService(storage)
	chat := services.NewChatService(docs, sessions, settings, services.NewComposer(cfg.Composer),
		domain.StreamConfig{ChunkSize: cfg.Stream.ChunkSize})
	return &Ports{Chat: chat, Document: docs, Session: sessions}
}

// failingDocuments is a DocumentService whose reads fail.
type failingDocuments struct {
	driving.DocumentService
	err error
}

func (f *failingDocuments) List(_ context.Context) ([]domain.Document, error) {
	return nil, f.err
}

func (f *failingDocuments) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, f.err
}
