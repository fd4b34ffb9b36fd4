package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// Ensure ChatService and ChatPanel implement the interfaces.
var (
	_ driving.ChatService = (*ChatService)(nil)
	_ driving.ChatPanel   = (*ChatPanel)(nil)
)

// ChatService opens chat panels over the shared document, session and settings services.
type ChatService struct {
	documents driving.DocumentService
	sessions  driving.SessionService
	settings  driving.SettingsService
	composer  *Composer
	stream    domain.StreamConfig
	now       func() time.Time
}

// NewChatService creates a new chat service.
func NewChatService(
	documents driving.DocumentService,
	sessions driving.SessionService,
	settings driving.SettingsService,
	composer *Composer,
	stream domain.StreamConfig,
) *ChatService {
	return &ChatService{
		documents: documents,
		sessions:  sessions,
		settings:  settings,
		composer:  composer,
		stream:    stream,
		now:       time.Now,
	}
}

// OpenPanel returns a panel bound to sessionID.
// An empty ID starts a new session.
func (s *ChatService) OpenPanel(sessionID string) driving.ChatPanel {
	if sessionID == "" {
		sessionID = NewSessionID(s.now())
	}
	return &ChatPanel{
		svc:       s,
		sessionID: sessionID,
		emitter:   NewEmitter(s.stream),
	}
}

// NewSessionID returns a unique ID for a session started at t.
// Sessions started in the same millisecond get distinct IDs.
func NewSessionID(t time.Time) string {
	return fmt.Sprintf("session-%d-%s", t.UnixMilli(), uuid.NewString()[:8])
}

// ChatPanel is one conversation. It streams at most one reply at a time.
type ChatPanel struct {
	svc       *ChatService
	sessionID string
	emitter   *Emitter

	// serialises Send so turns are recorded in order
	mu sync.Mutex
}

// SessionID returns the ID of the session this panel records into.
func (p *ChatPanel) SessionID() string {
	return p.sessionID
}

// Send records the user turn, answers it from the uploaded documents and
// starts streaming the answer. The assistant turn is recorded with the full
// answer when the stream ends, even if it was cancelled.
// Storage failures are logged and never fail a send.
func (p *ChatPanel) Send(ctx context.Context, input string) (*driving.Reply, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrInvalidInput
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The previous reply records its assistant turn before the new user turn.
	p.emitter.Stop()

	svc := p.svc
	userTurn := domain.Turn{Role: domain.RoleUser, Content: input, Timestamp: svc.now()}
	if _, err := svc.sessions.AppendTurns(ctx, p.sessionID, userTurn); err != nil &&
		!errors.Is(err, domain.ErrStorageUnavailable) {
		return nil, fmt.Errorf("recording question: %w", err)
	}

	docs, err := svc.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	prompt, err := svc.settings.SystemPrompt(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading system prompt: %w", err)
	}
	model, err := svc.settings.SelectedModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading selected model: %w", err)
	}

	logger.Section("Chat")
	matches := Score(docs, input)
	logger.Debug("scored %d documents, %d matched", len(docs), len(matches))
	text := svc.composer.Compose(prompt, input, matches, model)

	recordCtx := context.WithoutCancel(ctx)
	stream := p.emitter.Start(ctx, text, func(completed bool) {
		if !completed {
			logger.Debug("reply to %s interrupted, recording full text", p.sessionID)
		}
		turn := domain.Turn{Role: domain.RoleAssistant, Content: text, Timestamp: svc.now()}
		if _, err := svc.sessions.AppendTurns(recordCtx, p.sessionID, turn); err != nil &&
			!errors.Is(err, domain.ErrStorageUnavailable) {
			logger.Warn("recording answer for %s: %v", p.sessionID, err)
		}
	})

	return &driving.Reply{
		SessionID: p.sessionID,
		Matches:   matches,
		Text:      text,
		Stream:    stream,
	}, nil
}

// Close stops any in-flight reply.
func (p *ChatPanel) Close() {
	p.emitter.Stop()
}
