package driving

import (
	"context"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// SessionService manages saved chat sessions.
type SessionService interface {
	// AppendOrReplace stores a session, replacing any session with the same ID.
	AppendOrReplace(ctx context.Context, session domain.Session) error

	// AppendTurns adds turns to a session, creating it if needed.
	AppendTurns(ctx context.Context, id string, turns ...domain.Turn) (*domain.Session, error)

	// List returns all sessions, least recently written first.
	List(ctx context.Context) ([]domain.Session, error)

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing ID is a no-op.
	Delete(ctx context.Context, id string) error

	// Clear removes all sessions.
	Clear(ctx context.Context) error

	// EditTurn replaces the content of a user turn.
	// Blank content and assistant turns are rejected as invalid input.
	EditTurn(ctx context.Context, id string, index int, content string) (*domain.Session, error)

	// DeleteTurn removes a turn. Removing the last turn deletes the session.
	DeleteTurn(ctx context.Context, id string, index int) error
}
