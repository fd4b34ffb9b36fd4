package driving

import (
	"context"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// ChatService opens chat panels over the shared stores.
type ChatService interface {
	// OpenPanel returns a panel bound to sessionID.
	// An empty ID starts a new session.
	OpenPanel(sessionID string) ChatPanel
}

// ChatPanel is one conversation view. It owns at most one active reply stream.
type ChatPanel interface {
	// SessionID returns the ID of the session this panel records into.
	SessionID() string

	// Send records the user turn, composes the answer and starts streaming it.
	// Any in-flight reply is stopped first.
	Send(ctx context.Context, input string) (*Reply, error)

	// Close stops any in-flight reply.
	Close()
}

// Reply is the result of one Send.
type Reply struct {
	// SessionID is the session the turns were recorded into.
	SessionID string

	// Matches are the documents that contributed excerpts.
	Matches []domain.Match

	// Text is the full composed answer.
	Text string

	// Stream delivers growing prefixes of Text.
	Stream ReplyStream
}

// ReplyStream delivers a reply incrementally.
type ReplyStream interface {
	// Events returns growing prefixes of the reply.
	// The channel is closed when the stream finishes or is cancelled.
	Events() <-chan string

	// Cancel stops emission. It is safe to call more than once.
	Cancel()

	// Wait blocks until the stream is done.
	// It returns context.Canceled if the stream was cancelled.
	Wait() error
}
