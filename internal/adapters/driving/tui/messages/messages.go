// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
)

// ReplyStarted carries the result of sending a question.
type ReplyStarted struct {
	// StreamID identifies the send this reply belongs to.
	StreamID int
	Question string
	Reply    *driving.Reply
	Err      error
}

// ReplyChunk carries the latest prefix of a streaming answer.
type ReplyChunk struct {
	StreamID int
	Text     string
}

// ReplyFinished signals that a stream ended. Err is context.Canceled when
// the stream was stopped.
type ReplyFinished struct {
	StreamID int
	Err      error
}

// SessionLoaded carries the saved turns of the panel's session.
type SessionLoaded struct {
	Session *domain.Session
	Err     error
}

// StatusLoaded carries the values shown in the status bar.
type StatusLoaded struct {
	Model     string
	Documents int
	Err       error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
