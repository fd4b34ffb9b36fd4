package domain

import (
	"strings"
	"time"
)

// TitleLength is the maximum number of characters taken from the first turn as a session title.
const TitleLength = 32

// DefaultSessionTitle is used when the first turn has no content.
const DefaultSessionTitle = "Chat Session"

// Role identifies the author of a turn.
type Role string

// Turn roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one message within a session.
type Turn struct {
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Session is an ordered conversation identified by a stable ID.
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Turns     []Turn    `json:"turns" yaml:"turns"`
}

// NewSession derives a session from a turn list. The title is the first
// turn's content cut to TitleLength characters and CreatedAt is the first
// turn's timestamp.
func NewSession(id string, turns []Turn) Session {
	s := Session{
		ID:    id,
		Title: DefaultSessionTitle,
		Turns: append([]Turn(nil), turns...),
	}
	if len(turns) == 0 {
		return s
	}
	if title := TruncateText(turns[0].Content, TitleLength); strings.TrimSpace(title) != "" {
		s.Title = title
	}
	s.CreatedAt = turns[0].Timestamp
	return s
}

// Clone returns a copy of the session that shares no turn storage.
func (s Session) Clone() Session {
	s.Turns = append([]Turn(nil), s.Turns...)
	return s
}
