package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// sessionIndex is the keyed in-memory form of the chat history.
// order holds IDs from least to most recently written.
type sessionIndex struct {
	order []string
	byID  map[string]domain.Session
}

// newSessionIndex builds an index from the persisted list.
// Duplicate IDs collapse to their last occurrence.
func newSessionIndex(sessions []domain.Session) *sessionIndex {
	x := &sessionIndex{byID: make(map[string]domain.Session, len(sessions))}
	for _, s := range sessions {
		x.upsert(s)
	}
	return x
}

func (x *sessionIndex) upsert(s domain.Session) {
	if _, ok := x.byID[s.ID]; ok {
		x.order = slices.DeleteFunc(x.order, func(id string) bool { return id == s.ID })
	}
	x.order = append(x.order, s.ID)
	x.byID[s.ID] = s.Clone()
}

func (x *sessionIndex) remove(id string) bool {
	if _, ok := x.byID[id]; !ok {
		return false
	}
	delete(x.byID, id)
	x.order = slices.DeleteFunc(x.order, func(o string) bool { return o == id })
	return true
}

func (x *sessionIndex) get(id string) (domain.Session, bool) {
	s, ok := x.byID[id]
	if !ok {
		return domain.Session{}, false
	}
	return s.Clone(), true
}

// list returns the ordered form written to storage.
func (x *sessionIndex) list() []domain.Session {
	out := make([]domain.Session, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.byID[id].Clone())
	}
	return out
}

// SessionService owns the persisted chat history.
// Several panels may share one service; every mutation re-reads storage first.
type SessionService struct {
	mu      sync.Mutex
	storage driven.Storage
	index   *sessionIndex
}

// NewSessionService creates a new session service.
func NewSessionService(storage driven.Storage) *SessionService {
	return &SessionService{
		storage: storage,
		index:   newSessionIndex(nil),
	}
}

// AppendOrReplace stores a session, replacing any session with the same ID.
// The stored session becomes the most recently written.
func (s *SessionService) AppendOrReplace(ctx context.Context, session domain.Session) error {
	if session.ID == "" {
		return domain.ErrInvalidInput
	}
	return s.mutate(ctx, func(x *sessionIndex) error {
		x.upsert(session)
		return nil
	})
}

// AppendTurns adds turns to a session, creating it if needed.
// Title and creation time are derived from the resulting turn list.
func (s *SessionService) AppendTurns(ctx context.Context, id string, turns ...domain.Turn) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, t := range turns {
		if !t.Role.IsValid() {
			return nil, domain.ErrInvalidInput
		}
	}

	var updated domain.Session
	err := s.mutate(ctx, func(x *sessionIndex) error {
		existing, _ := x.get(id)
		updated = domain.NewSession(id, append(existing.Turns, turns...))
		x.upsert(updated)
		return nil
	})
	if updated.ID == "" {
		return nil, err
	}
	return &updated, err
}

// List returns all sessions, least recently written first.
// A storage failure falls back to the last known history.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.refresh(ctx)
	return s.index.list(), nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.refresh(ctx)
	session, ok := s.index.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(x *sessionIndex) error {
		if !x.remove(id) {
			return errUnchanged
		}
		return nil
	})
}

// Clear removes all sessions.
func (s *SessionService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = newSessionIndex(nil)
	return s.persist(ctx)
}

// EditTurn replaces the content of a user turn, keeping its role and
// timestamp. Later turns are left as they are. Assistant turns and blank
// content are rejected with domain.ErrInvalidInput, matching Send.
func (s *SessionService) EditTurn(ctx context.Context, id string, index int, content string) (*domain.Session, error) {
	var updated domain.Session
	err := s.mutate(ctx, func(x *sessionIndex) error {
		session, ok := x.get(id)
		if !ok || index < 0 || index >= len(session.Turns) {
			return domain.ErrIndexOutOfRange
		}
		if session.Turns[index].Role != domain.RoleUser || strings.TrimSpace(content) == "" {
			return domain.ErrInvalidInput
		}
		session.Turns[index].Content = content
		updated = domain.NewSession(id, session.Turns)
		x.upsert(updated)
		return nil
	})
	if updated.ID == "" {
		return nil, err
	}
	return &updated, err
}

// DeleteTurn removes one turn. Removing the only turn deletes the session.
func (s *SessionService) DeleteTurn(ctx context.Context, id string, index int) error {
	return s.mutate(ctx, func(x *sessionIndex) error {
		session, ok := x.get(id)
		if !ok || index < 0 || index >= len(session.Turns) {
			return domain.ErrIndexOutOfRange
		}
		turns := slices.Delete(session.Turns, index, index+1)
		if len(turns) == 0 {
			x.remove(id)
			return nil
		}
		x.upsert(domain.NewSession(id, turns))
		return nil
	})
}

// errUnchanged tells mutate that nothing needs writing.
var errUnchanged = errors.New("unchanged")

// mutate re-reads storage, applies fn to the index and writes the result.
// A storage failure keeps the change in memory and is returned as a warning.
func (s *SessionService) mutate(ctx context.Context, fn func(*sessionIndex) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	readErr := s.refresh(ctx)
	if err := fn(s.index); err != nil {
		if errors.Is(err, errUnchanged) {
			return readErr
		}
		return err
	}
	return firstErr(readErr, s.persist(ctx))
}

// refresh replaces the index with the persisted history.
// On failure the current index is kept. Must be called with mu held.
func (s *SessionService) refresh(ctx context.Context) error {
	var sessions []domain.Session
	found, err := loadJSON(ctx, s.storage, KeyChatHistory, &sessions)
	if err != nil {
		return err
	}
	if !found {
		sessions = nil
	}
	s.index = newSessionIndex(sessions)
	return nil
}

// persist writes the ordered history. Must be called with mu held.
func (s *SessionService) persist(ctx context.Context) error {
	return saveJSON(ctx, s.storage, KeyChatHistory, s.index.list())
}
