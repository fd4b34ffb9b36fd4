package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAssistant.IsValid())
	assert.False(t, Role("llm").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestNewSession(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("derives title and createdAt from first turn", func(t *testing.T) {
		turns := []Turn{
			{Role: RoleUser, Content: "What does the contract say?", Timestamp: first},
			{Role: RoleAssistant, Content: "It says...", Timestamp: first.Add(time.Second)},
		}

		s := NewSession("s1", turns)

		assert.Equal(t, "s1", s.ID)
		assert.Equal(t, "What does the contract say?", s.Title)
		assert.Equal(t, first, s.CreatedAt)
		assert.Len(t, s.Turns, 2)
	})

	t.Run("caps title length", func(t *testing.T) {
		long := strings.Repeat("abcdefghij", 5)
		s := NewSession("s2", []Turn{{Role: RoleUser, Content: long, Timestamp: first}})

		assert.Equal(t, long[:TitleLength], s.Title)
	})

	t.Run("blank first turn uses default title", func(t *testing.T) {
		s := NewSession("s3", []Turn{{Role: RoleUser, Content: "   ", Timestamp: first}})
		assert.Equal(t, DefaultSessionTitle, s.Title)
	})

	t.Run("no turns", func(t *testing.T) {
		s := NewSession("s4", nil)

		assert.Equal(t, DefaultSessionTitle, s.Title)
		assert.True(t, s.CreatedAt.IsZero())
		assert.Empty(t, s.Turns)
	})

	t.Run("does not alias caller turns", func(t *testing.T) {
		turns := []Turn{{Role: RoleUser, Content: "original", Timestamp: first}}
		s := NewSession("s5", turns)

		turns[0].Content = "changed"
		assert.Equal(t, "original", s.Turns[0].Content)
	})
}

func TestSession_Clone(t *testing.T) {
	s := NewSession("s1", []Turn{{Role: RoleUser, Content: "hello"}})
	clone := s.Clone()

	clone.Turns[0].Content = "changed"
	assert.Equal(t, "hello", s.Turns[0].Content)
}
