package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingChatService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingChatService.Error(), "chat service")
}
