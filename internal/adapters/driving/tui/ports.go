// Package tui provides the interactive terminal chat panel for ragchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Chat opens the panel questions are sent through. Required.
	Chat driving.ChatService

	// Session loads the saved turns of a resumed session.
	Session driving.SessionService

	// Settings provides the selected model shown in the status bar.
	Settings driving.SettingsService

	// Document provides the uploaded document count.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
