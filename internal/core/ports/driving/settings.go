package driving

import (
	"context"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// SettingsService manages the system prompt, model selection and account profile.
type SettingsService interface {
	// SystemPrompt returns the stored prompt, or the default when none is stored.
	SystemPrompt(ctx context.Context) (string, error)

	// SetSystemPrompt stores the prompt. An empty prompt is allowed.
	SetSystemPrompt(ctx context.Context, prompt string) error

	// Models returns the model catalog.
	Models() []domain.Model

	// SelectedModel returns the stored model ID, or the default when none is stored.
	SelectedModel(ctx context.Context) (string, error)

	// SelectModel stores the model ID. Unknown IDs are rejected.
	SelectModel(ctx context.Context, id string) error

	// Profile returns the account profile.
	Profile(ctx context.Context) (*domain.Profile, error)

	// SetProfile stores the account profile.
	SetProfile(ctx context.Context, profile domain.Profile) error
}
