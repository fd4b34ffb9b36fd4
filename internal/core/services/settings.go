package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages the system prompt, model selection and account profile.
type SettingsService struct {
	mu      sync.Mutex
	storage driven.Storage

	// last values read or written, served when storage is unavailable
	prompt  *string
	model   *string
	profile *domain.Profile
}

// NewSettingsService creates a new settings service.
func NewSettingsService(storage driven.Storage) *SettingsService {
	return &SettingsService{storage: storage}
}

// SystemPrompt returns the stored prompt, or the default when none is stored.
// A stored empty prompt is returned as is.
func (s *SettingsService) SystemPrompt(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prompt string
	found, err := loadJSON(ctx, s.storage, KeySystemPrompt, &prompt)
	switch {
	case err != nil && s.prompt != nil:
		return *s.prompt, nil
	case err != nil || !found:
		return domain.DefaultSystemPrompt, nil
	}
	s.prompt = &prompt
	return prompt, nil
}

// SetSystemPrompt stores the prompt.
func (s *SettingsService) SetSystemPrompt(ctx context.Context, prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompt = &prompt
	return saveJSON(ctx, s.storage, KeySystemPrompt, prompt)
}

// Models returns the model catalog.
func (s *SettingsService) Models() []domain.Model {
	return domain.Models()
}

// SelectedModel returns the stored model ID. A missing or unknown ID
// resolves to the default model.
func (s *SettingsService) SelectedModel(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	found, err := loadJSON(ctx, s.storage, KeySelectedModel, &id)
	switch {
	case err != nil && s.model != nil:
		return *s.model, nil
	case err != nil || !found:
		return domain.DefaultModelID, nil
	}
	if _, ok := domain.FindModel(id); !ok {
		return domain.DefaultModelID, nil
	}
	s.model = &id
	return id, nil
}

// SelectModel stores the model ID. IDs outside the catalog are rejected.
func (s *SettingsService) SelectModel(ctx context.Context, id string) error {
	if _, ok := domain.FindModel(id); !ok {
		return fmt.Errorf("%w: unknown model %q", domain.ErrInvalidInput, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.model = &id
	return saveJSON(ctx, s.storage, KeySelectedModel, id)
}

// Profile returns the account profile, or the default profile when none is stored.
func (s *SettingsService) Profile(ctx context.Context) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := domain.DefaultProfile()
	found, err := loadJSON(ctx, s.storage, KeyAccountProfile, &profile)
	switch {
	case err != nil && s.profile != nil:
		p := *s.profile
		return &p, nil
	case err != nil || !found:
		p := domain.DefaultProfile()
		return &p, nil
	}
	if !profile.Theme.IsValid() {
		profile.Theme = domain.ThemeSystem
	}
	s.profile = &profile
	p := profile
	return &p, nil
}

// SetProfile stores the account profile. An empty theme means system.
func (s *SettingsService) SetProfile(ctx context.Context, profile domain.Profile) error {
	if profile.Theme == "" {
		profile.Theme = domain.ThemeSystem
	}
	if !profile.Theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, profile.Theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = &profile
	return saveJSON(ctx, s.storage, KeyAccountProfile, profile)
}
