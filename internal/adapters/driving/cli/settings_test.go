package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

func TestPromptGet_NoService(t *testing.T) {
	clearServices(t)

	_, _, err := execute(t, "prompt", "get")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestPromptGet_Default(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "prompt", "get")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSystemPrompt+"\n", stdout)
}

func TestPromptGet_JSON(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "prompt", "get", "--json")

	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, domain.DefaultSystemPrompt, out["prompt_template"])
}

func TestPromptSet(t *testing.T) {
	s := setupTestServices(t)

	stdout, _, err := execute(t, "prompt", "set", "Answer", "briefly.")

	require.NoError(t, err)
	assert.Contains(t, stdout, "System prompt updated.")
	prompt, err := s.Settings.SystemPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Answer briefly.", prompt)
}

func TestPromptSet_Empty(t *testing.T) {
	s := setupTestServices(t)

	_, _, err := execute(t, "prompt", "set", "")

	require.NoError(t, err)
	prompt, err := s.Settings.SystemPrompt(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prompt)
}

func TestPromptSet_Reset(t *testing.T) {
	s := setupTestServices(t)
	require.NoError(t, s.Settings.SetSystemPrompt(context.Background(), "custom"))

	_, _, err := execute(t, "prompt", "set", "--reset")

	require.NoError(t, err)
	prompt, err := s.Settings.SystemPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSystemPrompt, prompt)
}

func TestPromptSet_MissingPrompt(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "prompt", "set")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt required")
}

func TestModelList(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "model", "list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "* gpt-3.5")
	assert.Contains(t, stdout, "  gpt-4")
	assert.Contains(t, stdout, "Llama 2")
}

func TestModelList_JSON(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "model", "list", "--json")

	require.NoError(t, err)
	var out struct {
		Models []domain.Model `json:"models"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, domain.Models(), out.Models)
}

func TestModelSelect(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "model", "select", "gpt-4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Model gpt-4 selected.")

	stdout, _, err = execute(t, "model", "get")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4 (GPT-4)\n", stdout)
}

func TestModelSelect_Unknown(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "model", "select", "gpt-9")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfileGet_Default(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "profile", "get")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Theme:  system")
}

func TestProfileSet_OnlyChangedFields(t *testing.T) {
	s := setupTestServices(t)
	require.NoError(t, s.Settings.SetProfile(context.Background(),
		domain.Profile{Name: "Ada", Avatar: "https://example.com/ada.png", Theme: domain.ThemeDark}))

	stdout, _, err := execute(t, "profile", "set", "--theme", "light")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Profile updated.")
	profile, err := s.Settings.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "https://example.com/ada.png", profile.Avatar)
	assert.Equal(t, domain.ThemeLight, profile.Theme)
}

func TestProfileSet_JSONRoundTrip(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "profile", "set", "--name", "Grace")
	require.NoError(t, err)

	stdout, _, err := execute(t, "profile", "get", "--json")
	require.NoError(t, err)
	var profile domain.Profile
	require.NoError(t, json.Unmarshal([]byte(stdout), &profile))
	assert.Equal(t, "Grace", profile.Name)
	assert.Equal(t, domain.ThemeSystem, profile.Theme)
}

func TestProfileSet_NothingChanged(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "profile", "set")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestProfileSet_InvalidTheme(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "profile", "set", "--theme", "neon")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
