package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/styles"
)

func TestNewChatInput(t *testing.T) {
	input := NewChatInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
}

func TestNewChatInput_NilStyles(t *testing.T) {
	input := NewChatInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestChatInput_Init(t *testing.T) {
	assert.NotNil(t, NewChatInput(nil).Init())
}

func TestChatInput_Update(t *testing.T) {
	input := NewChatInput(nil)

	updated, _ := input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h', 'i'}})

	assert.Equal(t, input, updated)
	assert.Equal(t, "hi", input.Value())
}

func TestChatInput_View(t *testing.T) {
	view := NewChatInput(nil).View()

	assert.Contains(t, view, "You:")
}

func TestChatInput_SetValueAndReset(t *testing.T) {
	input := NewChatInput(nil)

	input.SetValue("question")
	assert.Equal(t, "question", input.Value())

	input.Reset()
	assert.Equal(t, "", input.Value())
}

func TestChatInput_SetWidth(t *testing.T) {
	input := NewChatInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 90, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.textinput.Width)
}

func TestChatInput_SetStyles(t *testing.T) {
	input := NewChatInput(nil)
	light := styles.NewStyles(styles.LightTheme())

	input.SetStyles(light)
	assert.Same(t, light, input.styles)

	input.SetStyles(nil)
	assert.Same(t, light, input.styles)
}
