package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/services"
	"github.com/custodia-labs/ragchat/internal/extractors"
)

// newTestPorts wires real services over in-memory storage with instant streaming.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	return newTestPortsWithStream(t, domain.StreamConfig{ChunkSize: 10})
}

func newTestPortsWithStream(t *testing.T, stream domain.StreamConfig) *Ports {
	t.Helper()
	cfg := domain.DefaultConfig()
	storage := memory.NewStorage()
	docs := services.NewDocumentService(storage, extractors.Default(), cfg.Documents)
	sessions := services.NewSessionService(storage)
	settings := services.NewSettingsService(storage)
	chat := services.NewChatService(docs, sessions, settings, services.NewComposer(cfg.Composer), stream)
	return &Ports{Chat: chat, Session: sessions, Settings: settings, Document: docs}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	t.Cleanup(func() { app.panel.Close() })
	return app
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs cmd and feeds the resulting messages back into the app
// until no further command is returned.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 1000, "command chain did not terminate")
		msg := cmd()
		if _, ok := msg.(tea.BatchMsg); ok {
			return
		}
		_, cmd = app.Update(msg)
	}
}

func ask(t *testing.T, app *App, question string) {
	t.Helper()
	typeText(app, question)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	drain(t, app, cmd)
}

func addDocument(t *testing.T, ports *Ports, name, text string) {
	t.Helper()
	_, err := ports.Document.Add(context.Background(), []domain.File{
		{Name: name, Content: []byte(text)},
	})
	require.NoError(t, err)
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(t))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Ready())
	assert.NotEmpty(t, app.SessionID())
	assert.Empty(t, app.Turns())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingChatService)
	assert.Nil(t, app)
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
}

func TestApp_View_BeforeReady(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 100, app.width)
	assert.Equal(t, 40, app.height)
	assert.Contains(t, app.View(), "ragchat")
}

func TestApp_SendRecordsTurns(t *testing.T) {
	ports := newTestPorts(t)
	addDocument(t, ports, "notes.txt", "The launch window opens in March. Fuel loading begins a week earlier.")
	app := newTestApp(t, ports)

	ask(t, app, "When does the launch window open?")

	turns := app.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "When does the launch window open?", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Contains(t, turns[1].Content, `From "notes.txt"`)
	assert.False(t, app.Streaming())
	assert.Equal(t, status.StateReady, app.status.State())
	assert.NotEmpty(t, app.sources.Matches())
	assert.Empty(t, app.input.Value())

	session, err := ports.Session.Get(context.Background(), app.SessionID())
	require.NoError(t, err)
	require.Len(t, session.Turns, 2)
	assert.Equal(t, turns[1].Content, session.Turns[1].Content)
}

func TestApp_SendBlankIgnored(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))

	typeText(app, "   ")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, app.Turns())
}

func TestApp_CancelStopsStream(t *testing.T) {
	ports := newTestPortsWithStream(t, domain.StreamConfig{ChunkSize: 10, Interval: time.Hour})
	addDocument(t, ports, "notes.txt", strings.Repeat("The reactor runs on thorium fuel. ", 20))
	app := newTestApp(t, ports)

	typeText(app, "What fuel does the reactor use?")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, cmd = app.Update(cmd())
	require.True(t, app.Streaming())
	require.NotNil(t, cmd)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(t, app, cmd)

	assert.False(t, app.Streaming())
	assert.Equal(t, status.StateStopped, app.status.State())
	turns := app.Turns()
	require.Len(t, turns, 2)
	assert.Contains(t, turns[1].Content, `From "notes.txt"`)
	assert.Empty(t, app.pending)
}

func TestApp_StaleChunkIgnored(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))
	app.streamID = 3

	_, cmd := app.Update(messages.ReplyChunk{StreamID: 2, Text: "stale"})

	assert.Nil(t, cmd)
	assert.Empty(t, app.pending)
}

func TestApp_NewChat(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))
	ask(t, app, "hello")
	require.NotEmpty(t, app.Turns())
	before := app.SessionID()

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	assert.Empty(t, app.Turns())
	assert.NotEqual(t, before, app.SessionID())
	assert.Empty(t, app.sources.Matches())
}

func TestApp_WithSessionLoadsTurns(t *testing.T) {
	ports := newTestPorts(t)
	first := newTestApp(t, ports)
	ask(t, first, "hello")
	id := first.SessionID()

	app, err := NewApp(ports)
	require.NoError(t, err)
	app.WithSession(id)
	t.Cleanup(func() { app.panel.Close() })

	app.Update(app.loadSession()())

	assert.Equal(t, id, app.SessionID())
	assert.Len(t, app.Turns(), 2)
}

func TestApp_LoadSessionNotFound(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))

	msg := app.loadSession()()

	loaded, ok := msg.(messages.SessionLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Nil(t, loaded.Session)
}

func TestApp_LoadStatus(t *testing.T) {
	ports := newTestPorts(t)
	addDocument(t, ports, "a.txt", "alpha")
	addDocument(t, ports, "b.txt", "beta")
	app := newTestApp(t, ports)

	msg := app.loadStatus()()

	loaded, ok := msg.(messages.StatusLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, 2, loaded.Documents)
	assert.NotEmpty(t, loaded.Model)

	app.Update(loaded)
	assert.Contains(t, app.status.View(), "2 docs")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))

	app.Update(messages.ErrorOccurred{Err: assert.AnError})

	assert.Equal(t, assert.AnError, app.Err())
	assert.Equal(t, status.StateError, app.status.State())
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_SetTheme(t *testing.T) {
	app := newTestApp(t, newTestPorts(t))

	app.SetTheme(domain.ThemeLight)

	assert.Equal(t, "#EFF1F5", string(app.styles.Theme().Background))
}
