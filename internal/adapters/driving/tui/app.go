package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
)

// App is the chat panel following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	input      *input.ChatInput
	status     *status.Bar
	sources    *list.SourceList
	transcript viewport.Model

	// panel records turns into the current session.
	panel driving.ChatPanel

	// turns is the conversation shown, including recorded answers.
	turns []domain.Turn

	// reply is the answer being streamed and pending its latest prefix.
	reply   *driving.Reply
	pending string

	// streamID tags stream messages so stale ones are dropped.
	streamID int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat panel on a new session.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewChatInput(s),
		status:     status.NewBar(s, km),
		sources:    list.NewSourceList(s),
		transcript: viewport.New(80, 20),
		panel:      ports.Chat.OpenPanel(""),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithSession resumes the session with the given ID.
func (a *App) WithSession(id string) *App {
	if id == "" || id == a.panel.SessionID() {
		return a
	}
	a.panel.Close()
	a.panel = a.ports.Chat.OpenPanel(id)
	return a
}

// SetTheme restyles the panel for a profile theme preference.
func (a *App) SetTheme(pref domain.Theme) {
	a.styles = styles.NewStyles(styles.ThemeFor(pref))
	a.input.SetStyles(a.styles)
	a.status.SetStyles(a.styles)
	a.sources.SetStyles(a.styles)
	a.refreshTranscript()
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("ragchat"),
		a.input.Init(),
		a.loadSession(),
		a.loadStatus(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SessionLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		if msg.Session != nil && a.reply == nil && len(a.turns) == 0 {
			a.turns = append([]domain.Turn(nil), msg.Session.Turns...)
			a.refreshTranscript()
		}
		return a, nil

	case messages.StatusLoaded:
		a.status.SetModel(msg.Model)
		a.status.SetDocuments(msg.Documents)
		if msg.Err != nil {
			a.setError(msg.Err)
		}
		return a, nil

	case messages.ReplyStarted:
		if msg.StreamID != a.streamID {
			return a, nil
		}
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.reply = msg.Reply
		a.pending = ""
		a.sources.SetMatches(msg.Reply.Matches)
		a.status.SetState(status.StateStreaming)
		a.layout()
		return a, waitForChunk(msg.StreamID, msg.Reply.Stream)

	case messages.ReplyChunk:
		if msg.StreamID != a.streamID || a.reply == nil {
			return a, nil
		}
		a.pending = msg.Text
		a.refreshTranscript()
		return a, waitForChunk(msg.StreamID, a.reply.Stream)

	case messages.ReplyFinished:
		if msg.StreamID != a.streamID || a.reply == nil {
			return a, nil
		}
		a.finishReply()
		if errors.Is(msg.Err, context.Canceled) {
			a.status.SetState(status.StateStopped)
		} else {
			a.status.SetState(status.StateReady)
		}
		return a, a.loadStatus()

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		a.panel.Close()
		return a, tea.Quit
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch keyStr := msg.String(); {
	case keymap.Matches(keyStr, a.keymap.Quit):
		a.panel.Close()
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.Cancel):
		if a.reply != nil {
			a.reply.Stream.Cancel()
		}
		return a, nil

	case keymap.Matches(keyStr, a.keymap.NewChat):
		a.panel.Close()
		a.finishReply()
		a.streamID++
		a.panel = a.ports.Chat.OpenPanel("")
		a.turns = nil
		a.sources.SetMatches(nil)
		a.status.Clear()
		a.layout()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Send):
		question := strings.TrimSpace(a.input.Value())
		if question == "" {
			return a, nil
		}
		a.input.Reset()
		return a, a.send(question)

	case keymap.Matches(keyStr, a.keymap.ScrollUp), keymap.Matches(keyStr, a.keymap.ScrollDown):
		a.transcript, cmd = a.transcript.Update(msg)
		return a, cmd
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// send shows the question and sends it through the panel. An answer
// still streaming is shown in full; the panel records it before the
// new question.
func (a *App) send(question string) tea.Cmd {
	if a.reply != nil {
		a.reply.Stream.Cancel()
		a.finishReply()
	}

	a.turns = append(a.turns, domain.Turn{Role: domain.RoleUser, Content: question})
	a.err = nil
	a.status.Clear()
	a.status.SetState(status.StateThinking)
	a.refreshTranscript()

	a.streamID++
	id := a.streamID
	panel := a.panel
	ctx := a.ctx
	return func() tea.Msg {
		reply, err := panel.Send(ctx, question)
		return messages.ReplyStarted{StreamID: id, Question: question, Reply: reply, Err: err}
	}
}

// finishReply moves the streaming answer into the transcript in full.
func (a *App) finishReply() {
	if a.reply == nil {
		return
	}
	a.turns = append(a.turns, domain.Turn{Role: domain.RoleAssistant, Content: a.reply.Text})
	a.reply = nil
	a.pending = ""
	a.refreshTranscript()
}

func (a *App) setError(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
}

// waitForChunk reads the next prefix of a stream.
func waitForChunk(id int, stream driving.ReplyStream) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-stream.Events()
		if !ok {
			return messages.ReplyFinished{StreamID: id, Err: stream.Wait()}
		}
		return messages.ReplyChunk{StreamID: id, Text: text}
	}
}

func (a *App) loadSession() tea.Cmd {
	if a.ports.Session == nil {
		return nil
	}
	sessions := a.ports.Session
	id := a.panel.SessionID()
	ctx := a.ctx
	return func() tea.Msg {
		session, err := sessions.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return messages.SessionLoaded{}
		}
		return messages.SessionLoaded{Session: session, Err: err}
	}
}

func (a *App) loadStatus() tea.Cmd {
	ports := a.ports
	ctx := a.ctx
	return func() tea.Msg {
		var msg messages.StatusLoaded
		if ports.Settings != nil {
			msg.Model, msg.Err = ports.Settings.SelectedModel(ctx)
		}
		if ports.Document != nil {
			docs, err := ports.Document.List(ctx)
			msg.Documents = len(docs)
			if msg.Err == nil {
				msg.Err = err
			}
		}
		return msg
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("ragchat") + a.styles.Muted.Render("  "+a.panel.SessionID())
	parts := []string{header, a.transcript.View()}
	if sources := a.sources.View(); sources != "" {
		parts = append(parts, sources)
	}
	parts = append(parts, a.input.View(), a.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// refreshTranscript re-renders the conversation into the viewport and
// keeps it scrolled to the latest turn.
func (a *App) refreshTranscript() {
	width := a.transcript.Width
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width)

	blocks := make([]string, 0, len(a.turns)+1)
	for _, turn := range a.turns {
		blocks = append(blocks, a.renderTurn(turn.Role, turn.Content, body))
	}
	if a.reply != nil {
		blocks = append(blocks, a.renderTurn(domain.RoleAssistant, a.pending+"▌", body))
	}

	if len(blocks) == 0 {
		a.transcript.SetContent(a.styles.Muted.Render("Ask a question about your uploaded documents."))
		return
	}
	a.transcript.SetContent(strings.Join(blocks, "\n\n"))
	a.transcript.GotoBottom()
}

func (a *App) renderTurn(role domain.Role, content string, body lipgloss.Style) string {
	label := a.styles.UserLabel.Render("You")
	if role == domain.RoleAssistant {
		label = a.styles.AssistantLabel.Render("Assistant")
	}
	return label + "\n" + body.Render(content)
}

// layout sizes the components to the terminal.
func (a *App) layout() {
	a.input.SetWidth(a.width)
	a.status.SetWidth(a.width)
	a.sources.SetWidth(a.width)

	// header, input (bordered), status bar
	reserved := 1 + 3 + 1 + a.sources.Height()
	height := a.height - reserved
	if height < 3 {
		height = 3
	}
	a.transcript.Width = a.width
	a.transcript.Height = height
	a.refreshTranscript()
}

// SessionID returns the session the panel records into.
func (a *App) SessionID() string {
	return a.panel.SessionID()
}

// Turns returns the conversation shown.
func (a *App) Turns() []domain.Turn {
	return a.turns
}

// Streaming returns whether an answer is being streamed.
func (a *App) Streaming() bool {
	return a.reply != nil
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
