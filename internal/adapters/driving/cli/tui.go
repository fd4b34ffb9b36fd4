package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive chat panel",
	Long: `Launch the interactive chat panel.

Questions are answered from your uploaded documents while the answer
streams in. Every exchange is saved to a chat session.

Controls:
  Enter      - Send the question
  Esc        - Stop the answer
  Ctrl+N     - Start a new chat
  PgUp/PgDn  - Scroll the conversation
  Ctrl+C     - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("session", "s", "", "resume an existing chat session")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if chatService == nil {
		return errors.New("chat service not configured")
	}

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// newTUIApp builds the chat panel from the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	app, err := tui.NewApp(&tui.Ports{
		Chat:     chatService,
		Session:  sessionService,
		Settings: settingsService,
		Document: documentService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if id, _ := cmd.Flags().GetString("session"); id != "" {
		app.WithSession(id)
	}

	if settingsService != nil {
		profile, err := settingsService.Profile(cmd.Context())
		if err != nil {
			logger.Warn("reading profile: %v", err)
		} else {
			app.SetTheme(profile.Theme)
		}
	}
	return app, nil
}
