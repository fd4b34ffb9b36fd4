package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage chat sessions",
	Long:  `List, view, edit, export or delete saved chat sessions.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the turns of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionEditCmd = &cobra.Command{
	Use:   "edit [session-id] [index] [content]",
	Short: "Edit a question",
	Long: `Replaces the content of a user turn. Turn indexes start at 0, as shown
by "ragchat session show". Later answers are left unchanged.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSessionEdit,
}

var sessionDeleteTurnCmd = &cobra.Command{
	Use:   "delete-turn [session-id] [index]",
	Short: "Delete a turn",
	Long:  `Removes one turn. Removing the only turn deletes the session.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionDeleteTurn,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionClear,
}

var sessionExportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export sessions",
	Long: `Writes one session, or all sessions when no ID is given, as JSON or YAML.
Output goes to stdout unless --output is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionExport,
}

var (
	sessionListJSON bool
	sessionShowJSON bool
	exportFormat    string
	exportOutput    string
)

func init() {
	sessionListCmd.Flags().BoolVar(&sessionListJSON, "json", false, "output sessions as JSON")
	sessionShowCmd.Flags().BoolVar(&sessionShowJSON, "json", false, "output the conversation as JSON")
	sessionExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, yaml)")
	sessionExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionEditCmd)
	sessionCmd.AddCommand(sessionDeleteTurnCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.AddCommand(sessionExportCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	sessions, err := sessionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if sessionListJSON {
		return printJSON(cmd, map[string]any{"history": sessions})
	}

	if len(sessions) == 0 {
		cmd.Println("No chat sessions.")
		return nil
	}

	cmd.Println("Sessions:")
	cmd.Println()
	for i := range sessions {
		cmd.Printf("  %s\n", sessions[i].ID)
		cmd.Printf("    Title: %s\n", sessions[i].Title)
		cmd.Printf("    Turns: %d\n", len(sessions[i].Turns))
		cmd.Println()
	}

	cmd.Printf("Total: %d sessions\n", len(sessions))
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if sessionShowJSON {
		return printJSON(cmd, map[string]any{"conversation": session.Turns})
	}

	cmd.Printf("Session: %s\n", session.ID)
	cmd.Printf("Title:   %s\n\n", session.Title)
	for i, turn := range session.Turns {
		cmd.Printf("[%d] %s (%s)\n", i, turn.Role, turn.Timestamp.Format("2006-01-02 15:04:05"))
		cmd.Println(turn.Content)
		cmd.Println()
	}
	return nil
}

func runSessionEdit(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	index, err := parseTurnIndex(args[1])
	if err != nil {
		return err
	}

	content := strings.Join(args[2:], " ")
	_, err = sessionService.EditTurn(cmd.Context(), args[0], index, content)
	if err = storageWarning(cmd, err); err != nil {
		return fmt.Errorf("failed to edit turn: %w", err)
	}

	cmd.Printf("Turn %d of %s updated.\n", index, args[0])
	return nil
}

func runSessionDeleteTurn(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	index, err := parseTurnIndex(args[1])
	if err != nil {
		return err
	}

	err = sessionService.DeleteTurn(cmd.Context(), args[0], index)
	if err = storageWarning(cmd, err); err != nil {
		return fmt.Errorf("failed to delete turn: %w", err)
	}

	cmd.Printf("Turn %d of %s deleted.\n", index, args[0])
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := storageWarning(cmd, sessionService.Delete(cmd.Context(), args[0])); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	cmd.Printf("Session %s deleted.\n", args[0])
	return nil
}

func runSessionClear(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := storageWarning(cmd, sessionService.Clear(cmd.Context())); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	cmd.Println("All sessions deleted.")
	return nil
}

func runSessionExport(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	var payload any
	if len(args) == 1 {
		session, err := sessionService.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
		payload = session
	} else {
		sessions, err := sessionService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		payload = map[string]any{"history": sessions}
	}

	data, err := encodeExport(payload, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		cmd.Print(string(data))
		return nil
	}
	if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	cmd.Printf("Exported to %s\n", exportOutput)
	return nil
}

// encodeExport renders v in the named format with a trailing newline.
func encodeExport(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}

func parseTurnIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid turn index %q: %w", s, domain.ErrInvalidInput)
	}
	return index, nil
}
