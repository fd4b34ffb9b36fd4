// Package cli provides the ragchat command line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Set by Configure before Execute.
var (
	documentService driving.DocumentService
	sessionService  driving.SessionService
	chatService     driving.ChatService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ragchat",
	Short: "Chat with your local documents",
	Long: `ragchat answers questions from documents you upload.

Upload plain text, Word (.docx) and PDF files, then ask questions from the
command line, the interactive chat panel (ragchat tui) or any MCP client
(ragchat mcp serve). Conversations are saved as chat sessions.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services groups the driving ports the CLI dispatches to.
type Services struct {
	Document driving.DocumentService
	Session  driving.SessionService
	Chat     driving.ChatService
	Settings driving.SettingsService
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
}

// Configure sets the services used by the commands.
func Configure(s Services) {
	documentService = s.Document
	sessionService = s.Session
	chatService = s.Chat
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// storageWarning reports a storage failure as a warning and clears it.
// Other errors are returned unchanged.
func storageWarning(cmd *cobra.Command, err error) error {
	if err != nil && errors.Is(err, domain.ErrStorageUnavailable) {
		cmd.PrintErrf("Warning: %v\n", err)
		return nil
	}
	return err
}
