package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage the system prompt",
	Long:  `View or change the system prompt included at the start of every answer.`,
}

var promptGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the system prompt",
	Args:  cobra.NoArgs,
	RunE:  runPromptGet,
}

var promptSetCmd = &cobra.Command{
	Use:   "set [prompt]",
	Short: "Set the system prompt",
	Long: `Saves a new system prompt. Use --reset to restore the default.
An empty prompt ("") removes the prompt line from answers.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPromptSet,
}

var (
	promptGetJSON bool
	promptReset   bool
)

func init() {
	promptGetCmd.Flags().BoolVar(&promptGetJSON, "json", false, "output as JSON")
	promptSetCmd.Flags().BoolVar(&promptReset, "reset", false, "restore the default prompt")

	promptCmd.AddCommand(promptGetCmd)
	promptCmd.AddCommand(promptSetCmd)
	rootCmd.AddCommand(promptCmd)
}

func runPromptGet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	prompt, err := settingsService.SystemPrompt(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get system prompt: %w", err)
	}

	if promptGetJSON {
		return printJSON(cmd, map[string]string{"prompt_template": prompt})
	}

	cmd.Println(prompt)
	return nil
}

func runPromptSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	prompt := strings.Join(args, " ")
	switch {
	case promptReset:
		prompt = domain.DefaultSystemPrompt
	case len(args) == 0:
		return errors.New("prompt required (or use --reset)")
	}

	if err := storageWarning(cmd, settingsService.SetSystemPrompt(cmd.Context(), prompt)); err != nil {
		return fmt.Errorf("failed to set system prompt: %w", err)
	}

	cmd.Println("System prompt updated.")
	return nil
}
