package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Choose the answering model",
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available models",
	Args:  cobra.NoArgs,
	RunE:  runModelList,
}

var modelGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the selected model",
	Args:  cobra.NoArgs,
	RunE:  runModelGet,
}

var modelSelectCmd = &cobra.Command{
	Use:   "select [model-id]",
	Short: "Select a model",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelSelect,
}

var modelListJSON bool

func init() {
	modelListCmd.Flags().BoolVar(&modelListJSON, "json", false, "output models as JSON")

	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelGetCmd)
	modelCmd.AddCommand(modelSelectCmd)
	rootCmd.AddCommand(modelCmd)
}

func runModelList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	models := settingsService.Models()
	if modelListJSON {
		return printJSON(cmd, map[string][]domain.Model{"models": models})
	}

	selected, err := settingsService.SelectedModel(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get selected model: %w", err)
	}

	for _, m := range models {
		marker := " "
		if m.ID == selected {
			marker = "*"
		}
		cmd.Printf("%s %-10s %s\n", marker, m.ID, m.Name)
	}
	return nil
}

func runModelGet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	selected, err := settingsService.SelectedModel(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get selected model: %w", err)
	}

	if m, ok := domain.FindModel(selected); ok {
		cmd.Printf("%s (%s)\n", m.ID, m.Name)
		return nil
	}
	cmd.Println(selected)
	return nil
}

func runModelSelect(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := storageWarning(cmd, settingsService.SelectModel(cmd.Context(), args[0])); err != nil {
		return fmt.Errorf("failed to select model: %w", err)
	}

	cmd.Printf("Model %s selected.\n", args[0])
	return nil
}
