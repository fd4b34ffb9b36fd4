package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the account profile",
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileGet,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the profile",
	Long: `Updates the profile fields given as flags. Other fields keep their values.

Themes: system, light, dark.`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

var (
	profileGetJSON bool
	profileName    string
	profileAvatar  string
	profileTheme   string
)

func init() {
	profileGetCmd.Flags().BoolVar(&profileGetJSON, "json", false, "output as JSON")
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar URL")
	profileSetCmd.Flags().StringVar(&profileTheme, "theme", "", "colour theme (system, light, dark)")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileGet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	profile, err := settingsService.Profile(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profileGetJSON {
		return printJSON(cmd, profile)
	}

	cmd.Printf("Name:   %s\n", profile.Name)
	cmd.Printf("Avatar: %s\n", profile.Avatar)
	cmd.Printf("Theme:  %s\n", profile.Theme)
	return nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("avatar") && !flags.Changed("theme") {
		return errors.New("nothing to update (use --name, --avatar or --theme)")
	}

	profile, err := settingsService.Profile(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	updated := *profile
	if flags.Changed("name") {
		updated.Name = profileName
	}
	if flags.Changed("avatar") {
		updated.Avatar = profileAvatar
	}
	if flags.Changed("theme") {
		updated.Theme = domain.Theme(profileTheme)
	}

	if err := storageWarning(cmd, settingsService.SetProfile(cmd.Context(), updated)); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	cmd.Println("Profile updated.")
	return nil
}
