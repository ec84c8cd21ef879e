package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/guard"
	"github.com/staffdeck/staffdeck/internal/tui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update your profile",
	Long: `View and update the signed-in user's profile.

Examples:
  staffdeck profile
  staffdeck profile update --first-name Jane
  staffdeck profile change-password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewProfile); err != nil {
			return err
		}

		user := app.store.CurrentUser()
		fmt.Printf("Name:     %s\n", user.FullName())
		fmt.Printf("Email:    %s\n", user.Email)
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Role:     %s\n", user.Role)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	Long: `Update your name or email. Omitted flags keep their current value.

Examples:
  staffdeck profile update --first-name Jane --last-name Doe
  staffdeck profile update --email jane@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewProfile); err != nil {
			return err
		}

		current := app.store.CurrentUser()
		update := api.ProfileUpdate{
			FirstName: current.FirstName,
			LastName:  current.LastName,
			Email:     current.Email,
		}
		if v, _ := cmd.Flags().GetString("first-name"); v != "" {
			update.FirstName = v
		}
		if v, _ := cmd.Flags().GetString("last-name"); v != "" {
			update.LastName = v
		}
		if v, _ := cmd.Flags().GetString("email"); v != "" {
			update.Email = v
		}

		res := app.store.UpdateProfile(cmd.Context(), update)
		if !res.Success {
			return errors.New(errors.ErrCodeServerRejected, res.Message)
		}
		return nil
	},
}

var profileChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your password",
	Long: `Change your password. Both passwords are prompted interactively
when not passed as flags.

Examples:
  staffdeck profile change-password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewProfile); err != nil {
			return err
		}

		current, _ := cmd.Flags().GetString("current")
		next, _ := cmd.Flags().GetString("new")

		if current == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--current is required")
			}
			current, err = tui.PromptForString(tui.Prompt{
				Message:  "Current password",
				Required: true,
				Secret:   true,
			})
			if err != nil {
				return err
			}
		}
		if next == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--new is required")
			}
			next, err = tui.PromptForString(tui.Prompt{
				Message:  "New password",
				Required: true,
				Secret:   true,
			})
			if err != nil {
				return err
			}
		}

		res := app.store.ChangePassword(cmd.Context(), current, next)
		if !res.Success {
			return errors.New(errors.ErrCodeServerRejected, res.Message)
		}
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("first-name", "", "New first name")
	profileUpdateCmd.Flags().String("last-name", "", "New last name")
	profileUpdateCmd.Flags().String("email", "", "New email address")

	profileChangePasswordCmd.Flags().String("current", "", "Current password (prompted when omitted)")
	profileChangePasswordCmd.Flags().String("new", "", "New password (prompted when omitted)")

	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileChangePasswordCmd)

	rootCmd.AddCommand(profileCmd)
}
