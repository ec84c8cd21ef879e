package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/guard"
	"github.com/staffdeck/staffdeck/internal/session"
	"github.com/staffdeck/staffdeck/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage authentication credentials for the staffdeck platform.

The auth command provides subcommands for registering, logging in, logging
out, and checking the current session.

Credentials are stored in ~/.staffdeck/credentials.json.

Examples:
  staffdeck auth login --email user@example.com
  staffdeck auth status
  staffdeck auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in to the staffdeck platform with your email and password.

The password is prompted interactively when not passed as a flag. After a
successful login the session token is saved locally and reused by every
subsequent command until it expires or you log out.

Examples:
  staffdeck auth login
  staffdeck auth login --email user@example.com --password mypass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewLogin); err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--email is required")
			}
			email, err = tui.PromptForString(tui.Prompt{
				Message:     "Email",
				Placeholder: "user@example.com",
				Required:    true,
			})
			if err != nil {
				return err
			}
		}
		if password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--password is required")
			}
			password, err = tui.PromptForString(tui.Prompt{
				Message:  "Password",
				Required: true,
				Secret:   true,
			})
			if err != nil {
				return err
			}
		}

		res := app.store.Login(cmd.Context(), email, password)
		if !res.Success {
			return errors.New(errors.ErrCodeAuthInvalidCredentials, res.Message)
		}

		user := app.store.CurrentUser()
		fmt.Printf("Logged in as %s (%s)\n", user.FullName(), user.Role)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove credentials",
	Long: `Log out and remove the stored session token.

Logout is local: the token is discarded without contacting the server.

Examples:
  staffdeck auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		app.store.Restore(cmd.Context())
		app.store.Logout()
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show whether a session exists and who it belongs to.

Examples:
  staffdeck auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		app.store.Restore(cmd.Context())

		if !app.store.IsAuthenticated() {
			fmt.Println("Not logged in.")
			fmt.Println()
			fmt.Println("Use 'staffdeck auth login' to sign in.")
			return nil
		}

		user := app.store.CurrentUser()
		fmt.Printf("Logged in as: %s <%s>\n", user.FullName(), user.Email)
		fmt.Printf("Role:         %s\n", user.Role)
		if expiry, ok := session.TokenExpiry(app.store.Token()); ok {
			fmt.Printf("Token valid:  until %s\n", expiry.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account on the platform.

Registration creates the account only; run 'staffdeck auth login'
afterwards to start a session.

Examples:
  staffdeck auth register --email user@example.com --username user \
    --first-name Jane --last-name Doe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		reg := api.Registration{}
		reg.Email, _ = cmd.Flags().GetString("email")
		reg.Username, _ = cmd.Flags().GetString("username")
		reg.FirstName, _ = cmd.Flags().GetString("first-name")
		reg.LastName, _ = cmd.Flags().GetString("last-name")
		reg.Password, _ = cmd.Flags().GetString("password")

		for name, value := range map[string]string{
			"email": reg.Email, "username": reg.Username,
			"first-name": reg.FirstName, "last-name": reg.LastName,
		} {
			if value == "" {
				return fmt.Errorf("--%s is required", name)
			}
		}

		if reg.Password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--password is required")
			}
			reg.Password, err = tui.PromptForString(tui.Prompt{
				Message:  "Password",
				Required: true,
				Secret:   true,
			})
			if err != nil {
				return err
			}
		}

		user, err := app.client.Register(cmd.Context(), reg)
		if err != nil {
			return err
		}

		fmt.Printf("Account created for %s <%s>\n", user.FullName(), user.Email)
		fmt.Println()
		fmt.Println("Use 'staffdeck auth login' to sign in.")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password (prompted when omitted)")

	authRegisterCmd.Flags().String("email", "", "Email address (required)")
	authRegisterCmd.Flags().String("username", "", "Username (required)")
	authRegisterCmd.Flags().String("first-name", "", "First name (required)")
	authRegisterCmd.Flags().String("last-name", "", "Last name (required)")
	authRegisterCmd.Flags().String("password", "", "Password (prompted when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRegisterCmd)

	rootCmd.AddCommand(authCmd)
}
