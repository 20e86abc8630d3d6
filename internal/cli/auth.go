package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/set-night/zeno/internal/config"
	"github.com/set-night/zeno/internal/domain"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			email, err := a.term.ReadLine("Email: ")
			if err != nil {
				return err
			}
			password, err := a.term.ReadLine("Password: ")
			if err != nil {
				return err
			}

			if err := a.auth.Login(cmd.Context(), email, password); err != nil {
				return domain.ErrInvalidCredentials
			}
			a.term.Println("Logged in.")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			name, err := a.term.ReadLine("Name: ")
			if err != nil {
				return err
			}
			email, err := a.term.ReadLine("Email: ")
			if err != nil {
				return err
			}
			password, err := a.term.ReadLine(fmt.Sprintf("Password (min %d chars): ", config.MinPasswordLength))
			if err != nil {
				return err
			}

			return a.auth.Register(cmd.Context(), name, email, password)
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.auth.Logout(); err != nil {
				return err
			}
			a.term.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show what the stored session token says about you",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			info, err := a.auth.Inspect()
			if err != nil {
				return err
			}
			if info.Email != "" {
				a.term.Printf("Email: %s\n", info.Email)
			}
			if info.Subject != "" {
				a.term.Printf("Subject: %s\n", info.Subject)
			}
			if !info.ExpiresAt.IsZero() {
				a.term.Printf("Session expires: %s\n", info.ExpiresAt.Local())
			}
			return nil
		},
	}
}
