package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/domain/ports"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the local account session",
	}

	cmd.AddCommand(
		newAuthSignupCmd(),
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthWhoamiCmd(),
	)
	return cmd
}

func newAuthSignupCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "signup <email> <password>",
		Short: "Register a new local account",
		Long:  "Registers an account and signs it in. The first account becomes an admin.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(func(auth ports.Authenticator) error {
				session, err := auth.SignUp(cmd.Context(), args[0], args[1], displayName)
				if err != nil {
					return fmt.Errorf("signing up: %w", err)
				}
				fmt.Printf("Signed in as %s", session.User.Email)
				if session.User.Admin {
					fmt.Print(" (admin)")
				}
				fmt.Println()
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name")
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in to a local account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(func(auth ports.Authenticator) error {
				session, err := auth.SignIn(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("signing in: %w", err)
				}
				fmt.Printf("Signed in as %s\n", session.User.Email)
				return nil
			})
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(func(auth ports.Authenticator) error {
				if err := auth.SignOut(cmd.Context()); err != nil {
					return fmt.Errorf("signing out: %w", err)
				}
				fmt.Println("Signed out.")
				return nil
			})
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(func(auth ports.Authenticator) error {
				session, err := auth.Current(cmd.Context())
				if err != nil {
					return fmt.Errorf("loading session: %w", err)
				}
				if session == nil {
					fmt.Println("Not signed in.")
					return nil
				}
				fmt.Printf("%s (%s)", session.User.DisplayName, session.User.Email)
				if session.User.Admin {
					fmt.Print(" admin")
				}
				fmt.Println()
				return nil
			})
		},
	}
}
