package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

func init() {
	loginCmd.Flags().String("email", "", "Account email (prompted when empty)")
	loginCmd.Flags().String("password", "", "Account password (prompted when empty)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session for later commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if err := promptIfEmpty(&email, &survey.Input{Message: "Email:"}); err != nil {
			return err
		}
		if err := promptIfEmpty(&password, &survey.Password{Message: "Password:"}); err != nil {
			return err
		}

		b, err := newBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		res := b.store.Login(cmd.Context(), email, password)
		if !res.Success {
			return fmt.Errorf("login failed: %s", res.Error)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", res.User.Name, res.User.Type)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		// Local state is cleared even when the backend is unreachable.
		b.store.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var errNotLoggedIn = errors.New("not logged in, run 'myhair login' first")

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Check the session with the backend and print the user",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.store.Restore(cmd.Context()); err != nil {
			return err
		}
		user := b.store.User()
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:      %s\n", user.Name)
		fmt.Fprintf(out, "Email:     %s\n", user.Email)
		fmt.Fprintf(out, "Type:      %s\n", user.Type)
		if user.City != "" {
			fmt.Fprintf(out, "City:      %s\n", user.City)
		}
		fmt.Fprintf(out, "Confirmed: %t\n", user.IsConfirmed)
		return nil
	},
}
