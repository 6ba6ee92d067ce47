package main

import (
	"fmt"

	apperrors "myhair/internal/errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

func init() {
	forgotCmd.Flags().String("email", "", "Account email (prompted when empty)")
	resetCmd.Flags().String("email", "", "Account email (prompted when empty)")
	resetCmd.Flags().String("code", "", "Code received by email (prompted when empty)")

	passwordCmd.AddCommand(forgotCmd, resetCmd)
	rootCmd.AddCommand(confirmCmd, passwordCmd)
}

var confirmCmd = &cobra.Command{
	Use:   "confirm <code>",
	Short: "Confirm your email with the code you received",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := newBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.client.ConfirmEmail(ctx, args[0]); err != nil {
			return fmt.Errorf("confirmation failed: %s", apperrors.Reason(err))
		}
		// Pick up the confirmed flag in the cached profile.
		if err := b.store.Restore(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Account confirmed.")
		return nil
	},
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Recover a forgotten password",
}

var forgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Ask the backend to email a reset code",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if err := promptIfEmpty(&email, &survey.Input{Message: "Email:"}); err != nil {
			return err
		}

		b, err := newBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.client.ForgotPassword(cmd.Context(), email); err != nil {
			return fmt.Errorf("request failed: %s", apperrors.Reason(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "If this account exists, a reset code is on its way.")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set a new password with the emailed code",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		code, _ := cmd.Flags().GetString("code")
		var password string
		if err := promptIfEmpty(&email, &survey.Input{Message: "Email:"}); err != nil {
			return err
		}
		if err := promptIfEmpty(&code, &survey.Input{Message: "Code:"}); err != nil {
			return err
		}
		if err := promptIfEmpty(&password, &survey.Password{Message: "New password:"}); err != nil {
			return err
		}

		b, err := newBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.client.ResetPassword(cmd.Context(), email, code, password); err != nil {
			return fmt.Errorf("reset failed: %s", apperrors.Reason(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password updated. You can log in now.")
		return nil
	},
}
