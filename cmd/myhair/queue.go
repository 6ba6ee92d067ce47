package main

import (
	"fmt"
	"strconv"

	"myhair/internal/catalog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queueCmd)
}

var queueCmd = &cobra.Command{
	Use:   "queue [--] <+n|-n>",
	Short: "Change your salon's waiting count (stylists only)",
	Long: `Add or remove clients from your salon's queue. The count never goes
below zero. Negative changes go after "--" so they are not read as flags.`,
	Example: `  myhair queue +1
  myhair queue -- -2`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one argument like +1 or -- -1")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid queue change %q: %w", args[0], err)
		}

		ctx := cmd.Context()
		b, err := newBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.store.Restore(ctx); err != nil {
			return err
		}
		user := b.store.User()
		if user == nil {
			return errNotLoggedIn
		}
		if !user.IsStylist() {
			return fmt.Errorf("only stylist accounts have a queue")
		}

		detail, err := b.client.Stylist(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to load your salon: %w", err)
		}
		waiting := catalog.QueueDelta(detail.Waiting, delta)
		if err := b.client.UpdateWaiting(ctx, user.ID, waiting); err != nil {
			return fmt.Errorf("failed to update queue: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Queue: %d waiting\n", waiting)
		return nil
	},
}
