package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"myhair/internal/devserver"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	devserverCmd.Flags().String("addr", "", "Listen address (default :3000)")
	viper.BindPFlag("devserver.addr", devserverCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(devserverCmd)
}

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local development backend with seed data",
	Long: `Run an in-memory backend that speaks the same API as the real one.
Seed accounts (password "password"): sara@client.com, amal@salon.com,
karim@salon.com. Data is lost when the server stops.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serveDev(ctx, cmd, viper.GetString("devserver.addr"))
	},
}

func serveDev(ctx context.Context, cmd *cobra.Command, addr string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Development backend listening on %s\n", addr)
	return devserver.New().ListenAndServe(ctx, addr)
}
