package main

import (
	"fmt"
	"os"

	"myhair/internal/config"
	"myhair/internal/telemetry"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "myhair",
	Short: "MyHair: find a stylist, book, and skip the queue",
	Long: `MyHair is the terminal client for the MyHair salon platform.
Run it without a subcommand to open the interactive app, or use the
subcommands below for scripting.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or <user config dir>/myhair/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides config and MYHAIR_API_URL)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep the session cache in memory only")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("ephemeral", rootCmd.PersistentFlags().Lookup("ephemeral"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	settings := config.Current()
	// The TUI owns stdout, so logs go to the log file; verbose also mirrors
	// them to stderr.
	telemetry.InitLogger(settings.Verbose, settings.LogFile, settings.Verbose)

	if settings.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if settings.MetricsPort > 0 {
		go func() {
			if err := telemetry.StartMetricsServer(settings.MetricsPort); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to start metrics server: %v\n", err)
			}
		}()
	}
}
