package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/staffdeck/staffdeck/internal/log"
)

var (
	flagConfig    string
	flagAPIURL    string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "staffdeck",
	Short: "Terminal client for the staffdeck HR platform",
	Long: `staffdeck is a terminal client for the staffdeck HR platform.

It signs in against the platform API, keeps your session across invocations,
and manages the employee directory: listing, searching, creating, updating
and deleting employee records, plus organization-wide dashboard statistics.

Credentials are stored in ~/.staffdeck/credentials.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.ParseLevel(flagLogLevel)
		format := log.ParseFormat(flagLogFormat)
		cfg := log.DefaultConfig()
		cfg.Level = level
		cfg.Format = format
		log.SetDefaultLogger(log.New(cfg))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default is $HOME/.staffdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "",
		"platform API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text",
		"log format (text, json)")
}
