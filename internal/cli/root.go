package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "pongarena",
		Short: "CLI tool for the pong arena API",
		Long: `pongarena is a CLI tool for interacting with the pong arena JSON API.

It supports queue operations, match control, rating lookups, and
real-time SSE event streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.PlayerID, cfg.ConnID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PONGARENA_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player ID (env: PONGARENA_PLAYER_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConnID, "conn", cfg.ConnID, "Connection ID (env: PONGARENA_CONN_ID)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newQueueCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
