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
		Use:   "wordgrid",
		Short: "CLI tool for the wordgrid puzzle API",
		Long: `wordgrid is a CLI tool for playing wordgrid puzzles through the JSON API.

It supports every puzzle operation, real-time SSE event streaming and a
local terminal UI that needs no server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: WORDGRID_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PuzzleFile, "puzzle-file", cfg.PuzzleFile, "File remembering the last puzzle ID (env: WORDGRID_PUZZLE_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newPuzzleCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func output(cmd *cobra.Command) *Output {
	return NewOutputTo(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
