package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordgrid/internal/factory"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/tui"
)

func newPlayCmd() *cobra.Command {
	var (
		mode       string
		dictionary string
		grids      string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a puzzle in the terminal without a server",
		Long: `Play a puzzle in a local terminal UI. The dictionary and daily grids are
loaded from the given sources, which may be file paths or URLs.

Keys: arrows move, space selects, enter submits, c clears the selection,
r resets, m switches daily/practice, 1-9 undo a word, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.Mode(mode).IsValid() {
				return fmt.Errorf("invalid mode %q: must be daily or practice", mode)
			}

			logger, closeLog, err := playLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			app, err := factory.New(factory.Config{
				Logger:           logger,
				StorageType:      factory.StorageTypeMemory,
				DictionarySource: dictionary,
				DailySource:      grids,
			})
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}
			defer func() { _ = app.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			return tui.Run(ctx, tui.Config{
				Controller: app.PuzzleController,
				Load:       app.Load,
				Clock:      app.Clock,
				Mode:       model.Mode(mode),
				Logger:     logger,
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "daily", "Puzzle mode: daily, practice")
	cmd.Flags().StringVar(&dictionary, "dictionary", "data/dictionary.json", "Dictionary file or URL")
	cmd.Flags().StringVar(&grids, "grids", "data/grids.json", "Daily grids file or URL")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (discarded if empty)")

	return cmd
}

// playLogger returns a logger that never writes to the terminal the UI owns
func playLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
