package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordgrid/internal/api/request"
	"github.com/mcoot/wordgrid/internal/api/response"
)

var errNoPuzzle = errors.New("no puzzle ID given and none saved; run 'wordgrid puzzle new' first")

func newPuzzleCmd() *cobra.Command {
	var puzzleID string

	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Puzzle commands",
		Long: `Puzzle commands act on the puzzle given with --id, or on the last puzzle
created with 'puzzle new' when --id is omitted.`,
	}

	cmd.PersistentFlags().StringVar(&puzzleID, "id", "", "Puzzle ID (defaults to the last puzzle created)")

	resolve := func() (string, error) {
		return resolvePuzzleID(puzzleID)
	}

	cmd.AddCommand(newPuzzleNewCmd())
	cmd.AddCommand(newPuzzleGetCmd(resolve))
	cmd.AddCommand(newPuzzleToggleCmd(resolve))
	cmd.AddCommand(newPuzzleCommitCmd(resolve))
	cmd.AddCommand(newPuzzleActionCmd("clear", "Clear the current selection", resolve))
	cmd.AddCommand(newPuzzleActionCmd("reset", "Unlock every cell and forget every word", resolve))
	cmd.AddCommand(newPuzzleModeCmd(resolve))
	cmd.AddCommand(newPuzzleUndoCmd(resolve))
	cmd.AddCommand(newPuzzleDeleteCmd(resolve))

	return cmd
}

func resolvePuzzleID(flagID string) (string, error) {
	if flagID != "" {
		return flagID, nil
	}
	saved, err := cfg.LoadPuzzleID()
	if err != nil {
		return "", fmt.Errorf("failed to read puzzle file: %w", err)
	}
	if saved == "" {
		return "", errNoPuzzle
	}
	return saved, nil
}

func newPuzzleNewCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Puzzle

			if err := client.Post("/api/v1/puzzles", request.CreatePuzzleRequest{Mode: mode}, &result); err != nil {
				return err
			}

			if err := cfg.SavePuzzleID(result.ID); err != nil {
				return fmt.Errorf("failed to save puzzle ID: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "daily", "Puzzle mode: daily, practice")

	return cmd
}

func newPuzzleGetCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve()
			if err != nil {
				return err
			}

			var result response.Puzzle
			if err := client.Get(puzzlePath(id), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPuzzleToggleCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <col> <row>",
		Short: "Select or deselect a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("col must be a number: %w", err)
			}
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row must be a number: %w", err)
			}

			id, err := resolve()
			if err != nil {
				return err
			}

			var result response.Puzzle
			if err := client.Post(puzzlePath(id, "toggle"), request.NewToggleRequest(col, row), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPuzzleCommitCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Submit the selected word",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve()
			if err != nil {
				return err
			}

			var result response.CommitResponse
			if err := client.Post(puzzlePath(id, "commit"), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

// newPuzzleActionCmd builds a body-less POST command such as clear or reset
func newPuzzleActionCmd(action, short string, resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve()
			if err != nil {
				return err
			}

			var result response.Puzzle
			if err := client.Post(puzzlePath(id, action), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPuzzleModeCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "mode <daily|practice>",
		Short: "Switch the puzzle to a fresh grid in the given mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve()
			if err != nil {
				return err
			}

			var result response.Puzzle
			if err := client.Post(puzzlePath(id, "mode"), request.SwitchModeRequest{Mode: args[0]}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPuzzleUndoCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <n>",
		Short: "Undo the nth accepted word (1 is the most recent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("n must be a positive number")
			}

			id, err := resolve()
			if err != nil {
				return err
			}

			var result response.Puzzle
			if err := client.Do(http.MethodDelete, puzzlePath(id, "words", strconv.Itoa(n-1)), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPuzzleDeleteCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve()
			if err != nil {
				return err
			}

			if err := client.Delete(puzzlePath(id)); err != nil {
				return err
			}

			if err := cfg.ClearPuzzleID(id); err != nil {
				return fmt.Errorf("failed to update puzzle file: %w", err)
			}

			output(cmd).PrintMessage(fmt.Sprintf("Puzzle %s deleted", id))
			return nil
		},
	}
}
