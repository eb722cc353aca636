package storage

import (
	"context"

	"github.com/mcoot/wordgrid/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Puzzle operations
	SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error
	GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	DeletePuzzle(ctx context.Context, id model.PuzzleID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error

	// Daily grid operations, grids are column-major letters
	GetDailyGrid(ctx context.Context, dateKey string) ([][]rune, error)
	SaveDailyGrid(ctx context.Context, dateKey string, grid [][]rune) error
}

// ClonePuzzle returns a deep copy of a puzzle so callers never share
// board state with the store
func ClonePuzzle(p *model.Puzzle) *model.Puzzle {
	clone := *p
	if p.Board != nil {
		b := *p.Board
		b.Cells = make([][]model.Cell, len(p.Board.Cells))
		for col := range p.Board.Cells {
			b.Cells[col] = append([]model.Cell(nil), p.Board.Cells[col]...)
		}
		b.WordBox = append([]model.Position{}, p.Board.WordBox...)
		clone.Board = &b
	}
	clone.History = make([]model.AcceptedWord, len(p.History))
	for i, w := range p.History {
		clone.History[i] = model.AcceptedWord{
			Text:      w.Text,
			Positions: append([]model.Position(nil), w.Positions...),
		}
	}
	return &clone
}

// CloneGrid returns a deep copy of a letter grid
func CloneGrid(grid [][]rune) [][]rune {
	clone := make([][]rune, len(grid))
	for i := range grid {
		clone[i] = append([]rune(nil), grid[i]...)
	}
	return clone
}
