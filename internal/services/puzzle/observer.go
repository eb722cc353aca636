package puzzle

import (
	"context"

	"github.com/mcoot/wordgrid/internal/model"
)

// Observer is notified after every state change has been saved. It is
// called synchronously and must not block.
type Observer interface {
	PuzzleChanged(ctx context.Context, puzzle *model.Puzzle, event model.Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ctx context.Context, puzzle *model.Puzzle, event model.Event)

func (f ObserverFunc) PuzzleChanged(ctx context.Context, puzzle *model.Puzzle, event model.Event) {
	f(ctx, puzzle, event)
}
