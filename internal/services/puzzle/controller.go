package puzzle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/dependencies/random"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/board"
	"github.com/mcoot/wordgrid/internal/services/dictionary"
	"github.com/mcoot/wordgrid/internal/services/generator"
	"github.com/mcoot/wordgrid/internal/services/scoring"
	"github.com/mcoot/wordgrid/internal/source"
	"github.com/mcoot/wordgrid/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller runs the selection state machine for puzzles
type Controller struct {
	storage           storage.Storage
	boardService      *board.Service
	dictionaryService *dictionary.Service
	scoringService    *scoring.Service
	generatorService  *generator.Service
	dailySource       source.DailyGridSource
	frequencies       generator.FrequencyTable
	clock             clock.Clock
	random            random.Random
	logger            *slog.Logger

	locks *keyedMutex

	observersMu sync.RWMutex
	observers   []Observer
}

// NewController creates a new PuzzleController. dailySource may be nil, in
// which case daily puzzles always use the date-seeded fallback grid.
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	dictionaryService *dictionary.Service,
	scoringService *scoring.Service,
	generatorService *generator.Service,
	dailySource source.DailyGridSource,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:           storage,
		boardService:      boardService,
		dictionaryService: dictionaryService,
		scoringService:    scoringService,
		generatorService:  generatorService,
		dailySource:       dailySource,
		frequencies:       generator.DefaultFrequencies,
		clock:             clock,
		random:            random,
		logger:            logger.With(slog.String("component", "puzzle")),
		locks:             newKeyedMutex(),
	}
}

// AddObserver registers an observer for every puzzle
func (c *Controller) AddObserver(o Observer) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()
	c.observers = append(c.observers, o)
}

// Create starts a new puzzle in the given mode
func (c *Controller) Create(ctx context.Context, mode model.Mode) (*model.Puzzle, error) {
	if !mode.IsValid() {
		return nil, model.ErrInvalidMode
	}

	now := c.clock.Now()
	dateKey := clock.DateKey(now)

	b, err := c.newBoard(ctx, mode, dateKey)
	if err != nil {
		return nil, err
	}

	puzzle := &model.Puzzle{
		ID:        model.PuzzleID(c.random.String(12, idAlphabet)),
		Mode:      mode,
		DateKey:   dateKey,
		Board:     b,
		History:   []model.AcceptedWord{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SavePuzzle(ctx, puzzle); err != nil {
		c.logger.Error("failed to save puzzle",
			slog.String("puzzle_id", string(puzzle.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("puzzle created",
		slog.String("puzzle_id", string(puzzle.ID)),
		slog.String("mode", string(mode)),
		slog.String("date", dateKey),
	)

	c.notify(ctx, puzzle, c.event(model.EventPuzzleCreated, puzzle.ID, nil))
	return puzzle, nil
}

// Get retrieves a puzzle by ID
func (c *Controller) Get(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return c.storage.GetPuzzle(ctx, id)
}

// Delete removes a puzzle
func (c *Controller) Delete(ctx context.Context, id model.PuzzleID) error {
	unlock := c.locks.Lock(id)
	defer unlock()

	puzzle, err := c.storage.GetPuzzle(ctx, id)
	if err != nil {
		return err
	}
	if err := c.storage.DeletePuzzle(ctx, id); err != nil {
		return err
	}

	c.logger.Info("puzzle deleted", slog.String("puzzle_id", string(id)))
	c.notify(ctx, puzzle, c.event(model.EventPuzzleDeleted, id, nil))
	return nil
}

// Stats returns the derived scoreboard for a puzzle
func (c *Controller) Stats(puzzle *model.Puzzle) model.Stats {
	return c.scoringService.Stats(puzzle)
}

// Toggle selects or deselects a cell. Locked cells are left as they are.
func (c *Controller) Toggle(ctx context.Context, id model.PuzzleID, pos model.Position) (*model.Puzzle, error) {
	return c.mutate(ctx, id, func(p *model.Puzzle) (model.Event, error) {
		if err := p.Board.ToggleSelect(pos); err != nil {
			return model.Event{}, err
		}
		return c.event(model.EventCellToggled, p.ID, model.CellToggledPayload{
			Position: pos,
			State:    p.Board.Get(pos).State,
		}), nil
	})
}

// Commit checks the word box against the dictionary. An accepted word is
// locked in and recorded; a rejected word just clears the selection. With an
// empty word box nothing happens.
func (c *Controller) Commit(ctx context.Context, id model.PuzzleID) (*model.Puzzle, model.CommitResult, error) {
	var result model.CommitResult

	puzzle, err := c.mutate(ctx, id, func(p *model.Puzzle) (model.Event, error) {
		if p.Board.SelectionState() == model.SelectionIdle {
			result = model.CommitResult{Outcome: model.CommitNone}
			return model.Event{}, errNoChange
		}
		if !c.dictionaryService.IsLoaded() {
			return model.Event{}, model.ErrDictionaryNotLoaded
		}

		word := p.Board.Word()
		positions := append([]model.Position(nil), p.Board.WordBox...)
		payload := model.WordPayload{Word: word, Positions: positions}

		if !c.dictionaryService.Contains(word) {
			p.Board.ClearSelection()
			result = model.CommitResult{Outcome: model.CommitRejected, Word: word}
			return c.event(model.EventWordRejected, p.ID, payload), nil
		}

		p.Board.LockCells(positions)
		p.Board.WordBox = []model.Position{}
		p.History = append([]model.AcceptedWord{{Text: word, Positions: positions}}, p.History...)
		result = model.CommitResult{Outcome: model.CommitAccepted, Word: word}
		return c.event(model.EventWordAccepted, p.ID, payload), nil
	})
	if err != nil {
		return nil, model.CommitResult{}, err
	}

	c.logger.Debug("word committed",
		slog.String("puzzle_id", string(id)),
		slog.String("outcome", string(result.Outcome)),
		slog.String("word", result.Word),
	)
	return puzzle, result, nil
}

// ClearSelection empties the word box without touching locked cells
func (c *Controller) ClearSelection(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return c.mutate(ctx, id, func(p *model.Puzzle) (model.Event, error) {
		p.Board.ClearSelection()
		return c.event(model.EventSelectionClear, p.ID, nil), nil
	})
}

// Reset makes every cell available and forgets every accepted word
func (c *Controller) Reset(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return c.mutate(ctx, id, func(p *model.Puzzle) (model.Event, error) {
		p.Board.ResetAll()
		p.History = []model.AcceptedWord{}
		return c.event(model.EventPuzzleReset, p.ID, nil), nil
	})
}

// SwitchMode replaces the grid with a fresh one for mode and clears the
// history. Daily grids are fetched again for today's date.
func (c *Controller) SwitchMode(ctx context.Context, id model.PuzzleID, mode model.Mode) (*model.Puzzle, error) {
	if !mode.IsValid() {
		return nil, model.ErrInvalidMode
	}

	return c.mutate(ctx, id, func(p *model.Puzzle) (model.Event, error) {
		dateKey := clock.DateKey(c.clock.Now())

		b, err := c.newBoard(ctx, mode, dateKey)
		if err != nil {
			return model.Event{}, err
		}

		oldMode := p.Mode
		p.Mode = mode
		p.DateKey = dateKey
		p.Board = b
		p.History = []model.AcceptedWord{}

		c.logger.Info("mode switched",
			slog.String("puzzle_id", string(p.ID)),
			slog.String("old_mode", string(oldMode)),
			slog.String("new_mode", string(mode)),
		)

		return c.event(model.EventModeSwitched, p.ID, model.ModeSwitchedPayload{
			OldMode: oldMode,
			NewMode: mode,
		}), nil
	})
}

// Undo removes the accepted word at index (0 is the most recent) and frees
// its cells
func (c *Controller) Undo(ctx context.Context, id model.PuzzleID, index int) (*model.Puzzle, error) {
	return c.mutate(ctx, id, func(p *model.Puzzle) (model.Event, error) {
		if !c.scoringService.ValidUndoIndex(p, index) {
			return model.Event{}, fmt.Errorf("%w: %d of %d", model.ErrUndoOutOfRange, index, len(p.History))
		}

		removed := c.scoringService.Undo(p, index)
		return c.event(model.EventWordUndone, p.ID, model.WordPayload{
			Word:      removed.Text,
			Positions: removed.Positions,
		}), nil
	})
}

// Dispatch applies a declarative command. The commit result is only set for
// commit commands.
func (c *Controller) Dispatch(ctx context.Context, id model.PuzzleID, cmd model.Command) (*model.Puzzle, *model.CommitResult, error) {
	switch cmd.Type {
	case model.CommandToggle:
		p, err := c.Toggle(ctx, id, cmd.Position)
		return p, nil, err
	case model.CommandCommit:
		p, result, err := c.Commit(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return p, &result, nil
	case model.CommandClearSelection:
		p, err := c.ClearSelection(ctx, id)
		return p, nil, err
	case model.CommandReset:
		p, err := c.Reset(ctx, id)
		return p, nil, err
	case model.CommandSwitchMode:
		p, err := c.SwitchMode(ctx, id, cmd.Mode)
		return p, nil, err
	case model.CommandUndo:
		p, err := c.Undo(ctx, id, cmd.Index)
		return p, nil, err
	default:
		return nil, nil, fmt.Errorf("%w: %q", model.ErrInvalidCommand, cmd.Type)
	}
}

// errNoChange tells mutate to return the puzzle without saving or notifying
var errNoChange = errors.New("no change")

// mutate loads a puzzle under its lock, applies fn, then saves and notifies
func (c *Controller) mutate(ctx context.Context, id model.PuzzleID, fn func(p *model.Puzzle) (model.Event, error)) (*model.Puzzle, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	puzzle, err := c.storage.GetPuzzle(ctx, id)
	if err != nil {
		return nil, err
	}

	event, err := fn(puzzle)
	if errors.Is(err, errNoChange) {
		return puzzle, nil
	}
	if err != nil {
		return nil, err
	}

	puzzle.UpdatedAt = c.clock.Now()
	if err := c.storage.SavePuzzle(ctx, puzzle); err != nil {
		c.logger.Error("failed to save puzzle",
			slog.String("puzzle_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.notify(ctx, puzzle, event)
	return puzzle, nil
}

// newBoard builds the grid for a mode. A daily source failure falls back to
// the date-seeded uniform grid.
func (c *Controller) newBoard(ctx context.Context, mode model.Mode, dateKey string) (*model.Board, error) {
	var letters [][]rune

	switch mode {
	case model.ModeDaily:
		grid, err := c.dailyGrid(ctx, dateKey)
		if err != nil {
			c.logger.Warn("daily grid unavailable, using fallback",
				slog.String("date", dateKey),
				slog.String("error", err.Error()),
			)
			grid = c.generatorService.DailyFallback(dateKey)
		}
		letters = grid
	case model.ModePractice:
		letters = c.generatorService.FrequencyWeighted(model.GridCols, model.GridRows, c.frequencies)
	default:
		return nil, model.ErrInvalidMode
	}

	return c.boardService.NewBoard(letters)
}

func (c *Controller) dailyGrid(ctx context.Context, dateKey string) ([][]rune, error) {
	if c.dailySource == nil {
		return nil, fmt.Errorf("%w: no daily source configured", model.ErrResourceUnavailable)
	}
	return c.generatorService.FromDailySource(ctx, dateKey, c.dailySource)
}

func (c *Controller) event(eventType model.EventType, id model.PuzzleID, payload any) model.Event {
	return model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		PuzzleID:  id,
		Payload:   payload,
	}
}

func (c *Controller) notify(ctx context.Context, puzzle *model.Puzzle, event model.Event) {
	c.observersMu.RLock()
	observers := append([]Observer(nil), c.observers...)
	c.observersMu.RUnlock()

	for _, o := range observers {
		o.PuzzleChanged(ctx, puzzle, event)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, mode model.Mode) (*model.Puzzle, error)
	Get(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	Delete(ctx context.Context, id model.PuzzleID) error
	Stats(puzzle *model.Puzzle) model.Stats
	Toggle(ctx context.Context, id model.PuzzleID, pos model.Position) (*model.Puzzle, error)
	Commit(ctx context.Context, id model.PuzzleID) (*model.Puzzle, model.CommitResult, error)
	ClearSelection(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	Reset(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	SwitchMode(ctx context.Context, id model.PuzzleID, mode model.Mode) (*model.Puzzle, error)
	Undo(ctx context.Context, id model.PuzzleID, index int) (*model.Puzzle, error)
	Dispatch(ctx context.Context, id model.PuzzleID, cmd model.Command) (*model.Puzzle, *model.CommitResult, error)
	AddObserver(o Observer)
}

var _ ControllerInterface = (*Controller)(nil)
