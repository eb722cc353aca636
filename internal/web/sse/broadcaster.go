package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
	"github.com/mcoot/wordgrid/internal/services/scoring"
)

// Broadcaster pushes puzzle changes to everyone watching the puzzle. It is
// registered with the puzzle controller as an observer.
type Broadcaster struct {
	hubManager     *HubManager
	scoringService *scoring.Service
	logger         *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, scoringService *scoring.Service, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager:     hubManager,
		scoringService: scoringService,
		logger:         logger.With(slog.String("component", "sse-broadcaster")),
	}
}

var _ puzzle.Observer = (*Broadcaster)(nil)

// PuzzleChanged sends the event as JSON under its own name, then the
// re-rendered panel as a puzzle-update. Deleted puzzles close their hub.
func (b *Broadcaster) PuzzleChanged(ctx context.Context, p *model.Puzzle, event model.Event) {
	if event.Type == model.EventPuzzleDeleted {
		b.PuzzleDeleted(p.ID)
		return
	}

	hub := b.hubManager.GetHub(p.ID)
	if hub == nil {
		return
	}

	data, err := RenderEvent(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("puzzle_id", string(p.ID)),
			slog.Any("error", err))
	} else {
		hub.BroadcastEvent(string(event.Type), data)
	}

	html, err := RenderPanel(ctx, p, b.scoringService.Stats(p))
	if err != nil {
		b.logger.Error("sse failed to render puzzle panel",
			slog.String("puzzle_id", string(p.ID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventPuzzleUpdate, html)
}

// PuzzleDeleted tells watchers the puzzle is gone and closes its hub
func (b *Broadcaster) PuzzleDeleted(id model.PuzzleID) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}
	hub.BroadcastEvent("puzzle-deleted", string(id))
	b.hubManager.RemoveHub(id)
}
