package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/web/templates/components"
)

// Event names sent on puzzle streams
const (
	EventPuzzleUpdate = "puzzle-update" // OOB-wrapped panel HTML
)

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}

// RenderPanel renders the puzzle panel content ready for an OOB swap
func RenderPanel(ctx context.Context, puzzle *model.Puzzle, stats model.Stats) (string, error) {
	var buf bytes.Buffer
	if err := components.PuzzleContent(puzzle, stats, nil).Render(ctx, &buf); err != nil {
		return "", err
	}
	return WrapForOOBSwap(components.PanelID, buf.String()), nil
}

// eventJSON is the machine-readable form of a puzzle event
type eventJSON struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	PuzzleID  model.PuzzleID  `json:"puzzle_id"`
	Payload   any             `json:"payload,omitempty"`
}

// RenderEvent encodes a puzzle event as a single JSON line
func RenderEvent(event model.Event) (string, error) {
	data, err := json.Marshal(eventJSON{
		Type:      event.Type,
		Timestamp: event.Timestamp,
		PuzzleID:  event.PuzzleID,
		Payload:   event.Payload,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
