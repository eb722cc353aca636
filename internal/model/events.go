package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPuzzleCreated  EventType = "puzzle_created"
	EventCellToggled    EventType = "cell_toggled"
	EventWordAccepted   EventType = "word_accepted"
	EventWordRejected   EventType = "word_rejected"
	EventSelectionClear EventType = "selection_cleared"
	EventPuzzleReset    EventType = "puzzle_reset"
	EventModeSwitched   EventType = "mode_switched"
	EventWordUndone     EventType = "word_undone"
	EventPuzzleDeleted  EventType = "puzzle_deleted"
)

// Event describes a state change on a puzzle
type Event struct {
	Type      EventType
	Timestamp time.Time
	PuzzleID  PuzzleID
	Payload   any // Type-specific data
}

// CellToggledPayload contains data for cell toggled events
type CellToggledPayload struct {
	Position Position  `json:"position"`
	State    CellState `json:"state"`
}

// WordPayload contains data for word accepted, rejected and undone events
type WordPayload struct {
	Word      string     `json:"word"`
	Positions []Position `json:"positions"`
}

// ModeSwitchedPayload contains data for mode switched events
type ModeSwitchedPayload struct {
	OldMode Mode `json:"old_mode"`
	NewMode Mode `json:"new_mode"`
}
