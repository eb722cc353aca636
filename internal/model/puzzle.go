package model

import "time"

// PuzzleID uniquely identifies a puzzle session
type PuzzleID string

// Mode selects where a puzzle's grid comes from
type Mode string

const (
	ModeDaily    Mode = "daily"    // Shared grid keyed by date
	ModePractice Mode = "practice" // Frequency-weighted random grid
)

// IsValid returns true for a known mode
func (m Mode) IsValid() bool {
	return m == ModeDaily || m == ModePractice
}

// SelectionState is the word box state machine
type SelectionState string

const (
	SelectionIdle     SelectionState = "idle"     // Word box empty
	SelectionBuilding SelectionState = "building" // Word box has at least one cell
)

// AcceptedWord is a word that was locked into the board
type AcceptedWord struct {
	Text      string     `json:"text"`
	Positions []Position `json:"positions"`
}

// Puzzle is a single player's session: the board, the accepted words and
// where the grid came from
type Puzzle struct {
	ID      PuzzleID
	Mode    Mode
	DateKey string // YYYY-MM-DD the grid was created for
	Board   *Board

	// Accepted words, most recent first
	History []AcceptedWord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryContains returns true if the position belongs to an accepted word
func (p *Puzzle) HistoryContains(pos Position) bool {
	for _, w := range p.History {
		for _, hp := range w.Positions {
			if hp == pos {
				return true
			}
		}
	}
	return false
}

// Stats is the derived scoreboard for a puzzle
type Stats struct {
	LettersUsed      int
	WordsCreated     int
	RemainingLetters int
	Score            int
}

// CommitOutcome describes what a commit did
type CommitOutcome string

const (
	CommitNone     CommitOutcome = "none"     // Word box was empty
	CommitAccepted CommitOutcome = "accepted" // Word found and locked in
	CommitRejected CommitOutcome = "rejected" // Word not in dictionary
)

// CommitResult is returned from a commit
type CommitResult struct {
	Outcome CommitOutcome
	Word    string
}
