package response

import (
	"time"

	"github.com/mcoot/wordgrid/internal/model"
)

// Health is the response for the health endpoint
type Health struct {
	Status           string `json:"status"`
	DictionaryLoaded bool   `json:"dictionary_loaded"`
	DictionaryWords  int    `json:"dictionary_words"`
}

// Position is a cell coordinate
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func positionsFromModel(positions []model.Position) []Position {
	out := make([]Position, len(positions))
	for i, p := range positions {
		out[i] = Position{Col: p.Col, Row: p.Row}
	}
	return out
}

// Cell is one tile of the board
type Cell struct {
	Letter string `json:"letter"`
	State  string `json:"state"`
}

// WordBox is the in-progress word
type WordBox struct {
	Text      string     `json:"text"`
	Positions []Position `json:"positions"`
}

// HistoryEntry is an accepted word
type HistoryEntry struct {
	Word      string     `json:"word"`
	Length    int        `json:"length"`
	Positions []Position `json:"positions"`
}

// Stats is the scoreboard
type Stats struct {
	LettersUsed      int `json:"letters_used"`
	WordsCreated     int `json:"words_created"`
	RemainingLetters int `json:"remaining_letters"`
	Score            int `json:"score"`
}

// StatsFromModel converts model.Stats
func StatsFromModel(s model.Stats) Stats {
	return Stats{
		LettersUsed:      s.LettersUsed,
		WordsCreated:     s.WordsCreated,
		RemainingLetters: s.RemainingLetters,
		Score:            s.Score,
	}
}

// Puzzle is the full view of a puzzle
type Puzzle struct {
	ID        string         `json:"id"`
	Mode      string         `json:"mode"`
	DateKey   string         `json:"date_key"`
	State     string         `json:"state"`
	Cells     [][]Cell       `json:"cells"` // Column-major: cells[col][row]
	WordBox   WordBox        `json:"word_box"`
	History   []HistoryEntry `json:"history"` // Most recent first
	Stats     Stats          `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PuzzleFromModel builds the puzzle view
func PuzzleFromModel(p *model.Puzzle, stats model.Stats) Puzzle {
	cells := make([][]Cell, p.Board.Cols)
	for col := range cells {
		cells[col] = make([]Cell, p.Board.Rows)
		for row := range cells[col] {
			c := p.Board.Cells[col][row]
			cells[col][row] = Cell{Letter: string(c.Letter), State: string(c.State)}
		}
	}

	history := make([]HistoryEntry, len(p.History))
	for i, w := range p.History {
		history[i] = HistoryEntry{
			Word:      w.Text,
			Length:    len(w.Positions),
			Positions: positionsFromModel(w.Positions),
		}
	}

	return Puzzle{
		ID:      string(p.ID),
		Mode:    string(p.Mode),
		DateKey: p.DateKey,
		State:   string(p.Board.SelectionState()),
		Cells:   cells,
		WordBox: WordBox{
			Text:      p.Board.Word(),
			Positions: positionsFromModel(p.Board.WordBox),
		},
		History:   history,
		Stats:     StatsFromModel(stats),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CommitResponse is the response for a commit
type CommitResponse struct {
	Outcome string `json:"outcome"`
	Word    string `json:"word,omitempty"`
	Puzzle  Puzzle `json:"puzzle"`
}

// CommandResponse is the response for a dispatched command. Outcome and
// Word are only set for commits.
type CommandResponse struct {
	Outcome string `json:"outcome,omitempty"`
	Word    string `json:"word,omitempty"`
	Puzzle  Puzzle `json:"puzzle"`
}
