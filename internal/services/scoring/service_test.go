package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// puzzleWithWords builds a puzzle whose history holds the given words, each
// laid out along its own row starting at column 0. Words are given oldest
// first and stored most recent first.
func (s *ServiceSuite) puzzleWithWords(words ...string) *model.Puzzle {
	letters := make([][]rune, model.GridCols)
	for col := range letters {
		letters[col] = []rune("ABCDEF")
	}

	p := &model.Puzzle{ID: "puzzle-1", Mode: model.ModePractice, Board: model.NewBoard(letters)}
	for row, word := range words {
		positions := make([]model.Position, len(word))
		for col := range word {
			positions[col] = model.Position{Col: col, Row: row}
		}
		p.Board.LockCells(positions)
		p.History = append([]model.AcceptedWord{{Text: word, Positions: positions}}, p.History...)
	}
	return p
}

// Stats tests

func (s *ServiceSuite) TestStatsEmptyPuzzle() {
	stats := s.service.Stats(s.puzzleWithWords())

	s.Equal(model.Stats{LettersUsed: 0, WordsCreated: 0, RemainingLetters: 36, Score: 0}, stats)
}

func (s *ServiceSuite) TestStatsSingleWord() {
	stats := s.service.Stats(s.puzzleWithWords("CAT"))

	s.Equal(3, stats.LettersUsed)
	s.Equal(1, stats.WordsCreated)
	s.Equal(33, stats.RemainingLetters)
	s.Equal(2, stats.Score)
}

func (s *ServiceSuite) TestStatsMultipleWords() {
	stats := s.service.Stats(s.puzzleWithWords("CAT", "HORSE", "EMU"))

	s.Equal(11, stats.LettersUsed)
	s.Equal(3, stats.WordsCreated)
	s.Equal(25, stats.RemainingLetters)
	s.Equal(8, stats.Score)
}

func (s *ServiceSuite) TestStatsIgnoresSelectedCells() {
	p := s.puzzleWithWords("CAT")
	_ = p.Board.ToggleSelect(model.Position{Col: 5, Row: 5})

	stats := s.service.Stats(p)
	s.Equal(3, stats.LettersUsed)
}

// Undo tests

func (s *ServiceSuite) TestUndoMostRecent() {
	p := s.puzzleWithWords("CAT", "DOG")

	removed := s.service.Undo(p, 0)

	s.Equal("DOG", removed.Text)
	s.Require().Len(p.History, 1)
	s.Equal("CAT", p.History[0].Text)
	s.Equal(model.CellAvailable, p.Board.Get(model.Position{Col: 0, Row: 1}).State)
	s.Equal(model.CellLocked, p.Board.Get(model.Position{Col: 0, Row: 0}).State)
}

func (s *ServiceSuite) TestUndoOldest() {
	p := s.puzzleWithWords("CAT", "DOG", "EMU")

	removed := s.service.Undo(p, 2)

	s.Equal("CAT", removed.Text)
	s.Equal([]string{"EMU", "DOG"}, []string{p.History[0].Text, p.History[1].Text})
	s.Equal(6, p.Board.CountState(model.CellLocked))
}

func (s *ServiceSuite) TestUndoRestoresScore() {
	p := s.puzzleWithWords("CAT")

	s.service.Undo(p, 0)

	s.Equal(model.Stats{RemainingLetters: 36}, s.service.Stats(p))
}

func (s *ServiceSuite) TestUndoDoesNotAliasRemovedEntry() {
	p := s.puzzleWithWords("CAT", "DOG", "EMU")
	before := p.History

	s.service.Undo(p, 0)

	s.Equal("EMU", before[0].Text)
}

func (s *ServiceSuite) TestUndoOutOfRangePanics() {
	p := s.puzzleWithWords("CAT")

	s.Panics(func() { s.service.Undo(p, 1) })
	s.Panics(func() { s.service.Undo(p, -1) })
}

func (s *ServiceSuite) TestValidUndoIndex() {
	p := s.puzzleWithWords("CAT", "DOG")

	s.True(s.service.ValidUndoIndex(p, 0))
	s.True(s.service.ValidUndoIndex(p, 1))
	s.False(s.service.ValidUndoIndex(p, 2))
	s.False(s.service.ValidUndoIndex(p, -1))
}
