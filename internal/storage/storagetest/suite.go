// Package storagetest holds the behaviour every storage backend must share.
// Backend packages embed Suite in their own test suites.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Suite runs the shared storage contract against Store, which the embedding
// suite must set in its SetupTest
type Suite struct {
	suite.Suite
	Store storage.Storage
	Ctx   context.Context
}

// TestGrid returns a 6x6 column-major grid, column c filled with 'A'+c
func TestGrid() [][]rune {
	grid := make([][]rune, model.GridCols)
	for col := range grid {
		grid[col] = make([]rune, model.GridRows)
		for row := range grid[col] {
			grid[col][row] = rune('A' + col)
		}
	}
	return grid
}

func (s *Suite) newPuzzle(id model.PuzzleID) *model.Puzzle {
	board := model.NewBoard(TestGrid())
	_ = board.ToggleSelect(model.Position{Col: 0, Row: 0})
	board.LockCells([]model.Position{{Col: 1, Row: 0}, {Col: 2, Row: 0}})

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Puzzle{
		ID:      id,
		Mode:    model.ModeDaily,
		DateKey: "2024-01-01",
		Board:   board,
		History: []model.AcceptedWord{
			{Text: "BC", Positions: []model.Position{{Col: 1, Row: 0}, {Col: 2, Row: 0}}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Puzzle tests

func (s *Suite) TestSaveAndGetPuzzle() {
	puzzle := s.newPuzzle("puzzle-1")

	err := s.Store.SavePuzzle(s.Ctx, puzzle)
	s.Require().NoError(err)

	retrieved, err := s.Store.GetPuzzle(s.Ctx, "puzzle-1")
	s.Require().NoError(err)
	s.Equal(puzzle.ID, retrieved.ID)
	s.Equal(model.ModeDaily, retrieved.Mode)
	s.Equal("2024-01-01", retrieved.DateKey)
	s.Equal(puzzle.Board.Letters(), retrieved.Board.Letters())
	s.Equal([]model.Position{{Col: 0, Row: 0}}, retrieved.Board.WordBox)
	s.Equal(model.CellSelected, retrieved.Board.Get(model.Position{Col: 0, Row: 0}).State)
	s.Equal(model.CellLocked, retrieved.Board.Get(model.Position{Col: 1, Row: 0}).State)
	s.Require().Len(retrieved.History, 1)
	s.Equal("BC", retrieved.History[0].Text)
	s.True(puzzle.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *Suite) TestGetPuzzleNotFound() {
	_, err := s.Store.GetPuzzle(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPuzzleNotFound)
}

func (s *Suite) TestSavePuzzleOverwrites() {
	puzzle := s.newPuzzle("puzzle-1")
	s.Require().NoError(s.Store.SavePuzzle(s.Ctx, puzzle))

	puzzle.Board.ResetAll()
	puzzle.History = nil
	puzzle.Mode = model.ModePractice
	s.Require().NoError(s.Store.SavePuzzle(s.Ctx, puzzle))

	retrieved, err := s.Store.GetPuzzle(s.Ctx, "puzzle-1")
	s.Require().NoError(err)
	s.Equal(model.ModePractice, retrieved.Mode)
	s.Empty(retrieved.History)
	s.Equal(0, retrieved.Board.CountState(model.CellLocked))
}

func (s *Suite) TestRetrievedPuzzleIsIndependentCopy() {
	puzzle := s.newPuzzle("puzzle-1")
	s.Require().NoError(s.Store.SavePuzzle(s.Ctx, puzzle))

	retrieved, err := s.Store.GetPuzzle(s.Ctx, "puzzle-1")
	s.Require().NoError(err)
	retrieved.Board.ResetAll()

	again, err := s.Store.GetPuzzle(s.Ctx, "puzzle-1")
	s.Require().NoError(err)
	s.Equal(2, again.Board.CountState(model.CellLocked))
}

func (s *Suite) TestDeletePuzzle() {
	s.Require().NoError(s.Store.SavePuzzle(s.Ctx, s.newPuzzle("puzzle-1")))

	err := s.Store.DeletePuzzle(s.Ctx, "puzzle-1")
	s.Require().NoError(err)

	_, err = s.Store.GetPuzzle(s.Ctx, "puzzle-1")
	s.ErrorIs(err, model.ErrPuzzleNotFound)
}

func (s *Suite) TestDeleteMissingPuzzleIsNoop() {
	s.NoError(s.Store.DeletePuzzle(s.Ctx, "nonexistent"))
}

// Dictionary tests

func (s *Suite) TestDictionaryNotLoaded() {
	_, err := s.Store.GetDictionaryWords(s.Ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *Suite) TestSaveAndGetDictionaryWords() {
	words := []string{"CAT", "DOG", "BIRD"}
	s.Require().NoError(s.Store.SaveDictionaryWords(s.Ctx, words))

	retrieved, err := s.Store.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}

func (s *Suite) TestSaveDictionaryWordsReplaces() {
	s.Require().NoError(s.Store.SaveDictionaryWords(s.Ctx, []string{"CAT", "DOG"}))
	s.Require().NoError(s.Store.SaveDictionaryWords(s.Ctx, []string{"EMU"}))

	retrieved, err := s.Store.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]string{"EMU"}, retrieved)
}

func (s *Suite) TestEmptyDictionaryCountsAsSaved() {
	s.Require().NoError(s.Store.SaveDictionaryWords(s.Ctx, []string{}))

	retrieved, err := s.Store.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.Empty(retrieved)
}

func (s *Suite) TestSaveEmptyDictionaryReplaces() {
	s.Require().NoError(s.Store.SaveDictionaryWords(s.Ctx, []string{"CAT"}))
	s.Require().NoError(s.Store.SaveDictionaryWords(s.Ctx, nil))

	retrieved, err := s.Store.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.Empty(retrieved)
}

// Daily grid tests

func (s *Suite) TestSaveAndGetDailyGrid() {
	grid := TestGrid()
	s.Require().NoError(s.Store.SaveDailyGrid(s.Ctx, "2024-01-01", grid))

	retrieved, err := s.Store.GetDailyGrid(s.Ctx, "2024-01-01")
	s.Require().NoError(err)
	s.Equal(grid, retrieved)
}

func (s *Suite) TestDailyGridNotFound() {
	_, err := s.Store.GetDailyGrid(s.Ctx, "1999-12-31")
	s.ErrorIs(err, model.ErrDailyGridNotFound)
}
