package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordgrid/internal/factory"
	"github.com/mcoot/wordgrid/internal/model"
)

func newTestModel(t *testing.T, load func(ctx context.Context) error) (Model, *factory.TestApp) {
	t.Helper()

	app := factory.NewTestApp()
	require.NoError(t, app.SeedDailyGrid(t.Context()))
	if load == nil {
		load = func(ctx context.Context) error { return app.LoadTestDictionary() }
	}

	m := New(t.Context(), Config{
		Controller: app.PuzzleController,
		Load:       load,
		Clock:      app.MockClock,
	})
	return m, app
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	return update(m, m.loadCmd()())
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key, runs any command it returns and applies the change
// notifications the controller queued
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()

	next, cmd := m.Update(k)
	m = next.(Model)
	if cmd != nil {
		m = update(m, cmd())
	}
	for len(m.changes) > 0 {
		m = update(m, <-m.changes)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	right = tea.KeyMsg{Type: tea.KeyRight}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// spellCat selects C, A, T across the top row of the test grid
func spellCat(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, space)
	m = press(t, m, right)
	m = press(t, m, space)
	m = press(t, m, right)
	return press(t, m, space)
}

func TestInputIgnoredUntilLoaded(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, cmd := m.Update(space)
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).loaded)
	assert.Nil(t, next.(Model).puzzle)
	assert.Contains(t, next.View(), "Loading")
}

func TestQuitBeforeLoad(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestLoadCreatesDailyPuzzle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = loaded(t, m)

	require.True(t, m.loaded)
	require.NotNil(t, m.puzzle)
	assert.Equal(t, model.ModeDaily, m.puzzle.Mode)
	assert.Equal(t, 'C', m.puzzle.Board.Get(model.Position{Col: 0, Row: 0}).Letter)
	assert.Contains(t, m.View(), "Daily 15,03,24")
}

func TestLoadFailureStillPlayable(t *testing.T) {
	m, _ := newTestModel(t, func(ctx context.Context) error {
		return errors.New("dictionary source unreachable")
	})
	m = loaded(t, m)

	require.True(t, m.loaded)
	assert.True(t, m.isError)
	assert.Contains(t, m.message, "dictionary source unreachable")

	m = press(t, m, space)
	assert.Equal(t, "C", m.puzzle.Board.Word())

	m = press(t, m, enter)
	assert.True(t, m.isError)
	assert.Equal(t, "The dictionary is not loaded", m.message)
}

func TestCursorStaysOnBoard(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))

	m = press(t, m, left)
	assert.Equal(t, model.Position{Col: 0, Row: 0}, m.cursor)

	for i := 0; i < 10; i++ {
		m = press(t, m, right)
		m = press(t, m, down)
	}
	assert.Equal(t, model.Position{Col: 5, Row: 5}, m.cursor)
}

func TestCommitAcceptedWord(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))

	m = spellCat(t, m)
	assert.Equal(t, "CAT", m.puzzle.Board.Word())

	m = press(t, m, enter)
	assert.False(t, m.isError)
	assert.Equal(t, "CAT accepted", m.message)
	require.Len(t, m.puzzle.History, 1)
	assert.Equal(t, 1, m.stats.WordsCreated)
	assert.Equal(t, 3, m.stats.LettersUsed)
	assert.Equal(t, model.CellLocked, m.puzzle.Board.Get(model.Position{Col: 1, Row: 0}).State)
	assert.Contains(t, m.View(), "CAT (3)")
}

func TestCommitRejectedWord(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))

	m = press(t, m, down)
	m = press(t, m, space)
	m = press(t, m, down)
	m = press(t, m, space)
	m = press(t, m, enter)

	assert.True(t, m.isError)
	assert.Equal(t, "XX is not in the dictionary", m.message)
	assert.Empty(t, m.puzzle.History)
	assert.Empty(t, m.puzzle.Board.WordBox)
}

func TestClearSelection(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))

	m = press(t, m, space)
	m = press(t, m, runes("c"))

	assert.Empty(t, m.puzzle.Board.WordBox)
	assert.Equal(t, 0, m.puzzle.Board.CountState(model.CellSelected))
}

func TestUndoByNumber(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))
	m = spellCat(t, m)
	m = press(t, m, enter)
	require.Len(t, m.puzzle.History, 1)

	m = press(t, m, runes("2"))
	assert.True(t, m.isError)
	assert.Equal(t, "There is no word 2 to undo", m.message)
	assert.Len(t, m.puzzle.History, 1)

	m = press(t, m, runes("1"))
	assert.Equal(t, "CAT removed", m.message)
	assert.Empty(t, m.puzzle.History)
	assert.Equal(t, 0, m.puzzle.Board.CountState(model.CellLocked))
}

func TestResetPuzzle(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))
	m = spellCat(t, m)
	m = press(t, m, enter)

	m = press(t, m, runes("r"))
	assert.Equal(t, "Puzzle reset", m.message)
	assert.Empty(t, m.puzzle.History)
	assert.Equal(t, 0, m.stats.Score)
}

func TestSwitchMode(t *testing.T) {
	m := loaded(t, must(newTestModel(t, nil)))
	m = spellCat(t, m)
	m = press(t, m, enter)

	m = press(t, m, runes("m"))
	assert.Equal(t, model.ModePractice, m.puzzle.Mode)
	assert.Empty(t, m.puzzle.History)
	assert.Contains(t, m.View(), "Practice")
	assert.NotContains(t, m.View(), "15,03,24")

	m = press(t, m, runes("m"))
	assert.Equal(t, model.ModeDaily, m.puzzle.Mode)
	assert.Equal(t, 'C', m.puzzle.Board.Get(model.Position{Col: 0, Row: 0}).Letter)
}

func TestIgnoresOtherPuzzles(t *testing.T) {
	m, app := newTestModel(t, nil)
	app.MockRandom.QueueString("PUZZLE000001", "PUZZLE000002")
	m = loaded(t, m)
	id := m.puzzle.ID
	require.Equal(t, model.PuzzleID("PUZZLE000001"), id)

	other, err := app.PuzzleController.Create(t.Context(), model.ModePractice)
	require.NoError(t, err)
	_, err = app.PuzzleController.Toggle(t.Context(), other.ID, model.Position{Col: 0, Row: 0})
	require.NoError(t, err)

	for len(m.changes) > 0 {
		m = update(m, <-m.changes)
	}
	assert.Equal(t, id, m.puzzle.ID)
	assert.Empty(t, m.puzzle.Board.WordBox)
}

func must(m Model, _ *factory.TestApp) Model {
	return m
}
