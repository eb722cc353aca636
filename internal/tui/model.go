// Package tui is a local terminal front end for a single puzzle. It drives
// the puzzle controller directly and needs no server.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
)

// Config holds what the terminal UI needs to run a puzzle
type Config struct {
	Controller puzzle.ControllerInterface
	// Load runs before the first puzzle is created. Keys other than quit are
	// ignored until it returns. A failure is shown but does not stop play.
	Load   func(ctx context.Context) error
	Clock  clock.Clock
	Mode   model.Mode
	Logger *slog.Logger
}

// Model is the bubbletea model for one puzzle session
type Model struct {
	keys keyMap
	help help.Model

	ctx        context.Context
	controller puzzle.ControllerInterface
	load       func(ctx context.Context) error
	clock      clock.Clock
	logger     *slog.Logger
	mode       model.Mode

	changes chan changedMsg

	loaded  bool
	puzzle  *model.Puzzle
	stats   model.Stats
	cursor  model.Position
	message string
	isError bool
}

// New creates the model and subscribes it to puzzle changes
func New(ctx context.Context, cfg Config) Model {
	mode := cfg.Mode
	if mode == "" {
		mode = model.ModeDaily
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := Model{
		keys:       keys,
		help:       help.New(),
		ctx:        ctx,
		controller: cfg.Controller,
		load:       cfg.Load,
		clock:      clk,
		logger:     logger.With(slog.String("component", "tui")),
		mode:       mode,
		changes:    make(chan changedMsg, 16),
	}

	cfg.Controller.AddObserver(puzzle.ObserverFunc(m.puzzleChanged))
	return m
}

// puzzleChanged forwards controller notifications to the program. It runs
// under the controller's lock so it never blocks.
func (m Model) puzzleChanged(_ context.Context, p *model.Puzzle, event model.Event) {
	select {
	case m.changes <- changedMsg{puzzle: p, event: event}:
	default:
		m.logger.Warn("tui change dropped", slog.String("event", string(event.Type)))
	}
}

type loadedMsg struct {
	puzzle  *model.Puzzle
	loadErr error
}

type changedMsg struct {
	puzzle *model.Puzzle
	event  model.Event
}

type resultMsg struct {
	message string
	isError bool
}

type errMsg struct{ err error }

// For messages that contain errors it's often handy to also implement the
// error interface on the message.
func (e errMsg) Error() string { return e.err.Error() }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		var loadErr error
		if m.load != nil {
			loadErr = m.load(m.ctx)
		}
		p, err := m.controller.Create(m.ctx, m.mode)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{puzzle: p, loadErr: loadErr}
	}
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		return <-m.changes
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if !m.loaded {
			return m, nil
		}
		return m.handleKey(msg)

	case loadedMsg:
		m.loaded = true
		m.setPuzzle(msg.puzzle)
		if msg.loadErr != nil {
			m.logger.Warn("load failed", slog.String("error", msg.loadErr.Error()))
			m.setMessage("Dictionary unavailable: "+msg.loadErr.Error(), true)
		}

	case changedMsg:
		if m.puzzle != nil && msg.puzzle != nil && msg.puzzle.ID == m.puzzle.ID {
			m.setPuzzle(msg.puzzle)
		}
		return m, m.waitForChange()

	case resultMsg:
		m.setMessage(msg.message, msg.isError)

	case errMsg:
		m.setMessage(errorText(msg.err), true)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = clamp(m.cursor.Row-1, m.rows())
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = clamp(m.cursor.Row+1, m.rows())
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = clamp(m.cursor.Col-1, m.cols())
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = clamp(m.cursor.Col+1, m.cols())
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCmd(m.cursor)
	case key.Matches(msg, m.keys.Commit):
		return m, m.commitCmd()
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearCmd()
	case key.Matches(msg, m.keys.Reset):
		return m, m.resetCmd()
	case key.Matches(msg, m.keys.Mode):
		return m, m.switchModeCmd()
	case key.Matches(msg, m.keys.Undo):
		n := int(msg.String()[0] - '0')
		if n > len(m.puzzle.History) {
			m.setMessage(fmt.Sprintf("There is no word %d to undo", n), true)
			return m, nil
		}
		return m, m.undoCmd(n - 1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) toggleCmd(pos model.Position) tea.Cmd {
	id := m.puzzle.ID
	return func() tea.Msg {
		if _, err := m.controller.Toggle(m.ctx, id, pos); err != nil {
			return errMsg{err}
		}
		return resultMsg{}
	}
}

func (m Model) commitCmd() tea.Cmd {
	id := m.puzzle.ID
	return func() tea.Msg {
		_, result, err := m.controller.Commit(m.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		switch result.Outcome {
		case model.CommitAccepted:
			return resultMsg{message: result.Word + " accepted"}
		case model.CommitRejected:
			return resultMsg{message: result.Word + " is not in the dictionary", isError: true}
		default:
			return resultMsg{}
		}
	}
}

func (m Model) clearCmd() tea.Cmd {
	id := m.puzzle.ID
	return func() tea.Msg {
		if _, err := m.controller.ClearSelection(m.ctx, id); err != nil {
			return errMsg{err}
		}
		return resultMsg{}
	}
}

func (m Model) resetCmd() tea.Cmd {
	id := m.puzzle.ID
	return func() tea.Msg {
		if _, err := m.controller.Reset(m.ctx, id); err != nil {
			return errMsg{err}
		}
		return resultMsg{message: "Puzzle reset"}
	}
}

func (m Model) switchModeCmd() tea.Cmd {
	id := m.puzzle.ID
	next := model.ModePractice
	if m.puzzle.Mode == model.ModePractice {
		next = model.ModeDaily
	}
	return func() tea.Msg {
		if _, err := m.controller.SwitchMode(m.ctx, id, next); err != nil {
			return errMsg{err}
		}
		return resultMsg{message: "Switched to " + string(next)}
	}
}

func (m Model) undoCmd(index int) tea.Cmd {
	id := m.puzzle.ID
	word := m.puzzle.History[index].Text
	return func() tea.Msg {
		if _, err := m.controller.Undo(m.ctx, id, index); err != nil {
			return errMsg{err}
		}
		return resultMsg{message: word + " removed"}
	}
}

func (m *Model) setPuzzle(p *model.Puzzle) {
	m.puzzle = p
	m.stats = m.controller.Stats(p)
	m.mode = p.Mode
	m.cursor.Col = clamp(m.cursor.Col, p.Board.Cols)
	m.cursor.Row = clamp(m.cursor.Row, p.Board.Rows)
}

func (m *Model) setMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

func (m Model) cols() int {
	if m.puzzle == nil {
		return 0
	}
	return m.puzzle.Board.Cols
}

func (m Model) rows() int {
	if m.puzzle == nil {
		return 0
	}
	return m.puzzle.Board.Rows
}

// clamp keeps v within [0, n)
func clamp(v, n int) int {
	if v < 0 || n <= 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func errorText(err error) string {
	switch {
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return "The dictionary is not loaded"
	case errors.Is(err, model.ErrUndoOutOfRange):
		return "That word is no longer in the history"
	default:
		return err.Error()
	}
}
