package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/model"
)

func (m Model) View() string {
	if !m.loaded {
		if m.message != "" {
			return errorStyle.Render(m.message) + "\n"
		}
		return "Loading dictionary...\n"
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render(m.boardView()),
		panelStyle.Render(m.sideView()),
	))
	b.WriteString("\n\n")
	b.WriteString(m.messageView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) titleView() string {
	title := titleStyle.Render("wordgrid")
	if m.puzzle.Mode == model.ModeDaily {
		return title + "  " + labelStyle.Render("Daily "+clock.DisplayDate(m.clock.Now()))
	}
	return title + "  " + labelStyle.Render("Practice")
}

func (m Model) boardView() string {
	board := m.puzzle.Board
	rows := make([]string, board.Rows)
	for row := 0; row < board.Rows; row++ {
		cells := make([]string, board.Cols)
		for col := 0; col < board.Cols; col++ {
			pos := model.Position{Col: col, Row: row}
			cells[col] = m.cellView(pos, board.Get(pos))
		}
		rows[row] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cellView(pos model.Position, cell model.Cell) string {
	style := availableCell
	switch cell.State {
	case model.CellSelected:
		style = selectedCell
	case model.CellLocked:
		style = lockedCell
	}
	if pos == m.cursor {
		style = style.Underline(true).Reverse(true)
	}
	return style.Render(string(cell.Letter))
}

func (m Model) sideView() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Word: "))
	b.WriteString(m.puzzle.Board.Word())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Letters used:"), m.stats.LettersUsed)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Words created:"), m.stats.WordsCreated)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Remaining:"), m.stats.RemainingLetters)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Score:"), m.stats.Score)

	if len(m.puzzle.History) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Words:"))
		b.WriteString("\n")
		for i, w := range m.puzzle.History {
			fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, w.Text, len(w.Positions))
		}
	}

	return b.String()
}

func (m Model) messageView() string {
	if m.message == "" {
		return ""
	}
	if m.isError {
		return errorStyle.Render(m.message)
	}
	return successStyle.Render(m.message)
}
