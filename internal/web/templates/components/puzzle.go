// Package components renders the pieces of the puzzle page. Each component
// is self-contained so SSE pushes can re-render it on its own.
package components

import (
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/model"
)

// PanelID is the element id SSE updates swap into
const PanelID = "puzzle-panel"

// panelTarget is the htmx target selector for PanelID
const panelTarget = "#" + PanelID

func actionPath(id model.PuzzleID, action string) string {
	return "/puzzle/" + url.PathEscape(string(id)) + "/" + action
}

func actionURL(id model.PuzzleID, action string) templ.SafeURL {
	return templ.URL(actionPath(id, action))
}

// DailyLabel formats a date key as DD,MM,YY
func DailyLabel(dateKey string) string {
	t, err := time.Parse(clock.DateKeyLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return clock.DisplayDate(t)
}

func cellClass(cell model.Cell) string {
	return "cell cell-" + string(cell.State)
}

var modes = []model.Mode{model.ModeDaily, model.ModePractice}

func modeLabel(mode model.Mode) string {
	if mode == model.ModePractice {
		return "Practice"
	}
	return "Daily challenge"
}

type statItem struct {
	id    string
	label string
	value int
}

func statItems(stats model.Stats) []statItem {
	return []statItem{
		{"letters-used", "Letters used", stats.LettersUsed},
		{"words-created", "Words created", stats.WordsCreated},
		{"remaining-letters", "Remaining letters", stats.RemainingLetters},
		{"total-score", "Score", stats.Score},
	}
}
