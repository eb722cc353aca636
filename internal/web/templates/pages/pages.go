// Package pages holds the full web pages
package pages

import (
	"net/url"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Today string // DD,MM,YY
}

// PuzzleData holds data for the puzzle page
type PuzzleData struct {
	layout.PageData
	Puzzle *model.Puzzle
	Stats  model.Stats
}

func eventsPath(id model.PuzzleID) string {
	return "/puzzle/" + url.PathEscape(string(id)) + "/events"
}
