package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/web/templates/layout"
)

func testPuzzle() *model.Puzzle {
	letters := make([][]rune, model.GridCols)
	for col := range letters {
		letters[col] = []rune(strings.Repeat("X", model.GridRows))
	}
	letters[0][0], letters[1][0], letters[2][0] = 'C', 'A', 'T'

	return &model.Puzzle{
		ID:      "PUZZLE000001",
		Mode:    model.ModeDaily,
		DateKey: "2024-03-15",
		Board:   model.NewBoard(letters),
		History: []model.AcceptedWord{},
	}
}

func renderDoc(t *testing.T, c templ.Component) (*goquery.Document, string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(t.Context(), &buf))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc, buf.String()
}

func TestPuzzlePanelStructure(t *testing.T) {
	p := testPuzzle()
	require.NoError(t, p.Board.ToggleSelect(model.Position{Col: 0, Row: 0}))

	doc, _ := renderDoc(t, PuzzlePanel(p, model.Stats{RemainingLetters: 36}, nil))

	panel := doc.Find("#" + PanelID)
	require.Equal(t, 1, panel.Length())
	id, _ := panel.Attr("data-puzzle-id")
	assert.Equal(t, "PUZZLE000001", id)

	assert.Equal(t, 36, doc.Find("button.cell").Length())
	first := doc.Find(`button.cell[data-col="0"][data-row="0"]`)
	assert.Equal(t, "C", first.Text())
	assert.True(t, first.HasClass("cell-selected"))
	action, _ := first.Closest("form").Attr("action")
	assert.Equal(t, "/puzzle/PUZZLE000001/toggle", action)

	assert.Equal(t, "C", doc.Find("#word-box").Text())
	_, disabled := doc.Find("#commit-button").Attr("disabled")
	assert.False(t, disabled)
	assert.Equal(t, "Daily challenge 15,03,24", doc.Find("#daily-label").Text())
	assert.Equal(t, "36", doc.Find("#remaining-letters").Text())
	assert.Equal(t, 1, doc.Find("#history-empty").Length())
}

func TestLockedCellsAreDisabled(t *testing.T) {
	p := testPuzzle()
	positions := []model.Position{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}}
	p.Board.LockCells(positions)
	p.History = []model.AcceptedWord{{Text: "CAT", Positions: positions}}

	doc, _ := renderDoc(t, PuzzleContent(p, model.Stats{}, nil))

	_, disabled := doc.Find(`button.cell[data-col="1"][data-row="0"]`).Attr("disabled")
	assert.True(t, disabled)
	_, disabled = doc.Find(`button.cell[data-col="3"][data-row="0"]`).Attr("disabled")
	assert.False(t, disabled)
	_, disabled = doc.Find("#commit-button").Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, "CAT (3)", doc.Find("#history li .history-word").Text())
	index, _ := doc.Find(`#history input[name="index"]`).Attr("value")
	assert.Equal(t, "0", index)
}

func TestPracticeLabel(t *testing.T) {
	p := testPuzzle()
	p.Mode = model.ModePractice

	doc, _ := renderDoc(t, PuzzleContent(p, model.Stats{}, nil))

	assert.Equal(t, "Practice", doc.Find("#mode-label").Text())
	assert.Equal(t, 0, doc.Find("#daily-label").Length())
}

func TestRenderingEscapesInterpolatedValues(t *testing.T) {
	p := testPuzzle()
	p.ID = `"><script>alert(1)</script>`
	flash := &layout.FlashMessage{Type: "error", Message: "<b>bold</b>"}

	doc, html := renderDoc(t, PuzzlePanel(p, model.Stats{}, flash))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<b>bold</b>")
	assert.Equal(t, "<b>bold</b>", doc.Find(".flash-error").Text())
	id, _ := doc.Find("#" + PanelID).Attr("data-puzzle-id")
	assert.Equal(t, string(p.ID), id)
}

func TestDailyLabel(t *testing.T) {
	assert.Equal(t, "15,03,24", DailyLabel("2024-03-15"))
	assert.Equal(t, "not-a-date", DailyLabel("not-a-date"))
}
