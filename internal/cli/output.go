package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/wordgrid/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout, errW: os.Stderr}
}

// NewOutputTo creates an Output writing to the given writers
func NewOutputTo(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Puzzle:
		o.printPuzzle(v)
	case response.CommitResponse:
		o.printCommit(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printPuzzle(p response.Puzzle) {
	o.printf("Puzzle: %s\n", p.ID)
	if p.Mode == "daily" {
		o.printf("Mode: %s (%s)\n", p.Mode, p.DateKey)
	} else {
		o.printf("Mode: %s\n", p.Mode)
	}
	o.printf("\n")
	o.printBoard(p.Cells)

	o.printf("\nWord: %s\n", p.WordBox.Text)

	o.printf("\nLetters used: %d  Words: %d  Remaining: %d  Score: %d\n",
		p.Stats.LettersUsed, p.Stats.WordsCreated, p.Stats.RemainingLetters, p.Stats.Score)

	if len(p.History) > 0 {
		o.printf("\nHistory:\n")
		for i, h := range p.History {
			o.printf("  %d. %s (%d)\n", i+1, h.Word, h.Length)
		}
	}
}

// printBoard prints a column-major grid as rows. Selected cells are
// bracketed and locked cells are parenthesised.
func (o *Output) printBoard(cells [][]response.Cell) {
	if len(cells) == 0 {
		return
	}
	cols := len(cells)
	rows := len(cells[0])

	o.printf("    ")
	for col := 0; col < cols; col++ {
		o.printf(" %d ", col)
	}
	o.printf("\n")

	border := "   +" + strings.Repeat("---", cols) + "+\n"
	o.printf("%s", border)

	for row := 0; row < rows; row++ {
		o.printf(" %d |", row)
		for col := 0; col < cols; col++ {
			o.printf("%s", formatCell(cells[col][row]))
		}
		o.printf("|\n")
	}

	o.printf("%s", border)
}

func formatCell(c response.Cell) string {
	switch c.State {
	case "selected":
		return "[" + c.Letter + "]"
	case "locked":
		return "(" + c.Letter + ")"
	default:
		return " " + c.Letter + " "
	}
}

func (o *Output) printCommit(c response.CommitResponse) {
	switch c.Outcome {
	case "accepted":
		o.printf("%s accepted\n\n", c.Word)
	case "rejected":
		o.printf("%s is not in the dictionary\n\n", c.Word)
	default:
		o.printf("Nothing to commit\n\n")
	}
	o.printPuzzle(c.Puzzle)
}

func (o *Output) printHealth(h response.Health) {
	o.printf("Status: %s\n", h.Status)
	if h.DictionaryLoaded {
		o.printf("Dictionary: loaded (%d words)\n", h.DictionaryWords)
	} else {
		o.printf("Dictionary: not loaded\n")
	}
}
