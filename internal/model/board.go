package model

// Grid dimensions are fixed for every puzzle
const (
	GridCols = 6
	GridRows = 6
)

// Position identifies a cell on the board
type Position struct {
	Col int `json:"col"` // 0-indexed from left
	Row int `json:"row"` // 0-indexed from top
}

// CellState is the selection state of a single cell
type CellState string

const (
	CellAvailable CellState = "available"
	CellSelected  CellState = "selected"
	CellLocked    CellState = "locked"
)

// Cell is one letter tile on the board
type Cell struct {
	Letter rune      `json:"letter"`
	State  CellState `json:"state"`
}

// Board is the letter grid for one puzzle plus the in-progress word box
type Board struct {
	Cols    int
	Rows    int
	Cells   [][]Cell   // Column-major: Cells[col][row]
	WordBox []Position // Selected cells in click order
}

// NewBoard builds a board from column-major letters with every cell available.
// Callers are expected to have validated the dimensions.
func NewBoard(letters [][]rune) *Board {
	cols := len(letters)
	rows := 0
	if cols > 0 {
		rows = len(letters[0])
	}

	cells := make([][]Cell, cols)
	for col := range cells {
		cells[col] = make([]Cell, rows)
		for row := range cells[col] {
			cells[col][row] = Cell{Letter: letters[col][row], State: CellAvailable}
		}
	}

	return &Board{
		Cols:    cols,
		Rows:    rows,
		Cells:   cells,
		WordBox: []Position{},
	}
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Col >= 0 && pos.Col < b.Cols && pos.Row >= 0 && pos.Row < b.Rows
}

// Get returns the cell at the given position, or the zero Cell if out of bounds
func (b *Board) Get(pos Position) Cell {
	if !b.IsValidPosition(pos) {
		return Cell{}
	}
	return b.Cells[pos.Col][pos.Row]
}

// ToggleSelect flips a cell between available and selected, keeping the
// word box in click order. Locked cells are left alone.
func (b *Board) ToggleSelect(pos Position) error {
	if !b.IsValidPosition(pos) {
		return ErrInvalidPosition
	}

	cell := &b.Cells[pos.Col][pos.Row]
	switch cell.State {
	case CellAvailable:
		cell.State = CellSelected
		b.WordBox = append(b.WordBox, pos)
	case CellSelected:
		cell.State = CellAvailable
		b.removeFromWordBox(pos)
	}
	return nil
}

func (b *Board) removeFromWordBox(pos Position) {
	for i, p := range b.WordBox {
		if p == pos {
			b.WordBox = append(b.WordBox[:i], b.WordBox[i+1:]...)
			return
		}
	}
}

// LockCells marks the given cells as locked
func (b *Board) LockCells(positions []Position) {
	for _, pos := range positions {
		if b.IsValidPosition(pos) {
			b.Cells[pos.Col][pos.Row].State = CellLocked
		}
	}
}

// UnlockCells returns the given cells to available
func (b *Board) UnlockCells(positions []Position) {
	for _, pos := range positions {
		if b.IsValidPosition(pos) {
			b.Cells[pos.Col][pos.Row].State = CellAvailable
		}
	}
}

// ClearSelection deselects every selected cell and empties the word box.
// Locked cells are untouched.
func (b *Board) ClearSelection() {
	for _, pos := range b.WordBox {
		if b.Cells[pos.Col][pos.Row].State == CellSelected {
			b.Cells[pos.Col][pos.Row].State = CellAvailable
		}
	}
	b.WordBox = []Position{}
}

// ResetAll makes every cell available and empties the word box
func (b *Board) ResetAll() {
	for col := range b.Cells {
		for row := range b.Cells[col] {
			b.Cells[col][row].State = CellAvailable
		}
	}
	b.WordBox = []Position{}
}

// Word returns the letters of the word box in click order
func (b *Board) Word() string {
	letters := make([]rune, 0, len(b.WordBox))
	for _, pos := range b.WordBox {
		letters = append(letters, b.Cells[pos.Col][pos.Row].Letter)
	}
	return string(letters)
}

// CountState returns the number of cells in the given state
func (b *Board) CountState(state CellState) int {
	count := 0
	for col := range b.Cells {
		for row := range b.Cells[col] {
			if b.Cells[col][row].State == state {
				count++
			}
		}
	}
	return count
}

// TotalCells returns the number of cells on the board
func (b *Board) TotalCells() int {
	return b.Cols * b.Rows
}

// Letters returns a column-major copy of the board's letters
func (b *Board) Letters() [][]rune {
	letters := make([][]rune, b.Cols)
	for col := range b.Cells {
		letters[col] = make([]rune, b.Rows)
		for row := range b.Cells[col] {
			letters[col][row] = b.Cells[col][row].Letter
		}
	}
	return letters
}

// SelectionState reports whether a word is being built
func (b *Board) SelectionState() SelectionState {
	if len(b.WordBox) == 0 {
		return SelectionIdle
	}
	return SelectionBuilding
}
