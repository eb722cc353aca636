package board

import (
	"log/slog"

	"github.com/mcoot/wordgrid/internal/model"
)

// Service builds and validates puzzle boards
type Service struct {
	logger *slog.Logger
}

// New creates a new BoardService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "board")),
	}
}

// NewBoard validates a column-major letter grid and initializes a board with
// every cell available. Lower-case letters are upper-cased.
func (s *Service) NewBoard(letters [][]rune) (*model.Board, error) {
	if err := ValidateGrid(letters); err != nil {
		s.logger.Debug("rejected grid", slog.String("error", err.Error()))
		return nil, err
	}

	normalized := make([][]rune, len(letters))
	for col := range letters {
		normalized[col] = make([]rune, len(letters[col]))
		for row, letter := range letters[col] {
			normalized[col][row] = toUpperASCII(letter)
		}
	}

	return model.NewBoard(normalized), nil
}

// ValidateGrid checks the grid is 6x6 and holds only A-Z letters
func ValidateGrid(letters [][]rune) error {
	if len(letters) != model.GridCols {
		return model.ErrInvalidGrid
	}
	for _, column := range letters {
		if len(column) != model.GridRows {
			return model.ErrInvalidGrid
		}
		for _, letter := range column {
			if err := ValidateLetter(letter); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateLetter checks if a letter is an ASCII a-z or A-Z character
func ValidateLetter(letter rune) error {
	upper := toUpperASCII(letter)
	if upper < 'A' || upper > 'Z' {
		return model.ErrInvalidLetter
	}
	return nil
}

// toUpperASCII upper-cases a-z and leaves every other rune alone, so
// non-ASCII letters like 'ı' never fold into A-Z
func toUpperASCII(letter rune) rune {
	if 'a' <= letter && letter <= 'z' {
		return letter - 'a' + 'A'
	}
	return letter
}

// Interface for dependency injection
type ServiceInterface interface {
	NewBoard(letters [][]rune) (*model.Board, error)
}

var _ ServiceInterface = (*Service)(nil)
