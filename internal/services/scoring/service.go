package scoring

import (
	"fmt"

	"github.com/mcoot/wordgrid/internal/model"
)

// Service derives puzzle statistics and undoes accepted words
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// Stats computes the score summary for a puzzle. Each accepted word costs
// one point, so longer words are worth more.
func (s *Service) Stats(p *model.Puzzle) model.Stats {
	used := p.Board.CountState(model.CellLocked)
	words := len(p.History)

	return model.Stats{
		LettersUsed:      used,
		WordsCreated:     words,
		RemainingLetters: p.Board.TotalCells() - used,
		Score:            used - words,
	}
}

// ValidUndoIndex reports whether index addresses an entry in the history
func (s *Service) ValidUndoIndex(p *model.Puzzle, index int) bool {
	return index >= 0 && index < len(p.History)
}

// Undo removes history[index] (0 is the most recent word) and unlocks its
// cells. The index must be valid; callers check with ValidUndoIndex first.
func (s *Service) Undo(p *model.Puzzle, index int) model.AcceptedWord {
	if !s.ValidUndoIndex(p, index) {
		panic(fmt.Sprintf("scoring: undo index %d out of range [0,%d)", index, len(p.History)))
	}

	removed := p.History[index]
	p.History = append(p.History[:index:index], p.History[index+1:]...)
	p.Board.UnlockCells(removed.Positions)
	return removed
}

// Interface for dependency injection
type ServiceInterface interface {
	Stats(p *model.Puzzle) model.Stats
	ValidUndoIndex(p *model.Puzzle, index int) bool
	Undo(p *model.Puzzle, index int) model.AcceptedWord
}

var _ ServiceInterface = (*Service)(nil)
