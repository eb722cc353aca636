package memory

import (
	"context"
	"sync"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	puzzles         map[model.PuzzleID]*model.Puzzle
	dailyGrids      map[string][][]rune
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		puzzles:    make(map[model.PuzzleID]*model.Puzzle),
		dailyGrids: make(map[string][][]rune),
	}
}

var _ storage.Storage = (*Storage)(nil)

// Puzzle operations

func (s *Storage) SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puzzles[puzzle.ID] = storage.ClonePuzzle(puzzle)
	return nil
}

func (s *Storage) GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	puzzle, ok := s.puzzles[id]
	if !ok {
		return nil, model.ErrPuzzleNotFound
	}
	return storage.ClonePuzzle(puzzle), nil
}

func (s *Storage) DeletePuzzle(ctx context.Context, id model.PuzzleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.puzzles, id)
	return nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}

// Daily grid operations

func (s *Storage) GetDailyGrid(ctx context.Context, dateKey string) ([][]rune, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grid, ok := s.dailyGrids[dateKey]
	if !ok {
		return nil, model.ErrDailyGridNotFound
	}
	return storage.CloneGrid(grid), nil
}

func (s *Storage) SaveDailyGrid(ctx context.Context, dateKey string, grid [][]rune) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyGrids[dateKey] = storage.CloneGrid(grid)
	return nil
}
