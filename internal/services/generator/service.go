package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/wordgrid/internal/dependencies/random"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/board"
	"github.com/mcoot/wordgrid/internal/source"
)

// FrequencyTable maps a letter to its relative weight
type FrequencyTable map[rune]int

// DefaultFrequencies is the letter distribution used for practice grids
var DefaultFrequencies = FrequencyTable{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 3, 'I': 9,
	'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2, 'Q': 1, 'R': 6,
	'S': 6, 'T': 9, 'U': 4, 'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
}

// Service produces column-major letter grids
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new GeneratorService
func New(rng random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rng,
		logger: logger.With(slog.String("component", "generator")),
	}
}

// UniformRandom fills every cell with a letter drawn uniformly from A-Z
func (s *Service) UniformRandom(cols, rows int) [][]rune {
	return Uniform(s.random, cols, rows)
}

// FrequencyWeighted fills every cell from a pool in which each letter
// appears as many times as its weight
func (s *Service) FrequencyWeighted(cols, rows int, table FrequencyTable) [][]rune {
	return Weighted(s.random, cols, rows, table)
}

// FromDailySource fetches the grid for dateKey. Any failure, including a
// grid of the wrong shape, is reported as model.ErrResourceUnavailable.
func (s *Service) FromDailySource(ctx context.Context, dateKey string, src source.DailyGridSource) ([][]rune, error) {
	grid, err := src.Grid(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf("daily grid %s: %w", dateKey, asUnavailable(err))
	}
	if err := board.ValidateGrid(grid); err != nil {
		return nil, fmt.Errorf("daily grid %s: %w: %v", dateKey, model.ErrResourceUnavailable, err)
	}

	s.logger.Debug("daily grid loaded", slog.String("date", dateKey))
	return grid, nil
}

// DailyFallback is the uniform grid shown when the daily source has nothing
// for dateKey. Every caller gets the same grid for the same date.
func (s *Service) DailyFallback(dateKey string) [][]rune {
	return Uniform(DailyRandom(dateKey), model.GridCols, model.GridRows)
}

// DailyRandom returns a Random seeded from the BLAKE2b-256 hash of dateKey
func DailyRandom(dateKey string) random.Random {
	return random.NewSeeded(blake2b.Sum256([]byte(dateKey)))
}

// Uniform fills a cols x rows grid with letters drawn uniformly from A-Z
func Uniform(rng random.Random, cols, rows int) [][]rune {
	return fill(cols, rows, func() rune {
		return rune('A' + rng.Intn(26))
	})
}

// Weighted fills a cols x rows grid from the pool described by table
func Weighted(rng random.Random, cols, rows int, table FrequencyTable) [][]rune {
	pool := Pool(table)
	if len(pool) == 0 {
		return Uniform(rng, cols, rows)
	}
	return fill(cols, rows, func() rune {
		return pool[rng.Intn(len(pool))]
	})
}

// Pool expands a frequency table into its letter pool, letters in
// alphabetical order
func Pool(table FrequencyTable) []rune {
	letters := lo.Keys(table)
	slices.Sort(letters)

	var pool []rune
	for _, letter := range letters {
		for range table[letter] {
			pool = append(pool, letter)
		}
	}
	return pool
}

func fill(cols, rows int, next func() rune) [][]rune {
	grid := make([][]rune, cols)
	for col := range grid {
		grid[col] = make([]rune, rows)
		for row := range grid[col] {
			grid[col][row] = next()
		}
	}
	return grid
}

func asUnavailable(err error) error {
	if errors.Is(err, model.ErrResourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
}

// Interface for dependency injection
type ServiceInterface interface {
	UniformRandom(cols, rows int) [][]rune
	FrequencyWeighted(cols, rows int, table FrequencyTable) [][]rune
	FromDailySource(ctx context.Context, dateKey string, src source.DailyGridSource) ([][]rune, error)
	DailyFallback(dateKey string) [][]rune
}

var _ ServiceInterface = (*Service)(nil)
