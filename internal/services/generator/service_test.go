package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/dependencies/mocks"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/testutil"
)

// stubGrids serves fixed grids keyed by date
type stubGrids struct {
	grids map[string][][]rune
	err   error
}

func (s stubGrids) Grid(ctx context.Context, dateKey string) ([][]rune, error) {
	if s.err != nil {
		return nil, s.err
	}
	grid, ok := s.grids[dateKey]
	if !ok {
		return nil, errors.New("not found")
	}
	return grid, nil
}

func columns(cols ...string) [][]rune {
	grid := make([][]rune, len(cols))
	for i, c := range cols {
		grid[i] = []rune(c)
	}
	return grid
}

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) assertLetters(grid [][]rune) {
	for _, col := range grid {
		for _, letter := range col {
			s.GreaterOrEqual(letter, 'A')
			s.LessOrEqual(letter, 'Z')
		}
	}
}

// UniformRandom tests

func (s *ServiceSuite) TestUniformRandomShape() {
	grid := s.service.UniformRandom(6, 6)

	s.Require().Len(grid, 6)
	for _, col := range grid {
		s.Len(col, 6)
	}
	s.assertLetters(grid)
}

func (s *ServiceSuite) TestUniformRandomFillsColumnMajor() {
	s.random.QueueLetters("CATDOG")

	grid := s.service.UniformRandom(2, 3)

	s.Equal(columns("CAT", "DOG"), grid)
}

// FrequencyWeighted tests

func (s *ServiceSuite) TestPoolExpandsTable() {
	pool := Pool(FrequencyTable{'B': 1, 'A': 2})
	s.Equal([]rune("AAB"), pool)
}

func (s *ServiceSuite) TestDefaultPoolSize() {
	s.Len(Pool(DefaultFrequencies), 104)
	s.Len(DefaultFrequencies, 26)
}

func (s *ServiceSuite) TestFrequencyWeightedDrawsFromPool() {
	// Pool is AAB: indexes 0,1 are A and 2 is B
	s.random.QueueIntn(2, 0, 1, 2)

	grid := s.service.FrequencyWeighted(2, 2, FrequencyTable{'A': 2, 'B': 1})

	s.Equal(columns("BA", "AB"), grid)
}

func (s *ServiceSuite) TestFrequencyWeightedSingleLetter() {
	grid := s.service.FrequencyWeighted(6, 6, FrequencyTable{'E': 5})

	for _, col := range grid {
		s.Equal([]rune("EEEEEE"), col)
	}
}

func (s *ServiceSuite) TestFrequencyWeightedEmptyTableFallsBackToUniform() {
	grid := s.service.FrequencyWeighted(6, 6, FrequencyTable{})
	s.Len(grid, 6)
	s.assertLetters(grid)
}

// FromDailySource tests

func (s *ServiceSuite) TestFromDailySource() {
	want := columns("ABCDEF", "GHIJKL", "MNOPQR", "STUVWX", "YZABCD", "EFGHIJ")
	src := stubGrids{grids: map[string][][]rune{"2024-01-01": want}}

	grid, err := s.service.FromDailySource(s.ctx, "2024-01-01", src)
	s.Require().NoError(err)
	s.Equal(want, grid)
}

func (s *ServiceSuite) TestFromDailySourceMissingKey() {
	_, err := s.service.FromDailySource(s.ctx, "2024-01-01", stubGrids{})
	s.ErrorIs(err, model.ErrResourceUnavailable)
}

func (s *ServiceSuite) TestFromDailySourceFailure() {
	_, err := s.service.FromDailySource(s.ctx, "2024-01-01", stubGrids{err: errors.New("network down")})
	s.ErrorIs(err, model.ErrResourceUnavailable)
}

func (s *ServiceSuite) TestFromDailySourceMalformedGrid() {
	src := stubGrids{grids: map[string][][]rune{"2024-01-01": columns("ABC")}}

	_, err := s.service.FromDailySource(s.ctx, "2024-01-01", src)
	s.ErrorIs(err, model.ErrResourceUnavailable)
}

// Daily fallback tests

func (s *ServiceSuite) TestDailyFallbackIsDeterministic() {
	first := s.service.DailyFallback("2024-01-01")
	second := s.service.DailyFallback("2024-01-01")

	s.Equal(first, second)
	s.Len(first, model.GridCols)
	s.assertLetters(first)
}

func (s *ServiceSuite) TestDailyFallbackVariesByDate() {
	s.NotEqual(s.service.DailyFallback("2024-01-01"), s.service.DailyFallback("2024-01-02"))
}
