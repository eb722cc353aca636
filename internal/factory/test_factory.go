package factory

import (
	"context"
	"time"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/dependencies/mocks"
	"github.com/mcoot/wordgrid/internal/source"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	"github.com/mcoot/wordgrid/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The clock is fixed at noon UTC on 2024-03-15 and daily grids come from
// storage, so tests can seed them with SaveDailyGrid.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, source.StorageGrids{Storage: store}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// TestWords is a small dictionary covering the words the test grid spells
var TestWords = []string{
	"a", "at", "be", "cat", "cats", "do", "dog", "dogs", "go", "is", "it",
	"of", "on", "to", "act", "ant", "art", "ate", "eat", "god", "tea", "ten",
	"net", "cod", "cot", "tad", "toad", "coat", "code", "dote", "note", "tone",
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	return t.DictionaryService.LoadWords(TestWords)
}

// TestGrid spells CAT across row 0 and DOG down column 3
func TestGrid() [][]rune {
	return [][]rune{
		[]rune("CXXXXX"),
		[]rune("AXXXXX"),
		[]rune("TXXXXX"),
		[]rune("DOGXXX"),
		[]rune("XXXXXX"),
		[]rune("XXXXXX"),
	}
}

// SeedDailyGrid stores TestGrid as today's daily grid
func (t *TestApp) SeedDailyGrid(ctx context.Context) error {
	return t.Storage.SaveDailyGrid(ctx, clock.DateKey(t.MockClock.Now()), TestGrid())
}
