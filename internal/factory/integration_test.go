package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/model"
	redisstorage "github.com/mcoot/wordgrid/internal/storage/redis"
	"github.com/mcoot/wordgrid/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDictionary())
	s.Require().NoError(s.app.SeedDailyGrid(s.ctx))
}

func (s *IntegrationSuite) toggle(id model.PuzzleID, positions ...model.Position) {
	for _, pos := range positions {
		_, err := s.app.PuzzleController.Toggle(s.ctx, id, pos)
		s.Require().NoError(err)
	}
}

var (
	catCells = []model.Position{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}}
	dogCells = []model.Position{{Col: 3, Row: 0}, {Col: 3, Row: 1}, {Col: 3, Row: 2}}
)

// Test: Daily puzzle from creation through two words, an undo and a reset
func (s *IntegrationSuite) TestDailyPuzzleFlow() {
	s.app.MockRandom.QueueString("DAILY0000001")

	p, err := s.app.PuzzleController.Create(s.ctx, model.ModeDaily)
	s.Require().NoError(err)
	s.Equal(model.PuzzleID("DAILY0000001"), p.ID)
	s.Equal("2024-03-15", p.DateKey)
	s.Equal(TestGrid(), p.Board.Letters())

	// CAT
	s.toggle(p.ID, catCells...)
	p, result, err := s.app.PuzzleController.Commit(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(model.CommitAccepted, result.Outcome)
	s.Equal("CAT", result.Word)

	// DOG
	s.toggle(p.ID, dogCells...)
	p, result, err = s.app.PuzzleController.Commit(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(model.CommitAccepted, result.Outcome)

	stats := s.app.PuzzleController.Stats(p)
	s.Equal(6, stats.LettersUsed)
	s.Equal(2, stats.WordsCreated)
	s.Equal(30, stats.RemainingLetters)
	s.Equal(4, stats.Score)

	// Undo the most recent word (DOG)
	p, err = s.app.PuzzleController.Undo(s.ctx, p.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(p.History, 1)
	s.Equal("CAT", p.History[0].Text)
	for _, pos := range dogCells {
		s.Equal(model.CellAvailable, p.Board.Get(pos).State)
	}

	// Reset clears everything but keeps the grid
	p, err = s.app.PuzzleController.Reset(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Empty(p.History)
	s.Equal(36, p.Board.CountState(model.CellAvailable))
	s.Equal(TestGrid(), p.Board.Letters())
}

// Test: Puzzle state survives a round trip through storage
func (s *IntegrationSuite) TestPuzzleStatePersisted() {
	p, err := s.app.PuzzleController.Create(s.ctx, model.ModeDaily)
	s.Require().NoError(err)

	s.toggle(p.ID, catCells[0], catCells[1])

	stored, err := s.app.Storage.GetPuzzle(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("CA", stored.Board.Word())
	s.Equal(model.SelectionBuilding, stored.Board.SelectionState())
}

// Test: Broadcaster is registered with the controller
func (s *IntegrationSuite) TestBroadcasterWired() {
	p, err := s.app.PuzzleController.Create(s.ctx, model.ModeDaily)
	s.Require().NoError(err)

	s.Nil(s.app.HubManager.GetHub(p.ID))
	hub := s.app.HubManager.GetOrCreateHub(p.ID)
	s.NotNil(hub)

	// Changes on a watched puzzle must not block even with no clients
	s.toggle(p.ID, catCells[0])
}

// Test: Practice mode draws a weighted grid from the injected random source
func (s *IntegrationSuite) TestPracticeUsesRandom() {
	p, err := s.app.PuzzleController.Create(s.ctx, model.ModePractice)
	s.Require().NoError(err)
	s.Equal(model.ModePractice, p.Mode)
	s.Equal(36, p.Board.TotalCells())
	s.NotEqual(TestGrid(), p.Board.Letters())
}

type LoadSuite struct {
	suite.Suite
	dir string
}

func TestLoadSuite(t *testing.T) {
	suite.Run(t, new(LoadSuite))
}

func (s *LoadSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *LoadSuite) writeFile(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

const gridsJSON = `{
	"2024-03-15": {"grid": ["CXXXXX", "AXXXXX", "TXXXXX", "DOGXXX", "XXXXXX", "XXXXXX"]},
	"2024-03-16": {"grid": ["ABCDEF", "ABCDEF", "ABCDEF", "ABCDEF", "ABCDEF", "ABCDEF"]}
}`

func (s *LoadSuite) TestLoadFromFiles() {
	app, err := New(Config{
		Logger:           testutil.NopLogger(),
		DictionarySource: s.writeFile("dictionary.json", `{"words": ["cat", "dog"]}`),
		DailySource:      s.writeFile("grids.json", gridsJSON),
	})
	s.Require().NoError(err)
	defer func() { _ = app.Close() }()

	s.Require().NoError(app.Load(context.Background()))

	s.True(app.DictionaryService.IsLoaded())
	s.True(app.DictionaryService.Contains("CAT"))
	s.Equal(2, app.DictionaryService.WordCount())

	grid, err := app.Storage.GetDailyGrid(context.Background(), "2024-03-16")
	s.Require().NoError(err)
	s.Equal([]rune("ABCDEF"), grid[0])

	// The dictionary was saved for later restarts
	words, err := app.Storage.GetDictionaryWords(context.Background())
	s.Require().NoError(err)
	s.ElementsMatch([]string{"CAT", "DOG"}, words)
}

func (s *LoadSuite) TestMissingDictionaryLeavesUnloaded() {
	app, err := New(Config{
		Logger:           testutil.NopLogger(),
		DictionarySource: filepath.Join(s.dir, "missing.json"),
	})
	s.Require().NoError(err)

	err = app.Load(context.Background())
	s.Error(err)
	s.False(app.DictionaryService.IsLoaded())
}

func (s *LoadSuite) TestDictionaryFailureDoesNotAbortGridImport() {
	grids := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Answer after the dictionary load has already failed
		select {
		case <-time.After(100 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gridsJSON))
	}))
	defer grids.Close()

	app, err := New(Config{
		Logger:           testutil.NopLogger(),
		DictionarySource: filepath.Join(s.dir, "missing.json"),
		DailySource:      grids.URL,
	})
	s.Require().NoError(err)
	defer func() { _ = app.Close() }()

	s.Error(app.Load(context.Background()))
	s.False(app.DictionaryService.IsLoaded())

	grid, err := app.Storage.GetDailyGrid(context.Background(), "2024-03-16")
	s.Require().NoError(err)
	s.Equal([]rune("ABCDEF"), grid[0])
}

func (s *LoadSuite) TestNoSourcesConfigured() {
	app, err := New(Config{})
	s.Require().NoError(err)

	s.Require().NoError(app.Load(context.Background()))
	s.False(app.DictionaryService.IsLoaded())
	s.Nil(app.GridCatalog)
}

func (s *LoadSuite) TestRedisStorage() {
	mr := miniredis.RunT(s.T())
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{
		StorageType:      StorageTypeRedis,
		RedisConfig:      &cfg,
		DictionarySource: s.writeFile("dictionary.json", `{"words": ["cat"]}`),
	})
	s.Require().NoError(err)
	defer func() { _ = app.Close() }()

	s.Require().NoError(app.Load(context.Background()))
	s.True(app.DictionaryService.Contains("cat"))
	s.True(mr.Exists("wordgrid:dictionary"))
}

func (s *LoadSuite) TestSQLiteStorageSurvivesRestart() {
	dbPath := filepath.Join(s.dir, "wordgrid.db")

	app, err := New(Config{
		StorageType:      StorageTypeSQLite,
		SQLitePath:       dbPath,
		DictionarySource: s.writeFile("dictionary.json", `{"words": ["cat", "dog"]}`),
	})
	s.Require().NoError(err)
	s.Require().NoError(app.Load(context.Background()))
	s.Require().NoError(app.Close())

	// Second start reads the dictionary back from storage
	restarted, err := New(Config{
		StorageType:      StorageTypeSQLite,
		SQLitePath:       dbPath,
		DictionarySource: "storage",
	})
	s.Require().NoError(err)
	defer func() { _ = restarted.Close() }()

	s.Require().NoError(restarted.Load(context.Background()))
	s.True(restarted.DictionaryService.Contains("DOG"))
}

func (s *LoadSuite) TestInvalidStorageType() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeSQLite})
	s.Error(err)
}
