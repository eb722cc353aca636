package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/dependencies/random"
	"github.com/mcoot/wordgrid/internal/services/board"
	"github.com/mcoot/wordgrid/internal/services/dictionary"
	"github.com/mcoot/wordgrid/internal/services/generator"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
	"github.com/mcoot/wordgrid/internal/services/scoring"
	"github.com/mcoot/wordgrid/internal/source"
	"github.com/mcoot/wordgrid/internal/storage"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	redisstorage "github.com/mcoot/wordgrid/internal/storage/redis"
	sqlitestorage "github.com/mcoot/wordgrid/internal/storage/sqlite"
	"github.com/mcoot/wordgrid/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Resource sources, nil when not configured
	DictionarySource source.DictionarySource
	GridCatalog      source.GridCatalog

	// Services
	BoardService      *board.Service
	DictionaryService *dictionary.Service
	ScoringService    *scoring.Service
	GeneratorService  *generator.Service
	PuzzleController  *puzzle.Controller
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// DictionarySource is a file path, URL or "storage" (optional)
	// If empty, the dictionary must be loaded manually
	DictionarySource string
	// DailySource is a grids file path, URL or "storage" (optional)
	// If empty, daily puzzles use the date-seeded fallback grid
	DailySource string
	// HTTPClient is used for remote sources (optional)
	HTTPClient *http.Client
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = source.NewHTTPClient()
	}

	var dictSource source.DictionarySource
	if cfg.DictionarySource != "" {
		dictSource = source.NewDictionary(cfg.DictionarySource, client, store)
	}
	catalog := source.NewGridCatalog(cfg.DailySource, client)

	app := newWithDependencies(store, clock.New(), random.New(), dailySource(cfg.DailySource, catalog, store), logger)
	app.DictionarySource = dictSource
	app.GridCatalog = catalog
	return app, nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlitestorage.New(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// dailySource picks where daily grids are read from at puzzle creation.
// Grids fetched from a catalog are cached in storage.
func dailySource(location string, catalog source.GridCatalog, store storage.Storage) source.DailyGridSource {
	switch {
	case location == source.StorageLocation:
		return source.StorageGrids{Storage: store}
	case catalog != nil:
		return source.CachedGrids{Storage: store, Catalog: catalog}
	default:
		return nil
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, daily source.DailyGridSource, logger *slog.Logger) *App {
	boardService := board.New(logger)
	dictService := dictionary.New(store, logger)
	scoringService := scoring.New()
	generatorService := generator.New(rnd, logger)
	controller := puzzle.NewController(store, boardService, dictService, scoringService, generatorService, daily, clk, rnd, logger)

	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, scoringService, logger)
	controller.AddObserver(broadcaster)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		BoardService:      boardService,
		DictionaryService: dictService,
		ScoringService:    scoringService,
		GeneratorService:  generatorService,
		PuzzleController:  controller,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
		logger:            logger,
	}
}

// Load fetches the dictionary and imports the daily grid catalog
// concurrently. A dictionary source failure falls back to whatever
// dictionary storage already holds. Grid import failures are logged and
// ignored since daily puzzles fall back to a generated grid. The two loads
// are independent: a dictionary failure does not cancel the import.
func (a *App) Load(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		return a.loadDictionary(ctx)
	})

	if a.GridCatalog != nil {
		g.Go(func() error {
			if _, err := source.ImportGrids(ctx, a.GridCatalog, a.Storage, a.logger); err != nil {
				a.logger.Warn("daily grid import failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	return g.Wait()
}

func (a *App) loadDictionary(ctx context.Context) error {
	if a.DictionarySource == nil {
		if err := a.DictionaryService.LoadFromStorage(ctx); err != nil {
			a.logger.Warn("no dictionary configured or stored", slog.String("error", err.Error()))
		}
		return nil
	}

	err := a.DictionaryService.LoadFromSource(ctx, a.DictionarySource)
	if err == nil {
		return nil
	}

	a.logger.Warn("dictionary source failed, trying storage", slog.String("error", err.Error()))
	if storeErr := a.DictionaryService.LoadFromStorage(ctx); storeErr != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}
	return nil
}

// Close releases the storage backend and disconnects SSE clients
func (a *App) Close() error {
	a.HubManager.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
