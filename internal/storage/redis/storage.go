package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

var _ storage.Storage = (*Storage)(nil)

// Puzzle operations

func (s *Storage) SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error {
	data, err := json.Marshal(puzzle)
	if err != nil {
		return err
	}

	// Every write refreshes the session TTL
	return s.client.Set(ctx, puzzleKey(puzzle.ID), data, s.cfg.PuzzleTTL).Err()
}

func (s *Storage) GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	data, err := s.client.Get(ctx, puzzleKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPuzzleNotFound
		}
		return nil, err
	}

	var puzzle model.Puzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func (s *Storage) DeletePuzzle(ctx context.Context, id model.PuzzleID) error {
	return s.client.Del(ctx, puzzleKey(id)).Err()
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	key := dictionaryKey()

	exists, err := s.client.Exists(ctx, dictionarySavedKey()).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	return s.client.SMembers(ctx, key).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	// Replace the set atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(words) > 0 {
		members := make([]any, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}
	pipe.Set(ctx, dictionarySavedKey(), "1", 0)

	_, err := pipe.Exec(ctx)
	return err
}

// Daily grid operations

// Grids are stored as one string per column
func (s *Storage) GetDailyGrid(ctx context.Context, dateKey string) ([][]rune, error) {
	data, err := s.client.Get(ctx, dailyGridKey(dateKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDailyGridNotFound
		}
		return nil, err
	}

	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, err
	}

	grid := make([][]rune, len(columns))
	for i, col := range columns {
		grid[i] = []rune(col)
	}
	return grid, nil
}

func (s *Storage) SaveDailyGrid(ctx context.Context, dateKey string, grid [][]rune) error {
	columns := make([]string, len(grid))
	for i, col := range grid {
		columns[i] = string(col)
	}

	data, err := json.Marshal(columns)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, dailyGridKey(dateKey), data, s.cfg.DailyGridTTL).Err()
}
