package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "modernc.org/sqlite"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS puzzles (
	id TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS dictionary_words (
	word TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS storage_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS daily_grids (
	date_key TEXT PRIMARY KEY,
	grid TEXT NOT NULL
);`

// metaDictionarySaved marks that a word list was saved, even an empty one
const metaDictionarySaved = "dictionary_saved"

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema exists
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A single connection keeps in-memory databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

var _ storage.Storage = (*Storage)(nil)

// Puzzle operations

func (s *Storage) SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error {
	data, err := json.Marshal(puzzle)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO puzzles(id, data, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		string(puzzle.ID), string(data),
	)
	return err
}

func (s *Storage) GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM puzzles WHERE id=?", string(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPuzzleNotFound
		}
		return nil, err
	}

	var puzzle model.Puzzle
	if err := json.Unmarshal([]byte(data), &puzzle); err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func (s *Storage) DeletePuzzle(ctx context.Context, id model.PuzzleID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM puzzles WHERE id=?", string(id))
	return err
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	var saved string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM storage_meta WHERE key = ?", metaDictionarySaved).Scan(&saved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrDictionaryNotLoaded
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT word FROM dictionary_words")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM dictionary_words"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO dictionary_words(word) VALUES(?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO storage_meta(key, value) VALUES(?, '1') ON CONFLICT(key) DO NOTHING",
		metaDictionarySaved,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Daily grid operations

func (s *Storage) GetDailyGrid(ctx context.Context, dateKey string) ([][]rune, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT grid FROM daily_grids WHERE date_key=?", dateKey).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDailyGridNotFound
		}
		return nil, err
	}

	var columns []string
	if err := json.Unmarshal([]byte(data), &columns); err != nil {
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

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO daily_grids(date_key, grid) VALUES(?, ?)
		ON CONFLICT(date_key) DO UPDATE SET grid=excluded.grid`,
		dateKey, string(data),
	)
	return err
}
