// Package source fetches the dictionary and daily grids the puzzle needs.
// Documents come from local files, HTTP(S) URLs or the configured storage.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcoot/wordgrid/internal/model"
)

// DictionarySource yields the accepted word list
type DictionarySource interface {
	Words(ctx context.Context) ([]string, error)
}

// DailyGridSource yields the column-major grid for a date key (YYYY-MM-DD)
type DailyGridSource interface {
	Grid(ctx context.Context, dateKey string) ([][]rune, error)
}

// GridCatalog is a DailyGridSource that can list every grid it holds
type GridCatalog interface {
	DailyGridSource
	All(ctx context.Context) (map[string][][]rune, error)
}

// dictionaryDocument is the dictionary file format: {"words": [...]}
type dictionaryDocument struct {
	Words []string `json:"words"`
}

// gridEntry is one date's entry in the grids file: {"grid": [...columns]}
type gridEntry struct {
	Grid []gridColumn `json:"grid"`
}

// gridColumn accepts a column written either as "ABCDEF" or ["A","B",...]
type gridColumn []rune

func (c *gridColumn) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = []rune(s)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("grid column must be a string or array of strings: %w", err)
	}
	*c = []rune(strings.Join(parts, ""))
	return nil
}

func decodeDictionary(data []byte) ([]string, error) {
	var doc dictionaryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode dictionary: %v", model.ErrResourceUnavailable, err)
	}
	return doc.Words, nil
}

func decodeGrids(data []byte) (map[string][][]rune, error) {
	var doc map[string]gridEntry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode grids: %v", model.ErrResourceUnavailable, err)
	}

	grids := make(map[string][][]rune, len(doc))
	for dateKey, entry := range doc {
		if len(entry.Grid) == 0 {
			continue
		}
		grid := make([][]rune, len(entry.Grid))
		for i, col := range entry.Grid {
			grid[i] = []rune(col)
		}
		grids[dateKey] = grid
	}
	return grids, nil
}

func lookupGrid(grids map[string][][]rune, dateKey string) ([][]rune, error) {
	grid, ok := grids[dateKey]
	if !ok {
		return nil, fmt.Errorf("%w: no grid for %s", model.ErrResourceUnavailable, dateKey)
	}
	return grid, nil
}

// IsRemote reports whether a location should be fetched over HTTP
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
