package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// StorageDictionary reads the dictionary previously saved to storage
type StorageDictionary struct {
	Storage storage.Storage
}

func (s StorageDictionary) Words(ctx context.Context) ([]string, error) {
	words, err := s.Storage.GetDictionaryWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	return words, nil
}

// StorageGrids serves daily grids imported into storage
type StorageGrids struct {
	Storage storage.Storage
}

func (s StorageGrids) Grid(ctx context.Context, dateKey string) ([][]rune, error) {
	grid, err := s.Storage.GetDailyGrid(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	return grid, nil
}

var (
	_ DictionarySource = StorageDictionary{}
	_ DailyGridSource  = StorageGrids{}
)

// ImportGrids copies every grid in the catalog into storage and returns how
// many were written
func ImportGrids(ctx context.Context, catalog GridCatalog, store storage.Storage, logger *slog.Logger) (int, error) {
	grids, err := catalog.All(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for dateKey, grid := range grids {
		if err := store.SaveDailyGrid(ctx, dateKey, grid); err != nil {
			return count, err
		}
		count++
	}

	logger.Info("imported daily grids", slog.Int("count", count))
	return count, nil
}

// CachedGrids tries storage first and falls back to the catalog, saving
// whatever it fetches
type CachedGrids struct {
	Storage storage.Storage
	Catalog DailyGridSource
}

func (c CachedGrids) Grid(ctx context.Context, dateKey string) ([][]rune, error) {
	grid, err := c.Storage.GetDailyGrid(ctx, dateKey)
	if err == nil {
		return grid, nil
	}
	if !errors.Is(err, model.ErrDailyGridNotFound) {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}

	grid, err = c.Catalog.Grid(ctx, dateKey)
	if err != nil {
		return nil, err
	}

	if err := c.Storage.SaveDailyGrid(ctx, dateKey, grid); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	return grid, nil
}

var _ DailyGridSource = CachedGrids{}
