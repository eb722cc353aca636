package source

import (
	"context"
	"fmt"
	"os"

	"github.com/mcoot/wordgrid/internal/model"
)

// FileDictionary reads a dictionary JSON document from disk
type FileDictionary struct {
	Path string
}

func (f FileDictionary) Words(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	return decodeDictionary(data)
}

// FileGrids reads a grids JSON document (keyed by date) from disk
type FileGrids struct {
	Path string
}

func (f FileGrids) All(ctx context.Context) (map[string][][]rune, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	return decodeGrids(data)
}

func (f FileGrids) Grid(ctx context.Context, dateKey string) ([][]rune, error) {
	grids, err := f.All(ctx)
	if err != nil {
		return nil, err
	}
	return lookupGrid(grids, dateKey)
}

var (
	_ DictionarySource = FileDictionary{}
	_ GridCatalog      = FileGrids{}
)
