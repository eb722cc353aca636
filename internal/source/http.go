package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mcoot/wordgrid/internal/model"
)

// DefaultTimeout bounds a single fetch
const DefaultTimeout = 10 * time.Second

// NewHTTPClient returns the client used by the HTTP sources
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned %d", model.ErrResourceUnavailable, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}
	return data, nil
}

// HTTPDictionary fetches a dictionary JSON document from a URL
type HTTPDictionary struct {
	Client *http.Client
	URL    string
}

func (h HTTPDictionary) Words(ctx context.Context) ([]string, error) {
	data, err := fetch(ctx, h.Client, h.URL)
	if err != nil {
		return nil, err
	}
	return decodeDictionary(data)
}

// HTTPGrids fetches a grids JSON document from a URL on every call
type HTTPGrids struct {
	Client *http.Client
	URL    string
}

func (h HTTPGrids) All(ctx context.Context) (map[string][][]rune, error) {
	data, err := fetch(ctx, h.Client, h.URL)
	if err != nil {
		return nil, err
	}
	return decodeGrids(data)
}

func (h HTTPGrids) Grid(ctx context.Context, dateKey string) ([][]rune, error) {
	grids, err := h.All(ctx)
	if err != nil {
		return nil, err
	}
	return lookupGrid(grids, dateKey)
}

var (
	_ DictionarySource = HTTPDictionary{}
	_ GridCatalog      = HTTPGrids{}
)
