package source

import (
	"net/http"

	"github.com/mcoot/wordgrid/internal/storage"
)

// StorageLocation selects the storage-backed sources
const StorageLocation = "storage"

// NewDictionary picks a dictionary source for a location: a URL, a file
// path, or "storage"
func NewDictionary(location string, client *http.Client, store storage.Storage) DictionarySource {
	switch {
	case location == StorageLocation:
		return StorageDictionary{Storage: store}
	case IsRemote(location):
		return HTTPDictionary{Client: client, URL: location}
	default:
		return FileDictionary{Path: location}
	}
}

// NewGridCatalog picks a grid catalog for a URL or file path. It returns nil
// for "storage", which has nothing to import.
func NewGridCatalog(location string, client *http.Client) GridCatalog {
	switch {
	case location == StorageLocation || location == "":
		return nil
	case IsRemote(location):
		return HTTPGrids{Client: client, URL: location}
	default:
		return FileGrids{Path: location}
	}
}
