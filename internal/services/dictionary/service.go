package dictionary

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/wordgrid/internal/source"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Service answers membership queries against the loaded word list
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new DictionaryService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "dictionary")),
		words:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromSource fetches the word list from src, saves it to storage for
// later restarts, then loads it
func (s *Service) LoadFromSource(ctx context.Context, src source.DictionarySource) error {
	words, err := src.Words(ctx)
	if err != nil {
		s.logger.Warn("dictionary source failed", slog.String("error", err.Error()))
		return err
	}

	// Storage-backed sources already hold these words
	if _, fromStorage := src.(source.StorageDictionary); !fromStorage {
		if err := s.storage.SaveDictionaryWords(ctx, normalize(words)); err != nil {
			return err
		}
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	normalized := normalize(words)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(normalized))
	for _, word := range normalized {
		s.words[word] = struct{}{}
	}
	s.loaded = true

	s.logger.Info("dictionary loaded", slog.Int("words", len(s.words)))
	return nil
}

// normalize upper-cases words and drops blank entries
func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToUpper(strings.TrimSpace(word))
		if word != "" {
			out = append(out, word)
		}
	}
	return out
}

// Contains reports whether the word is in the dictionary, ignoring case.
// It is false until a word list has been loaded.
func (s *Service) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToUpper(word)]
	return ok
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromStorage(ctx context.Context) error
	LoadFromSource(ctx context.Context, src source.DictionarySource) error
	LoadWords(words []string) error
	Contains(word string) bool
	IsLoaded() bool
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
