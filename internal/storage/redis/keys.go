package redis

import (
	"fmt"

	"github.com/mcoot/wordgrid/internal/model"
)

// Key prefix for all wordgrid data
const keyPrefix = "wordgrid"

// puzzleKey returns the Redis key for a Puzzle
func puzzleKey(id model.PuzzleID) string {
	return fmt.Sprintf("%s:puzzle:%s", keyPrefix, id)
}

// dailyGridKey returns the Redis key for the grid of a given date
func dailyGridKey(dateKey string) string {
	return fmt.Sprintf("%s:daily:%s", keyPrefix, dateKey)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}

// dictionarySavedKey marks that a word list was saved. Redis drops empty
// sets, so an empty dictionary is only visible through this key.
func dictionarySavedKey() string {
	return fmt.Sprintf("%s:dictionary:saved", keyPrefix)
}
