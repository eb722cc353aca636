package puzzle

import (
	"sync"

	"github.com/mcoot/wordgrid/internal/model"
)

// keyedMutex serialises work per puzzle ID. Entries are dropped once no
// goroutine holds or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.PuzzleID]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[model.PuzzleID]*keyedEntry)}
}

// Lock blocks until the caller holds id, and returns the matching unlock
func (k *keyedMutex) Lock(id model.PuzzleID) func() {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &keyedEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

// size returns the number of tracked keys
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
