package model

import "errors"

// Common errors used across the application
var (
	// Puzzle errors
	ErrPuzzleNotFound  = errors.New("puzzle not found")
	ErrInvalidMode     = errors.New("invalid puzzle mode")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrUndoOutOfRange  = errors.New("undo index out of range")
	ErrInvalidPosition = errors.New("invalid board position")

	// Grid errors
	ErrInvalidGrid   = errors.New("grid must be 6x6")
	ErrInvalidLetter = errors.New("invalid letter")

	// Resource errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrDailyGridNotFound   = errors.New("daily grid not found")
)
