package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordgrid/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeInvalidMode         = "INVALID_MODE"
	CodeInvalidCommand      = "INVALID_COMMAND"
	CodeInvalidLetter       = "INVALID_LETTER"
	CodeInvalidGrid         = "INVALID_GRID"
	CodeUndoOutOfRange      = "UNDO_OUT_OF_RANGE"
	CodePuzzleNotFound      = "PUZZLE_NOT_FOUND"
	CodeDictionaryNotLoaded = "DICTIONARY_NOT_LOADED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPuzzleNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePuzzleNotFound, "Puzzle not found"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Mode must be daily or practice"}}
	case errors.Is(err, model.ErrInvalidCommand):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCommand, "Unknown command"}}
	case errors.Is(err, model.ErrUndoOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeUndoOutOfRange, "Undo index out of range"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter must be A-Z"}}
	case errors.Is(err, model.ErrInvalidGrid):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGrid, "Grid must be 6x6"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryNotLoaded, "Dictionary not ready"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
