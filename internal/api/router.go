package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/api/apierr"
	"github.com/mcoot/wordgrid/internal/api/handler"
	"github.com/mcoot/wordgrid/internal/middleware"
	"github.com/mcoot/wordgrid/internal/services/dictionary"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	PuzzleController  puzzle.ControllerInterface
	DictionaryService *dictionary.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the API under /api/v1 on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	puzzleHandler := handler.NewPuzzleHandler(cfg.PuzzleController)

	var dictStatus handler.DictionaryStatus
	if cfg.DictionaryService != nil {
		dictStatus = cfg.DictionaryService
	}
	healthHandler := handler.NewHealthHandler(dictStatus)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, writePanic))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	puzzles := api.PathPrefix("/puzzles").Subrouter()
	puzzles.HandleFunc("", puzzleHandler.Create).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}", puzzleHandler.Get).Methods(http.MethodGet)
	puzzles.HandleFunc("/{id}", puzzleHandler.Delete).Methods(http.MethodDelete)
	puzzles.HandleFunc("/{id}/toggle", puzzleHandler.Toggle).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/commit", puzzleHandler.Commit).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/clear", puzzleHandler.Clear).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/reset", puzzleHandler.Reset).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/mode", puzzleHandler.SwitchMode).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/words/{index}", puzzleHandler.Undo).Methods(http.MethodDelete)
	puzzles.HandleFunc("/{id}/commands", puzzleHandler.Dispatch).Methods(http.MethodPost)
}

// writePanic answers a panicked request with a JSON internal error
func writePanic(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
