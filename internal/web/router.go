package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
	"github.com/mcoot/wordgrid/internal/web/handler"
	"github.com/mcoot/wordgrid/internal/web/middleware"
	"github.com/mcoot/wordgrid/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	PuzzleController puzzle.ControllerInterface
	HubManager       *sse.HubManager
	Clock            clock.Clock
	StaticDir        string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	homeHandler := handler.NewHomeHandler(clk)
	puzzleHandler := handler.NewPuzzleHandler(cfg.PuzzleController, hubManager, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// SSE streams skip the flash middleware so a pending flash survives for
	// the next page load
	r.HandleFunc("/puzzle/{id}/events", puzzleHandler.Events).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/puzzle", puzzleHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/puzzle/{id}", puzzleHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/puzzle/{id}/toggle", puzzleHandler.Toggle).Methods(http.MethodPost)
	pages.HandleFunc("/puzzle/{id}/commit", puzzleHandler.Commit).Methods(http.MethodPost)
	pages.HandleFunc("/puzzle/{id}/clear", puzzleHandler.Clear).Methods(http.MethodPost)
	pages.HandleFunc("/puzzle/{id}/reset", puzzleHandler.Reset).Methods(http.MethodPost)
	pages.HandleFunc("/puzzle/{id}/mode", puzzleHandler.SwitchMode).Methods(http.MethodPost)
	pages.HandleFunc("/puzzle/{id}/undo", puzzleHandler.Undo).Methods(http.MethodPost)

	return r
}
