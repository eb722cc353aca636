package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
	"github.com/mcoot/wordgrid/internal/web/middleware"
	"github.com/mcoot/wordgrid/internal/web/sse"
	"github.com/mcoot/wordgrid/internal/web/templates/components"
	"github.com/mcoot/wordgrid/internal/web/templates/layout"
	"github.com/mcoot/wordgrid/internal/web/templates/pages"
)

// PuzzleHandler handles the puzzle page and its actions
type PuzzleHandler struct {
	controller puzzle.ControllerInterface
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewPuzzleHandler creates a new PuzzleHandler
func NewPuzzleHandler(controller puzzle.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *PuzzleHandler {
	return &PuzzleHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "web-puzzle")),
	}
}

// Create starts a new puzzle and sends the browser to it
func (h *PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	mode := model.Mode(r.FormValue("mode"))
	if mode == "" {
		mode = model.ModeDaily
	}

	p, err := h.controller.Create(r.Context(), mode)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not start puzzle: "+err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	target := puzzlePath(p.ID)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// View renders the puzzle page
func (h *PuzzleHandler) View(w http.ResponseWriter, r *http.Request) {
	id := puzzleID(r)

	p, err := h.controller.Get(r.Context(), id)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Puzzle not found")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	title := "Practice"
	if p.Mode == model.ModeDaily {
		title = "Daily challenge " + components.DailyLabel(p.DateKey)
	}

	data := pages.PuzzleData{
		PageData: layout.PageData{
			Title: title,
			Flash: middleware.GetFlash(r.Context()),
		},
		Puzzle: p,
		Stats:  h.controller.Stats(p),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Puzzle(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Toggle selects or deselects a cell
func (h *PuzzleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	pos, err := parsePosition(r)
	if err != nil {
		h.respond(w, r, nil, err)
		return
	}
	p, err := h.controller.Toggle(r.Context(), puzzleID(r), pos)
	h.respond(w, r, p, err)
}

// Commit checks the word box against the dictionary
func (h *PuzzleHandler) Commit(w http.ResponseWriter, r *http.Request) {
	p, result, err := h.controller.Commit(r.Context(), puzzleID(r))
	if err != nil {
		h.respond(w, r, p, err)
		return
	}
	h.respondWith(w, r, p, commitMessage(result))
}

// Clear empties the word box
func (h *PuzzleHandler) Clear(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.ClearSelection(r.Context(), puzzleID(r))
	h.respond(w, r, p, err)
}

// Reset unlocks every cell and forgets accepted words
func (h *PuzzleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.Reset(r.Context(), puzzleID(r))
	h.respond(w, r, p, err)
}

// SwitchMode replaces the grid with one from the other mode
func (h *PuzzleHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, nil, model.ErrInvalidMode)
		return
	}
	p, err := h.controller.SwitchMode(r.Context(), puzzleID(r), model.Mode(r.FormValue("mode")))
	h.respond(w, r, p, err)
}

// Undo removes an accepted word from the history
func (h *PuzzleHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, nil, model.ErrUndoOutOfRange)
		return
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		h.respond(w, r, nil, model.ErrUndoOutOfRange)
		return
	}
	p, err := h.controller.Undo(r.Context(), puzzleID(r), index)
	h.respond(w, r, p, err)
}

// Events streams live puzzle updates over SSE
func (h *PuzzleHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := puzzleID(r)

	if _, err := h.controller.Get(r.Context(), id); err != nil {
		http.Error(w, "Puzzle not found", http.StatusNotFound)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub)
}

// respond finishes an action. Failures become an error flash.
func (h *PuzzleHandler) respond(w http.ResponseWriter, r *http.Request, p *model.Puzzle, err error) {
	if err == nil {
		h.respondWith(w, r, p, nil)
		return
	}

	id := puzzleID(r)
	if errors.Is(err, model.ErrPuzzleNotFound) {
		middleware.SetFlash(w, middleware.FlashError, "Puzzle not found")
		if isHTMX(r) {
			w.Header().Set("HX-Redirect", "/")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.logger.Debug("puzzle action rejected",
		slog.String("puzzle_id", string(id)),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	if p == nil {
		p, _ = h.controller.Get(r.Context(), id)
	}
	h.respondWith(w, r, p, &layout.FlashMessage{Type: middleware.FlashError, Message: errorMessage(err)})
}

// respondWith renders the panel for htmx or redirects back to the page
func (h *PuzzleHandler) respondWith(w http.ResponseWriter, r *http.Request, p *model.Puzzle, message *layout.FlashMessage) {
	id := puzzleID(r)

	if !isHTMX(r) || p == nil {
		if message != nil {
			middleware.SetFlash(w, message.Type, message.Message)
		}
		http.Redirect(w, r, puzzlePath(id), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.PuzzlePanel(p, h.controller.Stats(p), message).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func commitMessage(result model.CommitResult) *layout.FlashMessage {
	switch result.Outcome {
	case model.CommitAccepted:
		return &layout.FlashMessage{Type: middleware.FlashSuccess, Message: result.Word + " accepted"}
	case model.CommitRejected:
		return &layout.FlashMessage{Type: middleware.FlashError, Message: result.Word + " is not in the dictionary"}
	default:
		return nil
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return "The dictionary is still loading, try again shortly"
	case errors.Is(err, model.ErrInvalidPosition):
		return "That cell is not on the board"
	case errors.Is(err, model.ErrInvalidMode):
		return "Unknown puzzle mode"
	case errors.Is(err, model.ErrUndoOutOfRange):
		return "That word is no longer in the history"
	default:
		return "Something went wrong"
	}
}

func parsePosition(r *http.Request) (model.Position, error) {
	if err := r.ParseForm(); err != nil {
		return model.Position{}, model.ErrInvalidPosition
	}
	col, err := strconv.Atoi(r.FormValue("col"))
	if err != nil {
		return model.Position{}, model.ErrInvalidPosition
	}
	row, err := strconv.Atoi(r.FormValue("row"))
	if err != nil {
		return model.Position{}, model.ErrInvalidPosition
	}
	return model.Position{Col: col, Row: row}, nil
}

func puzzleID(r *http.Request) model.PuzzleID {
	return model.PuzzleID(mux.Vars(r)["id"])
}

func puzzlePath(id model.PuzzleID) string {
	return "/puzzle/" + string(id)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
