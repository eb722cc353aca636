package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/api/request"
	"github.com/mcoot/wordgrid/internal/api/response"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/puzzle"
)

// PuzzleHandler handles puzzle endpoints
type PuzzleHandler struct {
	controller puzzle.ControllerInterface
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(controller puzzle.ControllerInterface) *PuzzleHandler {
	return &PuzzleHandler{controller: controller}
}

// Create handles POST /api/v1/puzzles
func (h *PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePuzzleRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	mode := model.Mode(req.Mode)
	if mode == "" {
		mode = model.ModeDaily
	}

	p, err := h.controller.Create(r.Context(), mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/puzzles/"+url.PathEscape(string(p.ID)), h.view(p))
}

// Get handles GET /api/v1/puzzles/{id}
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.Get(r.Context(), puzzleID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, h.view(p))
}

// Delete handles DELETE /api/v1/puzzles/{id}
func (h *PuzzleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Delete(r.Context(), puzzleID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Toggle handles POST /api/v1/puzzles/{id}/toggle
func (h *PuzzleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	pos, err := req.Position()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	p, err := h.controller.Toggle(r.Context(), puzzleID(r), pos)
	h.writePuzzle(w, p, err)
}

// Commit handles POST /api/v1/puzzles/{id}/commit
func (h *PuzzleHandler) Commit(w http.ResponseWriter, r *http.Request) {
	p, result, err := h.controller.Commit(r.Context(), puzzleID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.CommitResponse{
		Outcome: string(result.Outcome),
		Word:    result.Word,
		Puzzle:  h.view(p),
	})
}

// Clear handles POST /api/v1/puzzles/{id}/clear
func (h *PuzzleHandler) Clear(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.ClearSelection(r.Context(), puzzleID(r))
	h.writePuzzle(w, p, err)
}

// Reset handles POST /api/v1/puzzles/{id}/reset
func (h *PuzzleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.Reset(r.Context(), puzzleID(r))
	h.writePuzzle(w, p, err)
}

// SwitchMode handles POST /api/v1/puzzles/{id}/mode
func (h *PuzzleHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	var req request.SwitchModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	p, err := h.controller.SwitchMode(r.Context(), puzzleID(r), model.Mode(req.Mode))
	h.writePuzzle(w, p, err)
}

// Undo handles DELETE /api/v1/puzzles/{id}/words/{index}
func (h *PuzzleHandler) Undo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		WriteError(w, model.ErrUndoOutOfRange)
		return
	}

	p, err := h.controller.Undo(r.Context(), puzzleID(r), index)
	h.writePuzzle(w, p, err)
}

// Dispatch handles POST /api/v1/puzzles/{id}/commands
func (h *PuzzleHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req request.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	p, result, err := h.controller.Dispatch(r.Context(), puzzleID(r), cmd)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.CommandResponse{Puzzle: h.view(p)}
	if result != nil {
		resp.Outcome = string(result.Outcome)
		resp.Word = result.Word
	}
	response.OK(w, resp)
}

func (h *PuzzleHandler) writePuzzle(w http.ResponseWriter, p *model.Puzzle, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, h.view(p))
}

func (h *PuzzleHandler) view(p *model.Puzzle) response.Puzzle {
	return response.PuzzleFromModel(p, h.controller.Stats(p))
}

func puzzleID(r *http.Request) model.PuzzleID {
	return model.PuzzleID(mux.Vars(r)["id"])
}

// decodeOptional decodes a JSON body, accepting an empty one
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return NewInvalidRequestError("Invalid request body")
}
