package request

import (
	"errors"

	"github.com/mcoot/wordgrid/internal/model"
)

var (
	errMissingPosition = errors.New("col and row are required")
	errMissingIndex    = errors.New("index is required")
)

// CreatePuzzleRequest is the request body for starting a puzzle
type CreatePuzzleRequest struct {
	Mode string `json:"mode,omitempty"` // Defaults to daily
}

// ToggleRequest is the request body for toggling a cell. Both coordinates
// are required; a missing one is not read as zero.
type ToggleRequest struct {
	Col *int `json:"col"`
	Row *int `json:"row"`
}

// NewToggleRequest builds a request for the cell at col, row
func NewToggleRequest(col, row int) ToggleRequest {
	return ToggleRequest{Col: &col, Row: &row}
}

// Position returns the requested cell
func (r ToggleRequest) Position() (model.Position, error) {
	if r.Col == nil || r.Row == nil {
		return model.Position{}, errMissingPosition
	}
	return model.Position{Col: *r.Col, Row: *r.Row}, nil
}

// SwitchModeRequest is the request body for switching mode
type SwitchModeRequest struct {
	Mode string `json:"mode"`
}

// CommandRequest is a declarative command. Only the fields the command type
// needs are read.
type CommandRequest struct {
	Type  string `json:"type"`
	Col   *int   `json:"col,omitempty"`
	Row   *int   `json:"row,omitempty"`
	Mode  string `json:"mode,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// ToCommand converts the request to a model.Command. Toggle needs col and
// row, and undo needs index.
func (r CommandRequest) ToCommand() (model.Command, error) {
	cmd := model.Command{
		Type: model.CommandType(r.Type),
		Mode: model.Mode(r.Mode),
	}

	switch cmd.Type {
	case model.CommandToggle:
		pos, err := ToggleRequest{Col: r.Col, Row: r.Row}.Position()
		if err != nil {
			return model.Command{}, err
		}
		cmd.Position = pos
	case model.CommandUndo:
		if r.Index == nil {
			return model.Command{}, errMissingIndex
		}
		cmd.Index = *r.Index
	}
	return cmd, nil
}
