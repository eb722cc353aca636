package handler

import (
	"net/http"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/web/middleware"
	"github.com/mcoot/wordgrid/internal/web/templates/layout"
	"github.com/mcoot/wordgrid/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	clock clock.Clock
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(clock clock.Clock) *HomeHandler {
	return &HomeHandler{clock: clock}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
		Today: clock.DisplayDate(h.clock.Now()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
