package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordgrid/internal/middleware"
	"github.com/mcoot/wordgrid/internal/web/templates/layout"
)

const panicMessage = "Something went wrong, please try again"

// Recovery creates panic recovery middleware for the web interface. Page
// loads get an error page; htmx requests are sent home with a flash.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	if r.Header.Get("HX-Request") == "true" {
		SetFlash(w, FlashError, panicMessage)
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	page := layout.ErrorPage(layout.PageData{
		Title: "Error",
		Flash: &layout.FlashMessage{Type: FlashError, Message: panicMessage},
	})
	_ = page.Render(r.Context(), w)
}
