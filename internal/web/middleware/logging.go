package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/wordgrid/internal/middleware"
)

// Logging creates request logging middleware for the web interface. Static
// asset requests are not logged.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	logRequest := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		logged := logRequest(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
