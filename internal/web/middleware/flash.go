package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/wordgrid/internal/web/templates/layout"
)

// Flash message types, used as the CSS modifier of the rendered notice
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)

type contextKey string

const (
	flashCookieName = "flash"
	flashContextKey = contextKey("flash")
	flashMaxAge     = 60 // seconds
)

// GetFlash returns the flash message read for this request, or nil
func GetFlash(ctx context.Context) *layout.FlashMessage {
	flash, _ := ctx.Value(flashContextKey).(*layout.FlashMessage)
	return flash
}

// SetFlash queues a message for the next page load. The cookie holds
// "type:message", query-escaped.
func SetFlash(w http.ResponseWriter, flashType, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(flashType + ":" + message),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash reads a pending flash message into the request context and clears
// the cookie so it is shown once
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var flash *layout.FlashMessage

			if cookie, err := r.Cookie(flashCookieName); err == nil && cookie.Value != "" {
				flash = parseFlash(cookie.Value)
				http.SetCookie(w, &http.Cookie{
					Name:     flashCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					Expires:  time.Unix(0, 0),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), flashContextKey, flash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseFlash(value string) *layout.FlashMessage {
	if decoded, err := url.QueryUnescape(value); err == nil {
		value = decoded
	}

	flashType, message, ok := strings.Cut(value, ":")
	if !ok {
		return &layout.FlashMessage{Type: FlashInfo, Message: value}
	}
	switch flashType {
	case FlashInfo, FlashSuccess, FlashError:
	default:
		flashType = FlashInfo
	}
	return &layout.FlashMessage{Type: flashType, Message: message}
}
