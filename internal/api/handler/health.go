package handler

import (
	"net/http"

	"github.com/mcoot/wordgrid/internal/api/response"
)

// DictionaryStatus reports whether words are available for commits
type DictionaryStatus interface {
	IsLoaded() bool
	WordCount() int
}

// HealthHandler handles the health check
type HealthHandler struct {
	dictionary DictionaryStatus
}

// NewHealthHandler creates a new health handler. dictionary may be nil.
func NewHealthHandler(dictionary DictionaryStatus) *HealthHandler {
	return &HealthHandler{dictionary: dictionary}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := response.Health{Status: "ok"}
	if h.dictionary != nil {
		resp.DictionaryLoaded = h.dictionary.IsLoaded()
		resp.DictionaryWords = h.dictionary.WordCount()
	}
	response.OK(w, resp)
}
