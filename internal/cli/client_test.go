package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDecodesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"PUZZLE_NOT_FOUND","message":"puzzle not found"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Get(puzzlePath("X"), nil)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusNotFound, serverErr.Status)
	assert.Equal(t, "PUZZLE_NOT_FOUND", serverErr.Code)
	assert.Equal(t, "puzzle not found (PUZZLE_NOT_FOUND)", err.Error())
}

func TestClientPlainErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/").Post("/api/v1/puzzles", map[string]string{"mode": "daily"}, nil)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Empty(t, serverErr.Code)
	assert.Equal(t, "HTTP 502: upstream down", err.Error())
}

func TestClientSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/puzzles/a%2Fb/toggle", r.URL.EscapedPath())
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id":"a/b"}`))
	}))
	defer srv.Close()

	var result struct {
		ID string `json:"id"`
	}
	require.NoError(t, NewClient(srv.URL).Post(puzzlePath("a/b", "toggle"), map[string]int{"col": 1, "row": 2}, &result))
	assert.Equal(t, "a/b", result.ID)
}
