package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/wordgrid/internal/api/apierr"
)

// Client talks to the wordgrid JSON API under /api/v1
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ServerError is a failed API call. Code is empty when the server did not
// answer with the JSON error envelope.
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do sends body as JSON to path and decodes a successful reply into result.
// Either may be nil.
func (c *Client) Do(method, path string, body, result any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return serverError(resp.StatusCode, raw)
	}

	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func serverError(status int, raw []byte) *ServerError {
	var envelope apierr.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return &ServerError{Status: status, Code: envelope.Error.Code, Message: envelope.Error.Message}
	}
	return &ServerError{Status: status, Message: strings.TrimSpace(string(raw))}
}

func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

func (c *Client) Delete(path string) error {
	return c.Do(http.MethodDelete, path, nil, nil)
}

// puzzlePath joins parts under the escaped puzzle resource path
func puzzlePath(id string, parts ...string) string {
	p := "/api/v1/puzzles/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}
