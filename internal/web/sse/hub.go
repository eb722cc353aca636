package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/wordgrid/internal/model"
)

// Hub fans messages out to every viewer of one puzzle
type Hub struct {
	puzzleID model.PuzzleID
	clients  map[*Client]bool
	mu       sync.RWMutex
	logger   *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a puzzle
func NewHub(puzzleID model.PuzzleID, logger *slog.Logger) *Hub {
	return &Hub{
		puzzleID:   puzzleID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("puzzle_id", string(puzzleID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("viewer", client.viewer),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; !ok {
				h.mu.Unlock()
				continue
			}
			delete(h.clients, client)
			close(client.send)
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client unregistered",
				slog.String("viewer", client.viewer),
				slog.Duration("connection_duration", time.Since(client.connectedAt)),
				slog.Int("total_clients", clientCount))

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			total := len(h.clients)
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse messages dropped, client buffers full",
					slog.Int("sent", total-dropped),
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.flushPending()
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// flushPending delivers messages queued before the hub was closed
func (h *Hub) flushPending() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for {
		select {
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
				}
			}
		default:
			return
		}
	}
}

// Register adds a client to the hub. It returns false if the hub has
// already been closed.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a raw message for every client without blocking
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped, hub buffer full")
	}
}

// BroadcastEvent sends a named SSE event
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub and disconnects its clients
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage builds an SSE frame. Every line of data gets its own
// "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on \n, drops \r and a trailing empty line, and always
// returns at least one line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager owns one hub per watched puzzle
type HubManager struct {
	hubs   map[model.PuzzleID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.PuzzleID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a puzzle, starting one if needed
func (m *HubManager) GetOrCreateHub(puzzleID model.PuzzleID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[puzzleID]; ok {
		return hub
	}

	hub := NewHub(puzzleID, m.logger)
	m.hubs[puzzleID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a puzzle, or nil if nobody is watching it
func (m *HubManager) GetHub(puzzleID model.PuzzleID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[puzzleID]
}

// RemoveHub closes and forgets a puzzle's hub
func (m *HubManager) RemoveHub(puzzleID model.PuzzleID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[puzzleID]; ok {
		hub.Close()
		delete(m.hubs, puzzleID)
		m.logger.Debug("sse hub removed", slog.String("puzzle_id", string(puzzleID)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removed))
	}
	return removed
}

// Close shuts down every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
