// Package push delivers outbound boundary events to connected players.
// Delivery is best-effort: a slow client's buffer overflowing drops
// messages rather than stalling a match tick. There is no resync
// protocol.
package push

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/pongarena-go/internal/model"
)

// Hub fans events out to the live connections of a single player
type Hub struct {
	playerID model.PlayerID
	clients  map[*Client]bool
	mu       sync.RWMutex
	logger   *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a player
func NewHub(playerID model.PlayerID, logger *slog.Logger) *Hub {
	return &Hub{
		playerID:   playerID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("player_id", string(playerID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("push client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.mu.Unlock()
				h.logger.Debug("push client unregistered",
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn("push message dropped - client buffer full")
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a raw message to all of the player's connections
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("push broadcast dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager owns the per-player hubs
type HubManager struct {
	hubs   map[model.PlayerID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.PlayerID]*Hub),
		logger: logger.With(slog.String("component", "push")),
	}
}

// GetOrCreateHub returns the hub for a player, creating one if absent
func (m *HubManager) GetOrCreateHub(playerID model.PlayerID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[playerID]; ok {
		return hub
	}

	hub := NewHub(playerID, m.logger)
	m.hubs[playerID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a player, or nil if it doesn't exist
func (m *HubManager) GetHub(playerID model.PlayerID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[playerID]
}

// RemoveHub removes and closes a player's hub
func (m *HubManager) RemoveHub(playerID model.PlayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[playerID]; ok {
		hub.Close()
		delete(m.hubs, playerID)
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
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
		m.logger.Info("push empty hubs cleaned up", slog.Int("removed", removed))
	}
}
