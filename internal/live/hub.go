// Package live streams dashboard events to teachers over server-sent events.
// There is one hub per classroom alias group, plus one for the whole school.
package live

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/classquiz/internal/identity"
)

// AllClassrooms is the hub key receiving every event
const AllClassrooms = "all"

// Hub manages SSE clients for one classroom alias group
type Hub struct {
	key     string
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a group key
func NewHub(key string, logger *slog.Logger) *Hub {
	return &Hub{
		key:        key,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("classroom", key)),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("live hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("live client registered",
				slog.String("client_id", client.id),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("live client unregistered",
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

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
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("live messages dropped - client buffers full",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("live hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("live broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
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

// formatSSEMessage formats an SSE message with event name and data.
// Each line of data gets its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	data = strings.TrimSuffix(strings.ReplaceAll(data, "\r", ""), "\n")
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// GroupKey returns the hub key for a classroom label: the first key of its
// alias group, so "2de", "2C" and "2CD" share a hub.
func GroupKey(classroom string) string {
	if classroom == "" || strings.EqualFold(classroom, AllClassrooms) {
		return AllClassrooms
	}
	return groupKeyForStored(identity.CanonicalizeClassroom(classroom))
}

// groupKeyForStored returns the hub key for a classroom key as stored on a
// player. Stored keys are already canonical and must not be canonicalized
// again: "5eD" is stored as "5D", which would otherwise fold to "5".
func groupKeyForStored(key string) string {
	group := identity.AliasGroup(key)
	if len(group) == 0 {
		return AllClassrooms
	}
	return group[0]
}

// HubManager manages hubs for all classroom groups
type HubManager struct {
	hubs   map[string]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[string]*Hub),
		logger: logger.With(slog.String("component", "live")),
	}
}

// GetOrCreateHub returns the hub for a group key, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(key string) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[key]; ok {
		return hub
	}

	hub := NewHub(key, m.logger)
	m.hubs[key] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a group key, or nil if it doesn't exist
func (m *HubManager) GetHub(key string) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[key]
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, key)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("live empty hubs cleaned up", slog.Int("removed", removed))
	}
}

// Close shuts down every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, key)
	}
}

// RunCleanup removes empty hubs every interval until ctx is done
func (m *HubManager) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupEmptyHubs()
		case <-ctx.Done():
			return
		}
	}
}
