// Package hub fans freshly generated pick sheets out to connected
// WebSocket clients.
package hub

import (
	"context"
	"sync"

	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

// Hub maintains the set of active clients and broadcasts sheets to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan *models.PickSheet
	register   chan *Client
	unregister chan *Client
}

// New creates a Hub
func New() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *models.PickSheet, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's main loop; it returns when the context is cancelled
func (h *Hub) Run(ctx context.Context) {
	logger.Info("hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case sheet := <-h.broadcast:
			h.broadcastSheet(sheet)
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

// Broadcast queues a sheet for delivery to every connected client. Drops
// the sheet when the buffer is full rather than blocking the publisher.
func (h *Hub) Broadcast(sheet *models.PickSheet) {
	select {
	case h.broadcast <- sheet:
	default:
		logger.Warn("broadcast buffer full, dropping sheet %s", sheet.RunID)
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	logger.Info("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		logger.Info("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastSheet(sheet *models.PickSheet) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(sheet) {
			// Client buffer full: too slow, disconnect them
			logger.Warn("client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	logger.Info("shutting down hub (%d active clients)", len(h.clients))

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
