package ws

import (
	"encoding/json"
	"sync"

	"ledger_service/internal/domain"
	"ledger_service/internal/logger"
)

// EventTransactionApplied and EventTransactionRollbacked name the two
// ledger events pushed to feed subscribers.
const (
	EventTransactionApplied    = "transaction.applied"
	EventTransactionRollbacked = "transaction.rollbacked"
)

// Event is one message on the live transaction feed
type Event struct {
	Type        string              `json:"type"`
	Transaction *domain.Transaction `json:"transaction"`
}

// Hub fans ledger events out to connected feed clients. Delivery is
// best-effort: a slow client drops messages instead of blocking the hub.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected feed clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast pushes an event to every connected client
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("marshal feed event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// client is not keeping up, skip it
		}
	}
}
