package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"go-tms-api/internal/event"
)

// Hub owns the set of connected clients and fans bus events out to them.
// Only the Run goroutine touches the client set.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	bus        event.Bus
}

func NewHub(bus event.Bus) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		bus:        bus,
	}
}

// Run blocks until ctx is cancelled or the bus subscription closes.
func (h *Hub) Run(ctx context.Context) {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case e, ok := <-events:
			if !ok {
				return
			}
			message, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to marshal event", "error", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					slog.Warn("dropping slow websocket client", "user_id", client.userID)
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
