package ws

import (
	"encoding/json"

	"timer_diary/internal/logger"
)

// Event is pushed to every connected client after a mutation so browsing
// clients can invalidate their cache for the affected date without polling.
// Advisory only; the REST API stays the source of truth.
type Event struct {
	Event string `json:"event"` // log_created, log_updated, log_deleted
	Date  string `json:"date,omitempty"`
	ID    int64  `json:"id,omitempty"`
}

const (
	EventLogCreated  = "log_created"
	EventLogUpdated  = "log_updated"
	EventLogDeleted  = "log_deleted"
	EventDateDeleted = "date_deleted"
)

// Hub fans events out to connected websocket clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run owns the client set; call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow client, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues an event for all clients. Never blocks the caller.
func (h *Hub) Broadcast(ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal ws event", "error", err)
		return
	}
	select {
	case h.broadcast <- b:
	default:
		logger.Warn("ws broadcast queue full, event dropped", "event", ev.Event)
	}
}
