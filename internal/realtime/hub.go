package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Broadcast event names consumed by connected clients.
const (
	EventNewUser       = "newUser"
	EventUserUpdate    = "userUpdate"
	EventEventUpdated  = "eventUpdated"
	EventNewComment    = "newComment"
	EventDeleteComment = "deleteComment"
)

// Message is the JSON frame sent to every connected client.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Publisher is the publish-capable dependency handlers receive. Handlers
// never reach for the hub through global state.
type Publisher interface {
	Publish(event string, data interface{})
}

// Hub maintains the set of connected websocket clients and fans broadcast
// messages out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Publish enqueues a broadcast without blocking the request path. If the
// buffer is full the message is dropped and logged.
func (h *Hub) Publish(event string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: event, Data: data}:
	default:
		h.log.Warn().Str("event", event).Msg("realtime broadcast buffer full, dropping message")
	}
}

// Run processes client lifecycle events and broadcasts until the context
// is canceled, then closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info().Int("total_clients", total).Msg("websocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info().Int("total_clients", total).Msg("websocket client disconnected")
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) broadcastToClients(message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow client; drop it rather than stall the hub.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
