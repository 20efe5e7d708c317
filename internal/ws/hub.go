package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type envelope struct {
	employerID uuid.UUID
	payload    []byte
}

// Hub fans application events out to the owning employer's connections.
type Hub struct {
	clients    map[*Client]bool
	send       chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		send:       make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | employer=%s total_clients=%d", client.employerID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | total_clients=%d", total)
			}

		case msg := <-h.send:
			h.mutex.RLock()
			targets := make([]*Client, 0)
			for c := range h.clients {
				if c.employerID == msg.employerID {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send never blocks; when the buffer is full the event is dropped, which is
// acceptable for advisory notifications.
func (h *Hub) Send(employerID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- envelope{employerID: employerID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | reason=buffer_full")
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
