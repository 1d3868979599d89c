package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected contractor listening on the job feed
type Client struct {
	Hub          *Hub
	ContractorID uint
	Conn         *websocket.Conn
	Send         chan []byte
}

// Hub manages the contractor job-feed connections. New pending bookings are
// broadcast to every connected contractor.
type Hub struct {
	// Registered clients keyed by contractor id
	Clients map[uint]*Client

	// Broadcast channel for messages to all clients
	Broadcast chan *Message

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// Message is the job-feed frame sent to contractors
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewHub creates a new job-feed hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Broadcast:  make(chan *Message, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ContractorID] = client
			h.mu.Unlock()
			log.Printf("job feed: contractor %d connected", client.ContractorID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.ContractorID]; ok {
				delete(h.Clients, client.ContractorID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("job feed: contractor %d disconnected", client.ContractorID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// broadcastMessage sends a message to all connected contractors. A client
// whose send buffer is full is dropped; it can reconnect.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("job feed: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(h.Clients, id)
		}
	}
}

// BroadcastNewJob announces a freshly created pending booking to every
// connected contractor.
func (h *Hub) BroadcastNewJob(job interface{}) {
	message := &Message{
		Type:      "job.available",
		Data:      job,
		Timestamp: time.Now(),
	}

	select {
	case h.Broadcast <- message:
	default:
		log.Printf("job feed: broadcast queue full, dropping announcement")
	}
}

// ConnectedContractors returns the ids of currently connected contractors.
func (h *Hub) ConnectedContractors() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint, 0, len(h.Clients))
	for id := range h.Clients {
		ids = append(ids, id)
	}
	return ids
}
