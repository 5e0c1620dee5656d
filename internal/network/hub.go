package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/MRamiBalles/Drifting/server/internal/domain/world"
	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
)

// MessageType tags every frame sent to clients.
type MessageType string

const (
	MsgTypeState MessageType = "STATE"
	MsgTypeError MessageType = "ERROR"
)

// Message is the envelope of every server-to-client frame.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Controller is the game a hub drives. session.Session implements it.
type Controller interface {
	ToggleTravel() engine.Snapshot
	Select(id string) engine.Snapshot
	Interact(action engine.Action, id string) engine.Snapshot
	TravelTo(city string) engine.Snapshot
	Dismiss(id string) engine.Snapshot
	Snapshot() engine.Snapshot
	Map() *world.Graph
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	controller Controller
	logger     *logger.Logger
	metrics    *metrics.Collector
}

// NewHub initializes a new WebSocket Hub in front of ctrl.
func NewHub(ctrl Controller, log *logger.Logger, m *metrics.Collector) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		controller: ctrl,
		logger:     log,
		metrics:    m,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
// Once it returns, Done is closed and the hub accepts no more clients.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
			if payload, err := encode(MsgTypeState, h.controller.Snapshot()); err == nil {
				client.send <- payload
			}
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.metrics.RecordWSConnection(-1)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish broadcasts snap to every client. It never blocks the caller: a
// full queue drops the frame.
func (h *Hub) Publish(snap engine.Snapshot) {
	payload, err := encode(MsgTypeState, snap)
	if err != nil {
		h.logger.Error("Failed to serialize snapshot for WebSocket broadcast: " + err.Error())
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("Broadcast queue full, dropping snapshot")
	}
}

// Done is closed when Run has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func encode(t MessageType, payload interface{}) ([]byte, error) {
	return json.Marshal(Message{Type: t, Timestamp: time.Now().Unix(), Payload: payload})
}
