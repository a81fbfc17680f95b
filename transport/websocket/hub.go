package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const sendBufferSize = 64

type client struct {
	id   string
	send chan []byte
}

// Hub delivers notifications to connected clients. Notify never blocks: a client whose buffer
// is full loses the message.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
	}
}

func (that *Hub) register(id string) *client {
	c := &client{id: id, send: make(chan []byte, sendBufferSize)}

	that.mu.Lock()
	that.clients[id] = c
	that.mu.Unlock()

	return c
}

func (that *Hub) unregister(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if c, ok := that.clients[id]; ok {
		delete(that.clients, id)
		close(c.send)
	}
}

func (that *Hub) Notify(notes ...entity.Notification) {
	for _, note := range notes {
		message, err := encodeMessage(note.Action, note.Payload)
		if err != nil {
			that.logger.Error("failed to encode notification", "action", note.Action, "error", err)
			continue
		}

		for _, id := range note.Recipients {
			that.send(id, note.Action, message)
		}
	}
}

// SendTo - sends a single message to one client.
func (that *Hub) SendTo(id, action string, payload any) {
	message, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.send(id, action, message)
}

func (that *Hub) send(id, action string, message []byte) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	c, ok := that.clients[id]
	if !ok {
		that.logger.Warn("connection not found for participant", "participant", id, "action", action)
		return
	}

	select {
	case c.send <- message:
	default:
		that.logger.Warn("send buffer is full, message dropped", "participant", id, "action", action)
	}
}
