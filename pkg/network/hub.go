package network

import (
	"sync"

	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub tracks connected clients and fans snapshots out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *logrus.Entry

	dropped int
}

// NewHub creates an empty hub.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     logger.For(log, "Hub"),
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// unregister stops broadcasts to c. Once it returns no broadcast is still
// writing to c.send.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast encodes snap once and queues it for every client. Slow clients
// miss frames instead of stalling the simulation.
func (h *Hub) Broadcast(snap game.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}

	data, err := game.EncodeSnapshot(&snap)
	if err != nil {
		h.log.WithError(err).Error("[Hub] snapshot encoding failed")
		return
	}
	msg := outbound{kind: websocket.BinaryMessage, data: data}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropped++
			if h.dropped%100 == 1 {
				h.log.WithField("token", c.token).Warn("[Hub] client too slow, dropping snapshots")
			}
		}
	}
}
