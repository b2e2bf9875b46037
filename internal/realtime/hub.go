// internal/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub fans bus events out to every connected admin session over
// WebSocket. Each operator may hold several sessions (two tabs, two
// machines); all of them receive every customer/calendar event,
// the originating session included, because the client-side handler is
// an idempotent reload.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	unsubscribes []func()
	logger       *zap.Logger
}

func NewHub(bus Bus, logger *zap.Logger) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		logger:     logger,
	}

	for _, topic := range []string{TopicCustomers, TopicCalendar} {
		h.unsubscribes = append(h.unsubscribes, bus.Subscribe(topic, func(ev Event) {
			select {
			case h.broadcast <- ev:
			default:
				// Best effort: a saturated hub drops rather than blocks
				// the publishing request.
				logger.Warn("realtime hub buffer full, dropping event",
					zap.String("topic", ev.Topic))
			}
		}))
	}

	return h
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev := <-h.broadcast:
			h.fanOut(ev)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true

	h.logger.Info("admin session connected",
		zap.String("operator", client.operatorEmail),
		zap.Int("total", len(h.clients)),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()

		h.logger.Info("admin session disconnected",
			zap.String("operator", client.operatorEmail),
			zap.Int("total", len(h.clients)),
		)
	}
}

func (h *Hub) fanOut(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("failed to marshal realtime event", zap.Error(err))
		return
	}

	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		if !client.Send(payload) {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Slow clients are removed inline: pushing them through the
	// unregister channel would block the very goroutine that drains it.
	for _, client := range slow {
		h.logger.Warn("dropping slow admin session",
			zap.String("operator", client.operatorEmail))
		h.unregisterClient(client)
	}
}

// TotalClients reports the number of connected admin sessions.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	for _, unsub := range h.unsubscribes {
		unsub()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*Client]bool)
}
