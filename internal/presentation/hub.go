// Package presentation serves the current view state over HTTP and streams changes over WebSocket.
package presentation

import (
	"context"
	"fmt"
	"mars-photos/internal/metrics"
	"mars-photos/internal/publisher"
	"sync"

	"go.uber.org/zap"
)

const broadcastBuffer = 16

// Hub keeps the connected WebSocket clients and the last broadcast event. A client that
// registers receives that event first. latest is written only by Run, so an event reaches a
// client either on register or from broadcast, never both.
type Hub struct {
	logger *zap.SugaredLogger

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once

	mu     sync.RWMutex
	latest []byte
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) Name() string {
	return "websocket"
}

func (h *Hub) Run() {
	defer close(h.stopped)

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.WebsocketClients.Inc()

			if latest := h.Latest(); latest != nil {
				client.Send <- latest
			}

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.mu.Lock()
			h.latest = message
			h.mu.Unlock()

			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.logger.Warnw("Dropping slow websocket client", "remote", client.remote)
					h.removeClient(client)
				}
			}

		case <-h.quit:
			for client := range h.clients {
				h.removeClient(client)
			}
			return
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.Send)
	metrics.WebsocketClients.Dec()
}

func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.latest
}

func (h *Hub) Publish(ctx context.Context, event *publisher.StateEvent) error {
	if event == nil {
		return publisher.ErrNilEvent
	}

	payload, err := event.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal state event: %w", err)
	}

	select {
	case h.broadcast <- payload:
		return nil
	case <-h.quit:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops Run and disconnects every client.
func (h *Hub) Close(ctx context.Context) error {
	h.closeOnce.Do(func() {
		close(h.quit)
	})

	select {
	case <-h.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}
