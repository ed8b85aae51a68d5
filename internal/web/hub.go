// Package web is the local browser frontend: a chi router serving one
// page, a websocket hub streaming snapshots out, and button presses
// coming back in. A connected browser counts as "someone watching", so
// the simulation runs in foreground mode.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"badgagotchi/internal/sim"
)

// ActionSink is where frontend input lands. The host implements it.
type ActionSink interface {
	PushAction(a sim.Action) bool
	Wake()
	Snapshot() sim.Snapshot
}

// Hub maintains the set of active clients and broadcasts snapshots to
// them.
type Hub struct {
	sink ActionSink

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	count      atomic.Int64
	mu         sync.Mutex
}

// NewHub initializes the hub. Run must be started for it to do anything.
func NewHub(sink ActionSink) *Hub {
	return &Hub{
		sink:       sink,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run handles client connections and broadcasts until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("websocket hub shutting down")
			h.closeAll()
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			h.mu.Unlock()
			slog.Info("websocket client connected", "clients", h.count.Load())
			// A fresh viewer means the pet is being watched again.
			h.sink.Wake()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.count.Store(int64(len(h.clients)))
			h.mu.Unlock()
			slog.Info("websocket client disconnected", "clients", h.count.Load())
		case message := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow client: drop it rather than stall the rest.
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.count.Store(int64(len(h.clients)))
			h.mu.Unlock()
		}
	}
}

// Broadcast serializes a snapshot and queues it for every client. If
// the hub is backed up the frame is dropped; the next tick brings a
// fresher one anyway.
func (h *Hub) Broadcast(snap sim.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Error("failed to serialize snapshot for broadcast", "err", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// ClientCount reports how many browsers are connected.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.count.Store(0)
}
