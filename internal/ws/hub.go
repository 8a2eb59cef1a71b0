// Package ws is the realtime gateway: websocket client pumps, room-scoped
// fan-out, and the single dispatch loop that serialises all game mutations.
package ws

import (
	"context"
	"log/slog"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
)

// taskBuffer sizes the dispatch queue. Inbound messages and countdown
// ticks both land here.
const taskBuffer = 1024

// Hub tracks connected clients and their room membership, and owns the
// dispatch loop. Every inbound message and every countdown tick is queued
// onto the one loop and runs to completion before the next, so room state
// is only ever touched from a single goroutine. The membership maps are
// likewise only touched from the loop.
type Hub struct {
	logger *slog.Logger
	tasks  chan func()

	clients map[model.PlayerID]*Client
	rooms   map[model.RoomCode]map[model.PlayerID]*Client
}

// NewHub creates a hub. Run must be called for dispatched work to execute.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With(slog.String("component", "hub")),
		tasks:   make(chan func(), taskBuffer),
		clients: make(map[model.PlayerID]*Client),
		rooms:   make(map[model.RoomCode]map[model.PlayerID]*Client),
	}
}

// Run executes dispatched tasks in order until the context is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-h.tasks:
			task()
		}
	}
}

// Dispatch queues work onto the loop. If the queue is saturated the
// caller blocks, which applies backpressure to the read pumps.
func (h *Hub) Dispatch(fn func()) {
	h.tasks <- fn
}

// The fan-out and membership methods below must only be called from the
// dispatch loop.

// register adds a connected client
func (h *Hub) register(c *Client) {
	h.clients[c.ID] = c
}

// unregister drops a client and its room membership
func (h *Hub) unregister(c *Client) {
	h.leaveRoom(c)
	delete(h.clients, c.ID)
}

// joinRoom adds the client to a room's fan-out group
func (h *Hub) joinRoom(c *Client, code model.RoomCode) {
	h.leaveRoom(c)
	group, ok := h.rooms[code]
	if !ok {
		group = make(map[model.PlayerID]*Client)
		h.rooms[code] = group
	}
	group[c.ID] = c
	c.setRoom(code)
}

// leaveRoom removes the client from its current room group, if any
func (h *Hub) leaveRoom(c *Client) {
	code := c.Room()
	if code == "" {
		return
	}
	if group, ok := h.rooms[code]; ok {
		delete(group, c.ID)
		if len(group) == 0 {
			delete(h.rooms, code)
		}
	}
	c.setRoom("")
}

// Broadcast sends a message to every client in a room
func (h *Hub) Broadcast(code model.RoomCode, msg *protocol.Message) {
	for _, c := range h.rooms[code] {
		c.Send(msg)
	}
}

// Unicast sends a message to one client
func (h *Hub) Unicast(playerID model.PlayerID, msg *protocol.Message) {
	if c, ok := h.clients[playerID]; ok {
		c.Send(msg)
	}
}
