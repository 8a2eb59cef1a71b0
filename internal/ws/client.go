package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
)

const (
	// writeWait is the deadline for a single write
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong before dropping the peer
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound frames
	maxMessageSize = 4096

	// sendBuffer is the per-client outbound queue size
	sendBuffer = 256
)

// Client is one websocket connection. Its ID is the canonical player ID
// for the lifetime of the connection.
type Client struct {
	ID model.PlayerID

	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger
	send   chan []byte

	mu     sync.RWMutex
	room   model.RoomCode
	closed bool
}

// newClient wraps an upgraded connection
func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	id := model.PlayerID(uuid.New().String())
	return &Client{
		ID:     id,
		hub:    hub,
		conn:   conn,
		logger: logger.With(slog.String("client", string(id))),
		send:   make(chan []byte, sendBuffer),
	}
}

// Room returns the room the client is currently in, if any
func (c *Client) Room() model.RoomCode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room
}

// setRoom records the client's current room
func (c *Client) setRoom(code model.RoomCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = code
}

// Send queues a message for delivery. Fire-and-forget: a client that
// cannot keep up with its queue is closed.
func (c *Client) Send(msg *protocol.Message) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		c.logger.Error("failed to encode message", slog.String("type", string(msg.Type)), slog.Any("error", err))
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping client")
		c.Close()
	}
}

// Close shuts down the outbound queue. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump reads frames off the connection, decodes them and hands each
// message to the hub's dispatch loop in arrival order. Runs until the
// connection drops, then triggers the disconnect path.
func (c *Client) readPump(handler *Router) {
	defer func() {
		c.hub.Dispatch(func() {
			handler.handleDisconnect(c)
		})
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("read error", slog.Any("error", err))
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.logger.Debug("malformed message", slog.Any("error", err))
			c.Send(protocol.NewError("Malformed message"))
			continue
		}

		c.hub.Dispatch(func() {
			handler.handleMessage(c, msg)
		})
	}
}

// writePump drains the send queue onto the connection and keeps the
// websocket-level ping going.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
