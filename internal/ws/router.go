package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
	"github.com/minerace/minerace-go/internal/services/registry"
	"github.com/minerace/minerace-go/internal/services/session"
	"github.com/minerace/minerace-go/internal/storage"
)

// defaultLeaderboardLimit is used when a leaderboard query names no limit
const defaultLeaderboardLimit = 10

type handlerFunc func(ctx context.Context, c *Client, msg *protocol.Message) error

// Router upgrades connections and maps inbound events to service calls.
// All handlers run on the hub's dispatch loop.
type Router struct {
	hub         *Hub
	registry    *registry.Controller
	session     *session.Controller
	leaderboard storage.Leaderboard
	logger      *slog.Logger
	upgrader    websocket.Upgrader

	handlers map[protocol.EventType]handlerFunc
}

// NewRouter creates the gateway router
func NewRouter(
	hub *Hub,
	registry *registry.Controller,
	session *session.Controller,
	leaderboard storage.Leaderboard,
	logger *slog.Logger,
) *Router {
	r := &Router{
		hub:         hub,
		registry:    registry,
		session:     session,
		leaderboard: leaderboard,
		logger:      logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game carries no credentials, any origin may connect
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	r.handlers = map[protocol.EventType]handlerFunc{
		protocol.EventCreateRoom:     r.handleCreateRoom,
		protocol.EventJoinRoom:       r.handleJoinRoom,
		protocol.EventPlayerReady:    r.handlePlayerReady,
		protocol.EventStartGame:      r.handleStartGame,
		protocol.EventCellClick:      r.handleCellClick,
		protocol.EventCellFlag:       r.handleCellFlag,
		protocol.EventPlayAgain:      r.handlePlayAgain,
		protocol.EventReturnToLobby:  r.handleReturnToLobby,
		protocol.EventPing:           r.handlePing,
		protocol.EventGetLeaderboard: r.handleGetLeaderboard,
	}
	return r
}

// ServeHTTP upgrades the request and runs the connection's pumps
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Warn("upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(r.hub, conn, r.logger)
	r.logger.Info("client connected", slog.String("client", string(client.ID)))

	r.hub.Dispatch(func() {
		r.hub.register(client)
	})

	go client.writePump()
	go client.readPump(r)
}

// handleMessage routes one inbound message. Runs on the dispatch loop.
func (r *Router) handleMessage(c *Client, msg *protocol.Message) {
	handler, ok := r.handlers[msg.Type]
	if !ok {
		c.Send(protocol.NewError("Unknown message type"))
		return
	}
	if err := handler(context.Background(), c, msg); err != nil {
		r.logger.Debug("handler error",
			slog.String("type", string(msg.Type)),
			slog.String("client", string(c.ID)),
			slog.Any("error", err))
		c.Send(protocol.NewErrorFromErr(err))
	}
}

// handleDisconnect runs the implicit-leave path. Runs on the dispatch loop.
func (r *Router) handleDisconnect(c *Client) {
	if code := c.Room(); code != "" {
		if err := r.session.Disconnect(context.Background(), code, c.ID); err != nil {
			r.logger.Error("disconnect cleanup failed",
				slog.String("room", string(code)),
				slog.Any("error", err))
		}
	}
	r.hub.unregister(c)
	c.Close()
	r.logger.Info("client disconnected", slog.String("client", string(c.ID)))
}

func (r *Router) handleCreateRoom(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		return err
	}
	if c.Room() != "" {
		return model.ErrAlreadyInRoom
	}

	room, err := r.registry.CreateRoom(ctx, payload.Difficulty, c.ID, payload.PlayerName)
	if err != nil {
		return err
	}
	r.hub.joinRoom(c, room.Code)
	c.Send(protocol.MustNewMessage(protocol.EventRoomCreated, protocol.RoomPayload{Room: room, You: c.ID}))
	return nil
}

func (r *Router) handleJoinRoom(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		return err
	}
	if c.Room() != "" {
		return model.ErrAlreadyInRoom
	}

	room, err := r.registry.JoinRoom(ctx, payload.RoomID, c.ID, payload.PlayerName)
	if err != nil {
		return err
	}
	r.hub.joinRoom(c, room.Code)
	c.Send(protocol.MustNewMessage(protocol.EventRoomJoined, protocol.RoomPayload{Room: room, You: c.ID}))
	r.hub.Broadcast(room.Code, protocol.MustNewMessage(protocol.EventPlayerJoined, protocol.RoomPayload{Room: room}))
	return nil
}

func (r *Router) handlePlayerReady(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.RoomRefPayload](msg)
	if err != nil {
		return err
	}
	return r.session.ToggleReady(ctx, payload.RoomID, c.ID)
}

func (r *Router) handleStartGame(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.RoomRefPayload](msg)
	if err != nil {
		return err
	}
	return r.session.StartGame(ctx, payload.RoomID, c.ID)
}

func (r *Router) handleCellClick(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.CellActionPayload](msg)
	if err != nil {
		return err
	}
	return r.session.RevealCell(ctx, payload.RoomID, c.ID, payload.Row, payload.Col)
}

func (r *Router) handleCellFlag(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.CellActionPayload](msg)
	if err != nil {
		return err
	}
	return r.session.FlagCell(ctx, payload.RoomID, c.ID, payload.Row, payload.Col)
}

func (r *Router) handlePlayAgain(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.RoomRefPayload](msg)
	if err != nil {
		return err
	}
	return r.session.PlayAgain(ctx, payload.RoomID, c.ID)
}

func (r *Router) handleReturnToLobby(ctx context.Context, c *Client, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.RoomRefPayload](msg)
	if err != nil {
		return err
	}
	fresh, err := r.session.ReturnToLobby(ctx, payload.RoomID, c.ID)
	if err != nil {
		return err
	}
	if fresh != nil {
		r.hub.joinRoom(c, fresh.Code)
	} else {
		r.hub.leaveRoom(c)
	}
	return nil
}

func (r *Router) handlePing(_ context.Context, c *Client, _ *protocol.Message) error {
	c.Send(protocol.MustNewMessage(protocol.EventPong, nil))
	return nil
}

func (r *Router) handleGetLeaderboard(ctx context.Context, c *Client, msg *protocol.Message) error {
	limit := defaultLeaderboardLimit
	if payload, err := protocol.ParsePayload[protocol.LeaderboardQueryPayload](msg); err == nil && payload.Limit > 0 {
		limit = payload.Limit
	}
	entries, err := r.leaderboard.Top(ctx, limit)
	if err != nil {
		return err
	}
	c.Send(protocol.MustNewMessage(protocol.EventLeaderboardResult, protocol.LeaderboardPayload{Entries: entries}))
	return nil
}
