// Package session owns the gameplay state machine: ready flags, game start
// and countdown, cell reveals and flags, win/loss resolution and the
// rematch protocol. Outbound traffic goes through the Notifier interface so
// the service stays transport-free.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/minerace/minerace-go/internal/dependencies/clock"
	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
	"github.com/minerace/minerace-go/internal/services/registry"
	"github.com/minerace/minerace-go/internal/storage"
)

// Notifier delivers outbound events. Implemented by the websocket hub.
type Notifier interface {
	// Broadcast sends a message to every player in a room
	Broadcast(code model.RoomCode, msg *protocol.Message)
	// Unicast sends a message to a single player
	Unicast(playerID model.PlayerID, msg *protocol.Message)
}

// Dispatcher serialises deferred work (countdown ticks) onto the same
// single-threaded loop that handles inbound messages, so room state is
// never mutated concurrently.
type Dispatcher interface {
	Dispatch(fn func())
}

// Config controls countdown pacing
type Config struct {
	// CountdownSeconds is the value the countdown starts from
	CountdownSeconds int
	// TickInterval is the real-time delay between countdown ticks.
	// Non-positive runs the whole countdown synchronously inside
	// StartGame, which tests rely on.
	TickInterval time.Duration
}

// DefaultConfig returns the production countdown pacing
func DefaultConfig() Config {
	return Config{
		CountdownSeconds: 5,
		TickInterval:     time.Second,
	}
}

// Controller drives gameplay for all rooms
type Controller struct {
	storage     storage.Storage
	registry    *registry.Controller
	leaderboard storage.Leaderboard
	notifier    Notifier
	dispatch    Dispatcher
	clock       clock.Clock
	logger      *slog.Logger
	cfg         Config

	mu         sync.Mutex
	countdowns map[model.RoomCode]chan struct{}
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	registry *registry.Controller,
	leaderboard storage.Leaderboard,
	notifier Notifier,
	dispatch Dispatcher,
	clock clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = DefaultConfig().CountdownSeconds
	}
	return &Controller{
		storage:     storage,
		registry:    registry,
		leaderboard: leaderboard,
		notifier:    notifier,
		dispatch:    dispatch,
		clock:       clock,
		logger:      logger.With(slog.String("component", "session")),
		cfg:         cfg,
		countdowns:  make(map[model.RoomCode]chan struct{}),
	}
}

// cancelCountdown stops a pending countdown for the room, if any.
// Safe to call when none is running.
func (c *Controller) cancelCountdown(code model.RoomCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.countdowns[code]; ok {
		close(cancel)
		delete(c.countdowns, code)
	}
}

// clearCountdown drops the countdown handle without closing it, used by the
// countdown goroutine itself when it completes normally.
func (c *Controller) clearCountdown(code model.RoomCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.countdowns, code)
}
