// Package registry owns the mapping of room codes to live rooms and their
// players' board copies. Rooms exist only in memory and are destroyed when
// the last player leaves.
package registry

import (
	"context"
	"log/slog"

	"github.com/minerace/minerace-go/internal/dependencies/clock"
	"github.com/minerace/minerace-go/internal/dependencies/random"
	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Controller manages room lifecycle and membership
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new room registry controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom creates a new room with the given player as admin
func (c *Controller) CreateRoom(ctx context.Context, difficulty model.Difficulty, creatorID model.PlayerID, creatorName string) (*model.Room, error) {
	if !difficulty.Valid() {
		return nil, model.ErrUnknownDifficulty
	}

	now := c.clock.Now()

	// Generate a unique room code, regenerating on collision
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		Code:       code,
		Difficulty: difficulty,
		State:      model.RoomStateWaiting,
		Seed:       c.random.Seed(),
		Players: []*model.Player{
			{
				ID:       creatorID,
				Name:     creatorName,
				IsAdmin:  true,
				JoinedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room", string(code)),
		slog.String("difficulty", string(difficulty)),
		slog.String("player", creatorName))

	return room, nil
}

// Get retrieves a room by code
func (c *Controller) Get(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// JoinRoom adds a player to a room
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, name string) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.GetPlayer(playerID) != nil {
		return nil, model.ErrAlreadyInRoom
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	room.Players = append(room.Players, &model.Player{
		ID:       playerID,
		Name:     name,
		JoinedAt: c.clock.Now(),
	})
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("room", string(code)),
		slog.String("player", name))

	return room, nil
}

// RemovePlayer removes a player from a room, deleting their board copy.
// The room itself is deleted once empty; otherwise the remaining player is
// promoted to admin. Returns the surviving room, or nil if it was deleted.
func (c *Controller) RemovePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.GetPlayer(playerID) == nil {
		return nil, model.ErrNotInRoom
	}

	if err := c.storage.DeleteBoard(ctx, code, playerID); err != nil {
		return nil, err
	}

	for i, p := range room.Players {
		if p.ID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}

	if len(room.Players) == 0 {
		if err := c.storage.DeleteBoardsForRoom(ctx, code); err != nil {
			return nil, err
		}
		if err := c.storage.DeleteRoom(ctx, code); err != nil {
			return nil, err
		}
		c.logger.Info("room deleted", slog.String("room", string(code)))
		return nil, nil
	}

	if room.Admin() == nil {
		room.Players[0].IsAdmin = true
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Reset returns a finished room to the waiting state for a rematch: fresh
// seed, cleared boards, cleared ready/rematch flags and winner.
func (c *Controller) Reset(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := c.storage.DeleteBoardsForRoom(ctx, code); err != nil {
		return nil, err
	}

	room.State = model.RoomStateWaiting
	room.Seed = c.random.Seed()
	room.DrawCount = 0
	room.StartedAt = nil
	room.Winner = ""
	for _, p := range room.Players {
		p.Ready = false
		p.WantsRematch = false
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room reset", slog.String("room", string(code)))
	return room, nil
}
