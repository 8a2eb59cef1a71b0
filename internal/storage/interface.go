package storage

import (
	"context"

	"github.com/minerace/minerace-go/internal/model"
)

// Storage defines the interface for room and board state. Rooms die with
// their last player, so the only production implementation is the memory
// one; the interface keeps services storage-agnostic.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Board operations: each player's private board copy within a room
	SaveBoard(ctx context.Context, code model.RoomCode, playerID model.PlayerID, board *model.Board) error
	GetBoard(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Board, error)
	DeleteBoard(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	DeleteBoardsForRoom(ctx context.Context, code model.RoomCode) error
}

// Leaderboard records race outcomes per display name and serves rankings.
// Implemented in memory and on Redis; unlike room state, the Redis-backed
// leaderboard survives restarts.
type Leaderboard interface {
	RecordWin(ctx context.Context, name string, byForfeit bool) error
	RecordLoss(ctx context.Context, name string) error
	Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error)
}
