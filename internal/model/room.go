package model

import "time"

// RoomCode is the 4-character [a-z0-9] identifier players use to join a room
type RoomCode string

// RoomState represents where a room is in its lifecycle
type RoomState string

const (
	RoomStateWaiting   RoomState = "waiting"   // Fewer than 2 players, or not all ready
	RoomStateReady     RoomState = "ready"     // 2 players present, all ready
	RoomStateCountdown RoomState = "countdown" // Admin started, countdown running
	RoomStatePlaying   RoomState = "playing"   // Boards live, moves accepted
	RoomStateFinished  RoomState = "finished"  // Terminal until every player opts into a rematch
)

// MaxPlayers is the room capacity
const MaxPlayers = 2

// Room is a two-player game session. Players share the same seed and first
// click, but each holds a private board copy stored separately.
type Room struct {
	Code       RoomCode   `json:"code"`
	Difficulty Difficulty `json:"difficulty"`
	State      RoomState  `json:"state"`
	Players    []*Player  `json:"players"` // Ordered by join time, index 0 is the creator
	Seed       int64      `json:"-"`
	DrawCount  int        `json:"-"` // Draws consumed from the seeded stream
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	Winner     string     `json:"winner,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// GetPlayer returns the player with the given ID, or nil if not present
func (r *Room) GetPlayer(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other player, or nil if alone
func (r *Room) Opponent(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// Admin returns the room admin, or nil if none
func (r *Room) Admin() *Player {
	for _, p := range r.Players {
		if p.IsAdmin {
			return p
		}
	}
	return nil
}

// IsFull returns true if the room has reached capacity
func (r *Room) IsFull() bool {
	return len(r.Players) >= MaxPlayers
}

// AllReady returns true if the room is full and every player is ready
func (r *Room) AllReady() bool {
	if len(r.Players) < MaxPlayers {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// AllWantRematch returns true if every remaining player opted into a rematch
func (r *Room) AllWantRematch() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.WantsRematch {
			return false
		}
	}
	return true
}
