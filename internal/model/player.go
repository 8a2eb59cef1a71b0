package model

import "time"

// PlayerID uniquely identifies a player. It is the transport session
// identifier of the player's connection, so a player's identity lives and
// dies with their socket.
type PlayerID string

// Player represents a participant in a room. The room owns its players.
type Player struct {
	ID           PlayerID `json:"id"`
	Name         string   `json:"name"`
	Ready        bool     `json:"ready"`
	IsAdmin      bool     `json:"isAdmin"`
	WantsRematch bool     `json:"wantsToPlayAgain"`

	JoinedAt time.Time `json:"-"`
}
