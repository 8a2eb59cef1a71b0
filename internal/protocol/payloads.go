package protocol

import (
	"github.com/minerace/minerace-go/internal/model"
)

// Client -> server payloads

// CreateRoomPayload asks for a fresh room
type CreateRoomPayload struct {
	Difficulty model.Difficulty `json:"difficulty"`
	PlayerName string           `json:"playerName"`
}

// JoinRoomPayload joins an existing room by code
type JoinRoomPayload struct {
	RoomID     model.RoomCode `json:"roomId"`
	PlayerName string         `json:"playerName"`
}

// RoomRefPayload references a room for ready/start/playAgain/returnToLobby
type RoomRefPayload struct {
	RoomID model.RoomCode `json:"roomId"`
}

// CellActionPayload is a reveal or flag on a cell
type CellActionPayload struct {
	RoomID model.RoomCode `json:"roomId"`
	Row    int            `json:"row"`
	Col    int            `json:"col"`
}

// LeaderboardQueryPayload asks for the top N ranked names
type LeaderboardQueryPayload struct {
	Limit int `json:"limit"`
}

// Server -> client payloads

// RoomPayload carries the full room snapshot. Used by roomCreated,
// roomJoined, playerJoined, playerReady, gameReady, gameWaiting and
// gameReset, which all just show the latest lobby state.
type RoomPayload struct {
	Room *model.Room `json:"room"`
	// You is set on direct replies so the client learns its own ID
	You model.PlayerID `json:"you,omitempty"`
}

// CountdownPayload carries countdown progress
type CountdownPayload struct {
	SecondsLeft int `json:"secondsLeft"`
}

// GameStartedPayload carries a player's own post-reveal board at game start
type GameStartedPayload struct {
	Board *model.Board `json:"board"`
}

// BoardUpdatePayload is a player's own board after one of their moves
type BoardUpdatePayload struct {
	Board    *model.Board `json:"board"`
	Progress int          `json:"progress"`
}

// ProgressUpdatePayload maps each player to their reveal percentage
type ProgressUpdatePayload struct {
	Progress map[model.PlayerID]int `json:"progress"`
}

// GameOverPayload announces a mine hit or forfeit
type GameOverPayload struct {
	WinnerID   model.PlayerID `json:"winnerId"`
	WinnerName string         `json:"winnerName"`
	LoserID    model.PlayerID `json:"loserId"`
	LoserName  string         `json:"loserName"`
	ByForfeit  bool           `json:"byForfeit"`
}

// GameWonPayload announces a cleared board
type GameWonPayload struct {
	WinnerID   model.PlayerID `json:"winnerId"`
	WinnerName string         `json:"winnerName"`
}

// PlayAgainStatusPayload reports who has opted into a rematch so far
type PlayAgainStatusPayload struct {
	WantsRematch map[model.PlayerID]bool `json:"wantsToPlayAgain"`
}

// PlayerLeftPayload notifies the remaining player of a departure
type PlayerLeftPayload struct {
	Room       *model.Room    `json:"room"`
	PlayerID   model.PlayerID `json:"playerId"`
	PlayerName string         `json:"playerName"`
}

// LeaderboardPayload carries ranked win/loss entries
type LeaderboardPayload struct {
	Entries []model.LeaderboardEntry `json:"entries"`
}

// ErrorPayload carries a human-readable error message
type ErrorPayload struct {
	Message string `json:"message"`
}
