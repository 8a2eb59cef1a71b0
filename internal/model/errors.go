package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrAlreadyInRoom       = errors.New("player is already in room")
	ErrNotInRoom           = errors.New("player is not in room")
	ErrNotAdmin            = errors.New("player is not the room admin")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrInsufficientPlayers = errors.New("need two players to start")

	// Board errors
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board dimensions")
	ErrTooManyMines  = errors.New("mine count exceeds available cells")

	// Difficulty errors
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
