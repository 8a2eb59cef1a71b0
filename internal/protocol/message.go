// Package protocol defines the wire format spoken over the websocket: a
// small JSON envelope with a named event type and a typed payload.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minerace/minerace-go/internal/model"
)

// Message is the envelope for every event in both directions
type Message struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EventType names an event on the wire
type EventType string

// Client -> server events
const (
	EventCreateRoom     EventType = "createRoom"
	EventJoinRoom       EventType = "joinRoom"
	EventPlayerReady    EventType = "playerReady"
	EventStartGame      EventType = "startGame"
	EventCellClick      EventType = "cellClick"
	EventCellFlag       EventType = "cellFlag"
	EventPlayAgain      EventType = "playAgain"
	EventReturnToLobby  EventType = "returnToLobby"
	EventPing           EventType = "ping"
	EventGetLeaderboard EventType = "getLeaderboard"
)

// Server -> client events. EventPlayerReady is used in both directions:
// inbound it toggles the flag, outbound it carries the updated room.
const (
	EventRoomCreated       EventType = "roomCreated"
	EventRoomJoined        EventType = "roomJoined"
	EventPlayerJoined      EventType = "playerJoined"
	EventGameReady         EventType = "gameReady"
	EventGameWaiting       EventType = "gameWaiting"
	EventCountdownStarted  EventType = "countdownStarted"
	EventCountdownUpdate   EventType = "countdownUpdate"
	EventGameStarted       EventType = "gameStarted"
	EventBoardUpdate       EventType = "boardUpdate"
	EventProgressUpdate    EventType = "progressUpdate"
	EventGameOver          EventType = "gameOver"
	EventGameWon           EventType = "gameWon"
	EventGameReset         EventType = "gameReset"
	EventPlayAgainStatus   EventType = "playAgainStatus"
	EventMovedToNewRoom    EventType = "movedToNewRoom"
	EventReturnedToLobby   EventType = "returnedToLobby"
	EventPlayerLeft        EventType = "playerLeft"
	EventLeaderboardResult EventType = "leaderboardResult"
	EventPong              EventType = "pong"
	EventError             EventType = "error"
)

// NewMessage builds a message with a marshalled payload
func NewMessage(t EventType, payload any) (*Message, error) {
	msg := &Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", t, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage builds a message, panicking on marshal failure.
// Only for payload types the server itself constructs.
func MustNewMessage(t EventType, payload any) *Message {
	msg, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// NewError builds an error event with a human-readable message
func NewError(message string) *Message {
	return MustNewMessage(EventError, ErrorPayload{Message: message})
}

// NewErrorFromErr builds an error event from a domain error
func NewErrorFromErr(err error) *Message {
	return NewError(userMessage(err))
}

// ParsePayload decodes a message payload into the given type
func ParsePayload[T any](msg *Message) (T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return payload, errors.New("missing payload")
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return payload, nil
}

// Encode serialises the message for the wire
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a wire frame into a message
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, errors.New("message has no type")
	}
	return &msg, nil
}

// userMessage maps domain errors to the text shown to players
func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, model.ErrRoomFull):
		return "Room is full"
	case errors.Is(err, model.ErrNotAdmin):
		return "Only the room admin can start the game"
	case errors.Is(err, model.ErrInsufficientPlayers):
		return "Need two players to start"
	case errors.Is(err, model.ErrUnknownDifficulty):
		return "Unknown difficulty"
	default:
		return "Something went wrong"
	}
}
