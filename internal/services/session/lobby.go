package session

import (
	"context"
	"log/slog"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
)

// ToggleReady flips a player's ready flag and moves the room between
// waiting and ready accordingly.
func (c *Controller) ToggleReady(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	if room.State != model.RoomStateWaiting && room.State != model.RoomStateReady {
		return nil
	}
	player := room.GetPlayer(playerID)
	if player == nil {
		return model.ErrNotInRoom
	}

	player.Ready = !player.Ready
	room.UpdatedAt = c.clock.Now()

	prev := room.State
	if room.AllReady() {
		room.State = model.RoomStateReady
	} else {
		room.State = model.RoomStateWaiting
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventPlayerReady, protocol.RoomPayload{Room: room}))
	if room.State != prev {
		event := protocol.EventGameWaiting
		if room.State == model.RoomStateReady {
			event = protocol.EventGameReady
		}
		c.notifier.Broadcast(code, protocol.MustNewMessage(event, protocol.RoomPayload{Room: room}))
	}
	return nil
}

// PlayAgain opts a player into a rematch. Once both players opt in, the
// room resets with a fresh seed and cleared boards.
func (c *Controller) PlayAgain(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	if room.State != model.RoomStateFinished {
		return nil
	}
	player := room.GetPlayer(playerID)
	if player == nil {
		return model.ErrNotInRoom
	}

	player.WantsRematch = true
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	status := make(map[model.PlayerID]bool, len(room.Players))
	for _, p := range room.Players {
		status[p.ID] = p.WantsRematch
	}
	c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventPlayAgainStatus, protocol.PlayAgainStatusPayload{WantsRematch: status}))

	if room.IsFull() && room.AllWantRematch() {
		reset, err := c.registry.Reset(ctx, code)
		if err != nil {
			return err
		}
		c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventGameReset, protocol.RoomPayload{Room: reset}))
	}
	return nil
}

// ReturnToLobby removes the player from their room. A player who had opted
// into a rematch before the opponent bailed is instead split into a fresh
// room of their own, keeping their opt-in meaningful; that room is
// returned so the gateway can move the connection's membership.
func (c *Controller) ReturnToLobby(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	player := room.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrNotInRoom
	}

	name := player.Name
	difficulty := room.Difficulty
	keepPlaying := room.State == model.RoomStateFinished && player.WantsRematch

	if err := c.leave(ctx, room, playerID); err != nil {
		return nil, err
	}

	if keepPlaying {
		fresh, err := c.registry.CreateRoom(ctx, difficulty, playerID, name)
		if err != nil {
			return nil, err
		}
		c.notifier.Unicast(playerID, protocol.MustNewMessage(protocol.EventMovedToNewRoom, protocol.RoomPayload{Room: fresh, You: playerID}))
		return fresh, nil
	}

	c.notifier.Unicast(playerID, protocol.MustNewMessage(protocol.EventReturnedToLobby, nil))
	return nil, nil
}

// Disconnect handles a dropped connection: an implicit leave. Mid-game it
// hands the remaining player a win by forfeit.
func (c *Controller) Disconnect(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		// Room already gone, nothing to clean up
		return nil
	}
	if room.GetPlayer(playerID) == nil {
		return nil
	}
	return c.leave(ctx, room, playerID)
}

// leave removes a player from a room, resolving any in-flight game first.
// A live countdown is cancelled; a live game becomes a forfeit win for the
// opponent. The remaining player, if any, is notified.
func (c *Controller) leave(ctx context.Context, room *model.Room, playerID model.PlayerID) error {
	c.cancelCountdown(room.Code)

	leaver := room.GetPlayer(playerID)
	if room.State == model.RoomStatePlaying {
		if winner := room.Opponent(playerID); winner != nil {
			room.State = model.RoomStateFinished
			room.Winner = string(winner.ID)
			room.UpdatedAt = c.clock.Now()
			if err := c.storage.SaveRoom(ctx, room); err != nil {
				return err
			}
			c.notifier.Broadcast(room.Code, protocol.MustNewMessage(protocol.EventGameOver, protocol.GameOverPayload{
				WinnerID:   winner.ID,
				WinnerName: winner.Name,
				LoserID:    leaver.ID,
				LoserName:  leaver.Name,
				ByForfeit:  true,
			}))
			c.recordResult(ctx, winner.Name, leaver.Name, true)
		}
	}

	remaining, err := c.registry.RemovePlayer(ctx, room.Code, playerID)
	if err != nil {
		return err
	}
	if remaining == nil {
		return nil
	}

	// A lone player can no longer be ready or mid-countdown
	if remaining.State == model.RoomStateReady || remaining.State == model.RoomStateCountdown {
		remaining.State = model.RoomStateWaiting
		for _, p := range remaining.Players {
			p.Ready = false
		}
		remaining.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveRoom(ctx, remaining); err != nil {
			return err
		}
	}

	c.notifier.Broadcast(room.Code, protocol.MustNewMessage(protocol.EventPlayerLeft, protocol.PlayerLeftPayload{
		Room:       remaining,
		PlayerID:   playerID,
		PlayerName: leaver.Name,
	}))
	return nil
}

// recordResult writes a finished race to the leaderboard. Failures are
// logged, never surfaced to players.
func (c *Controller) recordResult(ctx context.Context, winnerName, loserName string, byForfeit bool) {
	if c.leaderboard == nil {
		return
	}
	if err := c.leaderboard.RecordWin(ctx, winnerName, byForfeit); err != nil {
		c.logger.Error("failed to record win", slog.String("player", winnerName), slog.Any("error", err))
	}
	if err := c.leaderboard.RecordLoss(ctx, loserName); err != nil {
		c.logger.Error("failed to record loss", slog.String("player", loserName), slog.Any("error", err))
	}
}
