package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
	"github.com/minerace/minerace-go/internal/services/board"
)

// StartGame begins the race: only the admin may start, and only with both
// players ready. The shared board is generated from the room's seeded
// stream, the shared first click is flood-revealed into each player's
// private copy, and the countdown begins.
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	switch room.State {
	case model.RoomStateCountdown, model.RoomStatePlaying:
		return model.ErrGameInProgress
	case model.RoomStateFinished:
		return nil
	}

	player := room.GetPlayer(playerID)
	if player == nil {
		return model.ErrNotInRoom
	}
	if !player.IsAdmin {
		return model.ErrNotAdmin
	}
	if !room.IsFull() {
		return model.ErrInsufficientPlayers
	}
	if room.State != model.RoomStateReady {
		// Both present but not all ready yet
		return nil
	}

	spec, err := room.Difficulty.Spec()
	if err != nil {
		return err
	}

	// Continue the room's draw stream where the last game left it, so a
	// rematch on the same seed still yields a fresh board.
	seq := board.NewSequenceAt(room.Seed, int64(room.DrawCount))
	firstRow, firstCol := board.FirstClick(seq, spec.Rows, spec.Cols)
	shared, err := board.Generate(seq, spec.Rows, spec.Cols, spec.MineCount, firstRow, firstCol)
	if err != nil {
		return fmt.Errorf("generate board for room %s: %w", code, err)
	}
	room.DrawCount = int(seq.Counter())

	// Each player gets a private copy with the shared first click already
	// revealed. FloodReveal clones, so the copies are independent.
	for _, p := range room.Players {
		opened := board.FloodReveal(shared, firstRow, firstCol)
		if err := c.storage.SaveBoard(ctx, code, p.ID, opened); err != nil {
			return err
		}
	}

	room.State = model.RoomStateCountdown
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventCountdownStarted, protocol.CountdownPayload{
		SecondsLeft: c.cfg.CountdownSeconds,
	}))
	c.startCountdown(code)
	return nil
}

// startCountdown drives the countdown ticks. With a positive tick interval
// the ticks run on a goroutine and are handed back to the dispatcher so
// they execute on the same loop as inbound messages. A non-positive
// interval runs them inline.
func (c *Controller) startCountdown(code model.RoomCode) {
	if c.cfg.TickInterval <= 0 {
		for remaining := c.cfg.CountdownSeconds - 1; remaining >= 0; remaining-- {
			c.countdownTick(code, remaining)
		}
		return
	}

	cancel := make(chan struct{})
	c.mu.Lock()
	c.countdowns[code] = cancel
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.cfg.TickInterval)
		defer ticker.Stop()
		for remaining := c.cfg.CountdownSeconds - 1; remaining >= 0; remaining-- {
			select {
			case <-cancel:
				return
			case <-ticker.C:
			}
			r := remaining
			c.dispatch.Dispatch(func() {
				c.countdownTick(code, r)
			})
		}
	}()
}

// countdownTick emits one countdown update, or at zero flips the room to
// playing and deals each player their board.
func (c *Controller) countdownTick(code model.RoomCode, remaining int) {
	ctx := context.Background()
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil || room.State != model.RoomStateCountdown {
		// Room vanished or the countdown was aborted by a leave
		return
	}

	if remaining > 0 {
		c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventCountdownUpdate, protocol.CountdownPayload{
			SecondsLeft: remaining,
		}))
		return
	}

	c.clearCountdown(code)
	now := c.clock.Now()
	room.State = model.RoomStatePlaying
	room.StartedAt = &now
	room.UpdatedAt = now
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logger.Error("failed to save room at game start", slog.String("room", string(code)), slog.Any("error", err))
		return
	}

	for _, p := range room.Players {
		b, err := c.storage.GetBoard(ctx, code, p.ID)
		if err != nil {
			c.logger.Error("missing board at game start", slog.String("room", string(code)), slog.String("player", string(p.ID)), slog.Any("error", err))
			continue
		}
		c.notifier.Unicast(p.ID, protocol.MustNewMessage(protocol.EventGameStarted, protocol.GameStartedPayload{Board: b}))
	}
}

// RevealCell applies a reveal to the mover's private board. Mine hits end
// the game in the opponent's favour; clearing the last safe cell wins it.
// Anything out of turn order or on a flagged cell is a silent no-op.
func (c *Controller) RevealCell(ctx context.Context, code model.RoomCode, playerID model.PlayerID, row, col int) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil || room.State != model.RoomStatePlaying {
		return nil
	}
	player := room.GetPlayer(playerID)
	if player == nil {
		return nil
	}
	b, err := c.storage.GetBoard(ctx, code, playerID)
	if err != nil {
		return nil
	}
	if !b.InBounds(row, col) {
		return nil
	}
	cell := b.Cells[row][col]
	if cell.IsRevealed || cell.IsFlagged {
		return nil
	}

	if cell.IsMine {
		exploded := b.Clone()
		exploded.Cells[row][col].IsRevealed = true
		exploded.RevealAllMines()
		if err := c.storage.SaveBoard(ctx, code, playerID, exploded); err != nil {
			return err
		}

		winner := room.Opponent(playerID)
		room.State = model.RoomStateFinished
		room.Winner = string(winner.ID)
		room.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return err
		}

		c.notifier.Unicast(playerID, protocol.MustNewMessage(protocol.EventBoardUpdate, protocol.BoardUpdatePayload{
			Board:    exploded,
			Progress: board.Progress(exploded),
		}))
		c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventGameOver, protocol.GameOverPayload{
			WinnerID:   winner.ID,
			WinnerName: winner.Name,
			LoserID:    player.ID,
			LoserName:  player.Name,
		}))
		c.recordResult(ctx, winner.Name, player.Name, false)
		return nil
	}

	opened := board.FloodReveal(b, row, col)
	if err := c.storage.SaveBoard(ctx, code, playerID, opened); err != nil {
		return err
	}

	c.notifier.Unicast(playerID, protocol.MustNewMessage(protocol.EventBoardUpdate, protocol.BoardUpdatePayload{
		Board:    opened,
		Progress: board.Progress(opened),
	}))

	if board.CheckWin(opened) {
		room.State = model.RoomStateFinished
		room.Winner = string(player.ID)
		room.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return err
		}
		c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventGameWon, protocol.GameWonPayload{
			WinnerID:   player.ID,
			WinnerName: player.Name,
		}))
		if loser := room.Opponent(playerID); loser != nil {
			c.recordResult(ctx, player.Name, loser.Name, false)
		}
		return nil
	}

	c.notifier.Broadcast(code, protocol.MustNewMessage(protocol.EventProgressUpdate, protocol.ProgressUpdatePayload{
		Progress: c.progressByPlayer(ctx, room),
	}))
	return nil
}

// FlagCell toggles a flag on an unrevealed cell. Flags are private: only
// the mover sees the update, the opponent's view never shows them.
func (c *Controller) FlagCell(ctx context.Context, code model.RoomCode, playerID model.PlayerID, row, col int) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil || room.State != model.RoomStatePlaying {
		return nil
	}
	if room.GetPlayer(playerID) == nil {
		return nil
	}
	b, err := c.storage.GetBoard(ctx, code, playerID)
	if err != nil {
		return nil
	}
	if !b.InBounds(row, col) || b.Cells[row][col].IsRevealed {
		return nil
	}

	flagged := b.Clone()
	flagged.Cells[row][col].IsFlagged = !flagged.Cells[row][col].IsFlagged
	if err := c.storage.SaveBoard(ctx, code, playerID, flagged); err != nil {
		return err
	}

	c.notifier.Unicast(playerID, protocol.MustNewMessage(protocol.EventBoardUpdate, protocol.BoardUpdatePayload{
		Board:    flagged,
		Progress: board.Progress(flagged),
	}))
	return nil
}

// progressByPlayer snapshots every player's reveal percentage
func (c *Controller) progressByPlayer(ctx context.Context, room *model.Room) map[model.PlayerID]int {
	progress := make(map[model.PlayerID]int, len(room.Players))
	for _, p := range room.Players {
		b, err := c.storage.GetBoard(ctx, room.Code, p.ID)
		if err != nil {
			progress[p.ID] = 0
			continue
		}
		progress[p.ID] = board.Progress(b)
	}
	return progress
}
