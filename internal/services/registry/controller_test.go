package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/minerace/minerace-go/internal/dependencies/mocks"
	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/storage/memory"
	"github.com/minerace/minerace-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite

	ctx        context.Context
	store      *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.store, s.clock, s.random, testutil.NopLogger())
}

func (s *ControllerSuite) createRoom(code string, seed int64) *model.Room {
	s.random.QueueString(code)
	s.random.QueueSeed(seed)
	room, err := s.controller.CreateRoom(s.ctx, model.DifficultyEasy, "p1", "Alice")
	s.Require().NoError(err)
	return room
}

func (s *ControllerSuite) TestCreateRoom() {
	room := s.createRoom("ab12", 42)

	s.Equal(model.RoomCode("ab12"), room.Code)
	s.Equal(model.DifficultyEasy, room.Difficulty)
	s.Equal(model.RoomStateWaiting, room.State)
	s.Equal(int64(42), room.Seed)
	s.Require().Len(room.Players, 1)
	s.Equal(model.PlayerID("p1"), room.Players[0].ID)
	s.Equal("Alice", room.Players[0].Name)
	s.True(room.Players[0].IsAdmin)

	stored, err := s.store.GetRoom(s.ctx, "ab12")
	s.Require().NoError(err)
	s.Equal(room.Code, stored.Code)
}

func (s *ControllerSuite) TestCreateRoomUnknownDifficulty() {
	_, err := s.controller.CreateRoom(s.ctx, model.Difficulty("impossible"), "p1", "Alice")
	s.ErrorIs(err, model.ErrUnknownDifficulty)
}

func (s *ControllerSuite) TestCreateRoomRegeneratesCodeOnCollision() {
	s.createRoom("ab12", 1)

	s.random.QueueString("ab12", "cd34")
	s.random.QueueSeed(2)
	room, err := s.controller.CreateRoom(s.ctx, model.DifficultyMedium, "p2", "Bob")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("cd34"), room.Code)
}

func (s *ControllerSuite) TestJoinRoom() {
	s.createRoom("ab12", 1)

	room, err := s.controller.JoinRoom(s.ctx, "ab12", "p2", "Bob")
	s.Require().NoError(err)
	s.Require().Len(room.Players, 2)
	s.Equal(model.PlayerID("p2"), room.Players[1].ID)
	s.False(room.Players[1].IsAdmin)
	s.True(room.IsFull())
}

func (s *ControllerSuite) TestJoinRoomNotFound() {
	_, err := s.controller.JoinRoom(s.ctx, "zzzz", "p2", "Bob")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestJoinRoomFull() {
	s.createRoom("ab12", 1)
	_, err := s.controller.JoinRoom(s.ctx, "ab12", "p2", "Bob")
	s.Require().NoError(err)

	_, err = s.controller.JoinRoom(s.ctx, "ab12", "p3", "Carol")
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ControllerSuite) TestJoinRoomTwice() {
	s.createRoom("ab12", 1)
	_, err := s.controller.JoinRoom(s.ctx, "ab12", "p1", "Alice")
	s.ErrorIs(err, model.ErrAlreadyInRoom)
}

func (s *ControllerSuite) TestRemovePlayerPromotesAdmin() {
	s.createRoom("ab12", 1)
	_, err := s.controller.JoinRoom(s.ctx, "ab12", "p2", "Bob")
	s.Require().NoError(err)

	room, err := s.controller.RemovePlayer(s.ctx, "ab12", "p1")
	s.Require().NoError(err)
	s.Require().NotNil(room)
	s.Require().Len(room.Players, 1)
	s.Equal(model.PlayerID("p2"), room.Players[0].ID)
	s.True(room.Players[0].IsAdmin)
}

func (s *ControllerSuite) TestRemoveLastPlayerDeletesRoom() {
	s.createRoom("ab12", 1)

	room, err := s.controller.RemovePlayer(s.ctx, "ab12", "p1")
	s.Require().NoError(err)
	s.Nil(room)

	_, err = s.store.GetRoom(s.ctx, "ab12")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestRemovePlayerNotInRoom() {
	s.createRoom("ab12", 1)
	_, err := s.controller.RemovePlayer(s.ctx, "ab12", "p9")
	s.ErrorIs(err, model.ErrNotInRoom)
}

func (s *ControllerSuite) TestRemovePlayerDeletesBoard() {
	room := s.createRoom("ab12", 1)
	board := model.NewBoard(8, 8, 10)
	s.Require().NoError(s.store.SaveBoard(s.ctx, room.Code, "p1", board))

	_, err := s.controller.RemovePlayer(s.ctx, "ab12", "p1")
	s.Require().NoError(err)

	_, err = s.store.GetBoard(s.ctx, "ab12", "p1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *ControllerSuite) TestReset() {
	room := s.createRoom("ab12", 1)
	_, err := s.controller.JoinRoom(s.ctx, "ab12", "p2", "Bob")
	s.Require().NoError(err)

	// Simulate a finished game
	now := s.clock.Now()
	room, err = s.store.GetRoom(s.ctx, "ab12")
	s.Require().NoError(err)
	room.State = model.RoomStateFinished
	room.Winner = "p1"
	room.StartedAt = &now
	room.DrawCount = 17
	for _, p := range room.Players {
		p.Ready = true
		p.WantsRematch = true
	}
	s.Require().NoError(s.store.SaveRoom(s.ctx, room))
	s.Require().NoError(s.store.SaveBoard(s.ctx, room.Code, "p1", model.NewBoard(8, 8, 10)))

	s.random.QueueSeed(99)
	reset, err := s.controller.Reset(s.ctx, "ab12")
	s.Require().NoError(err)

	s.Equal(model.RoomStateWaiting, reset.State)
	s.Equal(int64(99), reset.Seed)
	s.Zero(reset.DrawCount)
	s.Nil(reset.StartedAt)
	s.Empty(reset.Winner)
	for _, p := range reset.Players {
		s.False(p.Ready)
		s.False(p.WantsRematch)
	}

	_, err = s.store.GetBoard(s.ctx, "ab12", "p1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}
