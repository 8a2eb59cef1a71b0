package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/minerace/minerace-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code:       "ab12",
		Difficulty: model.DifficultyEasy,
		State:      model.RoomStateWaiting,
		Seed:       42,
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	got, err := s.storage.GetRoom(s.ctx, "ab12")
	s.Require().NoError(err)
	s.Equal(room, got)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "zzzz")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	room := &model.Room{Code: "ab12"}
	_ = s.storage.SaveRoom(s.ctx, room)

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ab12"))

	_, err := s.storage.GetRoom(s.ctx, "ab12")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ab12")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ab12"})

	exists, err = s.storage.RoomExists(s.ctx, "ab12")
	s.Require().NoError(err)
	s.True(exists)
}

// Board tests

func (s *StorageSuite) TestSaveAndGetBoard() {
	board := model.NewBoard(8, 8, 10)
	s.Require().NoError(s.storage.SaveBoard(s.ctx, "ab12", "player-1", board))

	got, err := s.storage.GetBoard(s.ctx, "ab12", "player-1")
	s.Require().NoError(err)
	s.Equal(board, got)
}

func (s *StorageSuite) TestGetBoardNotFound() {
	_, err := s.storage.GetBoard(s.ctx, "ab12", "player-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestBoardsAreKeyedPerPlayer() {
	one := model.NewBoard(8, 8, 10)
	two := model.NewBoard(8, 8, 10)
	two.Cells[0][0].IsRevealed = true

	_ = s.storage.SaveBoard(s.ctx, "ab12", "player-1", one)
	_ = s.storage.SaveBoard(s.ctx, "ab12", "player-2", two)

	got, err := s.storage.GetBoard(s.ctx, "ab12", "player-2")
	s.Require().NoError(err)
	s.True(got.Cells[0][0].IsRevealed)

	got, err = s.storage.GetBoard(s.ctx, "ab12", "player-1")
	s.Require().NoError(err)
	s.False(got.Cells[0][0].IsRevealed)
}

func (s *StorageSuite) TestDeleteBoardsForRoom() {
	_ = s.storage.SaveBoard(s.ctx, "ab12", "player-1", model.NewBoard(8, 8, 10))
	_ = s.storage.SaveBoard(s.ctx, "ab12", "player-2", model.NewBoard(8, 8, 10))
	_ = s.storage.SaveBoard(s.ctx, "cd34", "player-3", model.NewBoard(8, 8, 10))

	s.Require().NoError(s.storage.DeleteBoardsForRoom(s.ctx, "ab12"))

	_, err := s.storage.GetBoard(s.ctx, "ab12", "player-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
	_, err = s.storage.GetBoard(s.ctx, "ab12", "player-2")
	s.ErrorIs(err, model.ErrBoardNotFound)
	_, err = s.storage.GetBoard(s.ctx, "cd34", "player-3")
	s.NoError(err)
}

// Leaderboard tests

type LeaderboardSuite struct {
	suite.Suite
	board *Leaderboard
	ctx   context.Context
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardSuite))
}

func (s *LeaderboardSuite) SetupTest() {
	s.board = NewLeaderboard()
	s.ctx = context.Background()
}

func (s *LeaderboardSuite) TestRecordsWinsAndLosses() {
	_ = s.board.RecordWin(s.ctx, "alice", false)
	_ = s.board.RecordWin(s.ctx, "alice", true)
	_ = s.board.RecordLoss(s.ctx, "bob")

	top, err := s.board.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)

	s.Equal("alice", top[0].Name)
	s.Equal(2, top[0].Wins)
	s.Equal(1, top[0].ForfeitWins)
	s.Equal(0, top[0].Losses)

	s.Equal("bob", top[1].Name)
	s.Equal(1, top[1].Losses)
}

func (s *LeaderboardSuite) TestTopOrdersByWins() {
	_ = s.board.RecordWin(s.ctx, "bob", false)
	_ = s.board.RecordWin(s.ctx, "bob", false)
	_ = s.board.RecordWin(s.ctx, "alice", false)

	top, err := s.board.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal("bob", top[0].Name)
	s.Equal("alice", top[1].Name)
}

func (s *LeaderboardSuite) TestTopTruncates() {
	for _, name := range []string{"a", "b", "c", "d"} {
		_ = s.board.RecordWin(s.ctx, name, false)
	}

	top, err := s.board.Top(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(top, 2)
}
