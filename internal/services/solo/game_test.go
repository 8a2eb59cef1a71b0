package solo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/minerace/minerace-go/internal/dependencies/mocks"
	"github.com/minerace/minerace-go/internal/model"
)

type GameSuite struct {
	suite.Suite

	clock *mocks.MockClock
}

func (s *GameSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func (s *GameSuite) newGame(seed int64) *Game {
	g, err := NewGame(model.DifficultyEasy, seed, s.clock)
	s.Require().NoError(err)
	return g
}

// findCell returns the first unrevealed cell matching the predicate
func (s *GameSuite) findCell(b *model.Board, pred func(model.Cell) bool) (int, int) {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if !b.Cells[r][c].IsRevealed && pred(b.Cells[r][c]) {
				return r, c
			}
		}
	}
	s.Require().FailNow("no matching cell on board")
	return -1, -1
}

func (s *GameSuite) TestNewGameUnknownDifficulty() {
	_, err := NewGame(model.Difficulty("nightmare"), 1, s.clock)
	s.ErrorIs(err, model.ErrUnknownDifficulty)
}

func (s *GameSuite) TestBoardBlankBeforeFirstReveal() {
	g := s.newGame(42)
	s.Equal(StatePlaying, g.State())
	s.Zero(g.Board().RevealedNonMineCount())
	s.Zero(g.Progress())
	s.Zero(g.Elapsed())
}

func (s *GameSuite) TestFirstRevealIsAlwaysSafe() {
	for seed := int64(0); seed < 20; seed++ {
		g := s.newGame(seed)
		g.Reveal(3, 3)
		s.Equal(StatePlaying, g.State())
		s.True(g.Board().Cells[3][3].IsRevealed)
		s.False(g.Board().Cells[3][3].IsMine)
	}
}

func (s *GameSuite) TestSameSeedSameBoard() {
	a := s.newGame(99)
	b := s.newGame(99)
	a.Reveal(0, 0)
	b.Reveal(0, 0)
	s.Equal(a.Board(), b.Board())
}

func (s *GameSuite) TestTimerStartsOnFirstReveal() {
	g := s.newGame(42)
	s.clock.Advance(time.Minute)
	g.Reveal(3, 3)
	s.clock.Advance(10 * time.Second)
	s.Equal(10*time.Second, g.Elapsed())
}

func (s *GameSuite) TestRevealMineLoses() {
	g := s.newGame(42)
	g.Reveal(3, 3)
	row, col := s.findCell(g.Board(), func(c model.Cell) bool { return c.IsMine })

	s.clock.Advance(5 * time.Second)
	g.Reveal(row, col)

	s.Equal(StateLost, g.State())
	s.Equal(5*time.Second, g.Elapsed())

	// All mines shown, timer frozen
	mines := 0
	for r := 0; r < g.Board().Rows; r++ {
		for c := 0; c < g.Board().Cols; c++ {
			if g.Board().Cells[r][c].IsMine {
				s.True(g.Board().Cells[r][c].IsRevealed)
				mines++
			}
		}
	}
	s.Equal(g.Board().MineCount, mines)

	s.clock.Advance(time.Hour)
	s.Equal(5*time.Second, g.Elapsed())

	// No further moves accepted
	before := g.Board().RevealedNonMineCount()
	g.Reveal(0, 0)
	s.Equal(before, g.Board().RevealedNonMineCount())
}

func (s *GameSuite) TestRevealAllSafeCellsWins() {
	g := s.newGame(42)
	g.Reveal(3, 3)
	for g.State() == StatePlaying {
		row, col := s.findCell(g.Board(), func(c model.Cell) bool { return !c.IsMine })
		g.Reveal(row, col)
	}
	s.Equal(StateWon, g.State())
	s.Equal(100, g.Progress())
}

func (s *GameSuite) TestFlagBlocksReveal() {
	g := s.newGame(42)
	g.Reveal(3, 3)
	row, col := s.findCell(g.Board(), func(c model.Cell) bool { return c.IsMine })

	g.Flag(row, col)
	s.True(g.Board().Cells[row][col].IsFlagged)

	g.Reveal(row, col)
	s.Equal(StatePlaying, g.State())
	s.False(g.Board().Cells[row][col].IsRevealed)

	g.Flag(row, col)
	s.False(g.Board().Cells[row][col].IsFlagged)
}

func (s *GameSuite) TestFlagBeforeFirstRevealIsNoOp() {
	g := s.newGame(42)
	g.Flag(0, 0)
	s.False(g.Board().Cells[0][0].IsFlagged)
}

func (s *GameSuite) TestRestart() {
	g := s.newGame(42)
	g.Reveal(3, 3)
	row, col := s.findCell(g.Board(), func(c model.Cell) bool { return c.IsMine })
	g.Reveal(row, col)
	s.Equal(StateLost, g.State())

	g.Restart(43)
	s.Equal(StatePlaying, g.State())
	s.Zero(g.Board().RevealedNonMineCount())
	s.Zero(g.Elapsed())

	g.Reveal(3, 3)
	s.Equal(StatePlaying, g.State())
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}
