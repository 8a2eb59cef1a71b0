// Package solo is the single-player form of the game engine used by the
// terminal client. Same generation and reveal rules as the two-player race,
// no room coordination.
package solo

import (
	"time"

	"github.com/minerace/minerace-go/internal/dependencies/clock"
	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/services/board"
)

// State is where a solo game stands
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game is a single-player minesweeper game. The board is generated lazily
// on the first reveal so that the first click is always safe.
type Game struct {
	difficulty model.Difficulty
	spec       model.DifficultySpec
	seed       int64
	clock      clock.Clock

	board      *model.Board
	state      State
	started    bool
	startedAt  time.Time
	finishedAt time.Time
}

// NewGame creates a game for the given difficulty and seed
func NewGame(difficulty model.Difficulty, seed int64, clk clock.Clock) (*Game, error) {
	spec, err := difficulty.Spec()
	if err != nil {
		return nil, err
	}
	return &Game{
		difficulty: difficulty,
		spec:       spec,
		seed:       seed,
		clock:      clk,
		board:      model.NewBoard(spec.Rows, spec.Cols, spec.MineCount),
		state:      StatePlaying,
	}, nil
}

// Board returns the current board. Before the first reveal it is blank.
func (g *Game) Board() *model.Board {
	return g.board
}

// State returns the game state
func (g *Game) State() State {
	return g.state
}

// Difficulty returns the game's difficulty
func (g *Game) Difficulty() model.Difficulty {
	return g.difficulty
}

// Progress returns the percentage of safe cells revealed
func (g *Game) Progress() int {
	return board.Progress(g.board)
}

// Elapsed returns time spent since the first reveal. The timer stops when
// the game ends.
func (g *Game) Elapsed() time.Duration {
	if !g.started {
		return 0
	}
	if g.state != StatePlaying {
		return g.finishedAt.Sub(g.startedAt)
	}
	return g.clock.Since(g.startedAt)
}

// Reveal opens a cell. The first reveal generates the board with the
// clicked cell's neighbourhood kept clear and starts the timer. Reveals on
// flagged or already revealed cells do nothing. A mine ends the game.
func (g *Game) Reveal(row, col int) {
	if g.state != StatePlaying || !g.board.InBounds(row, col) {
		return
	}

	if !g.started {
		seq := board.NewSequence(g.seed)
		generated, err := board.Generate(seq, g.spec.Rows, g.spec.Cols, g.spec.MineCount, row, col)
		if err != nil {
			return
		}
		g.board = generated
		g.started = true
		g.startedAt = g.clock.Now()
	}

	cell := g.board.Cells[row][col]
	if cell.IsRevealed || cell.IsFlagged {
		return
	}

	if cell.IsMine {
		g.board.Cells[row][col].IsRevealed = true
		g.board.RevealAllMines()
		g.state = StateLost
		g.finishedAt = g.clock.Now()
		return
	}

	g.board = board.FloodReveal(g.board, row, col)
	if board.CheckWin(g.board) {
		g.state = StateWon
		g.finishedAt = g.clock.Now()
	}
}

// Flag toggles a flag on an unrevealed cell. Before the first reveal there
// is nothing to flag yet.
func (g *Game) Flag(row, col int) {
	if g.state != StatePlaying || !g.started || !g.board.InBounds(row, col) {
		return
	}
	if g.board.Cells[row][col].IsRevealed {
		return
	}
	g.board.Cells[row][col].IsFlagged = !g.board.Cells[row][col].IsFlagged
}

// Restart begins a fresh game on the same difficulty with a new seed
func (g *Game) Restart(seed int64) {
	g.seed = seed
	g.board = model.NewBoard(g.spec.Rows, g.spec.Cols, g.spec.MineCount)
	g.state = StatePlaying
	g.started = false
	g.startedAt = time.Time{}
	g.finishedAt = time.Time{}
}
