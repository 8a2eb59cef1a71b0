// Package board is the minesweeper board engine: seeded mine placement,
// adjacency counting, flood-fill reveal, win detection and progress. Pure
// functions over model.Board; the engine holds no state of its own.
package board

import (
	"math"

	"github.com/minerace/minerace-go/internal/model"
)

// Generate builds a board by drawing mine positions from the sequence until
// mineCount distinct cells are placed. No mine lands in the safe zone: the
// (safeRow, safeCol) cell and its up-to-8 neighbours, clipped to the grid.
// Deterministic given the same sequence state and safe coordinates.
func Generate(seq *Sequence, rows, cols, mineCount, safeRow, safeCol int) (*model.Board, error) {
	if rows <= 0 || cols <= 0 || mineCount < 0 {
		return nil, model.ErrInvalidBoard
	}
	b := model.NewBoard(rows, cols, mineCount)
	if !b.InBounds(safeRow, safeCol) {
		return nil, model.ErrInvalidBoard
	}

	// Rejection sampling terminates only if enough non-safe cells exist;
	// check up front rather than looping forever on a bad configuration.
	safeZone := safeZoneSize(b, safeRow, safeCol)
	if mineCount > rows*cols-safeZone {
		return nil, model.ErrTooManyMines
	}

	placed := 0
	for placed < mineCount {
		r := seq.Intn(rows)
		c := seq.Intn(cols)
		if b.Cells[r][c].IsMine {
			continue
		}
		if inSafeZone(r, c, safeRow, safeCol) {
			continue
		}
		b.Cells[r][c].IsMine = true
		placed++
	}

	countAdjacent(b)
	return b, nil
}

// FirstClick draws the shared first-click cell, continuing the sequence
func FirstClick(seq *Sequence, rows, cols int) (row, col int) {
	return seq.Intn(rows), seq.Intn(cols)
}

// FloodReveal returns a new board with a flood fill applied from (row, col).
// The caller's board is never mutated. The starting cell is revealed; cells
// with zero adjacent mines expand the fill into all 8 neighbours.
// Out-of-bounds, flagged and already-revealed cells are skipped, which also
// makes the operation idempotent.
func FloodReveal(b *model.Board, row, col int) *model.Board {
	next := b.Clone()
	if !next.InBounds(row, col) || next.Cells[row][col].IsFlagged {
		return next
	}

	type pos struct{ r, c int }
	stack := []pos{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := &next.Cells[p.r][p.c]
		if cell.IsRevealed || cell.IsFlagged {
			continue
		}
		cell.IsRevealed = true

		if cell.IsMine || cell.AdjacentMines != 0 {
			continue
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := p.r+dr, p.c+dc
				if next.InBounds(nr, nc) && !next.Cells[nr][nc].IsRevealed {
					stack = append(stack, pos{nr, nc})
				}
			}
		}
	}
	return next
}

// CheckWin returns true iff every non-mine cell is revealed.
// Flags play no part in the win condition.
func CheckWin(b *model.Board) bool {
	return b.RevealedNonMineCount() == b.SafeCellCount()
}

// Progress returns the percentage of safe cells revealed, rounded to the
// nearest integer. 100 exactly at win.
func Progress(b *model.Board) int {
	safe := b.SafeCellCount()
	if safe == 0 {
		return 0
	}
	return int(math.Round(100 * float64(b.RevealedNonMineCount()) / float64(safe)))
}

// inSafeZone reports Chebyshev distance <= 1 from the safe cell
func inSafeZone(r, c, safeRow, safeCol int) bool {
	dr := r - safeRow
	if dr < 0 {
		dr = -dr
	}
	dc := c - safeCol
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1
}

// safeZoneSize counts the safe cell and its in-bounds neighbours
func safeZoneSize(b *model.Board, safeRow, safeCol int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if b.InBounds(safeRow+dr, safeCol+dc) {
				count++
			}
		}
	}
	return count
}

// countAdjacent fills in AdjacentMines for every non-mine cell
func countAdjacent(b *model.Board) {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c].IsMine {
				continue
			}
			count := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if b.InBounds(r+dr, c+dc) && b.Cells[r+dr][c+dc].IsMine {
						count++
					}
				}
			}
			b.Cells[r][c].AdjacentMines = count
		}
	}
}
