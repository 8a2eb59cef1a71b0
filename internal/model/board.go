package model

// Cell is a single square on a minesweeper board
type Cell struct {
	IsMine        bool `json:"isMine"`
	IsRevealed    bool `json:"isRevealed"`
	IsFlagged     bool `json:"isFlagged"`
	AdjacentMines int  `json:"adjacentMines"` // 0..8, meaningless for mine cells
}

// Board is a rectangular minesweeper grid
type Board struct {
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	MineCount int      `json:"mineCount"`
	Cells     [][]Cell `json:"cells"` // Row-major: Cells[row][col]
}

// NewBoard creates an empty board of the given dimensions
func NewBoard(rows, cols, mineCount int) *Board {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Board{
		Rows:      rows,
		Cols:      cols,
		MineCount: mineCount,
		Cells:     cells,
	}
}

// InBounds returns true if the position is within the grid
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// Clone returns a deep copy of the board.
// Each player holds an independently mutable copy of the shared layout.
func (b *Board) Clone() *Board {
	cells := make([][]Cell, b.Rows)
	for r := range cells {
		cells[r] = make([]Cell, b.Cols)
		copy(cells[r], b.Cells[r])
	}
	return &Board{
		Rows:      b.Rows,
		Cols:      b.Cols,
		MineCount: b.MineCount,
		Cells:     cells,
	}
}

// RevealedNonMineCount returns the number of revealed safe cells
func (b *Board) RevealedNonMineCount() int {
	count := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell := b.Cells[r][c]
			if cell.IsRevealed && !cell.IsMine {
				count++
			}
		}
	}
	return count
}

// SafeCellCount returns the number of non-mine cells on the board
func (b *Board) SafeCellCount() int {
	return b.Rows*b.Cols - b.MineCount
}

// RevealAllMines reveals every mine cell in place.
// Used when a player detonates a mine so their final board shows the layout.
func (b *Board) RevealAllMines() {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c].IsMine {
				b.Cells[r][c].IsRevealed = true
			}
		}
	}
}
