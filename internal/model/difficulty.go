package model

// Difficulty selects a fixed board configuration
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultySpec is the board configuration for a difficulty
type DifficultySpec struct {
	Rows      int
	Cols      int
	MineCount int
}

// Fixed lookup table, shared by server and solo client.
// Dimensions are not user-configurable.
var difficultySpecs = map[Difficulty]DifficultySpec{
	DifficultyEasy:   {Rows: 8, Cols: 8, MineCount: 10},
	DifficultyMedium: {Rows: 16, Cols: 16, MineCount: 40},
	DifficultyHard:   {Rows: 20, Cols: 20, MineCount: 100},
}

// Spec returns the board configuration for this difficulty
func (d Difficulty) Spec() (DifficultySpec, error) {
	spec, ok := difficultySpecs[d]
	if !ok {
		return DifficultySpec{}, ErrUnknownDifficulty
	}
	return spec, nil
}

// Valid returns true if the difficulty is one of the known values
func (d Difficulty) Valid() bool {
	_, ok := difficultySpecs[d]
	return ok
}
