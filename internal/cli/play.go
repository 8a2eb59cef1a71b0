package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/minerace/minerace-go/internal/dependencies/clock"
	"github.com/minerace/minerace-go/internal/dependencies/random"
	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/services/solo"
)

func newPlayCmd() *cobra.Command {
	var (
		difficulty string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single-player game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(model.Difficulty(difficulty), seed)
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(model.DifficultyEasy), "Difficulty: easy, medium or hard")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Board seed (0 picks one at random)")
	return cmd
}

func runPlay(difficulty model.Difficulty, seed int64) error {
	rnd := random.New()
	if seed == 0 {
		seed = rnd.Seed()
	}

	game, err := solo.NewGame(difficulty, seed, clock.New())
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	program := tea.NewProgram(newTUIModel(game, rnd))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
