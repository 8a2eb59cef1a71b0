package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minerace/minerace-go/internal/dependencies/random"
	"github.com/minerace/minerace-go/internal/services/solo"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("231"))
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	mineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	lostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	numberStyles = map[int]lipgloss.Style{
		1: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		2: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		3: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		4: lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		5: lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		6: lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
		7: lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
		8: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// tickMsg drives the elapsed-time display
type tickMsg time.Time

// tuiModel is the bubbletea model for a solo game
type tuiModel struct {
	game   *solo.Game
	random random.Random

	cursorRow int
	cursorCol int
}

func newTUIModel(game *solo.Game, rnd random.Random) *tuiModel {
	return &tuiModel{
		game:   game,
		random: rnd,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k", "w":
			if m.cursorRow > 0 {
				m.cursorRow--
			}
		case "down", "j", "s":
			if m.cursorRow < m.game.Board().Rows-1 {
				m.cursorRow++
			}
		case "left", "h", "a":
			if m.cursorCol > 0 {
				m.cursorCol--
			}
		case "right", "l", "d":
			if m.cursorCol < m.game.Board().Cols-1 {
				m.cursorCol++
			}

		case " ", "enter":
			m.game.Reveal(m.cursorRow, m.cursorCol)
		case "f":
			m.game.Flag(m.cursorRow, m.cursorCol)
		case "r":
			m.game.Restart(m.random.Seed())
		}
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("minerace"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %s · %d mines · %d%% · %s",
		m.game.Difficulty(),
		m.game.Board().MineCount,
		m.game.Progress(),
		m.game.Elapsed().Truncate(time.Second),
	)))
	b.WriteString("\n")

	b.WriteString(boardStyle.Render(m.renderBoard()))
	b.WriteString("\n")

	switch m.game.State() {
	case solo.StateWon:
		b.WriteString(wonStyle.Render("Cleared! Press r for a new game."))
	case solo.StateLost:
		b.WriteString(lostStyle.Render("Boom. Press r for a new game."))
	default:
		b.WriteString(helpStyle.Render("arrows move · space reveal · f flag · r restart · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *tuiModel) renderBoard() string {
	board := m.game.Board()
	rows := make([]string, 0, board.Rows)
	for r := 0; r < board.Rows; r++ {
		var line strings.Builder
		for c := 0; c < board.Cols; c++ {
			text, style := m.cellFace(r, c)
			if r == m.cursorRow && c == m.cursorCol && m.game.State() == solo.StatePlaying {
				style = cursorStyle
			}
			line.WriteString(style.Render(text))
			if c < board.Cols-1 {
				line.WriteString(" ")
			}
		}
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}

// cellFace picks the glyph and style for one cell
func (m *tuiModel) cellFace(r, c int) (string, lipgloss.Style) {
	cell := m.game.Board().Cells[r][c]

	if cell.IsFlagged {
		return "⚑", flagStyle
	}
	if !cell.IsRevealed {
		return "·", hiddenStyle
	}
	if cell.IsMine {
		return "✱", mineStyle
	}
	if cell.AdjacentMines == 0 {
		return " ", emptyStyle
	}
	return fmt.Sprintf("%d", cell.AdjacentMines), numberStyles[cell.AdjacentMines]
}
