package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ttc24/2048-Duel/internal/board"
)

const tileWidth = 7

// tileColors maps tile values to background colors, roughly following
// the classic 2048 palette.
var tileColors = map[int]lipgloss.Color{
	2:    lipgloss.Color("252"),
	4:    lipgloss.Color("230"),
	8:    lipgloss.Color("216"),
	16:   lipgloss.Color("209"),
	32:   lipgloss.Color("203"),
	64:   lipgloss.Color("196"),
	128:  lipgloss.Color("221"),
	256:  lipgloss.Color("220"),
	512:  lipgloss.Color("214"),
	1024: lipgloss.Color("208"),
	2048: lipgloss.Color("226"),
}

var (
	emptyTileStyle = lipgloss.NewStyle().
			Width(tileWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("240")).
			Background(lipgloss.Color("236"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style for a tile value.
func tileStyle(value int) lipgloss.Style {
	color, ok := tileColors[value]
	if !ok {
		// Anything past 2048 gets the brightest tile
		color = lipgloss.Color("228")
	}
	return lipgloss.NewStyle().
		Width(tileWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(lipgloss.Color("235")).
		Background(color)
}

// renderBoard draws the 4x4 grid with colored tiles.
func renderBoard(b board.Board) string {
	var rows []string
	for y := 0; y < board.Size; y++ {
		var cells []string
		for x := 0; x < board.Size; x++ {
			value := b[y][x]
			if value == 0 {
				cells = append(cells, emptyTileStyle.Render("."))
				continue
			}
			cells = append(cells, tileStyle(value).Render(strconv.Itoa(value)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

// View renders the watch screen.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("2048 Duel"))
	b.WriteString("\n")
	b.WriteString(hudStyle.Render(fmt.Sprintf(
		"Level %d   Score %d   Max %d   Moves %d",
		m.level, m.score, board.MaxTile(m.board), m.moves,
	)))
	b.WriteString("\n\n")
	b.WriteString(renderBoard(m.board))
	b.WriteString("\n")

	switch {
	case m.gameOver:
		b.WriteString(gameOverStyle.Render("GAME OVER"))
		b.WriteString(hudStyle.Render("  press r to restart"))
	case m.paused:
		b.WriteString(pausedStyle.Render("PAUSED"))
		b.WriteString(hudStyle.Render(fmt.Sprintf("  speed %d/%d", m.speedIdx+1, len(speeds))))
	default:
		b.WriteString(hudStyle.Render(fmt.Sprintf("speed %d/%d", m.speedIdx+1, len(speeds))))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}
