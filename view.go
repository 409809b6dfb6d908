package main

import (
	"fmt"
	"strings"

	"go-tetris/internal/game"
	"go-tetris/internal/shape"

	"github.com/charmbracelet/lipgloss"
)

// Well layout drawn by renderWell. Checked against the board at startup.
const (
	gridCols = 10
	gridRows = 20
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	wellStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("8"))
	panelStyle = lipgloss.NewStyle().Padding(0, 2)
)

const (
	emptyCell = " ."
	blockCell = "  "
)

func renderCell(c shape.Color) string {
	if c == "" {
		return dimStyle.Render(emptyCell)
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(string(c))).Render(blockCell)
}

// renderWell draws landed cells and the visible part of the active piece.
func renderWell(snap game.Snapshot) string {
	var grid [gridRows][gridCols]shape.Color
	for _, c := range snap.Landed {
		if c.Row >= 0 && c.Row < gridRows && c.Col >= 0 && c.Col < gridCols {
			grid[c.Row][c.Col] = c.Color
		}
	}
	for _, c := range snap.Visible() {
		grid[c.Row][c.Col] = c.Color
	}

	var b strings.Builder
	for r, row := range grid {
		for _, color := range row {
			b.WriteString(renderCell(color))
		}
		if r < gridRows-1 {
			b.WriteByte('\n')
		}
	}
	return wellStyle.Render(b.String())
}

func renderPreview(p game.Preview) string {
	if p.Color == "" {
		return ""
	}
	lines := make([]string, 0, shape.Size)
	for _, row := range p.Mask.Rows() {
		var b strings.Builder
		for _, r := range row {
			if r == '1' {
				b.WriteString(renderCell(p.Color))
			} else {
				b.WriteString(blockCell)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (s *LocalState) renderPanel(snap game.Snapshot) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("TETRIS") + "\n\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("SCORE: %d", snap.Score)) + "\n")
	b.WriteString(fmt.Sprintf("LEVEL: %d\n", snap.Level))
	b.WriteString(fmt.Sprintf("LINES: %d\n", snap.Lines))
	if best := s.Game.History.GetHighScoreEntry(); best != nil {
		b.WriteString(fmt.Sprintf("BEST:  %d\n", best.Score))
	}
	if playing, ok := s.Game.Music(); ok {
		state := "off"
		if playing {
			state = "on"
		}
		b.WriteString(dimStyle.Render("MUSIC: "+state) + "\n")
	}
	b.WriteString("\nNEXT:\n")
	b.WriteString(renderPreview(snap.Next))

	if snap.Paused {
		b.WriteString("\n\n" + scoreStyle.Render("PAUSED"))
	}
	if snap.GameOver {
		b.WriteString("\n\n" + s.renderGameOver(snap))
	}
	return panelStyle.Render(b.String())
}

func (s *LocalState) renderGameOver(snap game.Snapshot) string {
	display := redStyle.Render("GAME OVER") + "\n" + fmt.Sprintf("Final score: %d", snap.Score)
	if err := s.Game.Session.Err(); err != nil {
		display += "\n" + redStyle.Render("Stopped: "+err.Error())
	}

	h := s.Game.History
	if h.Attempts() > 1 && h.GotHighScore(snap.Score) {
		display += "\n" + greenStyle.Render("New best score!")
	}
	if h.Attempts() > 0 {
		display += fmt.Sprintf("\n\nGames played: %d\nTop scores:", h.Attempts())
		for _, entry := range h.GetNScoreEntries(5) {
			display += fmt.Sprintf("\n  * %d (level %d)", entry.Score, entry.Level)
		}
	}
	display += "\n\n" + dimStyle.Render("space: play again  q: quit")
	return display
}

func (s *LocalState) View() string {
	snap, err := s.Game.Session.Snapshot()
	if err != nil {
		return redStyle.Render("Error: " + err.Error())
	}

	display := lipgloss.JoinHorizontal(lipgloss.Top, renderWell(snap), s.renderPanel(snap))
	display += "\n" + s.help.View(keys)

	if s.width > 0 && s.height > 0 {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, display)
	}
	return display
}
