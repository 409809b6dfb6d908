package main

import (
	"go-tetris/internal/game"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Rotate   key.Binding
	SoftDrop key.Binding
	Pause    key.Binding
	Music    key.Binding
	Restart  key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "a"),
		key.WithHelp("←/a", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "d"),
		key.WithHelp("→/d", "right"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("up", "w"),
		key.WithHelp("↑/w", "rotate"),
	),
	SoftDrop: key.NewBinding(
		key.WithKeys("down", "s"),
		key.WithHelp("↓/s", "drop"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Music: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "music"),
	),
	Restart: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play again"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.SoftDrop, k.Pause, k.Music, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.SoftDrop},
		{k.Pause, k.Music, k.Restart, k.Quit},
	}
}

// inputBuffer turns terminal key presses into per-tick commands. Terminals
// report presses and auto-repeats but never releases, so held commands are
// kept alive for a number of ticks after the last press.
type inputBuffer struct {
	left, right int // ticks the direction stays held

	softDrop        bool
	softDropTicks   int
	softDropRelease int

	edges []game.Command
}

func newInputBuffer(tickRate int) *inputBuffer {
	// Long enough to bridge the usual key repeat delay.
	return &inputBuffer{softDropRelease: max(2, tickRate*3/5)}
}

func (b *inputBuffer) press(c game.Command) {
	switch c {
	case game.MoveLeft:
		b.left, b.right = game.MoveCooldown, 0
	case game.MoveRight:
		b.right, b.left = game.MoveCooldown, 0
	case game.SoftDropOn:
		if !b.softDrop {
			b.softDrop = true
			b.edges = append(b.edges, game.SoftDropOn)
		}
		b.softDropTicks = b.softDropRelease
	default:
		b.edges = append(b.edges, c)
	}
}

// drain returns the commands for the next tick.
func (b *inputBuffer) drain() []game.Command {
	cmds := b.edges
	b.edges = nil

	if b.left > 0 {
		cmds = append(cmds, game.MoveLeft)
		b.left--
	}
	if b.right > 0 {
		cmds = append(cmds, game.MoveRight)
		b.right--
	}
	if b.softDrop {
		b.softDropTicks--
		if b.softDropTicks <= 0 {
			b.softDrop = false
			cmds = append(cmds, game.SoftDropOff)
		}
	}
	return cmds
}

// reset drops every pending and held command.
func (b *inputBuffer) reset() {
	*b = inputBuffer{softDropRelease: b.softDropRelease}
}
