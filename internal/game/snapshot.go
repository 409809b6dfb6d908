package game

import (
	"go-tetris/internal/board"
	"go-tetris/internal/shape"
)

// Preview is the next piece as shown in the side panel.
type Preview struct {
	Kind  shape.Kind
	Mask  shape.Mask // orientation 0
	Color shape.Color
}

// Snapshot is the read-only view handed to the renderer once per tick.
type Snapshot struct {
	Landed   []board.Cell // ordered by row, then column
	Active   []board.Cell
	Next     Preview
	Score    int
	Level    int
	Lines    int
	Paused   bool
	GameOver bool
	Phase    string
}

// Snapshot projects the current session state. It never mutates the session.
func (s *Session) Snapshot() (Snapshot, error) {
	if !s.State.Started() {
		return Snapshot{}, ErrNotStarted
	}

	snap := Snapshot{
		Landed:   s.board.Cells(),
		Score:    s.Score.CurrentScore,
		Level:    s.Score.Level,
		Lines:    s.Score.LinesCleared,
		Paused:   s.State.Paused,
		GameOver: s.State.IsGameOver(),
		Phase:    s.State.Phase(),
	}

	if s.hasPiece {
		color := s.piece.Color()
		for _, c := range s.piece.Cells() {
			snap.Active = append(snap.Active, board.Cell{Coord: c, Color: color})
		}
	}

	if s.hasNext {
		next, err := shape.Lookup(s.next)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Next = Preview{Kind: next.Kind, Mask: next.Orientation(0), Color: next.Color}
	}

	return snap, nil
}

// Visible returns the active cells inside the visible rows.
func (snap Snapshot) Visible() []board.Cell {
	cells := make([]board.Cell, 0, len(snap.Active))
	for _, c := range snap.Active {
		if c.Row >= 0 && c.Row < board.Height {
			cells = append(cells, c)
		}
	}
	return cells
}
