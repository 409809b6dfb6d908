package piece

import (
	"go-tetris/internal/board"
	"go-tetris/internal/shape"
)

// Spawn position of the bounding box's top-left cell.
const (
	SpawnCol = 3
	SpawnRow = -2
)

// Piece is the active falling piece.
type Piece struct {
	Shape       *shape.Shape
	Orientation int
	Anchor      board.Coord
}

// Spawn places a new piece of kind k at the spawn position in orientation 0.
func Spawn(k shape.Kind) (Piece, error) {
	s, err := shape.Lookup(k)
	if err != nil {
		return Piece{}, err
	}
	return Piece{
		Shape:  s,
		Anchor: board.Coord{Col: SpawnCol, Row: SpawnRow},
	}, nil
}

func (p Piece) Kind() shape.Kind {
	return p.Shape.Kind
}

func (p Piece) Color() shape.Color {
	return p.Shape.Color
}

// CellsAt returns the grid cells the piece would occupy in the given
// orientation with its box anchored at anchor.
func (p Piece) CellsAt(orientation int, anchor board.Coord) []board.Coord {
	offsets := p.Shape.Orientation(orientation).Offsets()
	cells := make([]board.Coord, len(offsets))
	for i, o := range offsets {
		cells[i] = board.Coord{Col: anchor.Col + o.Col, Row: anchor.Row + o.Row}
	}
	return cells
}

// Cells returns the cells occupied right now.
func (p Piece) Cells() []board.Coord {
	return p.CellsAt(p.Orientation, p.Anchor)
}

// Rotated returns the piece in its next orientation, wrapping around.
func (p Piece) Rotated() Piece {
	p.Orientation = p.Shape.Wrap(p.Orientation + 1)
	return p
}

// Shifted returns the piece moved by dc columns and dr rows.
func (p Piece) Shifted(dc, dr int) Piece {
	p.Anchor.Col += dc
	p.Anchor.Row += dr
	return p
}
