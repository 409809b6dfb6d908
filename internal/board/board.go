package board

import (
	"errors"
	"fmt"
	"slices"

	"go-tetris/internal/shape"

	"github.com/kamstrup/intmap"
)

const (
	Width  = 10 // columns
	Height = 20 // visible rows
)

// ErrInvariantViolation is returned when a lock would place a cell on an
// occupied coordinate or outside the column range.
var ErrInvariantViolation = errors.New("board invariant violation")

// ErrDimensions is returned by Validate for a layout that does not match the board.
var ErrDimensions = errors.New("board dimensions mismatch")

// Coord is a grid position. Rows above the visible top are negative.
type Coord struct {
	Col, Row int
}

// Cell is a landed cell and the color of the piece it came from.
type Cell struct {
	Coord
	Color shape.Color
}

// Direction is a horizontal step.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// group holds the cells that came from one locked piece.
type group struct {
	id    int
	color shape.Color
	cells []Coord
}

// Board owns every landed cell.
type Board struct {
	groups []group
	// occupied maps a packed coordinate to the id of the group holding it.
	occupied *intmap.Map[int, int]
	// rowCounts maps a row index to the number of landed cells in it.
	rowCounts *intmap.Map[int, int]
	nextID    int
}

// New returns an empty board.
func New() *Board {
	b := &Board{}
	b.reset()
	return b
}

// Validate asserts that a renderer sized for width x height matches the board.
func Validate(width, height int) error {
	if width != Width || height != Height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrDimensions, width, height, Width, Height)
	}
	return nil
}

func (b *Board) reset() {
	b.occupied = intmap.New[int, int](Width * Height)
	b.rowCounts = intmap.New[int, int](Height)
}

// key packs a coordinate whose column is inside [0, Width).
func key(c Coord) int {
	return c.Row*Width + c.Col
}

func inColumns(col int) bool {
	return col >= 0 && col < Width
}

// IsOccupied reports whether a landed cell exists at c.
func (b *Board) IsOccupied(c Coord) bool {
	if !inColumns(c.Col) {
		return false
	}
	_, ok := b.occupied.Get(key(c))
	return ok
}

// CollidesHorizontally reports whether any of cells has a landed cell
// immediately to its left or right in the same row.
func (b *Board) CollidesHorizontally(cells []Coord) bool {
	for _, c := range cells {
		if b.IsOccupied(Coord{Col: c.Col - 1, Row: c.Row}) || b.IsOccupied(Coord{Col: c.Col + 1, Row: c.Row}) {
			return true
		}
	}
	return false
}

// TouchesEdge reports whether any of cells sits in the outermost column on side d.
func TouchesEdge(cells []Coord, d Direction) bool {
	for _, c := range cells {
		if d == Left && c.Col <= 0 {
			return true
		}
		if d == Right && c.Col >= Width-1 {
			return true
		}
	}
	return false
}

// CollidesWithFloorOrStack reports whether cells cannot descend one more
// row: a cell is on the bottom row or directly above a landed cell.
func (b *Board) CollidesWithFloorOrStack(cells []Coord) bool {
	for _, c := range cells {
		if c.Row+1 >= Height {
			return true
		}
	}
	for _, c := range cells {
		if b.IsOccupied(Coord{Col: c.Col, Row: c.Row + 1}) {
			return true
		}
	}
	return false
}

// Fits reports whether cells lie inside the columns, above the floor and
// off every landed cell.
func (b *Board) Fits(cells []Coord) bool {
	for _, c := range cells {
		if !inColumns(c.Col) || c.Row >= Height || b.IsOccupied(c) {
			return false
		}
	}
	return true
}

// Overlaps reports whether any of cells is already landed.
func (b *Board) Overlaps(cells []Coord) bool {
	return slices.ContainsFunc(cells, b.IsOccupied)
}

// TopHasOverflow reports whether cells can no longer descend, because they
// rest on the stack or were spawned into it, while at least one of them is
// still above the visible top.
func (b *Board) TopHasOverflow(cells []Coord) bool {
	if !b.CollidesWithFloorOrStack(cells) && !b.Overlaps(cells) {
		return false
	}
	for _, c := range cells {
		if c.Row < 0 {
			return true
		}
	}
	return false
}

// Lock turns cells into landed cells of the given color. Nothing is
// written if any cell is out of columns or already occupied.
func (b *Board) Lock(cells []Coord, color shape.Color) error {
	seen := make(map[Coord]struct{}, len(cells))
	for _, c := range cells {
		if !inColumns(c.Col) {
			return fmt.Errorf("%w: cell (%d,%d) outside columns [0,%d)", ErrInvariantViolation, c.Col, c.Row, Width)
		}
		if _, dup := seen[c]; dup || b.IsOccupied(c) {
			return fmt.Errorf("%w: cell (%d,%d) already occupied", ErrInvariantViolation, c.Col, c.Row)
		}
		seen[c] = struct{}{}
	}

	g := group{id: b.nextID, color: color, cells: slices.Clone(cells)}
	b.nextID++
	b.groups = append(b.groups, g)
	for _, c := range g.cells {
		b.place(c, g.id)
	}
	return nil
}

func (b *Board) place(c Coord, id int) {
	b.occupied.Put(key(c), id)
	n, _ := b.rowCounts.Get(c.Row)
	b.rowCounts.Put(c.Row, n+1)
}

// RowCount returns the number of landed cells in row.
func (b *Board) RowCount(row int) int {
	n, _ := b.rowCounts.Get(row)
	return n
}

// Len returns the number of landed cells.
func (b *Board) Len() int {
	return b.occupied.Len()
}

// Groups returns the number of non-empty piece groups.
func (b *Board) Groups() int {
	return len(b.groups)
}

// Cells returns every landed cell ordered by row, then column.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, 0, b.Len())
	for _, g := range b.groups {
		for _, c := range g.cells {
			cells = append(cells, Cell{Coord: c, Color: g.color})
		}
	}
	slices.SortFunc(cells, func(x, y Cell) int {
		if x.Row != y.Row {
			return x.Row - y.Row
		}
		return x.Col - y.Col
	})
	return cells
}
