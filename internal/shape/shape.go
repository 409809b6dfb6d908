package shape

import (
	"errors"
	"fmt"
)

// ErrInvalidShapeKind is returned when a Kind outside the fixed set is looked up.
var ErrInvalidShapeKind = errors.New("invalid shape kind")

// Kind identifies one of the seven piece types.
type Kind int

const (
	J Kind = iota
	O
	Z
	S
	L
	T
	I
)

// Count is the number of piece kinds in the catalog.
const Count = 7

// Size is the edge length of every orientation mask.
const Size = 4

// Kinds lists every kind in catalog order.
var Kinds = [Count]Kind{J, O, Z, S, L, T, I}

// Color is a hex RGB color string such as "#00ffff".
type Color string

// Mask marks the occupied cells of a 4x4 bounding box, indexed [row][col].
type Mask [Size][Size]bool

// Offset is a (column, row) position inside a mask.
type Offset struct {
	Col, Row int
}

// Shape is a catalog entry: the ordered orientations of a kind and its color.
type Shape struct {
	Kind         Kind
	Name         string
	Color        Color
	Orientations []Mask
}

func (k Kind) Valid() bool {
	return k >= J && k <= I
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return catalog[k].Name
}

// Lookup returns the catalog entry for k.
func Lookup(k Kind) (*Shape, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShapeKind, int(k))
	}
	return &catalog[k], nil
}

// MustLookup is Lookup for kinds known to be valid. It panics otherwise.
func MustLookup(k Kind) *Shape {
	s, err := Lookup(k)
	if err != nil {
		panic(err)
	}
	return s
}

// OrientationCount returns how many rotation states the shape has.
func (s *Shape) OrientationCount() int {
	return len(s.Orientations)
}

// Orientation returns the mask at index i, wrapping modulo the orientation count.
func (s *Shape) Orientation(i int) Mask {
	return s.Orientations[s.Wrap(i)]
}

// Wrap normalizes an orientation index into [0, OrientationCount).
func (s *Shape) Wrap(i int) int {
	n := len(s.Orientations)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Offsets lists the occupied cells of the mask in row-major order.
func (m Mask) Offsets() []Offset {
	offsets := make([]Offset, 0, Size)
	for row := range Size {
		for col := range Size {
			if m[row][col] {
				offsets = append(offsets, Offset{Col: col, Row: row})
			}
		}
	}
	return offsets
}

// Rows renders the mask as strings of '1' and '.', one per row.
func (m Mask) Rows() []string {
	rows := make([]string, Size)
	for row := range Size {
		b := make([]byte, Size)
		for col := range Size {
			if m[row][col] {
				b[col] = '1'
			} else {
				b[col] = '.'
			}
		}
		rows[row] = string(b)
	}
	return rows
}
