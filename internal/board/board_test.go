package board

import (
	"errors"
	"slices"
	"testing"

	"go-tetris/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gray shape.Color = "#808080"

// fillRow locks one single-cell group per column of row, skipping the
// listed columns.
func fillRow(t *testing.T, b *Board, row int, skip ...int) {
	t.Helper()
	for col := range Width {
		if slices.Contains(skip, col) {
			continue
		}
		require.NoError(t, b.Lock([]Coord{{Col: col, Row: row}}, gray))
	}
}

func rowsOf(cells []Cell) map[Coord]bool {
	m := make(map[Coord]bool, len(cells))
	for _, c := range cells {
		m[c.Coord] = true
	}
	return m
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(10, 20))
	assert.ErrorIs(t, Validate(10, 21), ErrDimensions)
	assert.ErrorIs(t, Validate(12, 20), ErrDimensions)
}

func TestBoard_LockAndOccupancy(t *testing.T) {
	b := New()
	cells := []Coord{{3, 19}, {4, 19}, {5, 19}, {6, 19}}
	require.NoError(t, b.Lock(cells, gray))

	for _, c := range cells {
		assert.True(t, b.IsOccupied(c), "expected %v occupied", c)
	}
	assert.False(t, b.IsOccupied(Coord{2, 19}))
	assert.False(t, b.IsOccupied(Coord{-1, 19}))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 4, b.RowCount(19))
	assert.Equal(t, 1, b.Groups())
}

func TestBoard_LockRejectsOverlap(t *testing.T) {
	b := New()
	require.NoError(t, b.Lock([]Coord{{0, 19}}, gray))

	err := b.Lock([]Coord{{1, 19}, {0, 19}}, gray)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	// The failed lock must not write its other cells.
	assert.False(t, b.IsOccupied(Coord{1, 19}))
	assert.Equal(t, 1, b.Len())
}

func TestBoard_LockRejectsOutOfColumns(t *testing.T) {
	b := New()
	assert.ErrorIs(t, b.Lock([]Coord{{-1, 5}}, gray), ErrInvariantViolation)
	assert.ErrorIs(t, b.Lock([]Coord{{Width, 5}}, gray), ErrInvariantViolation)
	assert.ErrorIs(t, b.Lock([]Coord{{2, 5}, {2, 5}}, gray), ErrInvariantViolation)
	assert.Zero(t, b.Len())
}

func TestBoard_CollidesHorizontally(t *testing.T) {
	b := New()
	require.NoError(t, b.Lock([]Coord{{5, 10}}, gray))

	tests := []struct {
		name  string
		cells []Coord
		want  bool
	}{
		{"left neighbour", []Coord{{6, 10}}, true},
		{"right neighbour", []Coord{{4, 10}}, true},
		{"diagonal", []Coord{{4, 9}}, false},
		{"two away", []Coord{{7, 10}}, false},
		{"above", []Coord{{5, 9}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CollidesHorizontally(tt.cells))
		})
	}
}

func TestTouchesEdge(t *testing.T) {
	assert.True(t, TouchesEdge([]Coord{{0, 3}, {1, 3}}, Left))
	assert.False(t, TouchesEdge([]Coord{{0, 3}, {1, 3}}, Right))
	assert.True(t, TouchesEdge([]Coord{{9, 3}}, Right))
	assert.False(t, TouchesEdge([]Coord{{4, 3}}, Left))
}

func TestBoard_CollidesWithFloorOrStack(t *testing.T) {
	b := New()
	require.NoError(t, b.Lock([]Coord{{2, 15}}, gray))

	assert.True(t, b.CollidesWithFloorOrStack([]Coord{{0, 19}}), "bottom row")
	assert.False(t, b.CollidesWithFloorOrStack([]Coord{{0, 18}}), "one above bottom")
	assert.True(t, b.CollidesWithFloorOrStack([]Coord{{2, 14}}), "resting on stack")
	assert.False(t, b.CollidesWithFloorOrStack([]Coord{{3, 14}}), "beside stack")
	assert.False(t, b.CollidesWithFloorOrStack([]Coord{{2, -3}}), "above top")
}

func TestBoard_Fits(t *testing.T) {
	b := New()
	require.NoError(t, b.Lock([]Coord{{4, 10}}, gray))

	assert.True(t, b.Fits([]Coord{{3, 10}, {5, 10}, {4, -2}}))
	assert.False(t, b.Fits([]Coord{{4, 10}}))
	assert.False(t, b.Fits([]Coord{{-1, 3}}))
	assert.False(t, b.Fits([]Coord{{10, 3}}))
	assert.False(t, b.Fits([]Coord{{3, 20}}))
}

func TestBoard_TopHasOverflow(t *testing.T) {
	b := New()
	fillRow(t, b, 0, 9)

	assert.True(t, b.TopHasOverflow([]Coord{{3, -1}, {3, -2}}), "landed above the top")
	assert.False(t, b.TopHasOverflow([]Coord{{9, -1}, {9, -2}}), "can still descend")
	assert.False(t, b.TopHasOverflow([]Coord{{3, 19}}), "landed inside")
}

func TestBoard_TopHasOverflow_SpawnedIntoStack(t *testing.T) {
	b := New()
	require.NoError(t, b.Lock([]Coord{{4, 0}}, gray))
	cells := []Coord{{3, -1}, {4, 0}}

	assert.False(t, b.CollidesWithFloorOrStack(cells), "nothing directly below")
	assert.True(t, b.Overlaps(cells))
	assert.True(t, b.TopHasOverflow(cells), "overlapping above the top cannot fall")
	assert.False(t, b.Overlaps([]Coord{{3, -1}, {3, 0}}))
}

func TestBoard_ClearCompletedRows_NoFullRows(t *testing.T) {
	b := New()
	fillRow(t, b, 19, 0)
	before := b.Cells()

	res := b.ClearCompletedRows()
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Rows)
	assert.Equal(t, before, b.Cells())

	res = b.ClearCompletedRows()
	assert.Zero(t, res.Count)
	assert.Equal(t, before, b.Cells())
}

func TestBoard_ClearCompletedRows_SingleRow(t *testing.T) {
	b := New()
	fillRow(t, b, 19)
	require.NoError(t, b.Lock([]Coord{{2, 18}, {3, 18}}, gray))
	require.NoError(t, b.Lock([]Coord{{2, 17}}, gray))

	res := b.ClearCompletedRows()
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []int{19}, res.Rows)
	assert.Equal(t, 3, b.Len())

	got := rowsOf(b.Cells())
	assert.True(t, got[Coord{2, 19}])
	assert.True(t, got[Coord{3, 19}])
	assert.True(t, got[Coord{2, 18}])
	assert.Equal(t, 2, b.RowCount(19))
	assert.Equal(t, 0, b.RowCount(17))
	// The ten single-cell groups of the full row are gone.
	assert.Equal(t, 2, b.Groups())
}

func TestBoard_ClearCompletedRows_NonContiguous(t *testing.T) {
	b := New()
	fillRow(t, b, 19)
	fillRow(t, b, 18, 4)
	fillRow(t, b, 17)
	require.NoError(t, b.Lock([]Coord{{0, 16}}, gray))

	res := b.ClearCompletedRows()
	require.Equal(t, 2, res.Count)
	assert.Equal(t, []int{17, 19}, res.Rows)

	got := rowsOf(b.Cells())
	// Row 18 had one cleared row below it, the cell at 16 had two.
	assert.Len(t, got, 10)
	for col := range Width {
		if col == 4 {
			assert.False(t, got[Coord{col, 19}])
			continue
		}
		assert.True(t, got[Coord{col, 19}], "col %d", col)
	}
	assert.True(t, got[Coord{0, 18}])
	assert.Equal(t, 9, b.RowCount(19))
	assert.Equal(t, 1, b.RowCount(18))
}

func TestBoard_ClearCompletedRows_Four(t *testing.T) {
	b := New()
	for row := 16; row < Height; row++ {
		fillRow(t, b, row)
	}
	require.NoError(t, b.Lock([]Coord{{5, 15}}, gray))

	res := b.ClearCompletedRows()
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, []Cell{{Coord: Coord{5, 19}, Color: gray}}, b.Cells())
}

func TestBoard_CellsOrdered(t *testing.T) {
	b := New()
	require.NoError(t, b.Lock([]Coord{{5, 19}, {1, 18}}, "#111111"))
	require.NoError(t, b.Lock([]Coord{{0, 19}}, "#222222"))

	cells := b.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, Coord{1, 18}, cells[0].Coord)
	assert.Equal(t, Coord{0, 19}, cells[1].Coord)
	assert.Equal(t, shape.Color("#222222"), cells[1].Color)
	assert.Equal(t, Coord{5, 19}, cells[2].Coord)
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
}
