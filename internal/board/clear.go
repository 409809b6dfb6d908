package board

import (
	"slices"
)

// ClearResult describes the rows removed by one ClearCompletedRows call.
type ClearResult struct {
	Count int
	Rows  []int // ascending
}

// ClearCompletedRows removes every row holding exactly Width cells and
// drops the cells above each cleared row down by one row per cleared row
// below them. All rows are evaluated against the board before removal.
func (b *Board) ClearCompletedRows() ClearResult {
	var rows []int
	b.rowCounts.ForEach(func(row, n int) bool {
		if n == Width {
			rows = append(rows, row)
		}
		return true
	})
	if len(rows) == 0 {
		return ClearResult{}
	}
	slices.Sort(rows)

	// First pass: decide the fate of every cell without touching the board.
	kept := make([]group, 0, len(b.groups))
	for _, g := range b.groups {
		var cells []Coord
		for _, c := range g.cells {
			if _, cleared := slices.BinarySearch(rows, c.Row); cleared {
				continue
			}
			cells = append(cells, Coord{Col: c.Col, Row: c.Row + clearedBelow(rows, c.Row)})
		}
		if len(cells) > 0 {
			kept = append(kept, group{id: g.id, color: g.color, cells: cells})
		}
	}

	// Second pass: materialize the compacted board.
	b.groups = kept
	b.reset()
	for _, g := range b.groups {
		for _, c := range g.cells {
			b.place(c, g.id)
		}
	}

	return ClearResult{Count: len(rows), Rows: rows}
}

// clearedBelow counts cleared rows with an index greater than row.
func clearedBelow(sorted []int, row int) int {
	i, _ := slices.BinarySearch(sorted, row+1)
	return len(sorted) - i
}
