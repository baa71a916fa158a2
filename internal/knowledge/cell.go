package knowledge

import (
	"cmp"
	"fmt"
	"slices"
)

// Cell identifies a single board position. Cells are plain comparable
// values and can be used as map keys.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

func cellCmp(a, b Cell) int {
	if d := cmp.Compare(a.Y, b.Y); d != 0 {
		return d
	}
	return cmp.Compare(a.X, b.X)
}

func sortCells(cells []Cell) []Cell {
	slices.SortFunc(cells, cellCmp)
	return cells
}
