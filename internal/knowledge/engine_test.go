package knowledge

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObserveDirectSafes(t *testing.T) {
	e := NewEngine(3, 3)

	// zero mined neighbors: everything adjacent is safe
	require.NoError(t, e.Observe(Cell{1, 1}, 0))
	require.Equal(t, []Cell{
		{0, 0}, {1, 0}, {2, 0},
		{0, 1}, {2, 1},
		{0, 2}, {1, 2}, {2, 2},
	}, e.SafeCells())
	require.Empty(t, e.MineCells())
	require.True(t, e.HasMadeMove(Cell{1, 1}))
}

func TestObserveDirectMines(t *testing.T) {
	e := NewEngine(2, 2)

	// a corner with every neighbor mined
	require.NoError(t, e.Observe(Cell{0, 0}, 3))
	require.Equal(t, []Cell{{1, 0}, {0, 1}, {1, 1}}, e.MineCells())
	require.Empty(t, e.SafeCells())
}

func TestSubsetRule(t *testing.T) {
	e := NewEngine(5, 5)
	a, b, c := Cell{0, 0}, Cell{1, 0}, Cell{2, 0}

	require.True(t, e.kb.Add(NewSentence([]Cell{a, b, c}, 2)))
	require.True(t, e.kb.Add(NewSentence([]Cell{a, b}, 1)))

	require.NoError(t, e.infer())
	require.NoError(t, e.propagate())

	// {a,b,c}=2 minus {a,b}=1 leaves {c}=1, so c is a mine
	require.Equal(t, []Cell{c}, e.MineCells())
}

func TestObserveAdjustsForKnownMines(t *testing.T) {
	e := NewEngine(3, 3)
	e.kb.MarkMine(Cell{0, 0})

	// the reported count of 1 is fully explained by the known mine,
	// so every other neighbor must be safe
	require.NoError(t, e.Observe(Cell{1, 0}, 1))
	require.Equal(t, []Cell{
		{2, 0},
		{0, 1}, {1, 1}, {2, 1},
	}, e.SafeCells())
}

func TestObserveRedundant(t *testing.T) {
	e := NewEngine(3, 3)
	require.NoError(t, e.Observe(Cell{1, 1}, 0))

	safes := e.SafeCells()
	require.NoError(t, e.Observe(Cell{1, 1}, 0))
	require.Equal(t, safes, e.SafeCells())
	require.Empty(t, e.MineCells())
}

func TestObserveCountOutOfRange(t *testing.T) {
	e := NewEngine(3, 3)

	var contradiction ContradictionError
	require.ErrorAs(t, e.Observe(Cell{1, 1}, 9), &contradiction)
}

func TestObserveContradiction(t *testing.T) {
	e := NewEngine(2, 1)

	// (0,0) says its only neighbor is clear; (1,0) says it borders a
	// mine that cannot exist
	require.NoError(t, e.Observe(Cell{0, 0}, 0))
	var contradiction ContradictionError
	require.ErrorAs(t, e.Observe(Cell{1, 0}, 1), &contradiction)
}

/*
3x3 board, mines at 0:0 and 2:2. Observing the four cells below pins
down both mines exactly:

	* 1 0
	1 2 1
	0 1 *
*/
func TestEndToEndCornerMines(t *testing.T) {
	e := NewEngine(3, 3)

	require.NoError(t, e.Observe(Cell{1, 1}, 2))
	require.Len(t, e.Snapshot(), 1) // all 8 neighbors = 2

	require.NoError(t, e.Observe(Cell{1, 0}, 1))
	require.NoError(t, e.Observe(Cell{2, 0}, 0))
	require.NoError(t, e.Observe(Cell{0, 2}, 0))

	require.Equal(t, []Cell{{0, 0}, {2, 2}}, e.MineCells())
	require.Equal(t, []Cell{{0, 1}, {2, 1}, {1, 2}}, e.SafeCells())
}

func neighborMines(grid []bool, w, h, x, y int) (count, total int) {
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= w || yy < 0 || yy >= h {
				continue
			}
			total++
			if grid[yy*w+xx] {
				count++
			}
		}
	}
	return count, total
}

/*
Soundness over random boards: feed the engine every safe cell of a
randomly mined grid and check that it terminates, never contradicts
itself and never mislabels a cell.
*/
func TestObserveSoundness(t *testing.T) {
	const w, h, mineCount = 8, 8, 10

	r := rand.New(rand.NewPCG(1, 2))
	for trial := range 25 {
		grid := make([]bool, w*h)
		for planted := 0; planted < mineCount; {
			i := r.IntN(w * h)
			if !grid[i] {
				grid[i] = true
				planted++
			}
		}

		e := NewEngine(w, h)
		for y := range h {
			for x := range w {
				if grid[y*w+x] {
					continue
				}
				count, _ := neighborMines(grid, w, h, x, y)
				require.NoError(t, e.Observe(Cell{x, y}, count),
					"trial %d @ %d:%d", trial, x, y)
			}
		}

		// no mislabels in either direction
		for _, c := range e.MineCells() {
			require.True(t, grid[c.Y*w+c.X], "trial %d: %s is not a mine", trial, c)
		}
		for _, c := range e.SafeCells() {
			require.False(t, grid[c.Y*w+c.X], "trial %d: %s is a mine", trial, c)
		}

		// with the whole safe region observed, every mine bordering
		// at least one revealed cell must have been confirmed
		confirmed := make(map[Cell]bool)
		for _, c := range e.MineCells() {
			confirmed[c] = true
		}
		for y := range h {
			for x := range w {
				count, total := neighborMines(grid, w, h, x, y)
				if !grid[y*w+x] || count == total {
					continue
				}
				require.True(t, confirmed[Cell{x, y}],
					"trial %d: mine %d:%d went unconfirmed", trial, x, y)
			}
		}
	}
}
