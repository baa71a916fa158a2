package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown CellState = -2
	Flagged CellState = -1
	/*
	 * Each item in the player grid is one of the following values:
	 *
	 *  - 0 to 8 mean the square is open and has a surrounding mine
	 *    count.
	 *
	 *  - -1 means the square is flagged by the player.
	 *
	 *  - -2 means the square is unknown.
	 *
	 *  - 64 means the square had a mine revealed after the game
	 *    ended.
	 *
	 *  - 65 means the square had a mine revealed and this was the
	 *    one the player hit.
	 */
	RevealedMine CellState = 64
	ExplodedMine CellState = 65
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "?"
	case s == RevealedMine || s == ExplodedMine:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Open reports whether the state is a revealed mine count.
func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
