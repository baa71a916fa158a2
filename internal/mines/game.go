package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

// CellUpdate describes one square revealed by an Open call. MineCount
// is only meaningful when Mined is false.
type CellUpdate struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	MineCount int  `json:"mine_count"`
	Mined     bool `json:"mined,omitempty"`
}

type BoardUpdate []CellUpdate

type GameState struct {
	GameParams
	Dead, Won bool
	Mines     []bool /* real mine points */
	Player    Grid   /* player knowledge */
	Opened    int
}

/*
NewGame lays out a random board and opens the first square at x:y.
The first square is never mined. Returns the update for every square
the opening revealed.
*/
func NewGame(params *GameParams, x, y int, r *rand.Rand) (*GameState, BoardUpdate, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if !params.ValidatePosition(x, y) {
		return nil, nil, fmt.Errorf("position %d:%d out of bounds", x, y)
	}

	s := &GameState{
		GameParams: *params,
		Mines:      make([]bool, params.CellCount()),
		Player:     make(Grid, params.CellCount()),
	}
	for i := range s.Player {
		s.Player[i] = Unknown
	}

	first := y*params.Width + x
	for planted := 0; planted < params.MineCount; {
		i := r.IntN(params.CellCount())
		if i != first && !s.Mines[i] {
			s.Mines[i] = true
			planted++
		}
	}

	update := s.Open(x, y)
	return s, update, nil
}

func ParseGameStateFromBytes(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GameState) MineAt(x, y int) bool {
	return s.Mines[y*s.Width+x]
}

func (s *GameState) NeighborMines(x, y int) (count int) {
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if !s.ValidatePosition(xx, yy) {
				continue
			}
			if s.MineAt(xx, yy) {
				count++
			}
		}
	}
	return count
}

/*
Open reveals the square at x:y. Opening a mine kills the player and
returns just that square. Opening a square with no mined neighbors
floods outward over the zero region, so a single call may reveal many
squares; the update lists each revealed square with its mine count,
in reveal order.
*/
func (s *GameState) Open(x, y int) (update BoardUpdate) {
	i := y*s.Width + x
	if s.Dead || s.Won || s.Player[i] != Unknown {
		return nil
	}

	if s.Mines[i] {
		/*
		 * The player has landed on a mine. Bad luck. Expose the mine
		 * that killed them, but not the rest.
		 */
		s.Dead = true
		s.Player[i] = ExplodedMine
		return BoardUpdate{{X: x, Y: y, Mined: true}}
	}

	queue := []int{i}
	s.Player[i] = 0 /* claimed; real count set when dequeued */
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		jx, jy := j%s.Width, j/s.Width
		n := s.NeighborMines(jx, jy)
		s.Player[j] = CellState(n)
		s.Opened++
		update = append(update, CellUpdate{X: jx, Y: jy, MineCount: n})

		if n != 0 {
			continue
		}
		for dy := -1; dy <= +1; dy++ {
			for dx := -1; dx <= +1; dx++ {
				xx, yy := jx+dx, jy+dy
				if (dx == 0 && dy == 0) || !s.ValidatePosition(xx, yy) {
					continue
				}
				k := yy*s.Width + xx
				if s.Player[k] == Unknown {
					s.Player[k] = 0
					queue = append(queue, k)
				}
			}
		}
	}

	/*
	 * The game is won once exactly the mined squares are left
	 * covered.
	 */
	if s.Opened == s.CellCount()-s.MineCount {
		s.Won = true
	}
	return update
}

func (s *GameState) FlagCell(x, y int) {
	i := y*s.Width + x
	if s.Player[i] == Unknown {
		s.Player[i] = Flagged
	} else if s.Player[i] == Flagged {
		s.Player[i] = Unknown
	}
}

// RevealMines exposes every remaining mine, ending the game if it is
// still on.
func (s *GameState) RevealMines() {
	if !(s.Dead || s.Won) {
		s.Dead = true
	}
	for i, mined := range s.Mines {
		if mined && s.Player[i] != ExplodedMine {
			s.Player[i] = RevealedMine
		}
	}
}
