package agent

import (
	"fmt"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

/*
Agent plays minesweeper using the deduction engine. It only ever
reads the engine's confirmed facts to choose moves: a known-safe
unplayed square when one exists, otherwise a uniformly random square
that is neither played nor a known mine.
*/
type Agent struct {
	width, height int
	eng           *knowledge.Engine
	rnd           *rand.Rand
}

func New(width, height int, rnd *rand.Rand) *Agent {
	return &Agent{
		width:  width,
		height: height,
		eng:    knowledge.NewEngine(width, height),
		rnd:    rnd,
	}
}

func (a *Agent) Engine() *knowledge.Engine {
	return a.eng
}

// Resume builds an agent whose knowledge matches an in-progress board,
// by replaying its open squares.
func Resume(game *mines.GameState, rnd *rand.Rand) (*Agent, error) {
	eng, err := Rebuild(game)
	if err != nil {
		return nil, err
	}
	return &Agent{
		width:  game.Width,
		height: game.Height,
		eng:    eng,
		rnd:    rnd,
	}, nil
}

// ObserveUpdate feeds every square revealed by a board update into
// the engine.
func (a *Agent) ObserveUpdate(update mines.BoardUpdate) error {
	for _, u := range update {
		if u.Mined {
			continue
		}
		cell := knowledge.Cell{X: u.X, Y: u.Y}
		if err := a.eng.Observe(cell, u.MineCount); err != nil {
			return err
		}
	}
	return nil
}

// SafeMove picks a random square that is known safe and not yet
// played. ok is false when no such square exists.
func (a *Agent) SafeMove() (cell knowledge.Cell, ok bool) {
	safes := a.eng.SafeCells()
	if len(safes) == 0 {
		return cell, false
	}
	return safes[a.rnd.IntN(len(safes))], true
}

// RandomMove picks a random square that has not been played and is
// not a known mine. ok is false when the board is exhausted.
func (a *Agent) RandomMove() (cell knowledge.Cell, ok bool) {
	available := make([]knowledge.Cell, 0, a.width*a.height)
	for y := range a.height {
		for x := range a.width {
			c := knowledge.Cell{X: x, Y: y}
			if a.eng.HasMadeMove(c) || a.eng.IsMine(c) {
				continue
			}
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return cell, false
	}
	return available[a.rnd.IntN(len(available))], true
}

// Result summarizes one finished game.
type Result struct {
	Won        bool `json:"won"`
	Moves      int  `json:"moves"`
	Guesses    int  `json:"guesses"`
	MinesFound int  `json:"mines_found"`
}

/*
Play drives game to completion: observe what is open, move, repeat.
first is the update from the opening move that created the game. A
ContradictionError from the engine aborts the run; it means the board
collaborator reported inconsistent counts.
*/
func (a *Agent) Play(game *mines.GameState, first mines.BoardUpdate) (*Result, error) {
	res := &Result{}
	if err := a.ObserveUpdate(first); err != nil {
		return res, err
	}

	for !game.Dead && !game.Won {
		cell, ok := a.SafeMove()
		if !ok {
			if cell, ok = a.RandomMove(); !ok {
				break
			}
			res.Guesses++
		}
		res.Moves++

		update := game.Open(cell.X, cell.Y)
		if game.Dead {
			break
		}
		if err := a.ObserveUpdate(update); err != nil {
			return res, err
		}
	}

	res.Won = game.Won
	res.MinesFound = len(a.eng.MineCells())
	return res, nil
}

/*
Rebuild replays every open square of a board into a fresh engine, in
row-major order. The fixpoint does not depend on replay order, so the
rebuilt engine knows exactly what an engine fed move by move would.
*/
func Rebuild(game *mines.GameState) (*knowledge.Engine, error) {
	eng := knowledge.NewEngine(game.Width, game.Height)
	for y := range game.Height {
		for x := range game.Width {
			st := game.Player[y*game.Width+x]
			if !st.Open() {
				continue
			}
			if err := eng.Observe(knowledge.Cell{X: x, Y: y}, int(st)); err != nil {
				return nil, fmt.Errorf("replaying %d:%d: %w", x, y, err)
			}
		}
	}
	return eng, nil
}
