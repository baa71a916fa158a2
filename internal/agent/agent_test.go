package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

func testGame(w, h int, mineCells ...int) *mines.GameState {
	s := &mines.GameState{
		GameParams: mines.GameParams{Width: w, Height: h, MineCount: len(mineCells)},
		Mines:      make([]bool, w*h),
		Player:     make(mines.Grid, w*h),
	}
	for i := range s.Player {
		s.Player[i] = mines.Unknown
	}
	for _, i := range mineCells {
		s.Mines[i] = true
	}
	return s
}

/*
Mines in opposite corners of a 3x3 board. After the opening move at
2:0 the whole game is decided by deduction: the agent never has to
guess and must pin down both mines.
*/
func TestPlayDeterministicWin(t *testing.T) {
	game := testGame(3, 3, 0, 8)
	first := game.Open(2, 0)
	require.NotEmpty(t, first)

	a := New(3, 3, rand.New(rand.NewPCG(1, 2)))
	res, err := a.Play(game, first)
	require.NoError(t, err)

	require.True(t, res.Won)
	require.Equal(t, 0, res.Guesses)
	require.Equal(t, 2, res.MinesFound)
	require.Equal(t, []knowledge.Cell{{X: 0, Y: 0}, {X: 2, Y: 2}}, a.Engine().MineCells())
}

func TestPlayGuessesWhenStuck(t *testing.T) {
	// no mines, no knowledge: the first move is necessarily a guess
	game := testGame(2, 2)

	a := New(2, 2, rand.New(rand.NewPCG(1, 2)))
	res, err := a.Play(game, nil)
	require.NoError(t, err)

	require.True(t, res.Won)
	require.Equal(t, 1, res.Moves)
	require.Equal(t, 1, res.Guesses)
}

func TestMoveSelection(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	a := New(3, 3, rnd)
	_, ok := a.SafeMove()
	require.False(t, ok)

	require.NoError(t, a.Engine().Observe(knowledge.Cell{X: 1, Y: 1}, 0))
	cell, ok := a.SafeMove()
	require.True(t, ok)
	require.False(t, a.Engine().HasMadeMove(cell))

	// a fully resolved corner leaves nothing to pick from
	b := New(2, 2, rnd)
	require.NoError(t, b.Engine().Observe(knowledge.Cell{X: 0, Y: 0}, 3))
	_, ok = b.SafeMove()
	require.False(t, ok)
	_, ok = b.RandomMove()
	require.False(t, ok)
}

func TestRebuildMatchesIncrementalPlay(t *testing.T) {
	game := testGame(3, 3, 0, 8)
	game.Open(2, 0)

	eng, err := Rebuild(game)
	require.NoError(t, err)

	require.Contains(t, eng.SafeCells(), knowledge.Cell{X: 0, Y: 2})
	require.Empty(t, eng.MineCells())
}

func TestPlaySurfacesContradictions(t *testing.T) {
	game := testGame(2, 1)

	a := New(2, 1, rand.New(rand.NewPCG(1, 2)))
	// a board collaborator lying about its counts must be caught
	_, err := a.Play(game, mines.BoardUpdate{
		{X: 0, Y: 0, MineCount: 0},
		{X: 1, Y: 0, MineCount: 1},
	})
	var contradiction knowledge.ContradictionError
	require.ErrorAs(t, err, &contradiction)
}
