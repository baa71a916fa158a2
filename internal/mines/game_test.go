package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func testState(w, h int, mines ...int) *GameState {
	s := &GameState{
		GameParams: GameParams{Width: w, Height: h, MineCount: len(mines)},
		Mines:      make([]bool, w*h),
		Player:     make(Grid, w*h),
	}
	for i := range s.Player {
		s.Player[i] = Unknown
	}
	for _, i := range mines {
		s.Mines[i] = true
	}
	return s
}

func TestNewGameFirstSquareSafe(t *testing.T) {
	params := &GameParams{Width: 9, Height: 9, MineCount: 10}
	r := rand.New(rand.NewPCG(1, 2))

	for sx := range params.Width {
		for sy := range params.Height {
			game, update, err := NewGame(params, sx, sy, r)
			require.NoError(t, err)
			require.False(t, game.MineAt(sx, sy))
			require.False(t, game.Dead)
			require.NotEmpty(t, update)

			planted := 0
			for _, mined := range game.Mines {
				if mined {
					planted++
				}
			}
			require.Equal(t, params.MineCount, planted)
		}
	}
}

func TestNewGameRejectsBadParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	_, _, err := NewGame(&GameParams{Width: 0, Height: 9, MineCount: 1}, 0, 0, r)
	require.Error(t, err)

	_, _, err = NewGame(&GameParams{Width: 3, Height: 3, MineCount: 9}, 0, 0, r)
	require.Error(t, err)

	_, _, err = NewGame(&GameParams{Width: 3, Height: 3, MineCount: 1}, 3, 0, r)
	require.Error(t, err)
}

func TestOpenFloodsZeroRegion(t *testing.T) {
	// single mine in the top-left corner
	s := testState(3, 3, 0)

	update := s.Open(2, 2)

	require.True(t, s.Won)
	require.False(t, s.Dead)
	require.Len(t, update, 8)
	for i := range s.Player {
		if i == 0 {
			require.Equal(t, Unknown, s.Player[i])
		} else {
			require.True(t, s.Player[i].Open())
		}
	}
}

func TestOpenMineKills(t *testing.T) {
	s := testState(3, 3, 4)

	update := s.Open(1, 1)

	require.True(t, s.Dead)
	require.Equal(t, BoardUpdate{{X: 1, Y: 1, Mined: true}}, update)
	require.Equal(t, ExplodedMine, s.Player[4])

	// a finished game ignores further moves
	require.Nil(t, s.Open(0, 0))
}

func TestOpenReportsMineCounts(t *testing.T) {
	s := testState(3, 3, 0, 8)

	update := s.Open(1, 1)
	require.Equal(t, BoardUpdate{{X: 1, Y: 1, MineCount: 2}}, update)

	update = s.Open(0, 1)
	require.Equal(t, BoardUpdate{{X: 0, Y: 1, MineCount: 1}}, update)
}

func TestFlagCellToggles(t *testing.T) {
	s := testState(2, 2, 3)

	s.FlagCell(0, 0)
	require.Equal(t, Flagged, s.Player[0])
	s.FlagCell(0, 0)
	require.Equal(t, Unknown, s.Player[0])

	// open squares cannot be flagged
	s.Open(1, 0)
	s.FlagCell(1, 0)
	require.True(t, s.Player[1].Open())
}

func TestRevealMines(t *testing.T) {
	s := testState(3, 3, 0, 4)

	s.RevealMines()
	require.True(t, s.Dead)
	require.Equal(t, RevealedMine, s.Player[0])
	require.Equal(t, RevealedMine, s.Player[4])
}

func TestGameStateRoundTrip(t *testing.T) {
	params := &GameParams{Width: 9, Height: 9, MineCount: 10}
	r := rand.New(rand.NewPCG(3, 4))
	game, _, err := NewGame(params, 4, 4, r)
	require.NoError(t, err)

	b, err := game.Bytes()
	require.NoError(t, err)
	decoded, err := ParseGameStateFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, game, decoded)
}

func TestSeedRoundTrip(t *testing.T) {
	p := GameParams{Width: 30, Height: 16, MineCount: 99}
	parsed, err := ParseSeed(p.Seed())
	require.NoError(t, err)
	require.Equal(t, p, *parsed)

	_, err = ParseSeed("not a seed")
	require.Error(t, err)
}
