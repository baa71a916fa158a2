package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

func TestParseGameMove(t *testing.T) {
	t.Parallel()

	move, err := ParseGameMove("open")
	require.NoError(t, err)
	require.Equal(t, Open, move)

	move, err = ParseGameMove("flag")
	require.NoError(t, err)
	require.Equal(t, Flag, move)

	_, err = ParseGameMove("chord")
	require.Error(t, err)
	_, err = ParseGameMove("")
	require.Error(t, err)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	pos, err := ParsePosition(map[string][]string{
		"x": {"3"}, "y": {"7"}, "move": {"open"},
	})
	require.NoError(t, err)
	require.Equal(t, Position{X: 3, Y: 7}, pos)

	_, err = ParsePosition(map[string][]string{"x": {"3"}})
	require.Error(t, err)
}

func TestParseGameParams(t *testing.T) {
	t.Parallel()

	params, err := ParseGameParams(map[string][]string{
		"width":      {"9"},
		"height":     {"9"},
		"mine_count": {"10"},
		"x":          {"0"},
		"y":          {"0"},
	})
	require.NoError(t, err)
	require.Equal(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10}, params)

	_, err = ParseGameParams(map[string][]string{"width": {"9"}})
	require.Error(t, err)
}

func TestGridRows(t *testing.T) {
	t.Parallel()

	g := mines.Grid{
		1, 1, 0,
		mines.Flagged, 2, 0,
		mines.Unknown, mines.RevealedMine, 0,
	}
	require.Equal(t, []string{"110", "?20", " *0"}, gridRows(g, 3))
}
