package knowledge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentenceMarkMine(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {1, 0}, {2, 0}}, 2)

	s.MarkMine(Cell{1, 0})
	require.False(t, s.Has(Cell{1, 0}))
	require.Equal(t, 1, s.Count())
	require.Equal(t, 2, s.Len())

	// cells outside the sentence must not affect it
	s.MarkMine(Cell{5, 5})
	require.Equal(t, 1, s.Count())
	require.Equal(t, 2, s.Len())
}

func TestSentenceMarkSafe(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {1, 0}, {2, 0}}, 2)

	s.MarkSafe(Cell{1, 0})
	require.False(t, s.Has(Cell{1, 0}))
	require.Equal(t, 2, s.Count())
	require.Equal(t, 2, s.Len())

	s.MarkSafe(Cell{5, 5})
	require.Equal(t, 2, s.Count())
	require.Equal(t, 2, s.Len())
}

func TestSentenceKnownMines(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {1, 0}}, 2)
	mines, ok := s.KnownMines()
	require.True(t, ok)
	require.Equal(t, []Cell{{0, 0}, {1, 0}}, mines)

	s = NewSentence([]Cell{{0, 0}, {1, 0}}, 1)
	_, ok = s.KnownMines()
	require.False(t, ok)

	// the degenerate empty sentence concludes nothing useful but is
	// still "all mines": callers treat the empty set as a no-op
	s = NewSentence(nil, 0)
	mines, ok = s.KnownMines()
	require.True(t, ok)
	require.Empty(t, mines)
}

func TestSentenceKnownSafes(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {1, 0}}, 0)
	safes, ok := s.KnownSafes()
	require.True(t, ok)
	require.Equal(t, []Cell{{0, 0}, {1, 0}}, safes)

	s = NewSentence([]Cell{{0, 0}, {1, 0}}, 1)
	_, ok = s.KnownSafes()
	require.False(t, ok)
}

func TestSentenceEquality(t *testing.T) {
	a := NewSentence([]Cell{{0, 0}, {1, 0}, {0, 1}}, 1)
	b := NewSentence([]Cell{{0, 1}, {0, 0}, {1, 0}}, 1)
	require.True(t, a.Equal(b))
	require.Equal(t, a.String(), b.String())

	c := NewSentence([]Cell{{0, 0}, {1, 0}, {0, 1}}, 2)
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.String(), c.String())

	d := NewSentence([]Cell{{0, 0}, {1, 0}}, 1)
	require.False(t, a.Equal(d))
}

func TestSentenceSubsetDifference(t *testing.T) {
	a := NewSentence([]Cell{{0, 0}, {1, 0}, {2, 0}}, 2)
	b := NewSentence([]Cell{{0, 0}, {1, 0}}, 1)

	require.True(t, b.SubsetOf(a))
	require.False(t, a.SubsetOf(b))

	diff := a.Difference(b)
	require.Equal(t, []Cell{{2, 0}}, diff.Cells())
	require.Equal(t, 1, diff.Count())
}

func TestSentenceValid(t *testing.T) {
	require.True(t, NewSentence([]Cell{{0, 0}}, 0).Valid())
	require.True(t, NewSentence([]Cell{{0, 0}}, 1).Valid())
	require.False(t, NewSentence([]Cell{{0, 0}}, 2).Valid())
	require.False(t, NewSentence([]Cell{{0, 0}}, -1).Valid())
}
