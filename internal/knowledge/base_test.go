package knowledge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseMarkMineCascades(t *testing.T) {
	b := NewBase()
	s1 := NewSentence([]Cell{{0, 0}, {1, 0}}, 1)
	s2 := NewSentence([]Cell{{1, 0}, {2, 0}}, 1)
	require.True(t, b.Add(s1))
	require.True(t, b.Add(s2))

	b.MarkMine(Cell{1, 0})

	require.True(t, b.IsMine(Cell{1, 0}))
	require.False(t, s1.Has(Cell{1, 0}))
	require.False(t, s2.Has(Cell{1, 0}))
	require.Equal(t, 0, s1.Count())
	require.Equal(t, 0, s2.Count())
}

func TestBaseMarkIdempotent(t *testing.T) {
	b := NewBase()
	s := NewSentence([]Cell{{0, 0}, {1, 0}}, 1)
	require.True(t, b.Add(s))

	b.MarkMine(Cell{0, 0})
	b.MarkMine(Cell{0, 0})
	require.Equal(t, 0, s.Count())
	require.Equal(t, 1, s.Len())

	b.MarkSafe(Cell{1, 0})
	b.MarkSafe(Cell{1, 0})
	require.Equal(t, 0, s.Count())
	require.Equal(t, 0, s.Len())

	mines, safes := b.KnownCounts()
	require.Equal(t, 1, mines)
	require.Equal(t, 1, safes)
}

func TestBaseAddDedup(t *testing.T) {
	b := NewBase()
	require.True(t, b.Add(NewSentence([]Cell{{0, 0}, {1, 0}}, 1)))
	require.False(t, b.Add(NewSentence([]Cell{{1, 0}, {0, 0}}, 1)))
	require.True(t, b.Add(NewSentence([]Cell{{1, 0}, {0, 0}}, 2)))
	require.False(t, b.Add(NewSentence(nil, 0)))
	require.Equal(t, 2, b.SentenceCount())
}

func TestBasePrune(t *testing.T) {
	b := NewBase()
	b.Add(NewSentence([]Cell{{0, 0}, {1, 0}}, 1))
	b.Add(NewSentence([]Cell{{0, 0}, {1, 0}, {2, 0}}, 1))

	// marking (2, 0) safe makes the two sentences equal duplicates
	b.MarkSafe(Cell{2, 0})
	require.NoError(t, b.Prune())
	require.Equal(t, 1, b.SentenceCount())

	// resolving the rest empties the survivor
	b.MarkMine(Cell{0, 0})
	b.MarkSafe(Cell{1, 0})
	require.NoError(t, b.Prune())
	require.Equal(t, 0, b.SentenceCount())
}

func TestBasePruneDetectsContradiction(t *testing.T) {
	b := NewBase()
	b.Add(NewSentence([]Cell{{0, 0}}, 1))

	// a safe marking on a cell the count relies on leaves {} = 1
	b.MarkSafe(Cell{0, 0})
	err := b.Prune()
	var contradiction ContradictionError
	require.ErrorAs(t, err, &contradiction)
}

func TestBaseSafeCellsExcludePlayed(t *testing.T) {
	b := NewBase()
	b.MarkSafe(Cell{0, 0})
	b.MarkSafe(Cell{1, 0})
	b.RecordMove(Cell{0, 0})

	require.Equal(t, []Cell{{1, 0}}, b.SafeCells())
	require.True(t, b.HasMoved(Cell{0, 0}))
	require.False(t, b.HasMoved(Cell{1, 0}))
}
