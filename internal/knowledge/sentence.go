package knowledge

import (
	"fmt"
	"strings"
)

type void struct{}

/*
A Sentence is a single logical constraint over the board: a set of
cells together with the exact number of mines among them. Sentences
compare by value (cell set + count), which is what makes dedup in the
knowledge base work.
*/
type Sentence struct {
	cells map[Cell]void
	count int
}

func NewSentence(cells []Cell, count int) *Sentence {
	s := &Sentence{
		cells: make(map[Cell]void, len(cells)),
		count: count,
	}
	for _, c := range cells {
		s.cells[c] = void{}
	}
	return s
}

func (s *Sentence) Len() int {
	return len(s.cells)
}

func (s *Sentence) Count() int {
	return s.count
}

func (s *Sentence) Empty() bool {
	return len(s.cells) == 0
}

func (s *Sentence) Has(c Cell) bool {
	_, ok := s.cells[c]
	return ok
}

// Cells returns the constrained cells in row-major order.
func (s *Sentence) Cells() []Cell {
	cells := make([]Cell, 0, len(s.cells))
	for c := range s.cells {
		cells = append(cells, c)
	}
	return sortCells(cells)
}

/*
KnownMines reports whether every cell in the sentence is certainly a
mine, i.e. the mine count equals the cardinality. The returned set is
empty for an empty sentence, which callers must treat as a no-op.
*/
func (s *Sentence) KnownMines() ([]Cell, bool) {
	if s.count != len(s.cells) {
		return nil, false
	}
	return s.Cells(), true
}

// KnownSafes reports whether every cell in the sentence is certainly
// safe, i.e. the mine count is zero.
func (s *Sentence) KnownSafes() ([]Cell, bool) {
	if s.count != 0 {
		return nil, false
	}
	return s.Cells(), true
}

// MarkMine removes c from the sentence and decrements the mine count.
// No-op if c is not constrained by this sentence.
func (s *Sentence) MarkMine(c Cell) {
	if _, ok := s.cells[c]; ok {
		delete(s.cells, c)
		s.count--
	}
}

// MarkSafe removes c from the sentence; the mine count is unchanged.
// No-op if c is not constrained by this sentence.
func (s *Sentence) MarkSafe(c Cell) {
	delete(s.cells, c)
}

// Valid reports whether the count invariant 0 <= count <= |cells|
// holds. A violation means the observations fed in contradict each
// other.
func (s *Sentence) Valid() bool {
	return 0 <= s.count && s.count <= len(s.cells)
}

func (s *Sentence) Equal(o *Sentence) bool {
	if s.count != o.count || len(s.cells) != len(o.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := o.cells[c]; !ok {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell of s is also constrained by o.
func (s *Sentence) SubsetOf(o *Sentence) bool {
	if len(s.cells) > len(o.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := o.cells[c]; !ok {
			return false
		}
	}
	return true
}

/*
Difference derives the subset-rule candidate from s minus a subset o:
the cells of s not constrained by o must hold exactly the leftover
mines. The caller is responsible for checking o.SubsetOf(s) first.
*/
func (s *Sentence) Difference(o *Sentence) *Sentence {
	rest := make([]Cell, 0, len(s.cells)-len(o.cells))
	for c := range s.cells {
		if _, ok := o.cells[c]; !ok {
			rest = append(rest, c)
		}
	}
	return NewSentence(rest, s.count-o.count)
}

// String renders the sentence in a canonical form ("1:0 2:0 = 1"),
// stable under the set's iteration order. Equal sentences render
// identically, so the rendering doubles as a dedup key.
func (s *Sentence) String() string {
	var b strings.Builder
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, " = %d", s.count)
	return b.String()
}
