package knowledge

import "fmt"

// ContradictionError signals that the observations fed to the engine
// are mutually inconsistent: some sentence ended up with a mine count
// outside [0, |cells|]. The knowledge base is unusable past this point
// and the session should be discarded.
type ContradictionError struct {
	Sentence string
}

// [ContradictionError] implements [error]
func (e ContradictionError) Error() string {
	return fmt.Sprintf("contradictory observations: %s", e.Sentence)
}

/*
Base is the knowledge accumulated over one game session: every live
sentence plus the derived fact sets (moves made, confirmed safe,
confirmed mines). It owns all sentence values; the engine mutates it
in place and nothing else writes to it.

Sentences are kept in insertion order alongside a dedup index keyed by
the canonical rendering. Marking facts mutates sentences and therefore
stales the index; Prune rebuilds it, and must run after every batch of
mark calls before the next Add or Has.
*/
type Base struct {
	sentences []*Sentence
	index     map[string]*Sentence
	moves     map[Cell]void
	safes     map[Cell]void
	mines     map[Cell]void
}

func NewBase() *Base {
	return &Base{
		index: make(map[string]*Sentence),
		moves: make(map[Cell]void),
		safes: make(map[Cell]void),
		mines: make(map[Cell]void),
	}
}

// RecordMove marks c as played. Idempotent.
func (b *Base) RecordMove(c Cell) {
	b.moves[c] = void{}
}

// MarkMine records c as a confirmed mine and removes it from every
// live sentence. Idempotent.
func (b *Base) MarkMine(c Cell) {
	b.mines[c] = void{}
	for _, s := range b.sentences {
		s.MarkMine(c)
	}
}

// MarkSafe records c as confirmed safe and removes it from every live
// sentence. Idempotent.
func (b *Base) MarkSafe(c Cell) {
	b.safes[c] = void{}
	for _, s := range b.sentences {
		s.MarkSafe(c)
	}
}

func (b *Base) IsMine(c Cell) bool {
	_, ok := b.mines[c]
	return ok
}

func (b *Base) IsSafe(c Cell) bool {
	_, ok := b.safes[c]
	return ok
}

func (b *Base) HasMoved(c Cell) bool {
	_, ok := b.moves[c]
	return ok
}

// Has reports whether an equal sentence is already live.
func (b *Base) Has(s *Sentence) bool {
	_, ok := b.index[s.String()]
	return ok
}

// Add inserts s unless it is empty or an equal sentence is already
// live. Reports whether the sentence went in.
func (b *Base) Add(s *Sentence) bool {
	if s.Empty() || b.Has(s) {
		return false
	}
	b.sentences = append(b.sentences, s)
	b.index[s.String()] = s
	return true
}

/*
Prune drops every empty sentence, collapses duplicates down to one
copy each and rebuilds the dedup index. Returns a ContradictionError
if any surviving sentence violates the count invariant.
*/
func (b *Base) Prune() error {
	live := b.sentences[:0]
	index := make(map[string]*Sentence, len(b.sentences))
	for _, s := range b.sentences {
		if s.Empty() {
			if s.Count() != 0 {
				return ContradictionError{s.String()}
			}
			continue
		}
		if !s.Valid() {
			return ContradictionError{s.String()}
		}
		key := s.String()
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = s
		live = append(live, s)
	}
	b.sentences = live
	b.index = index
	return nil
}

// Sentences returns a snapshot copy of the live sentence list, so
// callers may mark and prune while iterating.
func (b *Base) Sentences() []*Sentence {
	snapshot := make([]*Sentence, len(b.sentences))
	copy(snapshot, b.sentences)
	return snapshot
}

func (b *Base) SentenceCount() int {
	return len(b.sentences)
}

// SafeCells returns the confirmed-safe cells that have not been
// played yet, in row-major order.
func (b *Base) SafeCells() []Cell {
	cells := make([]Cell, 0, len(b.safes))
	for c := range b.safes {
		if _, played := b.moves[c]; !played {
			cells = append(cells, c)
		}
	}
	return sortCells(cells)
}

// MineCells returns every confirmed mine in row-major order.
func (b *Base) MineCells() []Cell {
	cells := make([]Cell, 0, len(b.mines))
	for c := range b.mines {
		cells = append(cells, c)
	}
	return sortCells(cells)
}

// KnownCounts reports how many cells are confirmed mines and safe,
// used by the engine to detect that a saturation pass made progress.
func (b *Base) KnownCounts() (mines, safes int) {
	return len(b.mines), len(b.safes)
}
