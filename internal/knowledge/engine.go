package knowledge

import (
	"log/slog"

	"github.com/gammazero/deque"
)

var Log *slog.Logger = slog.Default()

/*
Engine turns observations ("this opened cell has N mined neighbors")
into certain facts. Every observation becomes a sentence over the
still-unknown neighbors; the engine then drives the knowledge base to
a fixpoint by alternating the subset-difference rule with direct
count deductions until nothing new can be concluded.

An Engine serves exactly one game session and is not safe for
concurrent use; Observe must run to completion before the next read
or observation.
*/
type Engine struct {
	width, height int
	kb            *Base
	pending       deque.Deque[*Sentence]
	queued        map[string]void
}

func NewEngine(width, height int) *Engine {
	return &Engine{
		width:  width,
		height: height,
		kb:     NewBase(),
		queued: make(map[string]void),
	}
}

/*
Observe records that cell was opened and had count mined neighbors,
then propagates every consequence. Returns a ContradictionError if
the observation is inconsistent with what is already known; the
engine must not be used further after that.
*/
func (e *Engine) Observe(cell Cell, count int) error {
	e.kb.RecordMove(cell)
	e.kb.MarkSafe(cell)
	if err := e.prune(); err != nil {
		return err
	}

	/*
	 * Constrain the in-bounds neighbors we know nothing about yet.
	 * Confirmed mines are counted off the reported total, confirmed
	 * safe cells drop out entirely.
	 */
	cells := make([]Cell, 0, 8)
	adjusted := count
	for _, n := range e.neighbors(cell) {
		switch {
		case e.kb.IsMine(n):
			adjusted--
		case e.kb.IsSafe(n):
		default:
			cells = append(cells, n)
		}
	}
	s := NewSentence(cells, adjusted)
	if !s.Valid() {
		return ContradictionError{s.String()}
	}

	Log.Debug("observation",
		slog.Any("cell", cell),
		slog.Int("count", count),
		slog.String("sentence", s.String()),
	)

	e.enqueue(s)
	return e.propagate()
}

// SafeCells returns every cell confirmed safe and not yet played.
func (e *Engine) SafeCells() []Cell {
	return e.kb.SafeCells()
}

// MineCells returns every cell confirmed to be a mine.
func (e *Engine) MineCells() []Cell {
	return e.kb.MineCells()
}

func (e *Engine) HasMadeMove(c Cell) bool {
	return e.kb.HasMoved(c)
}

// IsMine reports whether c is a confirmed mine.
func (e *Engine) IsMine(c Cell) bool {
	return e.kb.IsMine(c)
}

// Snapshot renders the live sentences for diagnostics.
func (e *Engine) Snapshot() []string {
	sentences := e.kb.Sentences()
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.String()
	}
	return out
}

func (e *Engine) neighbors(c Cell) []Cell {
	ns := make([]Cell, 0, 8)
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := c.X+dx, c.Y+dy
			if x < 0 || x >= e.width || y < 0 || y >= e.height {
				continue
			}
			ns = append(ns, Cell{X: x, Y: y})
		}
	}
	return ns
}

func (e *Engine) enqueue(s *Sentence) {
	key := s.String()
	if _, ok := e.queued[key]; ok {
		return
	}
	e.queued[key] = void{}
	e.pending.PushBack(s)
}

/*
propagate drains the pending queue. Each popped sentence is first
reduced by every fact established since it was derived, then added to
the knowledge base (unless an equal sentence is already there), after
which the subset rule and the saturation loop run. The queue empties
on every well-formed input, so this always terminates.
*/
func (e *Engine) propagate() error {
	for e.pending.Len() > 0 {
		s := e.pending.PopFront()
		delete(e.queued, s.String())

		for _, c := range s.Cells() {
			if e.kb.IsMine(c) {
				s.MarkMine(c)
			} else if e.kb.IsSafe(c) {
				s.MarkSafe(c)
			}
		}
		if !s.Valid() {
			return ContradictionError{s.String()}
		}
		if !e.kb.Add(s) {
			/* no new information */
			continue
		}

		if err := e.infer(); err != nil {
			return err
		}
		if err := e.saturate(); err != nil {
			return err
		}
	}
	return nil
}

/*
infer applies the subset-difference rule: for every ordered pair of
distinct live sentences (a, b) with nonzero counts where b's cells
are contained in a's, the cells of a outside b must hold exactly
a.count - b.count mines. Candidates the base or the queue already
hold are discarded.
*/
func (e *Engine) infer() error {
	live := e.kb.Sentences()
	for _, a := range live {
		if a.Count() == 0 {
			continue
		}
		for _, b := range live {
			if a == b || b.Count() == 0 || !b.SubsetOf(a) {
				continue
			}
			cand := a.Difference(b)
			if !cand.Valid() {
				return ContradictionError{cand.String()}
			}
			if cand.Empty() || e.kb.Has(cand) {
				continue
			}
			e.enqueue(cand)
		}
	}
	return nil
}

/*
saturate repeatedly sweeps the live sentences for direct conclusions
(count zero: all safe; count equals cardinality: all mines), records
every such fact across the whole base and prunes. Whenever a sweep
confirmed at least one new mine or safe cell the subset rule gets
another pass over the updated base; otherwise the loop is done.
*/
func (e *Engine) saturate() error {
	for {
		minesBefore, safesBefore := e.kb.KnownCounts()

		for _, s := range e.kb.Sentences() {
			if cells, ok := s.KnownMines(); ok {
				for _, c := range cells {
					e.kb.MarkMine(c)
				}
			} else if cells, ok := s.KnownSafes(); ok {
				for _, c := range cells {
					e.kb.MarkSafe(c)
				}
			}
		}
		if err := e.prune(); err != nil {
			return err
		}

		minesAfter, safesAfter := e.kb.KnownCounts()
		if minesAfter == minesBefore && safesAfter == safesBefore {
			return nil
		}
		if err := e.infer(); err != nil {
			return err
		}
	}
}

// prune cleans both the knowledge base and the pending queue: empty
// sentences go, duplicates collapse to one copy.
func (e *Engine) prune() error {
	if err := e.kb.Prune(); err != nil {
		return err
	}
	n := e.pending.Len()
	queued := make(map[string]void, n)
	for range n {
		s := e.pending.PopFront()
		if s.Empty() && s.Count() == 0 {
			continue
		}
		key := s.String()
		if _, dup := queued[key]; dup {
			continue
		}
		queued[key] = void{}
		e.pending.PushBack(s)
	}
	e.queued = queued
	return nil
}
