package history

import (
	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/logger"
)

type cellKey struct{ row, col int }

// Batcher accumulates the cell writes of one gesture into a deduplicated
// Batch. Only one batch is active at a time.
type Batcher struct {
	changes []Change
	index   map[cellKey]int // position of each coordinate in changes
}

// NewBatcher creates a batcher with an empty active batch.
func NewBatcher() *Batcher {
	return &Batcher{index: make(map[cellKey]int)}
}

// Begin starts a new gesture. Unflushed changes from a previous gesture are
// discarded from tracking; their grid writes stay in place.
func (b *Batcher) Begin() {
	if len(b.changes) > 0 {
		logger.DebugTagf("history", "Batcher: discarding %d unflushed change(s)", len(b.changes))
	}
	b.reset()
}

func (b *Batcher) reset() {
	b.changes = nil
	clear(b.index)
}

// Paint drives (row, col) towards on. It reports whether the grid was
// written; a cell already in the desired state is left alone and nothing is
// recorded.
func (b *Batcher) Paint(g *grid.Grid, row, col int, on bool) (bool, error) {
	current, err := g.Get(row, col)
	if err != nil {
		return false, err
	}
	if current == on {
		return false, nil
	}

	prev, err := g.Set(row, col, on)
	if err != nil {
		return false, err
	}

	key := cellKey{row, col}
	if i, ok := b.index[key]; ok {
		// Keep the state captured at first touch.
		b.changes[i].Next = on
		return true, nil
	}
	b.index[key] = len(b.changes)
	b.changes = append(b.changes, Change{Row: row, Col: col, Previous: prev, Next: on})
	return true, nil
}

// Len returns the number of distinct cells recorded in the active batch.
func (b *Batcher) Len() int { return len(b.changes) }

// Flush hands over the active batch and starts an empty one. An empty
// active batch flushes to nil.
func (b *Batcher) Flush() Batch {
	if len(b.changes) == 0 {
		return nil
	}
	batch := Batch(b.changes)
	b.reset()
	logger.DebugTagf("history", "Batcher: flushed %d change(s)", len(batch))
	return batch
}
