// Package history provides gesture batching and undo/redo over a grid.
package history

// Change records one cell transition. Within a Batch there is at most one
// Change per (Row, Col).
type Change struct {
	Row      int
	Col      int
	Previous bool // state before the gesture first touched the cell
	Next     bool // state after the gesture's last write
}

// Batch is the ordered set of changes produced by one gesture.
type Batch []Change

// Cells returns the number of cells touched by the batch.
func (b Batch) Cells() int { return len(b) }
