package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/logger"
)

const DefaultMaxHistory = 1024

// ErrEmptyBatch is returned when an empty batch is offered to the history.
var ErrEmptyBatch = errors.New("history: empty batch")

// EditorInterface defines the methods the history manager needs from the editor.
type EditorInterface interface {
	Grid() *grid.Grid
	GetEventManager() *event.Manager
}

// Manager handles the undo/redo stacks. batches[:currentIndex] is the undo
// stack (top last) and batches[currentIndex:] the redo stack (top first).
type Manager struct {
	editor       EditorInterface
	batches      []Batch
	currentIndex int // Index of the next batch to redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager. maxHistory <= 0 selects DefaultMaxHistory.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		maxHistory: maxHistory,
	}
}

// RecordBatch pushes batch onto the undo stack and clears any redo history.
func (m *Manager) RecordBatch(batch Batch) error {
	if len(batch) == 0 {
		return ErrEmptyBatch
	}

	m.mutex.Lock()
	if m.currentIndex < len(m.batches) {
		logger.DebugTagf("history", "History: dropping %d redo batch(es)", len(m.batches)-m.currentIndex)
		m.batches = m.batches[:m.currentIndex]
	}
	m.batches = append(m.batches, batch)
	if len(m.batches) > m.maxHistory {
		m.batches = m.batches[len(m.batches)-m.maxHistory:]
	}
	m.currentIndex = len(m.batches)
	logger.DebugTagf("history", "History: recorded batch of %d. Index: %d, Count: %d", len(batch), m.currentIndex, len(m.batches))
	m.mutex.Unlock()

	m.notify(0)
	return nil
}

// Undo reverts the most recent batch and returns it, or nil when there is
// nothing to undo.
func (m *Manager) Undo() (Batch, error) {
	m.mutex.Lock()
	if m.currentIndex <= 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "History: Nothing to undo.")
		return nil, nil
	}

	batch := m.batches[m.currentIndex-1]
	if err := apply(m.editor.Grid(), batch, false); err != nil {
		m.mutex.Unlock()
		logger.Errorf("History: undo failed: %v", err)
		return nil, fmt.Errorf("undo failed: %w", err)
	}
	m.currentIndex--
	logger.DebugTagf("history", "History: undid batch %d (%d cells)", m.currentIndex, len(batch))
	m.mutex.Unlock()

	m.notify(len(batch))
	return batch, nil
}

// Redo reapplies the most recently undone batch and returns it, or nil when
// there is nothing to redo.
func (m *Manager) Redo() (Batch, error) {
	m.mutex.Lock()
	if m.currentIndex >= len(m.batches) {
		m.mutex.Unlock()
		logger.DebugTagf("history", "History: Nothing to redo. currentIndex=%d, len=%d", m.currentIndex, len(m.batches))
		return nil, nil
	}

	batch := m.batches[m.currentIndex]
	if err := apply(m.editor.Grid(), batch, true); err != nil {
		m.mutex.Unlock()
		logger.Errorf("History: redo failed: %v", err)
		return nil, fmt.Errorf("redo failed: %w", err)
	}
	m.currentIndex++
	logger.DebugTagf("history", "History: redid batch %d (%d cells)", m.currentIndex-1, len(batch))
	m.mutex.Unlock()

	m.notify(len(batch))
	return batch, nil
}

// Clear empties both stacks. Call this whenever the grid is replaced.
func (m *Manager) Clear() {
	m.mutex.Lock()
	m.batches = nil
	m.currentIndex = 0
	m.mutex.Unlock()
	logger.DebugTagf("history", "History: Cleared.")
	m.notify(0)
}

// CanUndo returns true if there are batches that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are batches that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.batches)
}

// Len returns the depth of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex, len(m.batches) - m.currentIndex
}

// notify publishes the new stack state, plus a modification event when
// cells were written. It must run without the mutex held.
func (m *Manager) notify(cells int) {
	eventMgr := m.editor.GetEventManager()
	if eventMgr == nil {
		return
	}
	if cells > 0 {
		eventMgr.Dispatch(event.TypeGridModified, event.GridModifiedData{Cells: cells})
	}
	eventMgr.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		CanUndo: m.CanUndo(),
		CanRedo: m.CanRedo(),
	})
}

// apply writes either the Next (redo) or Previous (undo) state of every
// change. Coordinates are validated first so a failure leaves g untouched.
func apply(g *grid.Grid, batch Batch, forward bool) error {
	if g == nil {
		return errors.New("no grid")
	}
	for _, c := range batch {
		if !g.InBounds(c.Row, c.Col) {
			return fmt.Errorf("%w: (%d,%d)", grid.ErrOutOfBounds, c.Row, c.Col)
		}
	}
	for _, c := range batch {
		state := c.Previous
		if forward {
			state = c.Next
		}
		if _, err := g.Set(c.Row, c.Col, state); err != nil {
			return err
		}
	}
	return nil
}
