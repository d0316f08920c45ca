// internal/core/editor.go
package core

import (
	"fmt"
	"image"

	"github.com/google/uuid"

	"github.com/bethropolis/bitgrid/internal/core/history"
	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/export"
	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/quantize"
)

// Editor is one editing session: the grid, the gesture batcher and the
// undo/redo history. It is not safe for concurrent use; the front-end
// serializes calls.
type Editor struct {
	id             string
	grid           *grid.Grid
	batcher        *history.Batcher
	historyManager *history.Manager
	eventManager   *event.Manager
	gestureActive  bool
}

// NewEditor creates a session over an all-off cols x rows grid.
// historyLimit <= 0 selects history.DefaultMaxHistory.
func NewEditor(cols, rows, historyLimit int) (*Editor, error) {
	g, err := grid.New(cols, rows)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		id:      uuid.NewString(),
		grid:    g,
		batcher: history.NewBatcher(),
	}
	e.historyManager = history.NewManager(e, historyLimit)
	logger.Debugf("Editor %s: created %dx%d grid", e.id, cols, rows)
	return e, nil
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager, which may be nil.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetHistoryManager returns the session's undo/redo history.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// Grid returns the live grid. It changes identity on Resize, Import and Clear.
func (e *Editor) Grid() *grid.Grid {
	return e.grid
}

// View returns a read-only accessor for the current grid.
func (e *Editor) View() grid.View {
	return e.grid
}

// ID returns the session identifier used in log lines.
func (e *Editor) ID() string {
	return e.id
}

// GestureActive reports whether a gesture has begun and not yet ended.
func (e *Editor) GestureActive() bool {
	return e.gestureActive
}

// BeginGesture starts a new batch. Changes left over from a gesture that
// never ended are dropped from history tracking but stay on the grid.
func (e *Editor) BeginGesture() {
	e.batcher.Begin()
	e.gestureActive = true
}

// Paint drives (row, col) towards on as part of the active gesture.
func (e *Editor) Paint(row, col int, on bool) (bool, error) {
	applied, err := e.batcher.Paint(e.grid, row, col, on)
	if err != nil {
		return false, err
	}
	if applied {
		e.dispatch(event.TypeGridModified, event.GridModifiedData{Cells: 1})
	}
	return applied, nil
}

// EndGesture flushes the active batch into history. It returns the recorded
// batch, or nil when the gesture changed nothing.
func (e *Editor) EndGesture() (history.Batch, error) {
	e.gestureActive = false
	batch := e.batcher.Flush()
	if batch == nil {
		return nil, nil
	}
	if err := e.historyManager.RecordBatch(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// ApplyIntent routes one input-layer intent to the gesture operations.
// Begin and Continue paint when inside the grid; End flushes.
func (e *Editor) ApplyIntent(in Intent) error {
	switch in.Phase {
	case PhaseBegin:
		e.BeginGesture()
	case PhaseEnd:
		_, err := e.EndGesture()
		return err
	case PhaseContinue:
	default:
		return fmt.Errorf("unknown gesture phase %d", in.Phase)
	}

	if !in.Inside {
		return nil
	}
	_, err := e.Paint(in.Row, in.Col, in.On)
	return err
}

// Undo reverts the latest batch. It reports whether anything changed.
func (e *Editor) Undo() (bool, error) {
	batch, err := e.historyManager.Undo()
	return batch != nil, err
}

// Redo reapplies the latest undone batch. It reports whether anything
// changed.
func (e *Editor) Redo() (bool, error) {
	batch, err := e.historyManager.Redo()
	return batch != nil, err
}

func (e *Editor) CanUndo() bool { return e.historyManager.CanUndo() }
func (e *Editor) CanRedo() bool { return e.historyManager.CanRedo() }

// Resize replaces the grid with an empty cols x rows one. Invalid
// dimensions leave the current grid and history in place.
func (e *Editor) Resize(cols, rows int) error {
	g, err := grid.New(cols, rows)
	if err != nil {
		return err
	}
	e.replace(g, "resize")
	return nil
}

// Import quantizes img into a fresh TargetWidth x TargetHeight grid. On
// error the current grid and history are kept.
func (e *Editor) Import(img image.Image, threshold float64) error {
	g, err := quantize.Convert(img, threshold)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	e.replace(g, "import")
	return nil
}

// Clear turns every cell off. Like Resize it discards history.
func (e *Editor) Clear() {
	g := e.grid.Clone()
	g.Fill(false)
	e.replace(g, "clear")
}

func (e *Editor) replace(g *grid.Grid, reason string) {
	e.grid = g
	e.batcher.Begin()
	e.gestureActive = false
	e.historyManager.Clear()
	logger.Debugf("Editor %s: grid replaced (%s) with %dx%d, %d cell(s) on", e.id, reason, g.Cols(), g.Rows(), g.Count())
	e.dispatch(event.TypeGridReplaced, event.GridReplacedData{Cols: g.Cols(), Rows: g.Rows(), Reason: reason})
}

// Output serializes the current grid in format f.
func (e *Editor) Output(f export.Format) []string {
	return export.Lines(e.grid, f)
}

// OutputText is Output joined by newlines.
func (e *Editor) OutputText(f export.Format) string {
	return export.Render(e.grid, f)
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}
