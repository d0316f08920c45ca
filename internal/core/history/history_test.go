package history

import (
	"testing"

	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEditor struct {
	g      *grid.Grid
	events *event.Manager
}

func (s *stubEditor) Grid() *grid.Grid { return s.g }
func (s *stubEditor) GetEventManager() *event.Manager { return s.events }

func newStub(t *testing.T, cols, rows int) *stubEditor {
	t.Helper()
	g, err := grid.New(cols, rows)
	require.NoError(t, err)
	return &stubEditor{g: g, events: event.NewManager()}
}

func paintAll(t *testing.T, b *Batcher, g *grid.Grid, cells [][2]int, on bool) {
	t.Helper()
	for _, c := range cells {
		_, err := b.Paint(g, c[0], c[1], on)
		require.NoError(t, err)
	}
}

func TestPaintIsIdempotent(t *testing.T) {
	s := newStub(t, 4, 4)
	b := NewBatcher()

	applied, err := b.Paint(s.g, 1, 2, true)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = b.Paint(s.g, 1, 2, true)
	require.NoError(t, err)
	assert.False(t, applied, "repainting the same state is a no-op")

	batch := b.Flush()
	require.Len(t, batch, 1)
	assert.Equal(t, Change{Row: 1, Col: 2, Previous: false, Next: true}, batch[0])
}

func TestPaintKeepsFirstPrevious(t *testing.T) {
	s := newStub(t, 4, 4)
	b := NewBatcher()

	paintAll(t, b, s.g, [][2]int{{0, 0}}, true)
	paintAll(t, b, s.g, [][2]int{{0, 0}}, false)
	paintAll(t, b, s.g, [][2]int{{0, 0}}, true)

	batch := b.Flush()
	require.Len(t, batch, 1)
	assert.False(t, batch[0].Previous)
	assert.True(t, batch[0].Next)
}

func TestPaintOutOfBounds(t *testing.T) {
	s := newStub(t, 2, 2)
	b := NewBatcher()

	_, err := b.Paint(s.g, 5, 0, true)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	assert.Zero(t, b.Len())
}

func TestFlushEmpty(t *testing.T) {
	b := NewBatcher()
	assert.Nil(t, b.Flush())
}

func TestBeginDiscardsButKeepsGridWrites(t *testing.T) {
	s := newStub(t, 3, 3)
	b := NewBatcher()

	paintAll(t, b, s.g, [][2]int{{0, 0}, {1, 1}}, true)
	b.Begin()

	assert.Zero(t, b.Len())
	assert.Nil(t, b.Flush())
	assert.Equal(t, 2, s.g.Count(), "discarded batch leaves its grid writes in place")
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	s := newStub(t, 6, 4)
	m := NewManager(s, 0)
	b := NewBatcher()

	// Seed some state in an earlier gesture.
	paintAll(t, b, s.g, [][2]int{{0, 0}, {3, 5}}, true)
	require.NoError(t, m.RecordBatch(b.Flush()))

	before := s.g.Clone()
	b.Begin()
	paintAll(t, b, s.g, [][2]int{{0, 0}, {0, 1}, {2, 2}}, false)
	paintAll(t, b, s.g, [][2]int{{0, 1}, {2, 2}, {1, 4}}, true)
	paintAll(t, b, s.g, [][2]int{{2, 2}}, false)
	require.NoError(t, m.RecordBatch(b.Flush()))
	after := s.g.Clone()

	batch, err := m.Undo()
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.True(t, s.g.Equal(before))

	batch, err = m.Redo()
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.True(t, s.g.Equal(after))
}

func TestUndoRedoEmpty(t *testing.T) {
	s := newStub(t, 2, 2)
	m := NewManager(s, 0)

	batch, err := m.Undo()
	assert.NoError(t, err)
	assert.Nil(t, batch)

	batch, err = m.Redo()
	assert.NoError(t, err)
	assert.Nil(t, batch)

	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestRecordClearsRedo(t *testing.T) {
	s := newStub(t, 4, 4)
	m := NewManager(s, 0)
	b := NewBatcher()

	paintAll(t, b, s.g, [][2]int{{0, 0}}, true)
	require.NoError(t, m.RecordBatch(b.Flush()))

	_, err := m.Undo()
	require.NoError(t, err)
	assert.True(t, m.CanRedo())

	b.Begin()
	paintAll(t, b, s.g, [][2]int{{3, 3}}, true)
	require.NoError(t, m.RecordBatch(b.Flush()))

	assert.False(t, m.CanRedo())
	batch, err := m.Redo()
	assert.NoError(t, err)
	assert.Nil(t, batch, "redo after a divergent action is a no-op")
	assert.False(t, s.g.At(0, 0))
}

func TestRecordRejectsEmpty(t *testing.T) {
	s := newStub(t, 2, 2)
	m := NewManager(s, 0)

	assert.ErrorIs(t, m.RecordBatch(nil), ErrEmptyBatch)
	assert.False(t, m.CanUndo())
}

func TestClear(t *testing.T) {
	s := newStub(t, 2, 2)
	m := NewManager(s, 0)
	require.NoError(t, m.RecordBatch(Batch{{Row: 0, Col: 0, Next: true}}))
	require.NoError(t, m.RecordBatch(Batch{{Row: 1, Col: 1, Next: true}}))
	_, err := m.Undo()
	require.NoError(t, err)

	m.Clear()
	undo, redo := m.Len()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestMaxHistoryEvictsOldest(t *testing.T) {
	s := newStub(t, 4, 1)
	m := NewManager(s, 2)

	for col := 0; col < 4; col++ {
		require.NoError(t, m.RecordBatch(Batch{{Row: 0, Col: col, Next: true}}))
	}
	undo, _ := m.Len()
	assert.Equal(t, 2, undo)
}

func TestUndoOutOfBoundsLeavesGridUntouched(t *testing.T) {
	s := newStub(t, 4, 4)
	m := NewManager(s, 0)
	require.NoError(t, m.RecordBatch(Batch{
		{Row: 0, Col: 0, Previous: true, Next: false},
		{Row: 9, Col: 9, Previous: true, Next: false},
	}))

	_, err := m.Undo()
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	assert.Equal(t, 0, s.g.Count())
	assert.True(t, m.CanUndo(), "failed undo keeps the batch on the undo stack")
}

func TestHistoryEvents(t *testing.T) {
	s := newStub(t, 2, 2)
	m := NewManager(s, 0)

	var flags []event.HistoryChangedData
	modified := 0
	s.events.Subscribe(event.TypeHistoryChanged, func(e event.Event) bool {
		flags = append(flags, e.Data.(event.HistoryChangedData))
		return false
	})
	s.events.Subscribe(event.TypeGridModified, func(e event.Event) bool {
		modified += e.Data.(event.GridModifiedData).Cells
		return false
	})

	require.NoError(t, m.RecordBatch(Batch{{Row: 0, Col: 0, Next: true}}))
	_, err := m.Undo()
	require.NoError(t, err)

	require.Len(t, flags, 2)
	assert.Equal(t, event.HistoryChangedData{CanUndo: true, CanRedo: false}, flags[0])
	assert.Equal(t, event.HistoryChangedData{CanUndo: false, CanRedo: true}, flags[1])
	assert.Equal(t, 1, modified)
}
