package app

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/bitgrid/internal/config"
	"github.com/bethropolis/bitgrid/internal/modehandler"
	"github.com/bethropolis/bitgrid/internal/quantize"
	"github.com/bethropolis/bitgrid/internal/theme"
	"github.com/bethropolis/bitgrid/internal/tui"
)

func newTestApp(t *testing.T, cols, rows int) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.Cols = cols
	cfg.Editor.Rows = rows
	cfg.Editor.SystemClipboard = false

	s := tcell.NewSimulationScreen("")
	a, err := NewApp(Options{Config: cfg, Screen: s})
	require.NoError(t, err)
	return a, s
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func mouse(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

func TestNewAppRejectsBadGrid(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Editor.Cols = 0
	_, err := NewApp(Options{Config: cfg, Screen: tcell.NewSimulationScreen("")})
	assert.Error(t, err)
}

func TestMouseStrokeIsOneUndoStep(t *testing.T) {
	a, _ := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	assert.True(t, a.handleEvent(mouse(0, 0, tcell.Button1)))
	assert.True(t, a.handleEvent(mouse(2, 0, tcell.Button1)))
	assert.False(t, a.handleEvent(mouse(3, 0, tcell.Button1)), "same cell")
	assert.True(t, a.handleEvent(mouse(4, 1, tcell.Button1)))
	assert.True(t, a.handleEvent(mouse(4, 1, tcell.ButtonNone)))

	g := a.editor.Grid()
	assert.True(t, g.At(0, 0))
	assert.True(t, g.At(0, 1))
	assert.True(t, g.At(1, 2))
	assert.Equal(t, 3, g.Count())

	assert.True(t, a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone)))
	assert.Equal(t, 0, a.editor.Grid().Count())
	assert.False(t, a.editor.CanUndo())
}

func TestRightButtonErases(t *testing.T) {
	a, _ := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	a.handleEvent(mouse(6, 0, tcell.Button1))
	a.handleEvent(mouse(6, 0, tcell.ButtonNone))
	require.Equal(t, 2, a.editor.Grid().Count())

	a.handleEvent(mouse(6, 0, tcell.Button2))
	a.handleEvent(mouse(6, 0, tcell.ButtonNone))
	assert.False(t, a.editor.Grid().At(0, 3))
	assert.True(t, a.editor.Grid().At(0, 0))
}

func TestScreenResizeEndsGesture(t *testing.T) {
	a, _ := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	require.True(t, a.gestures.Active())

	assert.True(t, a.handleEvent(tcell.NewEventResize(60, 20)))
	assert.False(t, a.gestures.Active())
	assert.False(t, a.editor.GestureActive())
	assert.True(t, a.editor.CanUndo(), "the partial stroke is kept as one step")
}

func TestClearDuringDragDropsGesture(t *testing.T) {
	a, _ := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	a.handleEvent(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))

	assert.False(t, a.gestures.Active())
	assert.Equal(t, 0, a.editor.Grid().Count())
	assert.False(t, a.editor.CanUndo())
}

func TestUndoMidDragRecordsStrokeFirst(t *testing.T) {
	a, _ := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	a.handleEvent(mouse(0, 0, tcell.ButtonNone))
	require.True(t, a.editor.Grid().At(0, 0))

	a.handleEvent(mouse(0, 0, tcell.Button2))
	require.False(t, a.editor.Grid().At(0, 0))

	assert.True(t, a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone)))
	assert.False(t, a.editor.GestureActive())
	assert.True(t, a.editor.Grid().At(0, 0), "the erase stroke is the step undone")
	assert.False(t, a.handleEvent(mouse(0, 0, tcell.ButtonNone)), "release after the stroke ended")

	for a.editor.CanUndo() {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	}
	assert.Zero(t, a.editor.Grid().Count())
	assert.True(t, a.editor.CanRedo())
}

func TestRedoMidDragKeepsStroke(t *testing.T) {
	a, _ := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	a.handleEvent(mouse(0, 0, tcell.ButtonNone))
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	require.True(t, a.editor.CanRedo())

	a.handleEvent(mouse(2, 0, tcell.Button1))
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))

	assert.True(t, a.editor.Grid().At(0, 1))
	assert.False(t, a.editor.Grid().At(0, 0), "a new stroke discards the redo branch")
	assert.False(t, a.editor.CanRedo())
}

// newLargeApp opens a 128x64 grid on the default 80x25 simulation screen:
// 40 columns and 12 rows of it are visible above a 12-line output pane.
func newLargeApp(t *testing.T) *App {
	t.Helper()
	a, _ := newTestApp(t, 128, 64)
	t.Cleanup(a.tuiManager.Close)
	l := a.currentLayout()
	require.Equal(t, 40, l.VisibleCols)
	require.Equal(t, 12, l.VisibleRows)
	require.Equal(t, 12, l.OutputHeight)
	return a
}

func TestArrowKeysPanGrid(t *testing.T) {
	a := newLargeApp(t)

	assert.True(t, a.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
	assert.True(t, a.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	require.Equal(t, tui.Viewport{Row: modehandler.PanStep, Col: modehandler.PanStep}, a.viewport)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	a.handleEvent(mouse(0, 0, tcell.ButtonNone))
	assert.True(t, a.editor.Grid().At(modehandler.PanStep, modehandler.PanStep))

	for i := 0; i < 100; i++ {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
		a.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	assert.Equal(t, tui.Viewport{Row: 64 - 12, Col: 128 - 40}, a.viewport)

	a.handleEvent(mouse(79, 11, tcell.Button1))
	a.handleEvent(mouse(79, 11, tcell.ButtonNone))
	assert.True(t, a.editor.Grid().At(63, 127), "bottom-right cell reachable")

	a.drawEditor()
	text, _ := a.statusBar.Text()
	assert.True(t, strings.HasSuffix(text, " | view 52,88"), text)
}

func TestWheelScrollsGridAndOutput(t *testing.T) {
	a := newLargeApp(t)

	assert.True(t, a.handleEvent(mouse(0, 0, tcell.WheelDown)))
	assert.True(t, a.handleEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModShift)))
	assert.Equal(t, tui.Viewport{Row: 3, Col: 3}, a.viewport)
	assert.Zero(t, a.editor.Grid().Count(), "wheel does not paint")

	outputY := a.currentLayout().OutputY
	a.handleEvent(mouse(0, outputY+2, tcell.WheelDown))
	assert.Equal(t, tui.Viewport{Row: 3, Col: 3, OutputLine: 3}, a.viewport)

	a.handleEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	assert.Equal(t, 3+modehandler.OutputPageStep, a.viewport.OutputLine)

	a.drawEditor()
	assert.Contains(t, rowText(a.tuiManager.GetScreen().(tcell.SimulationScreen), outputY), "lines 12-22 of 64")

	a.handleEvent(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))
	assert.Equal(t, tui.Viewport{}, a.viewport, "replacing the grid resets the view")
}

func TestWheelIgnoredDuringDrag(t *testing.T) {
	a := newLargeApp(t)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	assert.False(t, a.handleEvent(mouse(0, 0, tcell.WheelDown)))
	assert.Equal(t, tui.Viewport{}, a.viewport)
	assert.True(t, a.gestures.Active())
}

func TestDrawEditor(t *testing.T) {
	a, s := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(mouse(0, 0, tcell.Button1))
	a.handleEvent(mouse(0, 0, tcell.ButtonNone))
	a.drawEditor()

	_, _, style, _ := s.GetContent(0, 0)
	assert.Equal(t, a.activeTheme.GetStyle(theme.StyleCellOn), style)
	_, _, style, _ = s.GetContent(2, 0)
	assert.Equal(t, a.activeTheme.GetStyle(theme.StyleCellOff), style)

	assert.Equal(t, "-- hex output, 2 line(s) --", rowText(s, 2))
	assert.Equal(t, "0x01,", rowText(s, 3))
	assert.Equal(t, "0x00,", rowText(s, 4))

	_, h := s.Size()
	assert.True(t, strings.HasPrefix(rowText(s, h-1), "4x2 | 1 on | hex | undo:yes redo:no"))
}

func TestDrawAfterFormatToggleAndHide(t *testing.T) {
	a, s := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)

	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	a.drawEditor()
	assert.Equal(t, "-- binary output, 2 line(s) --", rowText(s, 2))
	assert.Equal(t, "0b0000,", rowText(s, 3))
	assert.Equal(t, "0b0000", rowText(s, 4))

	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone))
	a.drawEditor()
	assert.Equal(t, "", rowText(s, 2))
}

func TestThemeCycleRestylesScreen(t *testing.T) {
	a, s := newTestApp(t, 4, 2)
	t.Cleanup(a.tuiManager.Close)
	before := a.activeTheme

	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone))
	a.drawEditor()

	require.NotSame(t, before, a.activeTheme)
	_, _, style, _ := s.GetContent(0, 0)
	assert.Equal(t, a.activeTheme.GetStyle(theme.StyleCellOff), style)
}

func TestStartupImport(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.Black)
		img.Set(x, 1, color.White)
	}
	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	a, err := NewApp(Options{Config: cfg, Image: img, Screen: tcell.NewSimulationScreen("")})
	require.NoError(t, err)
	t.Cleanup(a.tuiManager.Close)

	g := a.GetEditor().Grid()
	assert.Equal(t, quantize.TargetWidth, g.Cols())
	assert.True(t, g.At(0, 0))
	assert.False(t, g.At(quantize.TargetHeight-1, 0))
}

func TestRunQuits(t *testing.T) {
	a, s := newTestApp(t, 4, 2)

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(ready)
		done <- a.Run()
	}()
	<-ready

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}
