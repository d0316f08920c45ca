package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/bitgrid/internal/core"
)

const (
	paintButtons = tcell.Button1 | tcell.Button2
	wheelButtons = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
)

// WheelStep is how far one wheel notch scrolls, in cells or output lines.
const WheelStep = 3

// WheelScroll decodes a wheel event into a vertical and horizontal scroll
// amount. Shift turns the vertical wheel sideways for mice without a
// horizontal one. Both are zero for non-wheel events.
func WheelScroll(ev *tcell.EventMouse) (down, right int) {
	b := ev.Buttons()
	switch {
	case b&tcell.WheelUp != 0:
		down = -WheelStep
	case b&tcell.WheelDown != 0:
		down = WheelStep
	}
	switch {
	case b&tcell.WheelLeft != 0:
		right = -WheelStep
	case b&tcell.WheelRight != 0:
		right = WheelStep
	}
	if ev.Modifiers()&tcell.ModShift != 0 && right == 0 {
		down, right = 0, down
	}
	return down, right
}

// Locator maps a screen position to a grid cell. inside is false when the
// position is outside the drawn grid.
type Locator func(x, y int) (row, col int, inside bool)

// CellReader reports the current state of a cell.
type CellReader func(row, col int) bool

// GestureTracker turns a stream of mouse events into paint intents. A
// primary press toggles the pressed cell and drags that state across the
// grid; a secondary press erases. Releasing every button ends the gesture.
type GestureTracker struct {
	active  bool
	paintOn bool
	lastRow int
	lastCol int
	lastIn  bool
}

// NewGestureTracker creates an idle tracker.
func NewGestureTracker() *GestureTracker {
	return &GestureTracker{}
}

// Active reports whether a gesture is in progress.
func (t *GestureTracker) Active() bool { return t.active }

// Process decodes one mouse event. ok is false when the event produces no
// intent (hover, wheel, presses outside the grid, motion within the cell
// just painted).
func (t *GestureTracker) Process(ev *tcell.EventMouse, locate Locator, isOn CellReader) (core.Intent, bool) {
	buttons := ev.Buttons()
	x, y := ev.Position()

	if !t.active {
		if buttons&paintButtons == 0 {
			return core.Intent{}, false
		}
		row, col, inside := locate(x, y)
		if !inside {
			return core.Intent{}, false
		}
		if buttons&tcell.Button1 != 0 {
			t.paintOn = !isOn(row, col)
		} else {
			t.paintOn = false
		}
		t.active = true
		t.remember(row, col, true)
		return core.Intent{Phase: core.PhaseBegin, Row: row, Col: col, On: t.paintOn, Inside: true}, true
	}

	if buttons&wheelButtons != 0 {
		return core.Intent{}, false
	}
	if buttons&paintButtons == 0 {
		return t.end(), true
	}

	row, col, inside := locate(x, y)
	if inside == t.lastIn && (!inside || (row == t.lastRow && col == t.lastCol)) {
		return core.Intent{}, false
	}
	t.remember(row, col, inside)
	return core.Intent{Phase: core.PhaseContinue, Row: row, Col: col, On: t.paintOn, Inside: inside}, true
}

// Cancel ends an in-progress gesture, for example when the screen is
// resized mid-drag. ok is false when no gesture was active.
func (t *GestureTracker) Cancel() (core.Intent, bool) {
	if !t.active {
		return core.Intent{}, false
	}
	return t.end(), true
}

func (t *GestureTracker) end() core.Intent {
	in := core.Intent{Phase: core.PhaseEnd, Row: t.lastRow, Col: t.lastCol, On: t.paintOn, Inside: t.lastIn}
	t.active = false
	return in
}

func (t *GestureTracker) remember(row, col int, inside bool) {
	t.lastRow, t.lastCol, t.lastIn = row, col, inside
}
