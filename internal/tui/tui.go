// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI owns the tcell screen the grid is painted on.
type TUI struct {
	screen tcell.Screen
}

// New opens the terminal.
func New(defStyle tcell.Style) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewWithScreen(s, defStyle)
}

// NewWithScreen takes over s, which may be a simulation screen. Button
// and drag reporting are switched on since strokes need both.
func NewWithScreen(s tcell.Screen, defStyle tcell.Style) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.SetStyle(defStyle)
	s.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	return &TUI{screen: s}, nil
}

func (t *TUI) Close() {
	if t.screen == nil {
		return
	}
	t.screen.DisableMouse()
	t.screen.Fini()
}

// SetStyle changes the fill style used by Clear.
func (t *TUI) SetStyle(style tcell.Style) { t.screen.SetStyle(style) }

func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }
func (t *TUI) Clear()                 { t.screen.Clear() }
func (t *TUI) Show()                  { t.screen.Show() }

// Sync repaints every terminal cell; call it after a resize.
func (t *TUI) Sync() { t.screen.Sync() }

func (t *TUI) Size() (width, height int) { return t.screen.Size() }

// paintCell draws one grid cell, CellWidth columns wide, at screen
// column x.
func (t *TUI) paintCell(x, y int, lit bool, onStyle, offStyle tcell.Style) {
	if lit {
		t.screen.SetContent(x, y, ' ', nil, onStyle)
		t.screen.SetContent(x+1, y, ' ', nil, onStyle)
		return
	}
	t.screen.SetContent(x, y, offRune, nil, offStyle)
	t.screen.SetContent(x+1, y, ' ', nil, offStyle)
}

// GetScreen exposes the screen to widgets that draw themselves, such as
// the status bar.
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
