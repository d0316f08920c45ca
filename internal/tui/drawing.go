// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/theme"
)

// offRune marks an unlit cell so the grid stays visible on any background.
const offRune = '·'

func ensureTheme(activeTheme *theme.Theme) *theme.Theme {
	if activeTheme == nil {
		logger.Warnf("Draw called with nil theme, using package default.")
		return &theme.GridDark
	}
	return activeTheme
}

// DrawGrid draws the part of the grid inside the layout's viewport.
func DrawGrid(tuiManager *TUI, view grid.View, layout Layout, activeTheme *theme.Theme) {
	activeTheme = ensureTheme(activeTheme)
	onStyle := activeTheme.GetStyle(theme.StyleCellOn)
	offStyle := activeTheme.GetStyle(theme.StyleCellOff)

	for r := 0; r < layout.VisibleRows; r++ {
		for c := 0; c < layout.VisibleCols; c++ {
			tuiManager.paintCell(layout.GridX+c*CellWidth, layout.GridY+r, view.At(layout.TopRow+r, layout.LeftCol+c), onStyle, offStyle)
		}
	}
}

// DrawOutput draws the output pane: a header naming the format, then as
// many lines as fit starting at layout.OutputTop. Long lines are clipped
// at the screen edge.
func DrawOutput(tuiManager *TUI, lines []string, format string, layout Layout, activeTheme *theme.Theme) {
	if layout.OutputHeight <= 0 {
		return
	}
	activeTheme = ensureTheme(activeTheme)
	headerStyle := activeTheme.GetStyle(theme.StyleOutputHeader)
	textStyle := activeTheme.GetStyle(theme.StyleOutput)
	screen := tuiManager.GetScreen()

	shown := lines[min(layout.OutputTop, len(lines)):]
	shown = shown[:min(len(shown), layout.OutputHeight-1)]

	header := fmt.Sprintf("-- %s output, %d line(s) --", format, len(lines))
	if len(shown) < len(lines) {
		header = fmt.Sprintf("-- %s output, lines %d-%d of %d --", format,
			layout.OutputTop+1, layout.OutputTop+len(shown), len(lines))
	}
	drawText(screen, 0, layout.OutputY, layout.Width, header, headerStyle)

	for i, line := range shown {
		drawText(screen, 0, layout.OutputY+1+i, layout.Width, line, textStyle)
	}
}

// drawText writes text from x until maxX one grapheme cluster at a time
// and returns the next free column.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
