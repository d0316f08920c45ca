package app

import (
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/statusbar"
	"github.com/bethropolis/bitgrid/internal/theme"
	"github.com/bethropolis/bitgrid/internal/tui"
)

// currentLayout places the grid and output pane for the current screen and
// clamps the viewport to it. Caller holds a.mu.
func (a *App) currentLayout() tui.Layout {
	width, height := a.tuiManager.Size()
	g := a.editor.Grid()
	outputLines := 0
	if a.modeHandler.ShowOutput() {
		outputLines = g.Rows()
	}
	l := tui.ComputeLayout(width, height, g.Cols(), g.Rows(), outputLines, a.modeHandler.ShowOutput(), a.viewport)
	a.viewport = l.Viewport()
	return l
}

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.syncTheme()

	layout := a.currentLayout()
	format := a.modeHandler.Format()
	var lines []string
	if layout.OutputHeight > 0 {
		lines = a.editor.Output(format)
	}

	a.updateStatusBarContent(layout)

	logger.DebugTagf("draw", "drawEditor: screen %dx%d, grid %dx%d visible, output %d line(s)",
		layout.Width, layout.Height, layout.VisibleCols, layout.VisibleRows, layout.OutputHeight)

	a.tuiManager.Clear()
	tui.DrawGrid(a.tuiManager, a.editor.View(), layout, a.activeTheme)
	tui.DrawOutput(a.tuiManager, lines, format.String(), layout, a.activeTheme)
	a.statusBar.Draw(a.tuiManager.GetScreen(), layout.Width, layout.Height)
	a.tuiManager.Show()
}

// syncTheme applies a theme switched by the mode handler.
func (a *App) syncTheme() {
	current := a.themeManager.Current()
	if current == a.activeTheme {
		return
	}
	a.activeTheme = current
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(current, a.messageTimeout))
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	logger.Debugf("App: theme switched to '%s'", current.Name)
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent(layout tui.Layout) {
	g := a.editor.Grid()
	a.statusBar.SetGridInfo(g.Cols(), g.Rows(), g.Count(), layout.Clipped)
	a.statusBar.SetViewInfo(layout.TopRow, layout.LeftCol)
	a.statusBar.SetHistoryInfo(a.editor.CanUndo(), a.editor.CanRedo())
	a.statusBar.SetFormat(a.modeHandler.Format().String())
}
