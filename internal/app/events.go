package app

import (
	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/tui"
)

// These run synchronously inside editor and mode handler calls, while the
// App lock is held. They must not take it again.

func (a *App) handleGridModified(e event.Event) bool {
	a.requestRedraw()
	return false // Not consumed
}

// handleGridReplaced drops any drag in progress: its batch is gone and the
// cells under the pointer may no longer exist.
func (a *App) handleGridReplaced(e event.Event) bool {
	a.gestures.Cancel()
	a.viewport = tui.Viewport{}
	if data, ok := e.Data.(event.GridReplacedData); ok {
		logger.DebugTagf("app", "App: grid replaced (%s), now %dx%d", data.Reason, data.Cols, data.Rows)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		a.statusBar.SetHistoryInfo(data.CanUndo, data.CanRedo)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleOutputToggled(e event.Event) bool {
	if data, ok := e.Data.(event.OutputToggledData); ok {
		logger.DebugTagf("app", "App: output pane visible=%v", data.Visible)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleFormatChanged(e event.Event) bool {
	if data, ok := e.Data.(event.FormatChangedData); ok {
		a.statusBar.SetFormat(data.Format)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleOutputCopied(e event.Event) bool {
	if data, ok := e.Data.(event.OutputCopiedData); ok {
		logger.Infof("App: copied %d line(s) (system clipboard: %v)", data.Lines, data.System)
	}
	return false
}

func (a *App) handleViewScrolled(e event.Event) bool {
	if data, ok := e.Data.(event.ViewScrolledData); ok {
		a.scroll(data)
	}
	a.requestRedraw()
	return false
}
