// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/bitgrid/internal/core"
	"github.com/bethropolis/bitgrid/internal/core/clipboard"
	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/export"
	"github.com/bethropolis/bitgrid/internal/input"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/statusbar"
	"github.com/bethropolis/bitgrid/internal/theme"
)

// Scroll distances for the arrow and page keys.
const (
	PanStep        = 4 // cells
	OutputPageStep = 8 // output lines
)

// InputMode defines the different states for keyboard input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeResize           // COLSxROWS prompt
	ModeImport           // image path prompt
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeResize:
		return "RESIZE"
	case ModeImport:
		return "IMPORT"
	default:
		return "UNKNOWN"
	}
}

// ModeHandler manages input modes, prompt text and the keyboard actions
// that act on the session.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	clipboard      *clipboard.Manager
	themes         *theme.Manager
	quitSignal     chan<- struct{}

	// Internal State
	currentMode   InputMode
	promptBuffer  []rune
	format        export.Format
	showOutput    bool
	threshold     float64
	autoThreshold bool
	quitting      bool
}

// Config holds dependencies and initial view state for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Clipboard      *clipboard.Manager
	Themes         *theme.Manager
	QuitSignal     chan<- struct{} // Write-only channel to signal quit

	Format        export.Format
	ShowOutput    bool
	Threshold     float64 // used by the import prompt
	AutoThreshold bool
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.Clipboard == nil || cfg.Themes == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		clipboard:      cfg.Clipboard,
		themes:         cfg.Themes,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		format:         cfg.Format,
		showOutput:     cfg.ShowOutput,
		threshold:      cfg.Threshold,
		autoThreshold:  cfg.AutoThreshold,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(mh.inputProcessor.ProcessEvent(ev))
	case ModeResize, ModeImport:
		return mh.handleActionPrompt(mh.inputProcessor.ProcessPromptEvent(ev))
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// handleActionNormal runs a shortcut against the session.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	if actionEvent.Action != input.ActionUnknown {
		logger.DebugTagf("input", "ModeHandler: action %s", actionEvent.Action)
	}

	switch actionEvent.Action {
	case input.ActionQuit:
		mh.quit()
		return false

	case input.ActionUndo:
		changed, err := mh.editor.Undo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
		} else if !changed {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}

	case input.ActionRedo:
		changed, err := mh.editor.Redo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
		} else if !changed {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionClear:
		mh.editor.Clear()
		mh.statusBar.SetTemporaryMessage("Grid cleared")

	case input.ActionCopy:
		lines := len(mh.editor.Output(mh.format))
		system, err := mh.clipboard.YankOutput(mh.format)
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Copied %d line(s) internally; %v", lines, err)
		case system:
			mh.statusBar.SetTemporaryMessage("Copied %d line(s) of %s output", lines, mh.format)
		default:
			mh.statusBar.SetTemporaryMessage("Copied %d line(s) of %s output (internal)", lines, mh.format)
		}

	case input.ActionToggleOutput:
		mh.showOutput = !mh.showOutput
		mh.eventManager.Dispatch(event.TypeOutputToggled, event.OutputToggledData{Visible: mh.showOutput})

	case input.ActionToggleFormat:
		mh.format = mh.format.Next()
		mh.eventManager.Dispatch(event.TypeFormatChanged, event.FormatChangedData{Format: mh.format.String()})

	case input.ActionCycleTheme:
		th := mh.themes.Next()
		mh.statusBar.SetTemporaryMessage("Theme: %s", th.Name)

	case input.ActionPanUp:
		mh.scroll(event.ViewScrolledData{Rows: -PanStep})
	case input.ActionPanDown:
		mh.scroll(event.ViewScrolledData{Rows: PanStep})
	case input.ActionPanLeft:
		mh.scroll(event.ViewScrolledData{Cols: -PanStep})
	case input.ActionPanRight:
		mh.scroll(event.ViewScrolledData{Cols: PanStep})
	case input.ActionScrollOutputUp:
		mh.scroll(event.ViewScrolledData{OutputLines: -OutputPageStep})
	case input.ActionScrollOutputDown:
		mh.scroll(event.ViewScrolledData{OutputLines: OutputPageStep})

	case input.ActionResizePrompt:
		mh.enterPrompt(ModeResize)

	case input.ActionImportPrompt:
		mh.enterPrompt(ModeImport)

	default:
		return false
	}
	return true
}

func (mh *ModeHandler) scroll(d event.ViewScrolledData) {
	mh.eventManager.Dispatch(event.TypeViewScrolled, d)
}

func (mh *ModeHandler) quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the current input mode as a string.
func (mh *ModeHandler) GetCurrentModeString() string {
	return mh.currentMode.String()
}

// Format returns the selected output format.
func (mh *ModeHandler) Format() export.Format {
	return mh.format
}

// ShowOutput reports whether the output pane is visible.
func (mh *ModeHandler) ShowOutput() bool {
	return mh.showOutput
}
