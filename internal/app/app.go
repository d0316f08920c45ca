// internal/app/app.go
package app

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/bitgrid/internal/config"
	"github.com/bethropolis/bitgrid/internal/core"
	"github.com/bethropolis/bitgrid/internal/core/clipboard"
	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/input"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/modehandler"
	"github.com/bethropolis/bitgrid/internal/quantize"
	"github.com/bethropolis/bitgrid/internal/statusbar"
	"github.com/bethropolis/bitgrid/internal/theme"
	"github.com/bethropolis/bitgrid/internal/tui"
)

// Options configures a new App.
type Options struct {
	Config *config.Config
	Image  image.Image  // Imported into the grid at startup when set
	Screen tcell.Screen // nil opens the real terminal
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager     *tui.TUI
	editor         *core.Editor
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	themeManager   *theme.Manager
	gestures       *input.GestureTracker
	clipboard      *clipboard.Manager
	modeHandler    *modehandler.ModeHandler
	activeTheme    *theme.Theme
	viewport       tui.Viewport
	messageTimeout time.Duration

	// mu serializes the event goroutine and the draw loop; the editor is
	// not safe for concurrent use.
	mu sync.Mutex

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// --- Themes ---
	themeManager := theme.NewManager()
	if dir := theme.DefaultThemesDir(config.AppName); dir != "" {
		if err := themeManager.LoadThemesFromDir(dir); err != nil {
			logger.Warnf("App: loading themes from '%s': %v", dir, err)
		}
	}
	if cfg.Editor.Theme != "" {
		if err := themeManager.LoadFile(cfg.Editor.Theme); err != nil {
			logger.Warnf("App: theme '%s' not loaded: %v", cfg.Editor.Theme, err)
		}
	}
	activeTheme := themeManager.Current()

	// --- Create Core Components ---
	editor, err := core.NewEditor(cfg.Editor.Cols, cfg.Editor.Rows, cfg.Editor.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("editor initialization failed: %w", err)
	}

	var tuiManager *tui.TUI
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, activeTheme.GetStyle(theme.StyleDefault))
	} else {
		tuiManager, err = tui.New(activeTheme.GetStyle(theme.StyleDefault))
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	statusBar := statusbar.New(statusbar.ConfigFromTheme(activeTheme, config.MessageTimeout))
	clipboardManager := clipboard.NewManager(editor, cfg.Editor.SystemClipboard)
	quitChan := make(chan struct{})

	// --- Create Mode Handler ---
	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		Clipboard:      clipboardManager,
		Themes:         themeManager,
		QuitSignal:     quitChan,
		Format:         cfg.OutputFormat(),
		ShowOutput:     cfg.Editor.ShowOutput,
		Threshold:      cfg.Editor.Threshold,
		AutoThreshold:  cfg.Editor.AutoThreshold,
	})

	appInstance := &App{
		tuiManager:     tuiManager,
		editor:         editor,
		statusBar:      statusBar,
		eventManager:   eventManager,
		themeManager:   themeManager,
		gestures:       input.NewGestureTracker(),
		clipboard:      clipboardManager,
		modeHandler:    modeHandler,
		activeTheme:    activeTheme,
		messageTimeout: config.MessageTimeout,
		quit:           quitChan,
		redrawRequest:  make(chan struct{}, 1),
	}

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeGridModified, appInstance.handleGridModified)
	eventManager.Subscribe(event.TypeGridReplaced, appInstance.handleGridReplaced)
	eventManager.Subscribe(event.TypeHistoryChanged, appInstance.handleHistoryChanged)
	eventManager.Subscribe(event.TypeOutputToggled, appInstance.handleOutputToggled)
	eventManager.Subscribe(event.TypeFormatChanged, appInstance.handleFormatChanged)
	eventManager.Subscribe(event.TypeOutputCopied, appInstance.handleOutputCopied)
	eventManager.Subscribe(event.TypeViewScrolled, appInstance.handleViewScrolled)

	if opts.Image != nil {
		threshold := cfg.Editor.Threshold
		if cfg.Editor.AutoThreshold {
			threshold = quantize.AutoThreshold(opts.Image)
		}
		if err := editor.Import(opts.Image, threshold); err != nil {
			return nil, err
		}
	}

	statusBar.SetFormat(modeHandler.Format().String())
	logger.Infof("App: session %s ready with a %dx%d grid", editor.ID(), editor.Grid().Cols(), editor.Grid().Rows())
	return appInstance, nil
}

// Run starts the application's main event and drawing loops. It returns
// once the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop() // Start event loop

	// Initial setup
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("bitgrid - click to draw, q to quit")
	a.requestRedraw()

	// Temporary messages expire without further input.
	ticker := time.NewTicker(a.messageTimeout / 4)
	defer ticker.Stop()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit: // Wait for quit signal from ModeHandler
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("App: session %s exiting", a.editor.ID())
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		case <-ticker.C:
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events until the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		if a.handleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// handleEvent processes one terminal event and reports whether a redraw
// is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch eventData := ev.(type) {
	case *tcell.EventResize:
		// A drag cannot survive a layout change; keep what was painted.
		a.endStroke()
		a.tuiManager.Sync()
		return true

	case *tcell.EventKey:
		// Shortcuts act on the grid and its history, so the stroke in
		// progress is recorded first.
		ended := a.endStroke()
		return a.modeHandler.HandleKeyEvent(eventData) || ended

	case *tcell.EventMouse:
		layout := a.currentLayout()
		if !a.gestures.Active() {
			if down, right := input.WheelScroll(eventData); down != 0 || right != 0 {
				_, y := eventData.Position()
				if layout.InOutput(y) {
					a.scroll(event.ViewScrolledData{OutputLines: down})
				} else {
					a.scroll(event.ViewScrolledData{Rows: down, Cols: right})
				}
				return true
			}
		}
		intent, ok := a.gestures.Process(eventData, layout.Locate, a.editor.Grid().At)
		if !ok {
			return false
		}
		a.applyIntent(intent)
		return true
	}
	return false
}

// endStroke finishes an in-progress drag, keeping what was painted. It
// reports whether there was one.
func (a *App) endStroke() bool {
	intent, ok := a.gestures.Cancel()
	if ok {
		a.applyIntent(intent)
	}
	return ok
}

// scroll moves the viewport by d. Caller holds a.mu.
func (a *App) scroll(d event.ViewScrolledData) {
	a.viewport.Row += d.Rows
	a.viewport.Col += d.Cols
	a.viewport.OutputLine += d.OutputLines
	a.currentLayout() // clamps a.viewport
}

func (a *App) applyIntent(intent core.Intent) {
	if err := a.editor.ApplyIntent(intent); err != nil {
		logger.Warnf("App: %s intent at (%d,%d) failed: %v", intent.Phase, intent.Row, intent.Col, err)
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetModeHandler returns the keyboard mode handler.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetEditor returns the editing session.
func (a *App) GetEditor() *core.Editor {
	return a.editor
}
