package clipboard

import (
	"fmt"
	"strings"
	"sync"

	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/bitgrid/internal/event"
	"github.com/bethropolis/bitgrid/internal/export"
	"github.com/bethropolis/bitgrid/internal/logger"
)

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	OutputText(f export.Format) string
	GetEventManager() *event.Manager
}

// Manager copies serialized output to the system clipboard, keeping an
// in-process copy that survives when no system clipboard is reachable.
type Manager struct {
	editor    EditorInterface
	useSystem bool
	clipboard string
	writeAll  func(string) error
	mu        sync.Mutex
}

// NewManager creates a new clipboard manager. useSystem false keeps copies
// in process only.
func NewManager(editor EditorInterface, useSystem bool) *Manager {
	return &Manager{
		editor:    editor,
		useSystem: useSystem,
		writeAll:  sysclip.WriteAll,
	}
}

// SystemAvailable reports whether copies are sent to the system clipboard.
func (m *Manager) SystemAvailable() bool {
	return m.useSystem && !sysclip.Unsupported
}

// YankOutput renders the grid in format f and copies it. The internal copy
// always succeeds; the returned error reports a failed system write.
func (m *Manager) YankOutput(f export.Format) (bool, error) {
	text := m.editor.OutputText(f)

	m.mu.Lock()
	m.clipboard = text
	m.mu.Unlock()

	system := false
	var err error
	if m.SystemAvailable() {
		if werr := m.writeAll(text); werr != nil {
			err = fmt.Errorf("system clipboard: %w", werr)
			logger.Warnf("ClipboardManager: %v; kept internal copy", err)
		} else {
			system = true
		}
	}

	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	logger.Debugf("ClipboardManager: Yanked %d line(s) of %s output (system=%v)", lines, f, system)

	if eventMgr := m.editor.GetEventManager(); eventMgr != nil {
		eventMgr.Dispatch(event.TypeOutputCopied, event.OutputCopiedData{Lines: lines, System: system})
	}
	return system, err
}

// Contents returns the last yanked text.
func (m *Manager) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clipboard
}
