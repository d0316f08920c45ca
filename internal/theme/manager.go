// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/bitgrid/internal/logger"
)

// Manager is the set of known themes plus the one in use. Names are
// matched case-insensitively.
type Manager struct {
	mu     sync.RWMutex
	byName map[string]*Theme
	active *Theme
}

// NewManager starts with the built-in themes and Grid Dark active.
func NewManager() *Manager {
	m := &Manager{byName: make(map[string]*Theme)}
	m.add(&GridDark)
	m.add(&GridLight)
	m.active = &GridDark
	return m
}

// DefaultThemesDir is <user config dir>/<app>/themes, or "" when the
// platform has no config dir.
func DefaultThemesDir(appName string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "themes")
}

// add must be called with mu held (or before m is shared).
func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if old, ok := m.byName[key]; ok {
		logger.Warnf("Theme %q replaces %q", t.Name, old.Name)
	}
	m.byName[key] = t
}

// LoadThemesFromDir adds every *.toml theme in dir. Files that fail to
// parse are logged and skipped; a missing dir is fine.
func (m *Manager) LoadThemesFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		logger.Debugf("No theme directory at %s", dir)
		return nil
	case err != nil:
		return fmt.Errorf("reading theme dir: %w", err)
	}

	var loaded []*Theme
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		th, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Skipping theme %s: %v", path, err)
			continue
		}
		loaded = append(loaded, th)
	}

	m.mu.Lock()
	for _, th := range loaded {
		m.add(th)
	}
	m.mu.Unlock()
	logger.Infof("Loaded %d theme(s) from %s", len(loaded), dir)
	return nil
}

// LoadFile adds the theme at path and switches to it.
func (m *Manager) LoadFile(path string) error {
	th, err := LoadThemeFromFile(path)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.add(th)
	m.active = th
	m.mu.Unlock()
	logger.Infof("Theme: %s", th.Name)
	return nil
}

func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetTheme switches to the named theme.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	th, ok := m.byName[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("no theme named %q", name)
	}
	m.active = th
	return nil
}

// Next switches to the theme following the active one in ListThemes
// order, wrapping around, and returns it.
func (m *Manager) Next() *Theme {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := m.sortedNamesLocked()
	i := sort.SearchStrings(names, m.active.Name)
	next := names[0]
	if i < len(names) && names[i] == m.active.Name {
		next = names[(i+1)%len(names)]
	}
	m.active = m.byName[strings.ToLower(next)]
	return m.active
}

// ListThemes returns the display names of all themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedNamesLocked()
}

func (m *Manager) sortedNamesLocked() []string {
	names := make([]string, 0, len(m.byName))
	for _, th := range m.byName {
		names = append(names, th.Name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	th, ok := m.byName[strings.ToLower(name)]
	return th, ok
}
