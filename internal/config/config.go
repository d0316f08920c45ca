// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/bitgrid/internal/export"
	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger" yaml:"logger"` // [logger] table
	Editor EditorConfig  `toml:"editor" yaml:"editor"` // Editor-specific settings

	// Warnings collects problems found while loading. They are logged once
	// the logger is up.
	Warnings []string `toml:"-" yaml:"-"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	Cols            int     `toml:"cols" yaml:"cols"`
	Rows            int     `toml:"rows" yaml:"rows"`
	Format          string  `toml:"format" yaml:"format"` // hex or binary
	Threshold       float64 `toml:"threshold" yaml:"threshold"`
	AutoThreshold   bool    `toml:"auto_threshold" yaml:"auto_threshold"`
	HistoryLimit    int     `toml:"history_limit" yaml:"history_limit"`
	SystemClipboard bool    `toml:"system_clipboard" yaml:"system_clipboard"`
	ShowOutput      bool    `toml:"show_output" yaml:"show_output"`
	Theme           string  `toml:"theme" yaml:"theme"` // Optional theme file
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			Cols:            DefaultCols,
			Rows:            DefaultRows,
			Format:          DefaultFormat,
			Threshold:       DefaultThreshold,
			HistoryLimit:    DefaultHistoryLimit,
			SystemClipboard: SystemClipboard,
			ShowOutput:      ShowOutput,
		},
	}
}

// DefaultPath returns ~/.config/bitgrid/config.toml (or the platform
// equivalent), or "" when no user config directory exists.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// DefaultLogPath returns the log file used when the editor would otherwise
// log to the terminal it is drawing on: <user cache dir>/bitgrid/bitgrid.log,
// or the temp directory when there is no cache directory.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFileName)
	}
	dir = filepath.Join(dir, AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFileName)
	}
	return filepath.Join(dir, DefaultLogFileName)
}

// Load reads defaults, then the file at path on top of them, then
// validates. An empty path means DefaultPath, which may be absent; an
// explicit path must exist. Files ending in .yaml or .yml are YAML,
// anything else TOML.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				return cfg, nil
			}
			return nil, err
		}
	}

	cfg.validate(path)
	return cfg, nil
}

// loadFromFile decodes filePath over the current values.
func (c *Config) loadFromFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		metadata, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			c.warnf("config file '%s': unrecognized keys: %v", filePath, undecoded)
		}
	}
	return nil
}

// warnf records a warning once; repeats of the same text are dropped.
func (c *Config) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if slices.Contains(c.Warnings, msg) {
		return
	}
	c.Warnings = append(c.Warnings, msg)
}

// validate checks config values and resets invalid ones to defaults.
// source names where the values came from in the warnings.
func (c *Config) validate(source string) {
	defaults := NewDefaultConfig()

	if err := grid.ValidateDimensions(c.Editor.Cols, c.Editor.Rows); err != nil {
		c.warnf("%s: editor: %v; using %dx%d", source, err, defaults.Editor.Cols, defaults.Editor.Rows)
		c.Editor.Cols = defaults.Editor.Cols
		c.Editor.Rows = defaults.Editor.Rows
	}
	if _, err := export.ParseFormat(c.Editor.Format); err != nil {
		c.warnf("%s: editor: %v; using %s", source, err, defaults.Editor.Format)
		c.Editor.Format = defaults.Editor.Format
	}
	if c.Editor.Threshold < 0 || c.Editor.Threshold > 255 {
		c.warnf("%s: editor: threshold %.1f outside 0..255; using %.0f", source, c.Editor.Threshold, defaults.Editor.Threshold)
		c.Editor.Threshold = defaults.Editor.Threshold
	}
	if c.Editor.HistoryLimit <= 0 { // 0 selects the default
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}

	// Validate Logger config
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// OutputFormat returns the configured serializer format.
func (c *Config) OutputFormat() export.Format {
	f, _ := export.ParseFormat(c.Editor.Format)
	return f
}

// LogWarnings reports load problems through the logger.
func (c *Config) LogWarnings() {
	for _, w := range c.Warnings {
		logger.Warnf("Config: %s", w)
	}
}
