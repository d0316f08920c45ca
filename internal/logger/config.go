// Package logger wraps charmbracelet/log with tag and package filters.
package logger

import (
	"log/slog"
	"strings"
)

// Config is the [logger] section of the config file.
//
// Tag and package filters are allow/deny lists. An empty allow list lets
// everything through; a deny entry always wins. Packages are named by
// their directory, so "history" matches internal/history.
type Config struct {
	LogLevel    string `toml:"log_level" yaml:"log_level"` // debug, info, warn or error
	LogFilePath string `toml:"log_file" yaml:"log_file"`   // "" or "-" means stderr

	EnabledTags      []string `toml:"enabled_tags" yaml:"enabled_tags"`
	DisabledTags     []string `toml:"disabled_tags" yaml:"disabled_tags"`
	EnabledPackages  []string `toml:"enabled_packages" yaml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages" yaml:"disabled_packages"`

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
}

func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ToStderr reports whether the config asks for console output.
func (c Config) ToStderr() bool {
	return c.LogFilePath == "" || c.LogFilePath == "-"
}

// process fills the lookup sets from the string fields.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil // nil map means "no filter"
	}
	return set
}
