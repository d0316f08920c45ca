// internal/config/flags.go
package config

import (
	"github.com/spf13/pflag"

	"github.com/bethropolis/bitgrid/internal/logger"
)

// Flags holds values parsed from command-line flags. Overrides apply only
// for flags the user actually set.
type Flags struct {
	LogLevel    string
	LogFilePath string
	Verbose     bool
	EnableTags  []string
	DisableTags []string
	EnablePkgs  []string
	DisablePkgs []string

	Cols            int
	Rows            int
	Format          string
	Threshold       float64
	AutoThreshold   bool
	HistoryLimit    int
	SystemClipboard bool
	ShowOutput      bool
	Theme           string
}

// DefineLogFlags registers the logging flags, usually as persistent flags
// of the root command.
func (f *Flags) DefineLogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "log-file", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable - Overrides config file")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Comma-separated list of packages to enable - Overrides config file")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Comma-separated list of packages to disable - Overrides config file")
}

// DefineOutputFlags registers the flags that shape serialized output and
// image quantization.
func (f *Flags) DefineOutputFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Format, "format", "f", "", "Output format (hex, binary) - Overrides config file")
	fs.Float64Var(&f.Threshold, "threshold", DefaultThreshold, "Luminance threshold below which a pixel is on")
	fs.BoolVar(&f.AutoThreshold, "auto-threshold", false, "Derive the threshold from the two dominant image colors")
}

// DefineEditorFlags registers the interactive editor flags.
func (f *Flags) DefineEditorFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.Cols, "cols", DefaultCols, "Initial grid width (1-512)")
	fs.IntVar(&f.Rows, "rows", DefaultRows, "Initial grid height (1-256)")
	fs.IntVar(&f.HistoryLimit, "history-limit", DefaultHistoryLimit, "Maximum number of undoable gestures")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Copy output to the system clipboard")
	fs.BoolVar(&f.ShowOutput, "show-output", ShowOutput, "Show the output pane at startup")
	fs.StringVar(&f.Theme, "theme", "", "Path to a TOML theme file")
}

// ApplyOverrides updates cfg with values from flags that were set on fs,
// then revalidates.
func (f *Flags) ApplyOverrides(cfg *Config, fs *pflag.FlagSet) {
	fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "log-level":
			cfg.Logger.LogLevel = f.LogLevel
		case "log-file":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "cols":
			cfg.Editor.Cols = f.Cols
		case "rows":
			cfg.Editor.Rows = f.Rows
		case "format":
			cfg.Editor.Format = f.Format
		case "threshold":
			cfg.Editor.Threshold = f.Threshold
		case "auto-threshold":
			cfg.Editor.AutoThreshold = f.AutoThreshold
		case "history-limit":
			cfg.Editor.HistoryLimit = f.HistoryLimit
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "show-output":
			cfg.Editor.ShowOutput = f.ShowOutput
		case "theme":
			cfg.Editor.Theme = f.Theme
		}
	})
	// --verbose wins over any level from file or flag.
	if fs.Changed("verbose") && f.Verbose {
		cfg.Logger.LogLevel = "debug"
	}
	cfg.validate("flags")
}
