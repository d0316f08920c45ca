// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/bitgrid/internal/logger"
)

// Style names looked up by the TUI.
const (
	StyleDefault          = "Default"
	StyleCellOn           = "Cell.on"
	StyleCellOff          = "Cell.off"
	StyleBorder           = "Border"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarPrompt  = "StatusBarPrompt"
	StyleOutput           = "Output"
	StyleOutputHeader     = "Output.header"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to its base name (the part before
// the first dot), then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Palette is the handful of colors a grid theme is built from.
type Palette struct {
	Background tcell.Color // page behind the grid; ColorReset keeps the terminal's
	Foreground tcell.Color
	On         tcell.Color // lit cells
	Off        tcell.Color // unlit cell dots and the border
	Bar        tcell.Color // status bar background
	Accent     tcell.Color // prompt and output text
}

// Theme derives the full style table from p.
func (p Palette) Theme(name string, isDark bool) Theme {
	base := tcell.StyleDefault.Background(p.Background).Foreground(p.Foreground)
	bar := tcell.StyleDefault.Background(p.Bar).Foreground(p.Foreground)
	return Theme{
		Name:   name,
		IsDark: isDark,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleCellOn:           tcell.StyleDefault.Background(p.On).Foreground(p.On),
			StyleCellOff:          base.Foreground(p.Off),
			StyleBorder:           base.Foreground(p.Off),
			StyleStatusBar:        bar,
			StyleStatusBarMessage: bar.Bold(true),
			StyleStatusBarPrompt:  bar.Foreground(p.Accent).Bold(true),
			StyleOutput:           base.Foreground(p.Accent),
			StyleOutputHeader:     base.Foreground(p.Off).Italic(true),
		},
	}
}

var (
	DarkPalette = Palette{
		Background: tcell.ColorReset,
		Foreground: tcell.NewHexColor(0xc5cdd9),
		On:         tcell.NewHexColor(0xe5c07b),
		Off:        tcell.NewHexColor(0x5c6370),
		Bar:        tcell.NewHexColor(0x2a2f38),
		Accent:     tcell.NewHexColor(0x56b6c2),
	}
	LightPalette = Palette{
		Background: tcell.NewHexColor(0xfafafa),
		Foreground: tcell.NewHexColor(0x383a42),
		On:         tcell.NewHexColor(0x383a42),
		Off:        tcell.NewHexColor(0xa0a1a7),
		Bar:        tcell.NewHexColor(0xa0a1a7),
		Accent:     tcell.NewHexColor(0x4078f2),
	}

	GridDark  = DarkPalette.Theme("Grid Dark", true)
	GridLight = LightPalette.Theme("Grid Light", false)
)
