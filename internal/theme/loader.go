// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/bitgrid/internal/logger"
)

// A theme file names a palette and optionally patches individual styles:
//
//	name = "Amber"
//	is_dark = true
//
//	[palette]
//	on = "#ffb000"
//	off = "#4a3b1a"
//
//	[styles."Output.header"]
//	italic = false
//
// Palette entries left out come from the built-in dark or light palette,
// chosen by is_dark.
type themeFile struct {
	Name    string               `toml:"name"`
	IsDark  bool                 `toml:"is_dark"`
	Palette paletteFile          `toml:"palette"`
	Styles  map[string]styleFile `toml:"styles"`
}

type paletteFile struct {
	Background *string `toml:"background"`
	Foreground *string `toml:"foreground"`
	On         *string `toml:"on"`
	Off        *string `toml:"off"`
	Bar        *string `toml:"bar"`
	Accent     *string `toml:"accent"`
}

// styleFile fields are pointers so an absent key leaves the derived style alone.
type styleFile struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// LoadThemeFromFile reads a TOML theme file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	var tf themeFile
	meta, err := toml.DecodeFile(filePath, &tf)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("theme file %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("parsing theme %s: %w", filePath, err)
	}
	if extra := meta.Undecoded(); len(extra) > 0 {
		logger.Warnf("Theme file %s: unrecognized keys %v", filePath, extra)
	}
	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	palette := LightPalette
	if tf.IsDark {
		palette = DarkPalette
	}
	if err := tf.Palette.apply(&palette); err != nil {
		return nil, fmt.Errorf("theme %q: %w", tf.Name, err)
	}

	th := palette.Theme(tf.Name, tf.IsDark)
	for name, sf := range tf.Styles {
		style, err := sf.patch(th.GetStyle(name))
		if err != nil {
			logger.Warnf("Theme %q: skipping style %s: %v", tf.Name, name, err)
			continue
		}
		th.Styles[name] = style
	}

	logger.Debugf("Loaded theme %q from %s", th.Name, filePath)
	return &th, nil
}

func (pf paletteFile) apply(p *Palette) error {
	slots := []struct {
		key string
		val *string
		dst *tcell.Color
	}{
		{"background", pf.Background, &p.Background},
		{"foreground", pf.Foreground, &p.Foreground},
		{"on", pf.On, &p.On},
		{"off", pf.Off, &p.Off},
		{"bar", pf.Bar, &p.Bar},
		{"accent", pf.Accent, &p.Accent},
	}
	for _, s := range slots {
		if s.val == nil {
			continue
		}
		c, err := parseColorString(*s.val)
		if err != nil {
			return fmt.Errorf("palette.%s: %w", s.key, err)
		}
		*s.dst = c
	}
	return nil
}

// patch applies the keys present in sf on top of style.
func (sf styleFile) patch(style tcell.Style) (tcell.Style, error) {
	if sf.Fg != nil {
		c, err := parseColorString(*sf.Fg)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if sf.Bg != nil {
		c, err := parseColorString(*sf.Bg)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	if sf.Bold != nil {
		style = style.Bold(*sf.Bold)
	}
	if sf.Italic != nil {
		style = style.Italic(*sf.Italic)
	}
	if sf.Underline != nil {
		style = style.Underline(*sf.Underline)
	}
	if sf.Reverse != nil {
		style = style.Reverse(*sf.Reverse)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, the W3C color names tcell knows, and
// the keywords "reset" and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("%q is not #RRGGBB", s)
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}
