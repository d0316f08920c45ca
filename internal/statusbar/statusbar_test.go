package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/bitgrid/internal/theme"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.SimulationScreen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDefaultText(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetGridInfo(32, 16, 5, false)
	sb.SetFormat("hex")
	sb.SetHistoryInfo(true, false)

	text, style := sb.Text()
	assert.Equal(t, "32x16 | 5 on | hex | undo:yes redo:no", text)
	assert.Equal(t, DefaultConfig().StyleDefault, style)

	sb.SetViewInfo(3, 7)
	text, _ = sb.Text()
	assert.False(t, strings.Contains(text, "view"), "origin hidden while the grid fits")

	sb.SetGridInfo(512, 256, 0, true)
	text, _ = sb.Text()
	assert.True(t, strings.HasSuffix(text, " | view 3,7"))
}

func TestTemporaryMessageExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return now }
	sb.SetFormat("binary")

	sb.SetTemporaryMessage("copied %d lines", 3)
	text, style := sb.Text()
	assert.Equal(t, "copied 3 lines", text)
	assert.Equal(t, DefaultConfig().StyleMessage, style)

	now = now.Add(5 * time.Second)
	text, _ = sb.Text()
	assert.Contains(t, text, "binary")

	sb.SetTemporaryMessage("again")
	sb.ResetTemporaryMessage()
	text, _ = sb.Text()
	assert.Contains(t, text, "binary")
}

func TestPromptWins(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("hello")
	sb.SetPrompt("Size (COLSxROWS): ", "64x3")

	text, style := sb.Text()
	assert.Equal(t, "Size (COLSxROWS): 64x3_", text)
	assert.Equal(t, DefaultConfig().StylePrompt, style)

	sb.ClearPrompt()
	text, _ = sb.Text()
	assert.Equal(t, "hello", text)
}

func TestDrawWithHelp(t *testing.T) {
	const w, h = 120, 3
	s := newScreen(t, w, h)
	sb := New(ConfigFromTheme(&theme.GridDark, time.Second))
	sb.SetGridInfo(8, 8, 1, false)
	sb.SetFormat("hex")

	sb.Draw(s, w, h)
	line := rowText(s, h-1, w)
	assert.True(t, strings.HasPrefix(line, "8x8 | 1 on | hex"))
	assert.True(t, strings.HasSuffix(line, HelpText))

	_, _, style, _ := s.GetContent(0, h-1)
	assert.Equal(t, theme.GridDark.GetStyle(theme.StyleStatusBar), style)
}

func TestDrawNarrowClips(t *testing.T) {
	const w, h = 10, 1
	s := newScreen(t, w, h)
	sb := New(DefaultConfig())
	sb.SetGridInfo(128, 64, 4096, false)
	sb.SetFormat("binary")

	sb.Draw(s, w, h)
	assert.Equal(t, "128x64 | 4", rowText(s, 0, w))
}

func TestDrawPromptHidesHelp(t *testing.T) {
	const w, h = 120, 1
	s := newScreen(t, w, h)
	sb := New(DefaultConfig())
	sb.SetPrompt("Size: ", "")

	sb.Draw(s, w, h)
	assert.Equal(t, "Size: _", strings.TrimRight(rowText(s, 0, w), " "))
}
