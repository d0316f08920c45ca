// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation

	"github.com/bethropolis/bitgrid/internal/theme"
)

// HelpText is right-aligned on the default status line when it fits.
const HelpText = "n:size i:import o:output f:format y:copy u/r:undo/redo del:clear q:quit"

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleMessage   tcell.Style // Style for temporary messages
	StylePrompt    tcell.Style // Style for the dimension prompt
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StylePrompt:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromTheme takes the status styles from th.
func ConfigFromTheme(th *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		StylePrompt:    th.GetStyle(theme.StyleStatusBarPrompt),
		MessageTimeout: timeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields

	cols, rows int
	litCells   int
	format     string
	canUndo    bool
	canRedo    bool
	clipped    bool
	viewRow    int
	viewCol    int

	promptActive bool
	promptLabel  string
	promptInput  string

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetConfig swaps the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetGridInfo updates the grid extent and lit cell count.
func (sb *StatusBar) SetGridInfo(cols, rows, lit int, clipped bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cols, sb.rows, sb.litCells, sb.clipped = cols, rows, lit, clipped
}

// SetViewInfo records the grid cell at the top-left of the viewport. It is
// shown only while the grid is clipped.
func (sb *StatusBar) SetViewInfo(row, col int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.viewRow, sb.viewCol = row, col
}

// SetHistoryInfo updates the undo/redo availability.
func (sb *StatusBar) SetHistoryInfo(canUndo, canRedo bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.canUndo, sb.canRedo = canUndo, canRedo
}

// SetFormat updates the displayed output format.
func (sb *StatusBar) SetFormat(format string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.format = format
}

// SetPrompt shows an input prompt in place of the status line until
// ClearPrompt is called.
func (sb *StatusBar) SetPrompt(label, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptActive = true
	sb.promptLabel = label
	sb.promptInput = input
}

// ClearPrompt returns to the normal status line.
func (sb *StatusBar) ClearPrompt() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptActive = false
	sb.promptLabel, sb.promptInput = "", ""
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// getDefaultDisplayText builds the default status line text. Caller holds
// the lock.
func (sb *StatusBar) getDefaultDisplayText() string {
	clipped := ""
	if sb.clipped {
		clipped = fmt.Sprintf(" | view %d,%d", sb.viewRow, sb.viewCol)
	}
	return fmt.Sprintf("%dx%d | %d on | %s | undo:%s redo:%s%s",
		sb.cols, sb.rows, sb.litCells, sb.format, yesNo(sb.canUndo), yesNo(sb.canRedo), clipped)
}

type lineKind int

const (
	lineStatus lineKind = iota
	lineMessage
	linePrompt
)

// resolve picks what the status line shows, expiring stale messages.
func (sb *StatusBar) resolve() (string, tcell.Style, lineKind) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.promptActive {
		return sb.promptLabel + sb.promptInput + "_", sb.config.StylePrompt, linePrompt
	}

	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if isTempMsgActive {
		return sb.tempMessage, sb.config.StyleMessage, lineMessage
	}
	return sb.getDefaultDisplayText(), sb.config.StyleDefault, lineStatus
}

// Text returns the line Draw would render and its style.
func (sb *StatusBar) Text() (string, tcell.Style) {
	text, style, _ := sb.resolve()
	return text, style
}

// Draw renders the status bar onto the last screen line using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, style, kind := sb.resolve()

	// Fill background first
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	end := drawClusters(screen, 0, y, width, text, style)

	if kind == lineStatus {
		helpWidth := uniseg.StringWidth(HelpText)
		if start := width - helpWidth; start > end+1 {
			drawClusters(screen, start, y, width, HelpText, style)
		}
	}
}

// drawClusters writes text from x until maxX, one grapheme cluster at a
// time, and returns the column after the last cluster drawn.
func drawClusters(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
