package tui

// CellWidth is the number of terminal columns one grid cell occupies, which
// keeps cells roughly square.
const CellWidth = 2

// Viewport is the scroll position: the grid cell drawn at the top-left
// corner and the first output line shown under the pane header.
type Viewport struct {
	Row, Col   int
	OutputLine int
}

// Layout places the grid, the output pane and the status bar on a screen.
type Layout struct {
	Width, Height int

	GridX, GridY int
	VisibleCols  int
	VisibleRows  int
	TopRow       int // grid row drawn at GridY
	LeftCol      int // grid column drawn at GridX

	OutputY      int
	OutputHeight int // 0 when the pane is hidden
	OutputTop    int // first output line drawn

	Clipped bool // part of the grid does not fit
}

// ComputeLayout divides a width x height screen between a cols x rows grid
// and, when showOutput is set, an output pane of outputLines lines plus a
// header. The last screen line is left for the status bar. vp is clamped
// so the visible window never runs past the grid or the output.
func ComputeLayout(width, height, cols, rows, outputLines int, showOutput bool, vp Viewport) Layout {
	l := Layout{Width: width, Height: height}
	avail := height - 1
	if avail <= 0 || width <= 0 {
		l.Clipped = true
		return l
	}

	if showOutput && avail > 1 {
		want := outputLines + 1
		limit := avail / 2
		if spare := avail - rows; spare > limit {
			limit = spare
		}
		l.OutputHeight = min(want, limit)
		l.OutputTop = clamp(vp.OutputLine, outputLines-(l.OutputHeight-1))
	}

	gridArea := avail - l.OutputHeight
	l.VisibleRows = min(rows, gridArea)
	l.VisibleCols = min(cols, width/CellWidth)
	l.TopRow = clamp(vp.Row, rows-l.VisibleRows)
	l.LeftCol = clamp(vp.Col, cols-l.VisibleCols)
	l.OutputY = l.GridY + l.VisibleRows
	l.Clipped = l.VisibleRows < rows || l.VisibleCols < cols
	return l
}

// clamp limits v to [0, hi], with hi < 0 treated as 0.
func clamp(v, hi int) int {
	return max(0, min(v, hi))
}

// Viewport returns the scroll position l was built with, after clamping.
func (l Layout) Viewport() Viewport {
	return Viewport{Row: l.TopRow, Col: l.LeftCol, OutputLine: l.OutputTop}
}

// Locate maps a screen position to the grid cell drawn there.
func (l Layout) Locate(x, y int) (row, col int, inside bool) {
	if x < l.GridX || y < l.GridY {
		return 0, 0, false
	}
	row = y - l.GridY
	col = (x - l.GridX) / CellWidth
	inside = row < l.VisibleRows && col < l.VisibleCols
	return row + l.TopRow, col + l.LeftCol, inside
}

// InOutput reports whether screen line y falls inside the output pane.
func (l Layout) InOutput(y int) bool {
	return l.OutputHeight > 0 && y >= l.OutputY && y < l.OutputY+l.OutputHeight
}
