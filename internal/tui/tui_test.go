package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/theme"
)

func newTestTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	tu, err := NewWithScreen(s, tcell.StyleDefault)
	require.NoError(t, err)
	s.SetSize(w, h)
	t.Cleanup(tu.Close)
	return tu, s
}

func rowText(s tcell.SimulationScreen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name                  string
		w, h, cols, rows, out int
		show                  bool
		want                  Layout
	}{
		{
			name: "fits without output",
			w:    80, h: 24, cols: 32, rows: 16,
			want: Layout{Width: 80, Height: 24, VisibleCols: 32, VisibleRows: 16, OutputY: 16},
		},
		{
			name: "output below small grid",
			w:    80, h: 24, cols: 8, rows: 4, out: 4, show: true,
			want: Layout{Width: 80, Height: 24, VisibleCols: 8, VisibleRows: 4, OutputY: 4, OutputHeight: 5},
		},
		{
			name: "tall grid shares with output",
			w:    80, h: 21, cols: 8, rows: 64, out: 64, show: true,
			want: Layout{Width: 80, Height: 21, VisibleCols: 8, VisibleRows: 10, OutputY: 10, OutputHeight: 10, Clipped: true},
		},
		{
			name: "wide grid clipped",
			w:    40, h: 24, cols: 128, rows: 4,
			want: Layout{Width: 40, Height: 24, VisibleCols: 20, VisibleRows: 4, OutputY: 4, Clipped: true},
		},
		{
			name: "no room",
			w:    40, h: 1, cols: 4, rows: 4, show: true,
			want: Layout{Width: 40, Height: 1, Clipped: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeLayout(tt.w, tt.h, tt.cols, tt.rows, tt.out, tt.show, Viewport{}))
		})
	}
}

func TestLocate(t *testing.T) {
	l := ComputeLayout(80, 24, 4, 3, 0, false, Viewport{})

	row, col, inside := l.Locate(0, 0)
	assert.True(t, inside)
	assert.Equal(t, [2]int{0, 0}, [2]int{row, col})

	row, col, inside = l.Locate(7, 2)
	assert.True(t, inside)
	assert.Equal(t, [2]int{2, 3}, [2]int{row, col})

	_, _, inside = l.Locate(8, 0)
	assert.False(t, inside)
	_, _, inside = l.Locate(0, 3)
	assert.False(t, inside)
	_, _, inside = l.Locate(-1, 0)
	assert.False(t, inside)
}

func TestDrawGrid(t *testing.T) {
	tu, s := newTestTUI(t, 20, 5)
	g, err := grid.FromRows([][]bool{
		{true, false, true},
		{false, true, false},
	})
	require.NoError(t, err)

	th := &theme.GridDark
	l := ComputeLayout(20, 5, g.Cols(), g.Rows(), 0, false, Viewport{})
	DrawGrid(tu, g, l, th)

	_, _, style, _ := s.GetContent(0, 0)
	assert.Equal(t, th.GetStyle(theme.StyleCellOn), style)
	_, _, style, _ = s.GetContent(1, 0)
	assert.Equal(t, th.GetStyle(theme.StyleCellOn), style)

	r, _, style, _ := s.GetContent(2, 0)
	assert.Equal(t, offRune, r)
	assert.Equal(t, th.GetStyle(theme.StyleCellOff), style)

	_, _, style, _ = s.GetContent(2, 1)
	assert.Equal(t, th.GetStyle(theme.StyleCellOn), style)

	r, _, _, _ = s.GetContent(6, 0)
	assert.Equal(t, ' ', r, "nothing drawn past the grid")
}

func TestDrawOutput(t *testing.T) {
	tu, s := newTestTUI(t, 12, 6)
	lines := []string{"0x01,", "0xff, 0xff, 0xff,", "0x00,"}
	l := ComputeLayout(12, 6, 2, 1, len(lines), true, Viewport{})
	require.Equal(t, 4, l.OutputHeight)

	DrawOutput(tu, lines, "hex", l, nil)

	assert.Equal(t, "-- hex outpu", rowText(s, l.OutputY, 12))
	assert.Equal(t, "0x01,       ", rowText(s, l.OutputY+1, 12))
	assert.Equal(t, "0xff, 0xff, ", rowText(s, l.OutputY+2, 12), "long lines are clipped")
	assert.Equal(t, "0x00,       ", rowText(s, l.OutputY+3, 12))
}

func TestDrawOutputHidden(t *testing.T) {
	tu, s := newTestTUI(t, 12, 6)
	l := ComputeLayout(12, 6, 2, 1, 3, false, Viewport{})
	DrawOutput(tu, []string{"0x01,"}, "hex", l, nil)
	assert.Equal(t, strings.Repeat(" ", 12), rowText(s, l.OutputY, 12))
}

func TestComputeLayoutClampsViewport(t *testing.T) {
	// 80x24 leaves 40 columns and, with 11 output lines, 12 grid rows.
	l := ComputeLayout(80, 24, 128, 64, 64, true, Viewport{Row: 30, Col: 50, OutputLine: 5})
	require.Equal(t, 40, l.VisibleCols)
	require.Equal(t, 12, l.VisibleRows)
	require.Equal(t, 11, l.OutputHeight)
	assert.Equal(t, Viewport{Row: 30, Col: 50, OutputLine: 5}, l.Viewport())

	l = ComputeLayout(80, 24, 128, 64, 64, true, Viewport{Row: 999, Col: 999, OutputLine: 999})
	assert.Equal(t, Viewport{Row: 64 - 12, Col: 128 - 40, OutputLine: 64 - 10}, l.Viewport())

	l = ComputeLayout(80, 24, 128, 64, 64, true, Viewport{Row: -3, Col: -1, OutputLine: -7})
	assert.Equal(t, Viewport{}, l.Viewport())

	l = ComputeLayout(80, 24, 4, 3, 3, true, Viewport{Row: 2, Col: 2, OutputLine: 2})
	assert.Equal(t, Viewport{}, l.Viewport(), "nothing to scroll when everything fits")
}

func TestLocateScrolled(t *testing.T) {
	l := ComputeLayout(80, 24, 128, 64, 0, false, Viewport{Row: 40, Col: 88})
	require.Equal(t, Viewport{Row: 40, Col: 88}, l.Viewport())

	row, col, inside := l.Locate(0, 0)
	assert.True(t, inside)
	assert.Equal(t, [2]int{40, 88}, [2]int{row, col})

	row, col, inside = l.Locate(79, 22)
	assert.True(t, inside)
	assert.Equal(t, [2]int{62, 127}, [2]int{row, col})

	_, _, inside = l.Locate(0, 23)
	assert.False(t, inside, "status line")
}

func TestEveryCellReachable(t *testing.T) {
	const cols, rows = 128, 64
	seen := make(map[[2]int]bool)
	for vr := 0; vr < rows; vr += 10 {
		for vc := 0; vc < cols; vc += 30 {
			l := ComputeLayout(80, 24, cols, rows, 0, false, Viewport{Row: vr, Col: vc})
			for y := 0; y < l.Height; y++ {
				for x := 0; x < l.Width; x++ {
					if r, c, ok := l.Locate(x, y); ok {
						seen[[2]int{r, c}] = true
					}
				}
			}
		}
	}
	assert.Len(t, seen, cols*rows)
}

func TestDrawGridScrolled(t *testing.T) {
	tu, s := newTestTUI(t, 4, 3)
	g, err := grid.New(6, 5)
	require.NoError(t, err)
	_, err = g.Set(3, 4, true)
	require.NoError(t, err)

	th := &theme.GridDark
	l := ComputeLayout(4, 3, g.Cols(), g.Rows(), 0, false, Viewport{Row: 3, Col: 4})
	require.Equal(t, Viewport{Row: 3, Col: 4}, l.Viewport())
	DrawGrid(tu, g, l, th)

	_, _, style, _ := s.GetContent(0, 0)
	assert.Equal(t, th.GetStyle(theme.StyleCellOn), style, "(3,4) drawn at the origin")
	r, _, _, _ := s.GetContent(2, 0)
	assert.Equal(t, offRune, r)
}

func TestDrawOutputScrolled(t *testing.T) {
	tu, s := newTestTUI(t, 30, 6)
	lines := []string{"a", "b", "c", "d", "e", "f"}
	l := ComputeLayout(30, 6, 2, 1, len(lines), true, Viewport{OutputLine: 2})
	require.Equal(t, 4, l.OutputHeight)
	require.Equal(t, 2, l.OutputTop)
	assert.True(t, l.InOutput(l.OutputY))
	assert.False(t, l.InOutput(l.OutputY+l.OutputHeight))

	DrawOutput(tu, lines, "hex", l, nil)
	assert.Equal(t, "-- hex output, lines 3-5 of 6 ", rowText(s, l.OutputY, 30))
	assert.Equal(t, "c", strings.TrimSpace(rowText(s, l.OutputY+1, 30)))
	assert.Equal(t, "e", strings.TrimSpace(rowText(s, l.OutputY+3, 30)))
}
