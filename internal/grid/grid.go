// Package grid holds the boolean cell matrix edited by the user.
package grid

import (
	"errors"
	"fmt"
)

// Accepted grid extents.
const (
	MaxCols = 512
	MaxRows = 256
)

var (
	// ErrInvalidDimensions is returned when a grid is constructed with
	// non-positive or oversized extents.
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")
	// ErrOutOfBounds is returned for coordinates outside the grid extent.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)

// View is the read-only accessor handed to renderers and serializers.
type View interface {
	Cols() int
	Rows() int
	At(row, col int) bool
}

// Grid is a rows x cols matrix of on/off cells. Dimensions are fixed for
// the lifetime of the value; resizing means building a new Grid.
type Grid struct {
	cols  int
	rows  int
	cells []bool // row-major
}

var _ View = (*Grid)(nil)

// ValidateDimensions reports whether cols x rows is an acceptable grid size.
func ValidateDimensions(cols, rows int) error {
	if cols < 1 || cols > MaxCols || rows < 1 || rows > MaxRows {
		return fmt.Errorf("%w: %dx%d (cols 1..%d, rows 1..%d)", ErrInvalidDimensions, cols, rows, MaxCols, MaxRows)
	}
	return nil
}

// New creates a grid with every cell off.
func New(cols, rows int) (*Grid, error) {
	if err := ValidateDimensions(cols, rows); err != nil {
		return nil, err
	}
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]bool, cols*rows),
	}, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) checkBounds(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.cols, g.rows)
	}
	return nil
}

// Get returns the state of the cell at (row, col).
func (g *Grid) Get(row, col int) (bool, error) {
	if err := g.checkBounds(row, col); err != nil {
		return false, err
	}
	return g.cells[row*g.cols+col], nil
}

// At is the unchecked form of Get used by renderers; out of range
// coordinates read as off.
func (g *Grid) At(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[row*g.cols+col]
}

// Set writes value to (row, col) and returns the previous state. It always
// writes; skipping unchanged cells is the caller's job.
func (g *Grid) Set(row, col int, value bool) (bool, error) {
	if err := g.checkBounds(row, col); err != nil {
		return false, err
	}
	i := row*g.cols + col
	prev := g.cells[i]
	g.cells[i] = value
	return prev, nil
}

// Generate builds a cols x rows grid with each cell set to on(row, col).
func Generate(cols, rows int, on func(row, col int) bool) (*Grid, error) {
	g, err := New(cols, rows)
	if err != nil {
		return nil, err
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.cells[r*cols+c] = on(r, c)
		}
	}
	return g, nil
}

// Fill sets every cell to value.
func (g *Grid) Fill(value bool) {
	for i := range g.cells {
		g.cells[i] = value
	}
}

// Count returns the number of cells that are on.
func (g *Grid) Count() int {
	n := 0
	for _, on := range g.cells {
		if on {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	dup := &Grid{cols: g.cols, rows: g.rows, cells: make([]bool, len(g.cells))}
	copy(dup.cells, g.cells)
	return dup
}

// Equal reports whether g and other have the same extent and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.cols != other.cols || g.rows != other.rows {
		return false
	}
	for i, on := range g.cells {
		if other.cells[i] != on {
			return false
		}
	}
	return true
}

// FromRows builds a grid from a row-major boolean matrix. Every row must
// have the same length.
func FromRows(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, r, len(row), g.cols)
		}
		copy(g.cells[r*g.cols:(r+1)*g.cols], row)
	}
	return g, nil
}
