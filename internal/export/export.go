/*
Package export renders a grid as source-code literals.

Binary output emits one 0b literal per row holding every column, with
column 0 as the least significant (rightmost) digit. Rows are separated by a
trailing comma except for the last row.

Hex output packs each row into ceil(cols/8) bytes. Byte n covers columns
8n..8n+7 with column 8n as its least significant bit; columns past the grid
edge pad with zero. Every row, including the last, ends with a comma.
*/
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/bitgrid/internal/grid"
)

// Format selects the literal style of the output.
type Format int

const (
	FormatHex Format = iota
	FormatBinary
)

var ErrUnknownFormat = errors.New("export: unknown format")

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	default:
		return "hex"
	}
}

// Next cycles to the other format.
func (f Format) Next() Format {
	if f == FormatHex {
		return FormatBinary
	}
	return FormatHex
}

// ParseFormat accepts "hex" or "binary" (also "bin").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hex", "":
		return FormatHex, nil
	case "binary", "bin":
		return FormatBinary, nil
	}
	return FormatHex, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// BinaryLines renders one binary literal per row.
func BinaryLines(v grid.View) []string {
	rows, cols := v.Rows(), v.Cols()
	lines := make([]string, 0, rows)

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		sb.Reset()
		sb.WriteString("0b")
		for c := cols - 1; c >= 0; c-- {
			if v.At(r, c) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		if r < rows-1 {
			sb.WriteByte(',')
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// rowByte packs columns 8*index .. 8*index+7 of row r.
func rowByte(v grid.View, r, index int) byte {
	var b byte
	for bit := 0; bit < 8; bit++ {
		col := index*8 + bit
		if col < v.Cols() && v.At(r, col) {
			b |= 1 << bit
		}
	}
	return b
}

// HexLines renders each row as comma-separated hex byte literals.
func HexLines(v grid.View) []string {
	rows := v.Rows()
	byteCount := (v.Cols() + 7) / 8
	lines := make([]string, 0, rows)

	parts := make([]string, byteCount)
	for r := 0; r < rows; r++ {
		for i := range parts {
			parts[i] = fmt.Sprintf("0x%02x", rowByte(v, r, i))
		}
		lines = append(lines, strings.Join(parts, ", ")+",")
	}
	return lines
}

// Lines renders v in the given format.
func Lines(v grid.View, f Format) []string {
	if f == FormatBinary {
		return BinaryLines(v)
	}
	return HexLines(v)
}

// Render joins the lines of v with newlines, ready for display or the
// clipboard.
func Render(v grid.View, f Format) string {
	return strings.Join(Lines(v, f), "\n")
}
