package tilemap

import (
	"fmt"
	"strings"
)

// Parse builds a grid from text rows: '#' is solid, '^' is a hazard, '*' is
// both and anything else is open. Rows must all have the same length.
func Parse(cellSize int, rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidDimensions
	}
	width := len(rows[0])
	solid := makeFlags(width, len(rows))
	hazard := makeFlags(width, len(rows))
	for row, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrDimensionMismatch, row, len(line), width)
		}
		for col, ch := range line {
			switch ch {
			case '#':
				solid[row][col] = true
			case '^':
				hazard[row][col] = true
			case '*':
				solid[row][col] = true
				hazard[row][col] = true
			}
		}
	}
	return New(cellSize, solid, hazard)
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(cellSize int, rows ...string) *Grid {
	g, err := Parse(cellSize, rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the grid in the Parse format.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			switch {
			case g.solid[row][col] && g.hazard[row][col]:
				b.WriteByte('*')
			case g.solid[row][col]:
				b.WriteByte('#')
			case g.hazard[row][col]:
				b.WriteByte('^')
			default:
				b.WriteByte('.')
			}
		}
		if row < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
