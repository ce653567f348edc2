package tilemap

import (
	"math"

	"github.com/milk9111/tilemotion/common"
)

// CellSpan is an inclusive range of cells covered by a rectangle.
type CellSpan struct {
	MinCol, MaxCol int
	MinRow, MaxRow int
}

// Empty reports whether the span covers no cells.
func (s CellSpan) Empty() bool {
	return s.MaxCol < s.MinCol || s.MaxRow < s.MinRow
}

// Span returns the cells a rectangle covers. The right and bottom edges are
// pulled in by one unit so a box resting exactly on a cell boundary does not
// count the neighbouring cell.
func Span(cellSize int, r common.Rect) CellSpan {
	size := float64(cellSize)
	return CellSpan{
		MinCol: int(math.Floor(r.Left() / size)),
		MaxCol: int(math.Floor((r.Right() - 1) / size)),
		MinRow: int(math.Floor(r.Top() / size)),
		MaxRow: int(math.Floor((r.Bottom() - 1) / size)),
	}
}

// Any reports whether pred holds for any cell in the span.
func (s CellSpan) Any(pred func(col, row int) bool) bool {
	if s.Empty() {
		return false
	}
	for row := s.MinRow; row <= s.MaxRow; row++ {
		for col := s.MinCol; col <= s.MaxCol; col++ {
			if pred(col, row) {
				return true
			}
		}
	}
	return false
}

// OverlapsSolid reports whether r covers any solid cell.
func OverlapsSolid(q Query, r common.Rect) bool {
	if q == nil {
		return false
	}
	return Span(q.CellSize(), r).Any(q.IsSolid)
}

// OverlapsHazard reports whether r covers any hazard cell.
func OverlapsHazard(q Query, r common.Rect) bool {
	if q == nil {
		return false
	}
	return Span(q.CellSize(), r).Any(q.IsHazard)
}
