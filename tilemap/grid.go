// Package tilemap holds the static tile grid actors collide against.
package tilemap

import (
	"errors"
	"fmt"
	"math"

	"github.com/kamstrup/intmap"
	"github.com/milk9111/tilemotion/common"
)

var (
	ErrInvalidCellSize   = errors.New("tilemap: cell size must be positive")
	ErrInvalidDimensions = errors.New("tilemap: grid dimensions must be positive")
	ErrDimensionMismatch = errors.New("tilemap: flag arrays do not match grid dimensions")
)

// Query is the read-only view of a tile grid used by collision and hazard
// checks. Out-of-range cells are never solid or hazardous.
type Query interface {
	CellSize() int
	Width() int
	Height() int
	IsSolid(col, row int) bool
	IsHazard(col, row int) bool
}

// Cell addresses a single grid cell.
type Cell struct {
	Col, Row int
}

// Grid is a fixed-size grid of square cells flagged solid and/or hazardous.
// Flags are indexed [row][col].
type Grid struct {
	cellSize int
	width    int
	height   int
	solid    [][]bool
	hazard   [][]bool

	// cells touched by SetSolid/SetHazard since the last DrainChanges
	dirty      *intmap.Map[int, struct{}]
	dirtyOrder []Cell
}

var _ Query = (*Grid)(nil)

// New builds a grid from row-major flag arrays. Both arrays must have the
// same number of rows, and every row the same length. A nil hazard array
// means no hazards.
func New(cellSize int, solid, hazard [][]bool) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCellSize, cellSize)
	}
	height := len(solid)
	if height == 0 || len(solid[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	width := len(solid[0])
	if hazard == nil {
		hazard = makeFlags(width, height)
	}
	if len(hazard) != height {
		return nil, fmt.Errorf("%w: %d solid rows, %d hazard rows", ErrDimensionMismatch, height, len(hazard))
	}
	for row := 0; row < height; row++ {
		if len(solid[row]) != width || len(hazard[row]) != width {
			return nil, fmt.Errorf("%w: row %d", ErrDimensionMismatch, row)
		}
	}

	return &Grid{
		cellSize: cellSize,
		width:    width,
		height:   height,
		solid:    copyFlags(solid),
		hazard:   copyFlags(hazard),
	}, nil
}

// NewEmpty builds an all-open grid of width x height cells.
func NewEmpty(cellSize, width, height int) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCellSize, cellSize)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return New(cellSize, makeFlags(width, height), makeFlags(width, height))
}

func makeFlags(width, height int) [][]bool {
	flags := make([][]bool, height)
	for row := range flags {
		flags[row] = make([]bool, width)
	}
	return flags
}

func copyFlags(src [][]bool) [][]bool {
	out := make([][]bool, len(src))
	for row := range src {
		out[row] = append([]bool(nil), src[row]...)
	}
	return out
}

func (g *Grid) CellSize() int { return g.cellSize }
func (g *Grid) Width() int    { return g.width }
func (g *Grid) Height() int   { return g.height }

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.width && row < g.height
}

// IsSolid reports whether a cell blocks movement.
func (g *Grid) IsSolid(col, row int) bool {
	if g == nil || !g.inBounds(col, row) {
		return false
	}
	return g.solid[row][col]
}

// IsHazard reports whether a cell kills on contact.
func (g *Grid) IsHazard(col, row int) bool {
	if g == nil || !g.inBounds(col, row) {
		return false
	}
	return g.hazard[row][col]
}

// WorldToCell maps a world coordinate to the cell containing it.
func (g *Grid) WorldToCell(x, y float64) (col, row int) {
	return WorldToCell(g.cellSize, x, y)
}

// WorldToCell maps a world coordinate to a cell for the given cell size.
func WorldToCell(cellSize int, x, y float64) (col, row int) {
	size := float64(cellSize)
	return int(math.Floor(x / size)), int(math.Floor(y / size))
}

// CellRect returns the world-space rectangle covered by a cell.
func (g *Grid) CellRect(col, row int) common.Rect {
	size := float64(g.cellSize)
	return common.Rect{X: float64(col) * size, Y: float64(row) * size, Width: size, Height: size}
}

// WorldBounds returns the world-space size of the grid.
func (g *Grid) WorldBounds() common.Rect {
	return common.Rect{
		Width:  float64(g.width * g.cellSize),
		Height: float64(g.height * g.cellSize),
	}
}

// SetSolid changes a cell's solid flag. Out-of-range cells are ignored and
// false is returned. Intended for editing tools between frames.
func (g *Grid) SetSolid(col, row int, solid bool) bool {
	if g == nil || !g.inBounds(col, row) {
		return false
	}
	if g.solid[row][col] != solid {
		g.solid[row][col] = solid
		g.markDirty(col, row)
	}
	return true
}

// SetHazard changes a cell's hazard flag. Out-of-range cells are ignored and
// false is returned.
func (g *Grid) SetHazard(col, row int, hazard bool) bool {
	if g == nil || !g.inBounds(col, row) {
		return false
	}
	if g.hazard[row][col] != hazard {
		g.hazard[row][col] = hazard
		g.markDirty(col, row)
	}
	return true
}

func (g *Grid) markDirty(col, row int) {
	if g.dirty == nil {
		g.dirty = intmap.New[int, struct{}](64)
	}
	key := row*g.width + col
	if _, ok := g.dirty.Get(key); ok {
		return
	}
	g.dirty.Put(key, struct{}{})
	g.dirtyOrder = append(g.dirtyOrder, Cell{Col: col, Row: row})
}

// DrainChanges returns the cells modified since the previous call, in first
// modification order, and resets the change set.
func (g *Grid) DrainChanges() []Cell {
	if g == nil || len(g.dirtyOrder) == 0 {
		return nil
	}
	out := g.dirtyOrder
	g.dirtyOrder = nil
	g.dirty.Clear()
	return out
}
