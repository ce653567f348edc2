// Package collision moves an axis-aligned box through a tile grid one axis at
// a time, backing it out of solid cells and reporting ground, wall and head
// contacts.
package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilemotion/common"
	"github.com/milk9111/tilemotion/tilemap"
)

const (
	DefaultStepSize    = 0.5
	DefaultProbeInset  = 1.0
	DefaultProbeHeight = 1.0

	// boundary snapping tolerance for positions that drifted by float error
	edgeEpsilon = 1e-6
)

var (
	ErrInvalidStepSize = errors.New("collision: step size must be in (0, cellSize)")
	ErrInvalidProbe    = errors.New("collision: invalid ground probe")
)

// Resolver holds the de-penetration and ground probe settings. The zero value
// is not usable; start from DefaultResolver.
type Resolver struct {
	// StepSize is how far the box backs off per de-penetration iteration.
	StepSize float64 `yaml:"step_size" toml:"step_size"`
	// ProbeInset shrinks the ground probe on both sides so wall contact does
	// not read as ground.
	ProbeInset float64 `yaml:"probe_inset" toml:"probe_inset"`
	// ProbeHeight is the thickness of the probe under the box's bottom edge.
	ProbeHeight float64 `yaml:"probe_height" toml:"probe_height"`
}

func DefaultResolver() Resolver {
	return Resolver{
		StepSize:    DefaultStepSize,
		ProbeInset:  DefaultProbeInset,
		ProbeHeight: DefaultProbeHeight,
	}
}

// Validate checks the settings against a grid's cell size. A step at or above
// the cell size could back a box through a one-cell wall.
func (r Resolver) Validate(cellSize int) error {
	if !(r.StepSize > 0) || r.StepSize >= float64(cellSize) {
		return fmt.Errorf("%w: step %v, cell %d", ErrInvalidStepSize, r.StepSize, cellSize)
	}
	if r.ProbeInset < 0 || !(r.ProbeHeight >= 1) || r.ProbeHeight > float64(cellSize) {
		return fmt.Errorf("%w: inset %v, height %v", ErrInvalidProbe, r.ProbeInset, r.ProbeHeight)
	}
	return nil
}

// MaxIterations is the de-penetration budget per axis.
func (r Resolver) MaxIterations(cellSize int) int {
	return int(math.Ceil(float64(cellSize) / r.step(cellSize)))
}

func (r Resolver) step(cellSize int) float64 {
	if r.StepSize > 0 && r.StepSize < float64(cellSize) {
		return r.StepSize
	}
	return math.Min(DefaultStepSize, float64(cellSize)/2)
}

// MaxResolvableSpeed is the fastest per-axis speed the resolver handles
// without risking tunneling through a one-cell wall.
func MaxResolvableSpeed(cellSize int, dt float64) float64 {
	return float64(cellSize) / dt
}

// Result is the outcome of one Resolve call.
type Result struct {
	// Position is the corrected top-left corner of the box.
	Position cp.Vector
	// Velocity has a component zeroed for each axis that hit something.
	Velocity cp.Vector
	Grounded bool
	// Wall is the side of a horizontal hit: -1 left, +1 right, 0 none.
	Wall     int
	HeadBump bool
	// Residual is set when the iteration budget ran out while the box still
	// overlapped solid cells. The overlap is kept rather than looping on.
	Residual bool
}

// Box returns the resolved box.
func (res Result) Box(size common.Rect) common.Rect {
	return size.At(res.Position.X, res.Position.Y)
}

type axis int

const (
	axisX axis = iota
	axisY
)

// Resolve moves box by vel*dt against grid, horizontal first, then vertical.
func (r Resolver) Resolve(box common.Rect, vel cp.Vector, grid tilemap.Query, dt float64) Result {
	res := Result{Position: cp.Vector{X: box.X, Y: box.Y}, Velocity: vel}
	if grid == nil {
		return res
	}
	if !(dt > 0) || math.IsInf(dt, 0) || !common.Finite(vel.X) || !common.Finite(vel.Y) {
		res.Grounded = r.probeGround(grid, box)
		return res
	}

	move := vel.Mult(dt)

	var hitX, residualX bool
	box, hitX, residualX = r.moveAxis(grid, box, move.X, axisX)
	if hitX {
		res.Velocity.X = 0
		res.Wall = int(common.Sign(move.X))
	}

	var hitY, residualY bool
	box, hitY, residualY = r.moveAxis(grid, box, move.Y, axisY)
	landed := false
	if hitY {
		res.Velocity.Y = 0
		if move.Y > 0 {
			landed = !residualY
		} else {
			res.HeadBump = true
		}
	}

	res.Position = cp.Vector{X: box.X, Y: box.Y}
	res.Residual = residualX || residualY
	res.Grounded = landed || r.probeGround(grid, box)
	return res
}

// moveAxis applies delta along one axis and backs the box out of any solid
// cells it entered. It returns the new box, whether anything was hit and
// whether an overlap is left over.
func (r Resolver) moveAxis(grid tilemap.Query, box common.Rect, delta float64, a axis) (common.Rect, bool, bool) {
	if math.Abs(delta) <= common.Epsilon {
		return box, false, false
	}
	cellSize := grid.CellSize()
	step := r.step(cellSize)
	limit := r.MaxIterations(cellSize)
	dir := common.Sign(delta)

	target := shift(box, a, delta)
	moved := target
	travel := math.Abs(delta)
	hit := false
	for i := 0; i < limit && travel > common.Epsilon && tilemap.OverlapsSolid(grid, moved); i++ {
		// rebuilt from the start so a fully unwound move lands exactly on box
		travel = math.Max(travel-step, 0)
		moved = box
		if travel > common.Epsilon {
			moved = shift(box, a, dir*travel)
		}
		hit = true
	}
	stuck := tilemap.OverlapsSolid(grid, moved)

	if b, ok := firstBlockingBoundary(grid, box, target, a, dir, limit); ok {
		placed := place(box, a, dir, b)
		if !tilemap.OverlapsSolid(grid, placed) {
			return placed, true, false
		}
		// flush placement would cut into cells behind the box
		if !stuck {
			return moved, hit, false
		}
		return placed, true, true
	}
	return moved, hit, hit && stuck
}

// firstBlockingBoundary walks the cell boundaries the leading edge crosses
// between start and target and returns the first one with solid cells past
// it. The span convention ignores penetration under one unit, so stepping
// back alone would let a box sink into the floor and pop out on alternate
// frames. For the same reason a right or bottom edge may start up to one
// unit past a boundary while still clear, so the forward scan begins one
// unit behind it.
func firstBlockingBoundary(grid tilemap.Query, start, target common.Rect, a axis, dir float64, maxLines int) (float64, bool) {
	size := float64(grid.CellSize())
	span := tilemap.Span(grid.CellSize(), target)
	lead0, lead := leadingEdge(start, a, dir), leadingEdge(target, a, dir)

	if dir > 0 {
		b := math.Ceil((lead0-1-edgeEpsilon)/size) * size
		for i := 0; i < maxLines && b < lead; i++ {
			if lineSolid(grid, span, a, int(math.Round(b/size))) {
				return b, true
			}
			b += size
		}
		return 0, false
	}

	b := math.Floor((lead0+edgeEpsilon)/size) * size
	for i := 0; i < maxLines && b > lead; i++ {
		if lineSolid(grid, span, a, int(math.Round(b/size))-1) {
			return b, true
		}
		b -= size
	}
	return 0, false
}

// lineSolid reports whether column (axisX) or row (axisY) line has a solid
// cell inside the perpendicular range of span.
func lineSolid(grid tilemap.Query, span tilemap.CellSpan, a axis, line int) bool {
	if a == axisX {
		for row := span.MinRow; row <= span.MaxRow; row++ {
			if grid.IsSolid(line, row) {
				return true
			}
		}
		return false
	}
	for col := span.MinCol; col <= span.MaxCol; col++ {
		if grid.IsSolid(col, line) {
			return true
		}
	}
	return false
}

// place puts the leading edge of r exactly on boundary.
func place(r common.Rect, a axis, dir float64, boundary float64) common.Rect {
	switch {
	case a == axisX && dir > 0:
		r.X = boundary - r.Width
	case a == axisX:
		r.X = boundary
	case dir > 0:
		r.Y = boundary - r.Height
	default:
		r.Y = boundary
	}
	return r
}

func leadingEdge(r common.Rect, a axis, dir float64) float64 {
	switch {
	case a == axisX && dir > 0:
		return r.Right()
	case a == axisX:
		return r.Left()
	case dir > 0:
		return r.Bottom()
	default:
		return r.Top()
	}
}

func shift(r common.Rect, a axis, d float64) common.Rect {
	if a == axisX {
		return r.Translate(d, 0)
	}
	return r.Translate(0, d)
}

// probeGround tests a thin strip directly under the box. It does not depend
// on the vertical move, so a box resting on a boundary with zero velocity is
// still grounded.
func (r Resolver) probeGround(grid tilemap.Query, box common.Rect) bool {
	return tilemap.OverlapsSolid(grid, r.GroundProbe(box))
}

// GroundProbe returns the strip tested for ground under box.
func (r Resolver) GroundProbe(box common.Rect) common.Rect {
	height := r.ProbeHeight
	if !(height >= 1) {
		height = DefaultProbeHeight
	}
	inset := r.ProbeInset
	if inset < 0 || box.Width-2*inset <= 0 {
		inset = 0
	}
	return common.Rect{
		X:      box.X + inset,
		Y:      box.Bottom(),
		Width:  box.Width - 2*inset,
		Height: height,
	}
}

// TouchesHazard reports whether box covers any hazard cell, using the same
// cell span as solid tests. It is separate from Resolve so callers decide
// what contact means.
func TouchesHazard(grid tilemap.Query, box common.Rect) bool {
	return tilemap.OverlapsHazard(grid, box)
}
