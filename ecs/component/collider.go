package component

import "github.com/milk9111/tilemotion/common"

// Collider is the axis-aligned box resolved against the tile grid, offset
// from the Transform.
type Collider struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

// Box returns the collider in world space for t.
func (c Collider) Box(t Transform) common.Rect {
	return common.Rect{X: t.X + c.OffsetX, Y: t.Y + c.OffsetY, Width: c.Width, Height: c.Height}
}

var ColliderComponent = NewComponent[Collider]()
