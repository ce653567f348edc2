package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilemotion/common"
	"github.com/milk9111/tilemotion/tilemap"
)

// Bounded is implemented by anything with a collision box.
type Bounded interface {
	Bounds() common.Rect
}

// Kinematics is the motion state the resolver reads from and writes back to.
// *motion.State implements it.
type Kinematics interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	SetContacts(grounded bool, wall int)
}

// Body is an actor the resolver can move: it exposes its box, accepts a new
// position and hands over its motion state.
type Body interface {
	Bounded
	SetPosition(x, y float64)
	Kinematics() Kinematics
}

// Step resolves body for one frame and writes position, velocity and contacts
// back to it.
func (r Resolver) Step(body Body, grid tilemap.Query, dt float64) Result {
	k := body.Kinematics()
	res := r.Resolve(body.Bounds(), k.Velocity(), grid, dt)
	body.SetPosition(res.Position.X, res.Position.Y)
	k.SetVelocity(res.Velocity)
	k.SetContacts(res.Grounded, res.Wall)
	return res
}
