package system

import (
	"log"

	"github.com/milk9111/tilemotion/collision"
	"github.com/milk9111/tilemotion/common"
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/motion"
)

// PhysicsSystem resolves every body against the world's tile grid and
// records the contacts it finds.
type PhysicsSystem struct {
	resolver collision.Resolver
	// Verbose logs residual overlaps as they happen.
	Verbose bool
}

func NewPhysicsSystem(r collision.Resolver) *PhysicsSystem {
	return &PhysicsSystem{resolver: r}
}

func (ps *PhysicsSystem) Resolver() collision.Resolver { return ps.resolver }

// SetResolver replaces the resolver settings, typically after a prefab
// reload.
func (ps *PhysicsSystem) SetResolver(r collision.Resolver) { ps.resolver = r }

// body adapts an entity's components to collision.Body.
type body struct {
	t     *component.Transform
	c     *component.Collider
	state *motion.State
}

func (b body) Bounds() common.Rect { return b.c.Box(*b.t) }

func (b body) SetPosition(x, y float64) {
	b.t.X = x - b.c.OffsetX
	b.t.Y = y - b.c.OffsetY
}

func (b body) Kinematics() collision.Kinematics { return b.state }

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	grid := w.TileGrid()
	if grid == nil {
		return
	}
	dt := w.Timestep()

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), component.MotionComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider, st *motion.State) {
		contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
		if !ok {
			contacts = &component.Contacts{}
			_ = ecs.Add(w, e, component.ContactsComponent.Kind(), contacts)
		}
		prev := *contacts

		res := ps.resolver.Step(body{t: t, c: c, state: st}, grid, dt)

		contacts.Grounded = res.Grounded
		contacts.Wall = res.Wall
		contacts.HeadBump = res.HeadBump
		contacts.Residual = res.Residual
		if res.Grounded {
			contacts.AirFrames = 0
		} else {
			contacts.AirFrames++
		}

		emit := func(kind ecs.CollisionEventKind) {
			w.Events().PushCollision(ecs.CollisionEvent{Entity: e, Kind: kind, Frame: w.Frame(), X: t.X, Y: t.Y})
		}
		switch {
		case res.Grounded && !prev.Grounded:
			emit(ecs.CollisionEventLanded)
		case !res.Grounded && prev.Grounded:
			emit(ecs.CollisionEventLeftGround)
		}
		if res.Wall != 0 && res.Wall != prev.Wall {
			emit(ecs.CollisionEventWall)
		}
		if res.HeadBump {
			emit(ecs.CollisionEventHeadBump)
		}
		if res.Residual {
			emit(ecs.CollisionEventResidual)
			if ps.Verbose && !prev.Residual {
				log.Printf("physics: entity=%s residual overlap at (%.2f, %.2f)", e, t.X, t.Y)
			}
		}

		// Only remember grounded spots that are clear of hazards and geometry.
		if res.Grounded && !res.Residual && !collision.TouchesHazard(grid, c.Box(*t)) {
			safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
			if !ok {
				safe = &component.SafeRespawn{}
				_ = ecs.Add(w, e, component.SafeRespawnComponent.Kind(), safe)
			}
			safe.X = t.X
			safe.Y = t.Y
			safe.Initialized = true
		}
	})
}
