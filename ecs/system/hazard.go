package system

import (
	"github.com/milk9111/tilemotion/collision"
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
)

// HazardSystem checks players against hazard cells and requests a respawn
// on contact. Hazards never block movement.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	grid := w.TileGrid()
	if grid == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform, c *component.Collider) {
		hit := collision.TouchesHazard(grid, c.Box(*t))
		if contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
			contacts.Hazard = hit
		}
		if !hit || ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			return
		}
		w.Events().PushCollision(ecs.CollisionEvent{Entity: e, Kind: ecs.CollisionEventHitHazard, Frame: w.Frame(), X: t.X, Y: t.Y})
		_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{Reason: "hazard"})
	})
}
