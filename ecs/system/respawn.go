package system

import (
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update performs pending respawn requests. It runs after PhysicsSystem and
// HazardSystem so the teleport is the last word for the frame.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, req *component.RespawnRequest) {
		t, tok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !tok {
			_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
			return
		}

		safe, sok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
		if sok && safe.Initialized {
			t.X = safe.X
			t.Y = safe.Y
			if st, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
				st.Respawn()
			}
			if contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
				*contacts = component.Contacts{}
			}
			w.Events().PushCollision(ecs.CollisionEvent{Entity: e, Kind: ecs.CollisionEventRespawned, Frame: w.Frame(), X: t.X, Y: t.Y})
		}

		_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
	})
}
