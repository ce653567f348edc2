package system

import (
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/motion"
)

// MotionSystem advances every entity's movement state from its input.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem { return &MotionSystem{} }

var motionEvents = []struct {
	flag motion.Events
	kind ecs.CollisionEventKind
}{
	{motion.EventJumped, ecs.MotionEventJumped},
	{motion.EventWallJumped, ecs.MotionEventWallJumped},
	{motion.EventJumpCut, ecs.MotionEventJumpCut},
	{motion.EventDashStarted, ecs.MotionEventDashStarted},
	{motion.EventDashEnded, ecs.MotionEventDashEnded},
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Timestep()
	ecs.ForEach2(w, component.MotionComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, st *motion.State, in *motion.Input) {
		fired := st.Advance(dt, *in)
		if fired == 0 {
			return
		}
		x, y := position(w, e)
		for _, me := range motionEvents {
			if fired.Has(me.flag) {
				w.Events().PushCollision(ecs.CollisionEvent{Entity: e, Kind: me.kind, Frame: w.Frame(), X: x, Y: y})
			}
		}
	})
}

func position(w *ecs.World, e ecs.Entity) (float64, float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.X, t.Y
	}
	return 0, 0
}
