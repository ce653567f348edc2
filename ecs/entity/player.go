package entity

import (
	"fmt"

	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/motion"
	"github.com/milk9111/tilemotion/prefabs"
)

// NewPlayer builds a player from spec with its top-left corner at (x, y).
// A nil spec uses the defaults.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		def := prefabs.DefaultPlayerSpec()
		spec = &def
	}
	st, err := motion.NewState(spec.MotionConfig())
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	c := spec.Collider
	adds := []error{
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: c.Width, Height: c.Height, OffsetX: c.OffsetX, OffsetY: c.OffsetY}),
		ecs.Add(w, e, component.MotionComponent.Kind(), st),
		ecs.Add(w, e, component.InputComponent.Kind(), &motion.Input{}),
		ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{}),
		ecs.Add(w, e, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{X: x, Y: y, Initialized: true}),
	}
	for _, err := range adds {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	return e, nil
}

// NewPlayerFromPrefab loads the named player prefab and builds it at (x, y).
func NewPlayerFromPrefab(w *ecs.World, name string, x, y float64) (ecs.Entity, *prefabs.PlayerSpec, error) {
	spec, err := prefabs.LoadPlayerSpec(name)
	if err != nil {
		return 0, nil, err
	}
	e, err := NewPlayer(w, spec, x, y)
	if err != nil {
		return 0, nil, err
	}
	return e, spec, nil
}

// ApplySpec retunes an existing player in place, keeping its position and
// velocity. Used by prefab hot reload.
func ApplySpec(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return nil
	}
	st, ok := ecs.Get(w, e, component.MotionComponent.Kind())
	if !ok {
		return fmt.Errorf("player: %w: no motion state", ecs.ErrEntityNotAlive)
	}
	if err := st.SetConfig(spec.MotionConfig()); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		c := spec.Collider
		*col = component.Collider{Width: c.Width, Height: c.Height, OffsetX: c.OffsetX, OffsetY: c.OffsetY}
	}
	return nil
}
