package ecs

import (
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/tilemap"
)

// DefaultTimestep is the fixed simulation step, 60 updates per second.
const DefaultTimestep = 1.0 / 60

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// store is the type-erased view of a SparseSet used for entity teardown and
// intersection.
type store interface {
	has(id entityID) bool
	remove(id entityID) bool
	size() int
	ids() []entityID
}

// World owns entities, their components, the tile grid and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue

	grid     tilemap.Query
	timestep float64
	frame    uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]store),
		timestep: DefaultTimestep,
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetTileGrid attaches the level's collision grid.
func (w *World) SetTileGrid(g tilemap.Query) {
	if w == nil {
		return
	}
	w.grid = g
}

// TileGrid returns the attached grid, if any.
func (w *World) TileGrid() tilemap.Query {
	if w == nil {
		return nil
	}
	return w.grid
}

// SetTimestep changes the fixed step handed to systems. Non-positive values
// are ignored.
func (w *World) SetTimestep(dt float64) {
	if w == nil || !(dt > 0) {
		return
	}
	w.timestep = dt
}

func (w *World) Timestep() float64 {
	if w == nil {
		return DefaultTimestep
	}
	return w.timestep
}

// Frame is the number of completed scheduler updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := &SparseSet[T]{}
		w.stores[kind.ID()] = set
		return set
	}
	set, _ := s.(*SparseSet[T])
	return set
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity drops an entity and all its components. It returns false if
// the handle was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}
