// Package sim wires a level, a player prefab and the ECS systems into one
// fixed-step simulation shared by the sandbox window and the trace tool.
package sim

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilemotion/common"
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/ecs/entity"
	"github.com/milk9111/tilemotion/ecs/system"
	"github.com/milk9111/tilemotion/levels"
	"github.com/milk9111/tilemotion/motion"
	"github.com/milk9111/tilemotion/prefabs"
	"github.com/milk9111/tilemotion/tilemap"
)

const DefaultLevel = "sandbox"

type Options struct {
	// Level is an embedded level name or a path to a level .json file.
	Level string
	// Player is the player prefab name; empty loads player.yaml.
	Player   string
	Timestep float64
	Input    system.InputSource
	Verbose  bool
}

type Sim struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Input     *system.InputSystem
	Physics   *system.PhysicsSystem

	Level  *tilemap.Level
	Grid   *tilemap.Grid
	Spec   *prefabs.PlayerSpec
	Player ecs.Entity

	opts Options
}

func New(opts Options) (*Sim, error) {
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	lvl, grid, err := loadLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadPlayerSpec(opts.Player)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(grid.CellSize()); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	w.SetTileGrid(grid)
	if opts.Timestep > 0 {
		w.SetTimestep(opts.Timestep)
	}

	s := &Sim{
		World:   w,
		Input:   system.NewInputSystem(opts.Input),
		Physics: system.NewPhysicsSystem(spec.ResolverConfig()),
		Level:   lvl,
		Grid:    grid,
		Spec:    spec,
		opts:    opts,
	}
	s.Physics.Verbose = opts.Verbose
	s.Scheduler = ecs.NewScheduler(
		s.Input,
		system.NewMotionSystem(),
		s.Physics,
		system.NewHazardSystem(),
		system.NewRespawnSystem(),
	)

	x, y := lvl.Spawn()
	s.Player, err = entity.NewPlayer(w, spec, x, y)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func loadLevel(name string) (*tilemap.Level, *tilemap.Grid, error) {
	var (
		lvl *tilemap.Level
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if _, statErr := os.Stat(name); statErr == nil {
			lvl, err = tilemap.LoadLevel(name)
		} else {
			lvl, err = levels.Load(name)
		}
	} else {
		lvl, err = levels.Load(name)
	}
	if err != nil {
		return nil, nil, err
	}
	grid, err := lvl.Grid()
	if err != nil {
		return nil, nil, fmt.Errorf("sim: level %s: %w", name, err)
	}
	return lvl, grid, nil
}

// Step runs one fixed step and returns the events it produced.
func (s *Sim) Step() []ecs.CollisionEvent {
	s.Scheduler.Update(s.World)
	events := s.World.Events().Collisions()
	if s.opts.Verbose {
		for _, ev := range events {
			log.Printf("sim: frame=%d entity=%s %s at (%.2f, %.2f)", ev.Frame, ev.Entity, ev.Kind, ev.X, ev.Y)
		}
	}
	return events
}

// SetInput swaps the input source.
func (s *Sim) SetInput(src system.InputSource) { s.Input.SetSource(src) }

// RequestRespawn sends the player back to its last safe position on the
// next step.
func (s *Sim) RequestRespawn(reason string) {
	_ = ecs.Add(s.World, s.Player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{Reason: reason})
}

// ApplySpec validates spec against the current grid and retunes the player
// and resolver in place.
func (s *Sim) ApplySpec(spec *prefabs.PlayerSpec) error {
	if err := spec.Validate(s.Grid.CellSize()); err != nil {
		return err
	}
	if err := entity.ApplySpec(s.World, s.Player, spec); err != nil {
		return err
	}
	s.Physics.SetResolver(spec.ResolverConfig())
	s.Spec = spec
	return nil
}

// ReloadSpec reloads the player prefab from disk or the embedded copy.
func (s *Sim) ReloadSpec() error {
	spec, err := prefabs.LoadPlayerSpec(s.opts.Player)
	if err != nil {
		return err
	}
	return s.ApplySpec(spec)
}

// ReloadLevel reloads the current level. The player keeps its position
// unless it now overlaps solid cells, in which case it goes to the spawn.
func (s *Sim) ReloadLevel() error {
	return s.LoadLevel(s.opts.Level)
}

// LoadLevel switches to another level and moves the player to its spawn
// when the old position is no longer clear.
func (s *Sim) LoadLevel(name string) error {
	lvl, grid, err := loadLevel(name)
	if err != nil {
		return err
	}
	if err := s.Spec.Validate(grid.CellSize()); err != nil {
		return err
	}
	changed := name != s.opts.Level
	s.Level, s.Grid = lvl, grid
	s.opts.Level = name
	s.World.SetTileGrid(grid)

	t, tok := ecs.Get(s.World, s.Player, component.TransformComponent.Kind())
	c, cok := ecs.Get(s.World, s.Player, component.ColliderComponent.Kind())
	if !tok || !cok {
		return nil
	}
	if !changed && !tilemap.OverlapsSolid(grid, c.Box(*t)) {
		return nil
	}
	x, y := lvl.Spawn()
	t.X, t.Y = x, y
	if st, ok := ecs.Get(s.World, s.Player, component.MotionComponent.Kind()); ok {
		st.Respawn()
	}
	if safe, ok := ecs.Get(s.World, s.Player, component.SafeRespawnComponent.Kind()); ok {
		*safe = component.SafeRespawn{X: x, Y: y, Initialized: true}
	}
	return nil
}

// LevelName is the level currently loaded.
func (s *Sim) LevelName() string { return s.opts.Level }

// ToggleSolid flips a cell between open and solid.
func (s *Sim) ToggleSolid(col, row int) bool {
	return s.Grid.SetSolid(col, row, !s.Grid.IsSolid(col, row))
}

// Snapshot is the player's observable state after a step.
type Snapshot struct {
	Frame       uint64
	X, Y        float64
	VX, VY      float64
	Grounded    bool
	Wall        int
	WallSliding bool
	Dashing     bool
	Facing      int
	Residual    bool
}

func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{Frame: s.World.Frame()}
	if t, ok := ecs.Get(s.World, s.Player, component.TransformComponent.Kind()); ok {
		snap.X, snap.Y = t.X, t.Y
	}
	if st, ok := ecs.Get(s.World, s.Player, component.MotionComponent.Kind()); ok {
		v := st.Velocity()
		snap.VX, snap.VY = v.X, v.Y
		snap.Grounded = st.Grounded()
		snap.Wall = st.WallDir()
		snap.WallSliding = st.WallSliding()
		snap.Dashing = st.Dashing()
		snap.Facing = st.Facing()
	}
	if c, ok := ecs.Get(s.World, s.Player, component.ContactsComponent.Kind()); ok {
		snap.Residual = c.Residual
	}
	return snap
}

func (sn Snapshot) String() string {
	return fmt.Sprintf("%5d pos=(%8.3f,%8.3f) vel=(%8.3f,%8.3f) grounded=%-5t wall=%2d slide=%-5t dash=%-5t facing=%2d",
		sn.Frame, sn.X, sn.Y, sn.VX, sn.VY, sn.Grounded, sn.Wall, sn.WallSliding, sn.Dashing, sn.Facing)
}

// PlayerBox returns the player's collider in world space.
func (s *Sim) PlayerBox() common.Rect {
	t, tok := ecs.Get(s.World, s.Player, component.TransformComponent.Kind())
	c, cok := ecs.Get(s.World, s.Player, component.ColliderComponent.Kind())
	if !tok || !cok {
		return common.Rect{}
	}
	return c.Box(*t)
}

// State returns the player's motion state.
func (s *Sim) State() *motion.State {
	st, _ := ecs.Get(s.World, s.Player, component.MotionComponent.Kind())
	return st
}
