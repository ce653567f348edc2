package sim

import (
	"testing"

	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/ecs/system"
	"github.com/milk9111/tilemotion/motion"
	"github.com/milk9111/tilemotion/replay"
	"github.com/milk9111/tilemotion/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerSettlesOnSpawnFloor(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, s.LevelName())

	for i := 0; i < 60; i++ {
		s.Step()
	}
	snap := s.Snapshot()
	assert.Equal(t, uint64(60), snap.Frame)
	assert.Equal(t, 48.0, snap.X)
	assert.Equal(t, 312.0, snap.Y)
	assert.True(t, snap.Grounded)
	assert.False(t, snap.Residual)
	assert.Contains(t, snap.String(), "grounded=true")
}

func run(t *testing.T, script string, frames int) []Snapshot {
	t.Helper()
	src, err := replay.Load(script)
	require.NoError(t, err)
	s, err := New(Options{Input: src})
	require.NoError(t, err)

	out := make([]Snapshot, 0, frames)
	for i := 0; i < frames; i++ {
		s.Step()
		out = append(out, s.Snapshot())
	}
	require.NoError(t, src.Err())
	return out
}

func TestReplayIsDeterministic(t *testing.T) {
	for _, script := range []string{"walk_jump", "wall_climb"} {
		t.Run(script, func(t *testing.T) {
			a := run(t, script, 300)
			b := run(t, script, 300)
			require.Equal(t, a, b)

			moved := false
			for _, snap := range a {
				assert.False(t, snap.Residual, "frame %d", snap.Frame)
				moved = moved || snap.X != a[0].X
			}
			assert.True(t, moved)
		})
	}
}

func TestRequestRespawn(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		s.Step()
	}

	tr, _ := ecs.Get(s.World, s.Player, component.TransformComponent.Kind())
	tr.X = 100
	s.RequestRespawn("manual")
	events := s.Step()

	found := false
	for _, ev := range events {
		found = found || ev.Kind == ecs.CollisionEventRespawned
	}
	assert.True(t, found)
	assert.Equal(t, 48.0, tr.X)
	assert.Equal(t, 312.0, tr.Y)
}

func TestInputMovesPlayer(t *testing.T) {
	in := motion.Input{}
	s, err := New(Options{})
	require.NoError(t, err)
	s.SetInput(system.InputFunc(func() motion.Input { return in }))
	for i := 0; i < 20; i++ {
		s.Step()
	}

	in = motion.Input{MoveX: 1}
	for i := 0; i < 20; i++ {
		s.Step()
	}
	snap := s.Snapshot()
	assert.Greater(t, snap.X, 48.0)
	assert.Equal(t, 1, snap.Facing)
	assert.Equal(t, 312.0, snap.Y)
	assert.NotNil(t, s.State())
}

func TestToggleSolidTracksChanges(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	s.Grid.DrainChanges()

	require.True(t, s.ToggleSolid(5, 5))
	assert.True(t, s.Grid.IsSolid(5, 5))
	assert.Equal(t, []tilemap.Cell{{Col: 5, Row: 5}}, s.Grid.DrainChanges())
	assert.False(t, s.ToggleSolid(-1, 0))
}

func TestLoadLevelMovesPlayerToSpawn(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)

	require.NoError(t, s.LoadLevel("wells"))
	assert.Equal(t, "wells", s.LevelName())
	snap := s.Snapshot()
	assert.Equal(t, 32.0, snap.X)
	assert.Equal(t, 192.0, snap.Y)
	assert.Same(t, s.Grid, s.World.TileGrid())

	assert.Error(t, s.LoadLevel("missing"))
	assert.Equal(t, "wells", s.LevelName())

	require.NoError(t, s.ReloadLevel())
	assert.Equal(t, 32.0, s.Snapshot().X)
}

func TestApplySpecRejectsInvalid(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)

	bad := *s.Spec
	bad.Resolver.StepSize = 64
	assert.Error(t, s.ApplySpec(&bad))
	assert.Equal(t, 0.5, s.Physics.Resolver().StepSize)

	good := *s.Spec
	good.Resolver.StepSize = 0.25
	require.NoError(t, s.ApplySpec(&good))
	assert.Equal(t, 0.25, s.Physics.Resolver().StepSize)

	require.NoError(t, s.ReloadSpec())
	assert.Equal(t, 0.5, s.Physics.Resolver().StepSize)
}

func TestCustomTimestep(t *testing.T) {
	s, err := New(Options{Timestep: 1.0 / 120})
	require.NoError(t, err)
	assert.Equal(t, 1.0/120, s.World.Timestep())

	_, err = New(Options{Level: "missing"})
	assert.Error(t, err)
}
