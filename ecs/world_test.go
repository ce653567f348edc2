package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/tilemotion/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			if !DestroyEntity(w, dead) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, dead) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, dead) {
				t.Fatalf("second destroy should report false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledIDsGetNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected id %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old || IsAlive(w, old) {
		t.Fatalf("stale handle %v must not alias %v", old, fresh)
	}
	if Has(w, fresh, kind) {
		t.Fatalf("components must not survive destroy")
	}
	if err := Add(w, old, kind, intPtr(2)); !errors.Is(err, ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.TransformComponent.Kind(), nil); !errors.Is(err, ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	var zero component.ComponentKind[int]
	if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	transforms := component.TransformComponent.Kind()
	colliders := component.ColliderComponent.Kind()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "transform_on_e1",
			setup: func() error { return Add(w, e1, transforms, &component.Transform{X: 3, Y: 4}) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, transforms)
				if !ok || v.X != 3 || v.Y != 4 {
					t.Fatalf("expected (3,4), got %v ok=%v", v, ok)
				}
				v.X = 10
				if again, _ := Get(w, e1, transforms); again.X != 10 {
					t.Fatalf("Get should return the stored pointer")
				}
			},
			teardown: func() bool { return Remove(w, e1, transforms) },
		},
		{
			name: "collider_on_both",
			setup: func() error {
				if err := Add(w, e1, colliders, &component.Collider{Width: 16, Height: 24}); err != nil {
					return err
				}
				return Add(w, e2, colliders, &component.Collider{Width: 8, Height: 8})
			},
			check: func(t *testing.T) {
				if !Has(w, e1, colliders) || !Has(w, e2, colliders) {
					t.Fatalf("expected both entities to have a collider")
				}
				c, _ := Get(w, e2, colliders)
				box := c.Box(component.Transform{X: 1, Y: 2})
				if box.X != 1 || box.Y != 2 || box.Width != 8 {
					t.Fatalf("unexpected box %+v", box)
				}
			},
			teardown: func() bool { return Remove(w, e1, colliders) && Remove(w, e2, colliders) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestForEachAllowsRemoval(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	var ents []Entity
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		ents = append(ents, e)
		if err := Add(w, e, kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	seen := 0
	ForEach(w, kind, func(e Entity, v *int) {
		seen++
		Remove(w, e, kind)
	})
	if seen != 5 {
		t.Fatalf("expected 5 visits, got %d", seen)
	}
	for _, e := range ents {
		if Has(w, e, kind) {
			t.Fatalf("entity %v still has component", e)
		}
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1, e2, e3 := CreateEntity(w), CreateEntity(w), CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, err := range []error{
					Add(w, e1, ka, intPtr(1)),
					Add(w, e2, ka, intPtr(2)),
					Add(w, e2, kb, intPtr(3)),
					Add(w, e2, kc, intPtr(5)),
					Add(w, e3, kb, intPtr(4)),
				} {
					if err != nil {
						t.Fatal(err)
					}
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, a *int, b *int, c *int) {
					if *a+*b+*c != 10 {
						t.Fatalf("wrong values %d %d %d", *a, *b, *c)
					}
					res = append(res, e)
				})
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				_ = Add(w, e, ka, intPtr(1))

				called := false
				ForEach3(w, ka, kb, kc, func(Entity, *int, *int, *int) { called = true })
				if called {
					t.Fatalf("expected no calls when a store is missing")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEach2And4(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	var all []Entity
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		all = append(all, e)
		_ = Add(w, e, ka, intPtr(i))
		if i%2 == 0 {
			_ = Add(w, e, kb, intPtr(i))
		}
	}
	_ = Add(w, all[2], kc, intPtr(0))
	_ = Add(w, all[2], kd, intPtr(0))

	var two []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { two = append(two, e) })
	set := toSet(two)
	if len(set) != 2 {
		t.Fatalf("expected 2 entities, got %v", two)
	}
	if _, ok := set[all[0]]; !ok {
		t.Fatalf("expected %v in ForEach2 result", all[0])
	}

	var four []Entity
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, _ *int) { four = append(four, e) })
	if len(four) != 1 || four[0] != all[2] {
		t.Fatalf("expected only %v, got %v", all[2], four)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	tag := component.PlayerTagComponent.Kind()
	if _, ok := First(w, tag); ok {
		t.Fatalf("expected no player in empty world")
	}
	_ = CreateEntity(w)
	p := CreateEntity(w)
	_ = Add(w, p, tag, &component.PlayerTag{})
	if got, ok := First(w, tag); !ok || got != p {
		t.Fatalf("expected %v, got %v ok=%v", p, got, ok)
	}
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(w *World) { *s.calls = append(*s.calls, s.name) }

func TestSchedulerOrderAndEvents(t *testing.T) {
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	s.Add(countingSystem{&calls, "c"})

	w := NewWorld()
	s.Update(w)
	s.Update(w)
	if got := len(calls); got != 6 || calls[0] != "a" || calls[2] != "c" {
		t.Fatalf("unexpected call order %v", calls)
	}
	if w.Frame() != 2 {
		t.Fatalf("expected frame 2, got %d", w.Frame())
	}

	w.Events().PushCollision(CollisionEvent{Kind: CollisionEventLanded})
	w.Events().Push(Event{Type: "other"})
	if w.Events().Len() != 2 {
		t.Fatalf("expected 2 queued events")
	}
	got := w.Events().Collisions()
	if len(got) != 1 || got[0].Kind != CollisionEventLanded {
		t.Fatalf("unexpected collisions %v", got)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("Collisions should drain the queue")
	}
}

func TestTimestep(t *testing.T) {
	w := NewWorld()
	if w.Timestep() != DefaultTimestep {
		t.Fatalf("expected default timestep")
	}
	w.SetTimestep(-1)
	if w.Timestep() != DefaultTimestep {
		t.Fatalf("negative timestep should be ignored")
	}
	w.SetTimestep(1.0 / 120)
	if w.Timestep() != 1.0/120 {
		t.Fatalf("expected 1/120, got %v", w.Timestep())
	}
}
