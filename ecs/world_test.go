package ecs

import (
	"testing"

	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/puzzle"
)

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
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d live entities, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	kind := component.TransformComponent.Kind()

	if err := Add(w, e, kind, &component.Transform{X: 3, Y: 4}); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, ok := Get(w, e, kind)
	if !ok || got.X != 3 || got.Y != 4 {
		t.Fatalf("expected (3,4), got %+v ok=%v", got, ok)
	}

	got.X = 10
	again, _ := Get(w, e, kind)
	if again.X != 10 {
		t.Fatalf("Get should hand out the stored pointer, got X=%v", again.X)
	}

	if err := Add(w, e, kind, &component.Transform{X: 1}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if again, _ = Get(w, e, kind); again.X != 1 {
		t.Fatalf("Add should replace an existing component, got X=%v", again.X)
	}

	if !Remove(w, e, kind) {
		t.Fatal("remove should report true")
	}
	if Has(w, e, kind) {
		t.Fatal("component still present after remove")
	}
	if Remove(w, e, kind) {
		t.Fatal("second remove should report false")
	}
	if err := Add[component.Transform](w, e, kind, nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEachIntersections(t *testing.T) {
	transform := component.TransformComponent.Kind()
	velocity := component.VelocityComponent.Kind()
	tag := component.PuzzleTagComponent.Kind()
	layer := component.RenderLayerComponent.Kind()

	// mover has all four; scenery lacks a velocity; ghost is destroyed.
	type world struct {
		w                      *World
		mover, scenery, ghost Entity
	}
	build := func(t *testing.T) world {
		t.Helper()
		w := NewWorld()
		mover, scenery, ghost := CreateEntity(w), CreateEntity(w), CreateEntity(w)
		for _, e := range []Entity{mover, scenery, ghost} {
			mustAdd(t, Add(w, e, transform, &component.Transform{}))
			mustAdd(t, Add(w, e, tag, &component.PuzzleTag{Kind: puzzle.KindBear}))
			mustAdd(t, Add(w, e, layer, &component.RenderLayer{Index: 1}))
		}
		mustAdd(t, Add(w, mover, velocity, &component.Velocity{X: 1}))
		mustAdd(t, Add(w, ghost, velocity, &component.Velocity{X: 2}))
		DestroyEntity(w, ghost)
		return world{w: w, mover: mover, scenery: scenery, ghost: ghost}
	}

	tests := []struct {
		name string
		want func(world) []Entity
		run  func(*World) []Entity
	}{
		{
			name: "two",
			want: func(x world) []Entity { return []Entity{x.mover, x.scenery} },
			run: func(w *World) (res []Entity) {
				ForEach2(w, transform, tag, func(e Entity, _ *component.Transform, _ *component.PuzzleTag) { res = append(res, e) })
				return res
			},
		},
		{
			name: "three",
			want: func(x world) []Entity { return []Entity{x.mover} },
			run: func(w *World) (res []Entity) {
				ForEach3(w, transform, velocity, tag, func(e Entity, _ *component.Transform, _ *component.Velocity, _ *component.PuzzleTag) {
					res = append(res, e)
				})
				return res
			},
		},
		{
			name: "four",
			want: func(x world) []Entity { return []Entity{x.mover} },
			run: func(w *World) (res []Entity) {
				ForEach4(w, transform, velocity, tag, layer, func(e Entity, _ *component.Transform, _ *component.Velocity, _ *component.PuzzleTag, _ *component.RenderLayer) {
					res = append(res, e)
				})
				return res
			},
		},
		{
			name: "missing_store",
			want: func(world) []Entity { return nil },
			run: func(w *World) (res []Entity) {
				ForEach2(w, transform, component.CameraComponent.Kind(), func(e Entity, _ *component.Transform, _ *component.Camera) { res = append(res, e) })
				return res
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x := build(t)
			got := toSet(tc.run(x.w))
			want := toSet(tc.want(x))
			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
			for e := range want {
				if _, ok := got[e]; !ok {
					t.Fatalf("expected %v in result %v", e, got)
				}
			}
			if _, ok := got[x.ghost]; ok {
				t.Fatal("destroyed entity visited")
			}
		})
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	k := component.PuzzleTagComponent.Kind()

	old := CreateEntity(w)
	mustAdd(t, Add(w, old, k, &component.PuzzleTag{Kind: puzzle.KindSugarBag}))
	if !DestroyEntity(w, old) {
		t.Fatal("failed to destroy entity")
	}
	if DestroyEntity(w, old) {
		t.Fatal("second destroy of the same handle should report false")
	}

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), reused.id())
	}
	if reused == old {
		t.Fatal("reused slot must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatal("stale handle reported alive")
	}
	if Has(w, reused, k) {
		t.Fatal("components of a destroyed entity leaked into the reused slot")
	}
	if err := Add(w, old, k, &component.PuzzleTag{}); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	tag := component.PuzzleTagComponent.Kind()
	sign := component.SignComponent.Kind()

	if _, ok := First(w, tag); ok {
		t.Fatal("First on an empty store should report false")
	}

	basket := CreateEntity(w)
	post := CreateEntity(w)
	mustAdd(t, Add(w, basket, tag, &component.PuzzleTag{Kind: puzzle.KindBasket}))
	mustAdd(t, Add(w, post, tag, &component.PuzzleTag{Kind: puzzle.KindSign}))
	mustAdd(t, Add(w, post, sign, &component.Sign{Text: "hello"}))

	first, ok := First(w, tag)
	if !ok || first != basket {
		t.Fatalf("expected basket first, got %v ok=%v", first, ok)
	}

	got := Query(w, tag, sign)
	if len(got) != 1 || got[0] != post {
		t.Fatalf("expected only the sign, got %v", got)
	}

	DestroyEntity(w, basket)
	first, ok = First(w, tag)
	if !ok || first != post {
		t.Fatalf("expected sign after destroying basket, got %v ok=%v", first, ok)
	}
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	k := component.HazardComponent.Kind()
	for i := 0; i < 4; i++ {
		mustAdd(t, Add(w, CreateEntity(w), k, &component.Hazard{Tracked: i%2 == 0}))
	}

	visited := 0
	ForEach(w, k, func(e Entity, _ *component.Hazard) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if n := len(Entities(w)); n != 0 {
		t.Fatalf("expected no live entities, got %d", n)
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []string
	s := NewScheduler(
		systemFunc(func(*World) { order = append(order, "input") }),
		nil,
		systemFunc(func(*World) { order = append(order, "physics") }),
	)
	s.Add(systemFunc(func(*World) { order = append(order, "puzzle") }))
	s.Update(NewWorld())

	want := []string{"input", "physics", "puzzle"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

type systemFunc func(*World)

func (f systemFunc) Update(w *World) { f(w) }

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}
