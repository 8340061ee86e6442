package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/ecs/entity"
	"github.com/milk9111/jamfest/levels"
	"github.com/milk9111/jamfest/prefabs"
	"github.com/milk9111/jamfest/puzzle"
	"github.com/milk9111/jamfest/speech"
)

type room struct {
	t      *testing.T
	w      *ecs.World
	queue  *speech.Queue
	puzzle *PuzzleSystem
	sched  *ecs.Scheduler
	player ecs.Entity
}

func loadRoom(t *testing.T, name string) *room {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS(name)
	require.NoError(t, err)
	spec, err := prefabs.LoadEntitiesSpec(prefabs.EntitiesFile)
	require.NoError(t, err)
	tuning, err := prefabs.OverlayTuning(puzzle.DefaultTuning(), lvl.Tuning)
	require.NoError(t, err)

	w := ecs.NewWorld()
	builder := entity.NewBuilder(spec)
	require.NoError(t, entity.LoadLevelToWorld(w, lvl, builder))

	queue := speech.NewQueue()
	physics := NewPhysicsSystem(DefaultStep)
	ps := NewPuzzleSystem(puzzle.NewDriver(tuning), builder, queue, physics, physics.Step())
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	require.True(t, ok)

	r := &room{
		t:      t,
		w:      w,
		queue:  queue,
		puzzle: ps,
		sched:  ecs.NewScheduler(physics, ps),
		player: player,
	}
	r.sched.Update(w)
	return r
}

func (r *room) state() puzzle.State {
	return r.puzzle.Driver().State()
}

func (r *room) teleport(x, y float64) {
	r.t.Helper()
	body, ok := ecs.Get(r.w, r.player, component.PhysicsBodyComponent.Kind())
	require.True(r.t, ok)
	require.NotNil(r.t, body.Body)
	body.Body.SetPosition(cp.Vector{X: x, Y: y})
	body.Body.SetVelocityVector(cp.Vector{})
}

func (r *room) say(tokens ...puzzle.Token) {
	r.queue.Push(tokens...)
}

// runUntil ticks until cond holds, failing after max ticks.
func (r *room) runUntil(max int, what string, cond func(puzzle.State) bool) {
	r.t.Helper()
	for i := 0; i < max; i++ {
		r.sched.Update(r.w)
		if cond(r.state()) {
			return
		}
	}
	r.t.Fatalf("%s did not happen within %d ticks", what, max)
}

func (r *room) count(k puzzle.Kind) int {
	n := 0
	ecs.ForEach(r.w, component.PuzzleTagComponent.Kind(), func(_ ecs.Entity, tag *component.PuzzleTag) {
		if tag.Kind == k {
			n++
		}
	})
	return n
}

func TestRoomPlaythrough(t *testing.T) {
	r := loadRoom(t, "room")

	r.say(puzzle.TokenSugar)
	r.runUntil(10, "sugar", func(s puzzle.State) bool { return s.SugarCompleted })
	r.runUntil(600, "jam", func(s puzzle.State) bool { return s.JamCreated })
	assert.Equal(t, 0, r.count(puzzle.KindBasket))
	assert.Equal(t, 1, r.count(puzzle.KindJamJar))

	// Let the bear wander off the planks towards the jam.
	for i := 0; i < 600; i++ {
		r.sched.Update(r.w)
	}
	r.teleport(400, 100)
	r.runUntil(10, "planks", func(s puzzle.State) bool { return s.PlanksCollected })

	r.teleport(150, 160)
	r.runUntil(5, "settle", func(puzzle.State) bool { return true })
	r.say(puzzle.TokenMentos)
	r.runUntil(10, "mentos", func(s puzzle.State) bool { return s.MentosCompleted })
	r.runUntil(300, "bullseye", func(s puzzle.State) bool { return s.BullseyeJustHit })
	assert.Equal(t, 1, r.count(puzzle.KindEmptySoda))
	r.runUntil(300, "rope landing", func(s puzzle.State) bool { return !s.BullseyeJustHit })

	r.teleport(72, 136)
	r.runUntil(10, "rope", func(s puzzle.State) bool { return s.RopeCollected })

	lavaBefore := r.count(puzzle.KindLava)
	r.teleport(430, 160)
	r.runUntil(5, "settle", func(puzzle.State) bool { return true })
	r.say(puzzle.TokenBridge)
	r.runUntil(10, "bridge", func(s puzzle.State) bool { return s.BridgeCompleted })
	assert.Equal(t, 1, r.count(puzzle.KindBridge))
	assert.Equal(t, lavaBefore-12, r.count(puzzle.KindLava))
	assert.Equal(t, 12, r.count(puzzle.KindLavaDecor))

	r.teleport(560, 160)
	r.runUntil(10, "chest", func(s puzzle.State) bool { return s.ChestOpened })
	assert.Equal(t, puzzle.DefaultTuning().WinText, entity.CaptionText(r.w, puzzle.ChannelWin))
	assert.Len(t, r.state().Completed(), 7)
}

func TestCabinTimerAndRopeOutcome(t *testing.T) {
	r := loadRoom(t, "cabin")

	r.say(puzzle.TokenSugar)
	r.runUntil(10, "sugar", func(s puzzle.State) bool { return s.SugarCompleted })
	// Two seconds at sixty ticks per second, plus slack.
	r.runUntil(130, "jam", func(s puzzle.State) bool { return s.JamCreated })

	r.teleport(100, 170)
	r.runUntil(5, "settle", func(puzzle.State) bool { return true })
	r.say(puzzle.TokenMentos)
	r.runUntil(10, "mentos", func(s puzzle.State) bool { return s.MentosCompleted })
	r.runUntil(300, "rope spawn", func(puzzle.State) bool { return r.count(puzzle.KindRopeCoil) == 1 })
	assert.False(t, r.state().BullseyeJustHit)

	r.teleport(100, 200)
	r.runUntil(10, "rope", func(s puzzle.State) bool { return s.RopeCollected })
}

func TestPuzzleSystemDrainsQueueEachTick(t *testing.T) {
	r := loadRoom(t, "room")
	r.teleport(600, 280)
	r.runUntil(5, "settle", func(puzzle.State) bool { return true })

	// Too far from the basket: the token is dropped, not kept for later.
	r.say(puzzle.TokenSugar)
	r.sched.Update(r.w)
	assert.Equal(t, 0, r.queue.Len())
	assert.False(t, r.state().SugarCompleted)

	r.teleport(180, 240)
	for i := 0; i < 5; i++ {
		r.sched.Update(r.w)
	}
	assert.False(t, r.state().SugarCompleted)
}

func TestBuildSnapshotCarriesProps(t *testing.T) {
	r := loadRoom(t, "room")
	snap := BuildSnapshot(r.w, DefaultStep, nil)

	rope, ok := snap.First(puzzle.KindRopeCoil)
	require.True(t, ok)
	assert.Equal(t, puzzle.Vec{X: 72, Y: 136}, rope.Target)

	signs := snap.All(puzzle.KindSign)
	require.Len(t, signs, 3)
	for _, s := range signs {
		assert.NotEmpty(t, s.Text)
	}

	tracked := 0
	for _, lava := range snap.All(puzzle.KindLava) {
		if lava.Tracked {
			tracked++
		}
	}
	assert.Equal(t, 12, tracked)
	assert.Equal(t, r.player, FromEntityID(snap.Player().ID))
}
