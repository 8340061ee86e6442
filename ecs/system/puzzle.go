package system

import (
	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/ecs/entity"
	"github.com/milk9111/jamfest/puzzle"
)

// TokenSource hands over the tokens heard since the last call.
type TokenSource interface {
	Drain() []puzzle.Token
}

// ContactSource reports the contacts that began in the last physics step.
type ContactSource interface {
	Contacts() []Contact
}

// PuzzleSystem runs the puzzle driver once per tick. It snapshots the
// world, drains the token queue exactly once, steps the driver and applies
// the resulting effects.
type PuzzleSystem struct {
	driver   *puzzle.Driver
	builder  *entity.Builder
	tokens   TokenSource
	contacts ContactSource
	dt       float64
}

func NewPuzzleSystem(driver *puzzle.Driver, builder *entity.Builder, tokens TokenSource, contacts ContactSource, dt float64) *PuzzleSystem {
	if dt <= 0 {
		dt = DefaultStep
	}
	return &PuzzleSystem{driver: driver, builder: builder, tokens: tokens, contacts: contacts, dt: dt}
}

func (ps *PuzzleSystem) Driver() *puzzle.Driver {
	return ps.driver
}

func (ps *PuzzleSystem) Update(w *ecs.World) {
	if ps == nil || ps.driver == nil || w == nil {
		return
	}

	var tokens []puzzle.Token
	if ps.tokens != nil {
		tokens = ps.tokens.Drain()
	}

	snap := BuildSnapshot(w, ps.dt, ps.contactList())
	effects := ps.driver.Step(snap, tokens)
	for _, eff := range effects {
		ps.apply(w, eff)
	}
}

func (ps *PuzzleSystem) contactList() []Contact {
	if ps.contacts == nil {
		return nil
	}
	return ps.contacts.Contacts()
}

// BuildSnapshot collects every puzzle-tagged entity into a snapshot.
func BuildSnapshot(w *ecs.World, dt float64, contacts []Contact) *puzzle.Snapshot {
	var bodies []puzzle.Body
	ecs.ForEach2(w, component.PuzzleTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tag *component.PuzzleTag, tr *component.Transform) {
		b := puzzle.Body{
			ID:   ToEntityID(e),
			Kind: tag.Kind,
			Pos:  puzzle.Vec{X: tr.X, Y: tr.Y},
		}
		if sign, ok := ecs.Get(w, e, component.SignComponent.Kind()); ok {
			b.Text = sign.Text
		}
		if hazard, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok {
			b.Tracked = hazard.Tracked
		}
		if landing, ok := ecs.Get(w, e, component.LandingComponent.Kind()); ok {
			b.Target = puzzle.Vec{X: landing.X, Y: landing.Y}
		}
		bodies = append(bodies, b)
	})

	pairs := make([]puzzle.Contact, 0, len(contacts))
	for _, c := range contacts {
		pairs = append(pairs, puzzle.Contact{A: ToEntityID(c.A), B: ToEntityID(c.B)})
	}
	return puzzle.NewSnapshot(dt, bodies, pairs)
}

func ToEntityID(e ecs.Entity) puzzle.EntityID {
	return puzzle.EntityID(uint64(e))
}

func FromEntityID(id puzzle.EntityID) ecs.Entity {
	return ecs.Entity(uint64(id))
}

func (ps *PuzzleSystem) apply(w *ecs.World, eff puzzle.Effect) {
	switch eff.Kind {
	case puzzle.EffectSpawn:
		req := entity.Request{Kind: eff.Spawn, X: eff.Pos.X, Y: eff.Pos.Y, Collidable: eff.Collidable}
		if _, err := ps.builder.Build(w, req); err != nil {
			panic("puzzle system: spawn: " + err.Error())
		}
	case puzzle.EffectDespawn:
		ecs.DestroyEntity(w, FromEntityID(eff.Entity))
	case puzzle.EffectSetVelocity:
		e := FromEntityID(eff.Entity)
		if !ecs.IsAlive(w, e) {
			return
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: eff.Vel.X, Y: eff.Vel.Y}); err != nil {
			panic("puzzle system: set velocity: " + err.Error())
		}
	case puzzle.EffectShowText:
		entity.SetCaption(w, eff.Channel, eff.Text)
	case puzzle.EffectClearText:
		entity.SetCaption(w, eff.Channel, "")
	}
}
