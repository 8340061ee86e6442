package puzzle

import (
	"testing"
)

const testDt = 1.0 / 60.0

type simBody struct {
	Body
	vel Vec
}

// sim is a minimal stand-in for the ECS layer: it owns bodies, applies
// effects and integrates velocities so handlers can be driven tick by tick.
type sim struct {
	t        *testing.T
	driver   *Driver
	next     EntityID
	bodies   map[EntityID]*simBody
	contacts []Contact
	texts    map[Channel]string
	history  []Effect
}

func newSim(t *testing.T, tuning Tuning, observers ...Observer) *sim {
	t.Helper()
	return &sim{
		t:      t,
		driver: NewDriver(tuning, observers...),
		bodies: make(map[EntityID]*simBody),
		texts:  make(map[Channel]string),
	}
}

func (s *sim) add(k Kind, pos Vec) EntityID {
	return s.addBody(Body{Kind: k, Pos: pos})
}

func (s *sim) addBody(b Body) EntityID {
	s.next++
	b.ID = s.next
	s.bodies[b.ID] = &simBody{Body: b}
	return b.ID
}

func (s *sim) move(id EntityID, pos Vec) {
	s.t.Helper()
	b, ok := s.bodies[id]
	if !ok {
		s.t.Fatalf("move: no body %d", id)
	}
	b.Pos = pos
}

func (s *sim) touch(a, b EntityID) {
	s.contacts = append(s.contacts, Contact{A: a, B: b})
}

func (s *sim) pos(id EntityID) Vec {
	s.t.Helper()
	b, ok := s.bodies[id]
	if !ok {
		s.t.Fatalf("pos: no body %d", id)
	}
	return b.Pos
}

func (s *sim) alive(id EntityID) bool {
	_, ok := s.bodies[id]
	return ok
}

func (s *sim) ofKind(k Kind) []EntityID {
	var out []EntityID
	for id := EntityID(1); id <= s.next; id++ {
		if b, ok := s.bodies[id]; ok && b.Kind == k {
			out = append(out, id)
		}
	}
	return out
}

func (s *sim) snapshot() *Snapshot {
	bodies := make([]Body, 0, len(s.bodies))
	for _, b := range s.bodies {
		bodies = append(bodies, b.Body)
	}
	return NewSnapshot(testDt, bodies, s.contacts)
}

func (s *sim) step(tokens ...Token) []Effect {
	effects := s.driver.Step(s.snapshot(), tokens)
	s.contacts = nil
	s.apply(effects)
	for _, b := range s.bodies {
		b.Pos = b.Pos.Add(b.vel.Scale(testDt))
	}
	s.history = append(s.history, effects...)
	return effects
}

func (s *sim) apply(effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectSpawn:
			s.add(e.Spawn, e.Pos)
		case EffectDespawn:
			delete(s.bodies, e.Entity)
		case EffectSetVelocity:
			if b, ok := s.bodies[e.Entity]; ok {
				b.vel = e.Vel
			}
		case EffectShowText:
			s.texts[e.Channel] = e.Text
		case EffectClearText:
			delete(s.texts, e.Channel)
		}
	}
}

func (s *sim) state() State {
	return s.driver.State()
}

func spawned(effects []Effect, k Kind) int {
	n := 0
	for _, e := range effects {
		if e.Kind == EffectSpawn && e.Spawn == k {
			n++
		}
	}
	return n
}

func despawned(effects []Effect, id EntityID) bool {
	for _, e := range effects {
		if e.Kind == EffectDespawn && e.Entity == id {
			return true
		}
	}
	return false
}
