package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
)

const collisionTypeBody cp.CollisionType = 1

// DefaultStep is the fixed physics step in seconds.
const DefaultStep = 1.0 / 60.0

// Contact is a pair of entities whose shapes began touching during the last
// step. A is always the lower handle.
type Contact struct {
	A ecs.Entity
	B ecs.Entity
}

type PhysicsSystem struct {
	space         *cp.Space
	step          float64
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity

	pending  []Contact
	seen     map[Contact]struct{}
	contacts []Contact
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(step float64) *PhysicsSystem {
	if step <= 0 {
		step = DefaultStep
	}
	return &PhysicsSystem{
		space:    newSpace(),
		step:     step,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		seen:     make(map[Contact]struct{}),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	// Top-down room: nothing falls.
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Step returns the simulated seconds per Update.
func (ps *PhysicsSystem) Step() float64 {
	return ps.step
}

// Contacts returns the pairs that began touching during the last Update.
func (ps *PhysicsSystem) Contacts() []Contact {
	if ps == nil {
		return nil
	}
	return append([]Contact(nil), ps.contacts...)
}

// Reset drops every body. The next Update rebuilds the space from the world.
func (ps *PhysicsSystem) Reset() {
	ps.space = newSpace()
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
	ps.pending = nil
	ps.seen = make(map[Contact]struct{})
	ps.contacts = nil
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.applyVelocities(w)

	ps.pending = ps.pending[:0]
	clear(ps.seen)
	ps.space.Step(ps.step)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if !okA || !okB || a == b {
			return true
		}
		sys.record(a, b)
		return true
	}

	ps.handlersReady = true
}

// record keeps one contact per pair per step, whichever shape cp reports
// first.
func (ps *PhysicsSystem) record(a, b ecs.Entity) {
	if b < a {
		a, b = b, a
	}
	c := Contact{A: a, B: b}
	if _, dup := ps.seen[c]; dup {
		return
	}
	ps.seen[c] = struct{}{}
	ps.pending = append(ps.pending, c)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range ecs.Query(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(transform, bodyComp)
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 16, 16
	}

	var shape *cp.Shape
	info := &bodyInfo{}
	switch bodyComp.Type {
	case component.BodyStatic:
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		info.body = ps.space.StaticBody
		info.static = true
	case component.BodyKinematic:
		body := cp.NewKinematicBody()
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		ps.space.AddBody(body)
		shape = cp.NewBox(body, width, height, 0)
		info.body = body
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Infinite moment keeps boxes upright when they scrape a wall.
		body := cp.NewBody(mass, math.Inf(1))
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		ps.space.AddBody(body)
		shape = cp.NewBox(body, width, height, 0)
		info.body = body
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeBody)
	ps.space.AddShape(shape)
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, bodyComp *component.PhysicsBody) {
		info := ps.entities[e]
		if info == nil || info.static {
			return
		}
		info.body.SetVelocity(vel.X, vel.Y)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ps.contacts = ps.contacts[:0]
	for _, c := range ps.pending {
		if ecs.IsAlive(w, c.A) && ecs.IsAlive(w, c.B) {
			ps.contacts = append(ps.contacts, c)
		}
	}
}

// cleanupEntities removes bodies whose entity died or lost its PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		delete(ps.shapes, info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
