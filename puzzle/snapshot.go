package puzzle

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrMissingEntity reports that a singleton the game cannot run without,
// such as the player, is absent from the world.
var ErrMissingEntity = errors.New("puzzle: missing singleton entity")

// EntityID is an opaque handle issued by the world layer.
type EntityID uint64

// Body is the read model of one world entity for a single tick.
type Body struct {
	ID   EntityID
	Kind Kind
	Pos  Vec
	// Text is the message of a sign.
	Text string
	// Tracked marks lava tiles the bridge replaces.
	Tracked bool
	// Target is the landing point of a falling rope coil.
	Target Vec
}

// Contact is a pair of bodies that began touching during the last physics step.
type Contact struct {
	A EntityID
	B EntityID
}

// Snapshot is the immutable view handlers read from. Build it with
// NewSnapshot once per tick before any handler runs.
type Snapshot struct {
	Dt       float64
	Bodies   []Body
	Contacts []Contact

	index map[EntityID]int
}

// NewSnapshot copies bodies and contacts, ordering bodies by id so every
// query is deterministic.
func NewSnapshot(dt float64, bodies []Body, contacts []Contact) *Snapshot {
	s := &Snapshot{
		Dt:       dt,
		Bodies:   append([]Body(nil), bodies...),
		Contacts: append([]Contact(nil), contacts...),
		index:    make(map[EntityID]int, len(bodies)),
	}
	sort.SliceStable(s.Bodies, func(i, j int) bool { return s.Bodies[i].ID < s.Bodies[j].ID })
	for i, b := range s.Bodies {
		s.index[b.ID] = i
	}
	return s
}

func (s *Snapshot) Body(id EntityID) (Body, bool) {
	if s == nil {
		return Body{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Body{}, false
	}
	return s.Bodies[i], true
}

// First returns the lowest-id body of kind k.
func (s *Snapshot) First(k Kind) (Body, bool) {
	if s == nil {
		return Body{}, false
	}
	for _, b := range s.Bodies {
		if b.Kind == k {
			return b, true
		}
	}
	return Body{}, false
}

func (s *Snapshot) All(k Kind) []Body {
	if s == nil {
		return nil
	}
	var out []Body
	for _, b := range s.Bodies {
		if b.Kind == k {
			out = append(out, b)
		}
	}
	return out
}

// Player returns the player body. The game cannot run without one, so a
// missing player panics with ErrMissingEntity.
func (s *Snapshot) Player() Body {
	p, ok := s.First(KindPlayer)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrMissingEntity, KindPlayer))
	}
	return p
}

// Distance returns the distance between two bodies, or +Inf when either is
// not in the snapshot.
func (s *Snapshot) Distance(a, b EntityID) float64 {
	ba, okA := s.Body(a)
	bb, okB := s.Body(b)
	if !okA || !okB {
		return math.Inf(1)
	}
	return ba.Pos.Dist(bb.Pos)
}

// Touched returns the body of kind k that began touching id this tick.
func (s *Snapshot) Touched(id EntityID, k Kind) (Body, bool) {
	if s == nil {
		return Body{}, false
	}
	for _, c := range s.Contacts {
		var other EntityID
		switch id {
		case c.A:
			other = c.B
		case c.B:
			other = c.A
		default:
			continue
		}
		if b, ok := s.Body(other); ok && b.Kind == k {
			return b, true
		}
	}
	return Body{}, false
}
