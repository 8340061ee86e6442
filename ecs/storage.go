package ecs

// entityStore tracks slot generations, liveness and free slots. Slot ids
// start at 1 so the zero Entity is never valid.
type entityStore struct {
	gens  []generation
	live  []bool
	free  []entityID
	alive int
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		s.live = append(s.live, false)
		id = entityID(len(s.gens))
	}
	s.live[id-1] = true
	s.alive++
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gens[idx]++
	s.live[idx] = false
	s.free = append(s.free, e.id())
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) > len(s.gens) {
		return false
	}
	idx := e.id() - 1
	return s.live[idx] && s.gens[idx] == e.generation()
}

func (s *entityStore) each(fn func(Entity)) {
	if s == nil {
		return
	}
	for i, live := range s.live {
		if live {
			fn(makeEntity(entityID(i+1), s.gens[i]))
		}
	}
}
