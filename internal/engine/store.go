package engine

// Store holds every entity of one session in spawn order.
type Store struct {
	entities []*Entity
	byID     map[ID]*Entity
	nextID   ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[ID]*Entity)}
}

// Spawn adds a copy of e as an active entity and returns it.
// The entity receives a fresh ID; any ID set on e is ignored.
func (s *Store) Spawn(e Entity) *Entity {
	s.nextID++
	e.ID = s.nextID
	e.Active = true
	p := &e
	s.entities = append(s.entities, p)
	s.byID[p.ID] = p
	return p
}

// Get returns the entity with the given ID, or nil if it is unknown or
// no longer active.
func (s *Store) Get(id ID) *Entity {
	e := s.byID[id]
	if e == nil || !e.Active {
		return nil
	}
	return e
}

// Kill deactivates the entity with the given ID.
func (s *Store) Kill(id ID) {
	if e := s.byID[id]; e != nil {
		e.Active = false
	}
}

// Group returns the active entities of a kind in spawn order.
func (s *Store) Group(k Kind) []*Entity {
	var out []*Entity
	for _, e := range s.entities {
		if e.Active && e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first active entity of a kind, or nil.
func (s *Store) First(k Kind) *Entity {
	for _, e := range s.entities {
		if e.Active && e.Kind == k {
			return e
		}
	}
	return nil
}

// Count returns the number of active entities of a kind.
func (s *Store) Count(k Kind) int {
	n := 0
	for _, e := range s.entities {
		if e.Active && e.Kind == k {
			n++
		}
	}
	return n
}

// Each calls fn for every active entity in spawn order. Entities spawned by
// fn are not visited.
func (s *Store) Each(fn func(e *Entity)) {
	n := len(s.entities)
	for i := 0; i < n; i++ {
		if e := s.entities[i]; e.Active {
			fn(e)
		}
	}
}

// Len returns the number of stored entities, including ones deactivated
// since the last Compact.
func (s *Store) Len() int {
	return len(s.entities)
}

// Compact removes inactive entities and returns how many were dropped.
func (s *Store) Compact() int {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.Active {
			kept = append(kept, e)
			continue
		}
		delete(s.byID, e.ID)
	}
	removed := len(s.entities) - len(kept)
	for i := len(kept); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = kept
	return removed
}

// Reset removes every entity and restarts ID assignment.
func (s *Store) Reset() {
	s.entities = nil
	s.byID = make(map[ID]*Entity)
	s.nextID = 0
}

// Snapshot is a deep copy of a store's contents.
type Snapshot struct {
	entities []Entity
	nextID   ID
}

// Snapshot copies the current contents.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{entities: make([]Entity, len(s.entities)), nextID: s.nextID}
	for i, e := range s.entities {
		snap.entities[i] = *e
	}
	return snap
}

// Restore replaces the contents with a snapshot. Pointers obtained before
// Restore no longer refer to stored entities.
func (s *Store) Restore(snap Snapshot) {
	s.entities = make([]*Entity, len(snap.entities))
	s.byID = make(map[ID]*Entity, len(snap.entities))
	for i := range snap.entities {
		e := snap.entities[i]
		s.entities[i] = &e
		s.byID[e.ID] = &e
	}
	s.nextID = snap.nextID
}
