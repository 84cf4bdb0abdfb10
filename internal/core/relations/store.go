package relations

import "github.com/google/uuid"

// store holds the participants of every relation slot, keyed by relation id.
// It enforces cardinality only; reciprocity is the manager's job.
type store struct {
	ones  map[uuid.UUID]handle
	manys map[uuid.UUID]*handleSet
}

func newStore() *store {
	return &store{
		ones:  make(map[uuid.UUID]handle),
		manys: make(map[uuid.UUID]*handleSet),
	}
}

func (s *store) one(rel *Relation) (handle, bool) {
	h, ok := s.ones[rel.id]
	return h, ok
}

// many returns nil for a slot that never held anything.
func (s *store) many(rel *Relation) *handleSet {
	return s.manys[rel.id]
}

func (s *store) members(rel *Relation) []handle {
	if rel.cardinality == One {
		if h, ok := s.one(rel); ok {
			return []handle{h}
		}
		return nil
	}
	return s.many(rel).Items()
}

func (s *store) size(rel *Relation) int {
	if rel.cardinality == One {
		if _, ok := s.ones[rel.id]; ok {
			return 1
		}
		return 0
	}
	return s.many(rel).Len()
}

func (s *store) has(rel *Relation, h handle) bool {
	if rel.cardinality == One {
		cur, ok := s.ones[rel.id]
		return ok && cur == h
	}
	return s.many(rel).Has(h)
}

func (s *store) add(rel *Relation, h handle) error {
	if rel.cardinality == One {
		if cur, ok := s.ones[rel.id]; ok {
			if cur == h {
				return nil
			}
			return newError("add", rel, ErrOccupiedSlot)
		}
		s.ones[rel.id] = h
		return nil
	}

	set := s.manys[rel.id]
	if set == nil {
		set = newHandleSet()
		s.manys[rel.id] = set
	}
	set.Add(h)
	return nil
}

func (s *store) remove(rel *Relation, h handle) error {
	if rel.cardinality == One {
		if cur, ok := s.ones[rel.id]; !ok || cur != h {
			return newError("remove", rel, ErrMissingRelation)
		}
		delete(s.ones, rel.id)
		return nil
	}

	set := s.manys[rel.id]
	if !set.Has(h) {
		return newError("remove", rel, ErrMissingRelation)
	}
	set.Delete(h)
	return nil
}

// drop forgets an empty Many slot so the map does not grow with dead relations.
func (s *store) drop(rel *Relation) {
	if set, ok := s.manys[rel.id]; ok && set.Len() == 0 {
		delete(s.manys, rel.id)
	}
}
