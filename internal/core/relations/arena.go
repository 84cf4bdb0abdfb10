package relations

import "reflect"

// handle addresses an arena slot. The generation guards against a freed
// index being reused for another object while an old handle is still around.
type handle struct {
	index      uint32
	generation uint32
}

// slot is the cached resolution of one participant
type slot struct {
	object     Participant
	relation   *Relation
	tag        TypeTag
	generation uint32
	edges      int
	live       bool
}

// arena stores every participant the manager has resolved. It doubles as
// the resolver cache: the lookup table maps object identity to its slot.
type arena struct {
	slots  []slot
	free   []uint32
	lookup map[Participant]handle
}

func newArena() *arena {
	return &arena{lookup: make(map[Participant]handle)}
}

// resolve returns the slot of obj, resolving and caching it on first use.
// created reports whether this call allocated the slot.
func (a *arena) resolve(obj any) (h handle, s *slot, created bool, err error) {
	p, err := participant(obj)
	if err != nil {
		return handle{}, nil, false, err
	}
	if h, ok := a.lookup[p]; ok {
		return h, &a.slots[h.index], false, nil
	}
	rel := p.Slot()
	if rel == nil {
		return handle{}, nil, false, newError("resolve", nil, ErrAmbiguousRelation)
	}

	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot{generation: 1})
	}

	s = &a.slots[index]
	s.object = p
	s.relation = rel
	s.tag = TagOf(p)
	s.edges = 0
	s.live = true

	h = handle{index: index, generation: s.generation}
	a.lookup[p] = h
	return h, s, true, nil
}

// find returns the cached slot of obj without resolving it.
func (a *arena) find(obj any) (handle, *slot, bool, error) {
	p, err := participant(obj)
	if err != nil {
		return handle{}, nil, false, err
	}
	h, ok := a.lookup[p]
	if !ok {
		if p.Slot() == nil {
			return handle{}, nil, false, newError("resolve", nil, ErrAmbiguousRelation)
		}
		return handle{}, nil, false, nil
	}
	return h, &a.slots[h.index], true, nil
}

func (a *arena) get(h handle) *slot {
	if int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil
	}
	return s
}

// release invalidates the cache entry of h and frees its index.
func (a *arena) release(h handle) {
	s := a.get(h)
	if s == nil {
		return
	}
	delete(a.lookup, s.object)
	*s = slot{generation: s.generation + 1}
	a.free = append(a.free, h.index)
}

func (a *arena) live() int {
	return len(a.lookup)
}

func participant(obj any) (Participant, error) {
	p, ok := obj.(Participant)
	if !ok || p == nil {
		return nil, newError("resolve", nil, ErrAmbiguousRelation)
	}
	// identity only makes sense for pointers, and map lookups on
	// non-comparable values would panic
	if v := reflect.ValueOf(p); v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, newError("resolve", nil, ErrInvalidParticipant)
	}
	return p, nil
}
