package relations

import "github.com/zeusync/byt/internal/core/observability/log"

// edge is an existing link seen from one side: owner's slot holds other.
type edge struct {
	owner handle
	other handle
}

// planSubstitution returns the edges that must be evicted before a and b can
// be linked. It never mutates anything, so a failed plan leaves no trace.
//
// One/Many: an occupied One slot is relinked only if it allows substitution.
// One/One: if either slot is occupied, both slots must allow substitution.
// Many/Many: nothing to evict.
func (m *Manager) planSubstitution(ha handle, a *slot, hb handle, b *slot) ([]edge, error) {
	ra, rb := a.relation, b.relation

	switch {
	case ra.cardinality == One && rb.cardinality == Many:
		return m.planOne(ha, a, hb, ra.AllowsSubstitution())

	case ra.cardinality == Many && rb.cardinality == One:
		return m.planOne(hb, b, ha, rb.AllowsSubstitution())

	case ra.cardinality == One && rb.cardinality == One:
		allowed := ra.AllowsSubstitution() && rb.AllowsSubstitution()
		evictA, err := m.planOne(ha, a, hb, allowed)
		if err != nil {
			return nil, err
		}
		evictB, err := m.planOne(hb, b, ha, allowed)
		if err != nil {
			return nil, err
		}
		return append(evictA, evictB...), nil

	default:
		return nil, nil
	}
}

// planOne checks the One slot of owner before linking it to next.
func (m *Manager) planOne(owner handle, s *slot, next handle, allowed bool) ([]edge, error) {
	current, ok := m.store.one(s.relation)
	if !ok || current == next {
		return nil, nil
	}
	if !allowed {
		return nil, newError("add", s.relation, ErrSubstitutionNotAllowed)
	}

	prev := m.arena.get(current)
	if prev == nil || !m.store.has(prev.relation, owner) {
		// the reverse link is gone, reciprocity was already broken
		return nil, newError("substitute", prev.relationOrNil(), ErrMissingRelation)
	}
	return []edge{{owner: owner, other: current}}, nil
}

// evict removes both directions of e. The plan checked that they exist.
func (m *Manager) evict(e edge) error {
	owner, other := m.arena.get(e.owner), m.arena.get(e.other)
	if err := m.store.remove(owner.relation, e.other); err != nil {
		return err
	}
	if err := m.store.remove(other.relation, e.owner); err != nil {
		return err
	}
	m.unlink(e.owner, owner)
	m.unlink(e.other, other)

	m.log.Debug("relation substituted",
		log.String("relation", owner.relation.String()),
		log.String("evicted", TypeName(other.tag)),
	)
	return nil
}

func (s *slot) relationOrNil() *Relation {
	if s == nil {
		return nil
	}
	return s.relation
}
