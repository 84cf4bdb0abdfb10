package relations

import (
	"errors"

	"github.com/zeusync/byt/internal/core/observability/log"
)

// Manager links participants through their relation slots and keeps both
// directions of every edge in sync. It also indexes linked participants by
// their exact type.
//
// A Manager is not safe for concurrent use. Hosts that mutate from several
// goroutines must serialize every call.
type Manager struct {
	arena *arena
	store *store
	index *typeIndex
	log   log.Log
}

type Option func(*Manager)

// WithLogger sets the logger used for debug traces. Defaults to a no-op logger.
func WithLogger(l log.Log) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		arena: newArena(),
		store: newStore(),
		index: newTypeIndex(),
		log:   log.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve returns the relation slot of obj. The result is cached per object
// until Forget is called for it.
func (m *Manager) Resolve(obj any) (*Relation, error) {
	_, s, _, err := m.arena.resolve(obj)
	if err != nil {
		return nil, err
	}
	return s.relation, nil
}

// Add links a and b in both directions. Substitution of occupied One slots
// is decided before anything changes, so a failed Add leaves no state behind.
// Adding an existing pair again is a no-op.
func (m *Manager) Add(a, b Participant) (err error) {
	var fresh []handle
	defer func() {
		if err != nil {
			m.discard(fresh)
		}
	}()

	ha, _, created, err := m.arena.resolve(a)
	if err != nil {
		return err
	}
	if created {
		fresh = append(fresh, ha)
	}
	hb, _, created, err := m.arena.resolve(b)
	if err != nil {
		return err
	}
	if created {
		fresh = append(fresh, hb)
	}
	// resolving b may have grown the arena, fetch both slots afterwards
	sa, sb := m.arena.get(ha), m.arena.get(hb)
	if ha == hb {
		return newError("add", sa.relation, ErrSelfRelation)
	}
	if err = checkTarget(sa, sb); err != nil {
		return err
	}
	if err = checkTarget(sb, sa); err != nil {
		return err
	}

	if m.store.has(sa.relation, hb) && m.store.has(sb.relation, ha) {
		return nil
	}

	evictions, err := m.planSubstitution(ha, sa, hb, sb)
	if err != nil {
		return err
	}
	for _, e := range evictions {
		if err = m.evict(e); err != nil {
			return err
		}
	}

	if err = m.store.add(sa.relation, hb); err != nil {
		return err
	}
	if err = m.store.add(sb.relation, ha); err != nil {
		return errors.Join(err, m.store.remove(sa.relation, hb))
	}
	m.link(ha, sa)
	m.link(hb, sb)
	return nil
}

// Remove deletes the edge between a and b. Both directions must exist,
// otherwise ErrMissingRelation is returned and nothing changes.
func (m *Manager) Remove(a, b Participant) error {
	ha, sa, okA, err := m.arena.find(a)
	if err != nil {
		return err
	}
	hb, sb, okB, err := m.arena.find(b)
	if err != nil {
		return err
	}
	if !okA || !okB {
		return newError("remove", relationOf(sa, a), ErrMissingRelation)
	}
	if !m.store.has(sa.relation, hb) {
		return newError("remove", sa.relation, ErrMissingRelation)
	}
	if !m.store.has(sb.relation, ha) {
		return newError("remove", sb.relation, ErrMissingRelation)
	}

	if err = m.store.remove(sa.relation, hb); err != nil {
		return err
	}
	if err = m.store.remove(sb.relation, ha); err != nil {
		return err
	}
	m.unlink(ha, sa)
	m.unlink(hb, sb)
	return nil
}

// Linked reports whether a and b share an edge.
func (m *Manager) Linked(a, b Participant) bool {
	ha, sa, okA, err := m.arena.find(a)
	if err != nil || !okA {
		return false
	}
	hb, sb, okB, err := m.arena.find(b)
	if err != nil || !okB {
		return false
	}
	return m.store.has(sa.relation, hb) && m.store.has(sb.relation, ha)
}

// Get returns the participants held by rel: zero or one for One slots, the
// whole set for Many slots. The slice is freshly allocated.
func (m *Manager) Get(rel *Relation) []Participant {
	return m.objects(m.store.members(rel))
}

// GetOne returns the participant of a One slot.
func (m *Manager) GetOne(rel *Relation) (Participant, bool) {
	if rel.cardinality != One {
		return nil, false
	}
	h, ok := m.store.one(rel)
	if !ok {
		return nil, false
	}
	return m.arena.get(h).object, true
}

// GetMany returns the participants of a Many slot, empty when none.
func (m *Manager) GetMany(rel *Relation) []Participant {
	if rel.cardinality != Many {
		return []Participant{}
	}
	return m.objects(m.store.many(rel).Items())
}

// Count returns how many participants rel holds.
func (m *Manager) Count(rel *Relation) int {
	return m.store.size(rel)
}

// Related resolves obj and returns everything its slot holds.
func (m *Manager) Related(obj Participant) ([]Participant, error) {
	rel, err := m.Resolve(obj)
	if err != nil {
		return nil, err
	}
	return m.Get(rel), nil
}

// GetType returns every linked participant whose exact type has tag.
func (m *Manager) GetType(tag TypeTag) []Participant {
	return m.objects(m.index.members(tag))
}

// CountType returns len(GetType(tag)) without allocating.
func (m *Manager) CountType(tag TypeTag) int {
	return m.index.count(tag)
}

// Forget drops the cached resolution of obj once its owner destroys it.
// Objects that still hold edges cannot be forgotten.
func (m *Manager) Forget(obj Participant) error {
	h, s, ok, err := m.arena.find(obj)
	if err != nil || !ok {
		return err
	}
	if s.edges > 0 {
		return newError("forget", s.relation, ErrParticipantLinked)
	}
	tag := s.tag
	m.store.drop(s.relation)
	m.arena.release(h)
	m.log.Debug("participant forgotten", log.String("type", TypeName(tag)))
	return nil
}

// Stats is a snapshot of the manager's bookkeeping
type Stats struct {
	Participants int
	Linked       int
	ByType       map[TypeTag]int
}

func (m *Manager) Stats() Stats {
	byType := m.index.counts()
	linked := 0
	for _, n := range byType {
		linked += n
	}
	return Stats{
		Participants: m.arena.live(),
		Linked:       linked,
		ByType:       byType,
	}
}

// discard releases slots resolved by a failed Add that never gained an edge.
func (m *Manager) discard(handles []handle) {
	for _, h := range handles {
		if s := m.arena.get(h); s != nil && s.edges == 0 {
			m.store.drop(s.relation)
			m.arena.release(h)
		}
	}
}

func (m *Manager) link(h handle, s *slot) {
	s.edges++
	if s.edges == 1 {
		m.index.insert(s.tag, h)
	}
}

func (m *Manager) unlink(h handle, s *slot) {
	s.edges--
	if s.edges == 0 {
		m.index.delete(s.tag, h)
	}
}

func (m *Manager) objects(handles []handle) []Participant {
	out := make([]Participant, 0, len(handles))
	for _, h := range handles {
		if s := m.arena.get(h); s != nil {
			out = append(out, s.object)
		}
	}
	return out
}

func checkTarget(owner, other *slot) error {
	if owner.relation.target == AnyTag || owner.relation.target == other.tag {
		return nil
	}
	return newError("add", owner.relation, ErrTargetMismatch)
}

func relationOf(s *slot, obj Participant) *Relation {
	if s != nil {
		return s.relation
	}
	return obj.Slot()
}
