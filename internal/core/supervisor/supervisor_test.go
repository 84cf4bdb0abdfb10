package supervisor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/byt/internal/core/events/bus"
	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/relations"
	"github.com/zeusync/byt/internal/core/systems"
)

const (
	entitiesCount     = 100
	intersectionCount = 10
	renamed           = "NameSystemTest"
)

type name struct {
	models.ComponentBase
	value string
}

type position struct {
	models.ComponentBase
	x, y int
}

type fooBar struct {
	models.ComponentBase
	foo, bar bool
}

type nameSystem struct {
	systems.Base
}

func (nameSystem) Process(w systems.World, _ ...any) error {
	for _, e := range w.Intersection(models.Tag[name]()) {
		for _, n := range EntityComponentsOf[*name](w, e) {
			n.value = renamed
		}
	}
	return nil
}

type positionSystem struct {
	systems.Base
}

func (positionSystem) Process(w systems.World, _ ...any) error {
	for _, p := range ComponentsOf[*position](w) {
		p.x++
		p.y++
	}
	return nil
}

// reaper queues every entity carrying fooBar for removal.
type reaper struct {
	systems.Base
	seen int
}

func (r *reaper) Process(w systems.World, _ ...any) error {
	for _, e := range w.Intersection(models.Tag[fooBar]()) {
		w.QueueRemoval(e)
		r.seen++
	}
	return nil
}

func populated(t testing.TB) *Supervisor {
	t.Helper()
	s := New()
	for i := 1; i <= entitiesCount; i++ {
		e, err := s.CreateEntity()
		require.NoError(t, err)
		require.NoError(t, s.AddComponents(e,
			&name{value: fmt.Sprintf("component_%d", i)},
			&position{x: i, y: i + 2},
		))
	}
	return s
}

func TestCreateEntity(t *testing.T) {
	s := New()
	e, err := s.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, models.EntityID(1), e.ID())
	assert.Empty(t, s.EntityComponents(e))

	got, ok := s.Entity(e.ID())
	require.True(t, ok)
	assert.Same(t, e, got)

	other, err := s.CreateEntity(&name{value: "x"}, &position{})
	require.NoError(t, err)
	assert.NotEqual(t, e.ID(), other.ID())
	assert.Len(t, s.EntityComponents(other), 2)
	assert.Equal(t, []*models.Entity{e, other}, s.Entities())
}

func TestCreateEntityFailureLeavesNothing(t *testing.T) {
	s := New()
	taken := &name{}
	_, err := s.CreateEntity(taken)
	require.NoError(t, err)

	free := &position{}
	_, err = s.CreateEntity(free, taken)
	require.ErrorIs(t, err, relations.ErrSubstitutionNotAllowed)
	assert.Equal(t, 1, s.EntityCount())
	_, owned := s.ComponentEntity(free)
	assert.False(t, owned)
	assert.Empty(t, s.Components(models.Tag[position]()))
}

func TestRemoveEntity(t *testing.T) {
	s := New()
	e, err := s.CreateEntity()
	require.NoError(t, err)
	require.Equal(t, 1, s.EntityCount())

	require.NoError(t, s.RemoveEntity(e))
	assert.Zero(t, s.EntityCount())
	assert.ErrorIs(t, s.RemoveEntity(e), ErrEntityNotFound)
	assert.ErrorIs(t, s.RemoveEntity(nil), ErrEntityNotFound)
}

func TestRemoveEntityWithComponents(t *testing.T) {
	s := New()
	n := &name{value: renamed}
	p := &position{x: 1, y: 10}
	e, err := s.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, s.AddComponents(e, n, p))
	require.Len(t, s.EntityComponents(e), 2)

	require.NoError(t, s.RemoveEntity(e))
	assert.Zero(t, s.EntityCount())

	stats := s.Relations().Stats()
	assert.Zero(t, stats.Participants)
	assert.Zero(t, stats.Linked)
	assert.Empty(t, stats.ByType)
	_, owned := s.ComponentEntity(n)
	assert.False(t, owned)
}

func TestAddAndRemoveComponent(t *testing.T) {
	s := New()
	e, err := s.CreateEntity()
	require.NoError(t, err)
	n := &name{value: "test"}
	require.NoError(t, s.AddComponents(e, n))

	names := s.Components(models.Tag[name]())
	byType := s.EntityComponents(e)
	assert.Equal(t, 1, s.EntityCount())
	assert.Equal(t, []models.Component{n}, names)
	assert.Len(t, byType, 1)
	assert.Contains(t, byType[models.Tag[name]()], models.Component(n))

	owner, ok := s.ComponentEntity(n)
	require.True(t, ok)
	assert.Same(t, e, owner)

	require.NoError(t, s.RemoveComponents(n))
	assert.Equal(t, 1, s.EntityCount())
	assert.Empty(t, s.Components(models.Tag[name]()))
	assert.Empty(t, s.EntityComponents(e))
}

func TestAddComponentsTwiceIsNoop(t *testing.T) {
	s := New()
	e, _ := s.CreateEntity()
	n := &name{}
	require.NoError(t, s.AddComponents(e, n))
	require.NoError(t, s.AddComponents(e, n))
	assert.Len(t, s.Components(models.Tag[name]()), 1)
}

func TestAddComponentsIsAllOrNothing(t *testing.T) {
	s := New()
	first, _ := s.CreateEntity()
	second, _ := s.CreateEntity()
	taken := &fooBar{}
	kept := &name{}
	require.NoError(t, s.AddComponents(first, taken))
	require.NoError(t, s.AddComponents(second, kept))

	fresh := &position{}
	err := s.AddComponents(second, fresh, taken)
	require.ErrorIs(t, err, relations.ErrSubstitutionNotAllowed)

	assert.Len(t, s.EntityComponents(second), 1)
	owner, _ := s.ComponentEntity(kept)
	assert.Same(t, second, owner)
	owner, _ = s.ComponentEntity(taken)
	assert.Same(t, first, owner)
	_, owned := s.ComponentEntity(fresh)
	assert.False(t, owned)

	assert.ErrorIs(t, s.AddComponents(second, nil), ErrNilComponent)
	assert.ErrorIs(t, s.AddComponents(models.NewEntity(99), &name{}), ErrEntityNotFound)
}

func TestRemoveComponentsValidatesFirst(t *testing.T) {
	s := New()
	e, _ := s.CreateEntity()
	attached := &name{}
	require.NoError(t, s.AddComponents(e, attached))

	err := s.RemoveComponents(attached, &position{})
	require.ErrorIs(t, err, ErrNoOwner)
	owner, ok := s.ComponentEntity(attached)
	require.True(t, ok)
	assert.Same(t, e, owner)

	require.NoError(t, s.RemoveComponents(attached, attached))
	assert.Empty(t, s.EntityComponents(e))
}

func TestDetachedComponentCanMove(t *testing.T) {
	s := New()
	from, _ := s.CreateEntity()
	to, _ := s.CreateEntity()
	n := &name{}
	require.NoError(t, s.AddComponents(from, n))
	require.NoError(t, s.RemoveComponents(n))
	require.NoError(t, s.AddComponents(to, n))

	owner, _ := s.ComponentEntity(n)
	assert.Same(t, to, owner)
}

func TestComponentsIntersection(t *testing.T) {
	s := New()
	foo, nameTag, pos := models.Tag[fooBar](), models.Tag[name](), models.Tag[position]()
	assert.Empty(t, s.Intersection(foo))
	assert.Empty(t, s.Intersection(foo, nameTag, pos))
	assert.Empty(t, s.Intersection())

	created := make([]*models.Entity, 0, intersectionCount)
	for range intersectionCount {
		e, err := s.CreateEntity(&fooBar{foo: true})
		require.NoError(t, err)
		created = append(created, e)
	}

	got := s.Intersection(foo)
	assert.Equal(t, created, got)
	for _, e := range created {
		byType := s.EntityComponents(e)
		require.Len(t, byType, 1)
		owner, ok := s.ComponentEntity(byType[foo][0])
		require.True(t, ok)
		assert.Contains(t, got, owner)
	}
}

func TestComponentsIntersectionMany(t *testing.T) {
	s := populated(t)
	foo, nameTag, pos := models.Tag[fooBar](), models.Tag[name](), models.Tag[position]()

	assert.Len(t, s.Intersection(nameTag), entitiesCount)
	assert.Empty(t, s.Intersection(foo))
	assert.Empty(t, s.Intersection(nameTag, foo))

	entities := s.Entities()
	part, other := entities[:intersectionCount], entities[intersectionCount:]
	for _, e := range part {
		require.NoError(t, s.AddComponents(e, &fooBar{foo: true}))
	}

	assert.Equal(t, part, s.Intersection(foo, nameTag))
	assert.Equal(t, part, s.Intersection(nameTag, pos, foo))
	assert.Equal(t, entities, s.Intersection(nameTag, pos))

	for _, e := range part {
		byType := s.EntityComponents(e)
		assert.Len(t, byType, 3)
	}
	for _, e := range other {
		byType := s.EntityComponents(e)
		assert.NotContains(t, byType, foo)
		assert.Contains(t, byType, nameTag)
		assert.Contains(t, byType, pos)
	}
}

func TestIntersectionIsFreshPerCall(t *testing.T) {
	s := populated(t)
	tag := models.Tag[name]()
	first := s.Intersection(tag)
	require.Len(t, first, entitiesCount)

	require.NoError(t, s.RemoveEntity(first[0]))
	assert.Len(t, s.Intersection(tag), entitiesCount-1)
	assert.Len(t, first, entitiesCount)
}

func TestIntersectionIgnoresEntityTag(t *testing.T) {
	s := populated(t)
	assert.Empty(t, s.Intersection(models.EntityTag()))
	assert.Empty(t, s.Components(models.EntityTag()))
}

func TestSystem(t *testing.T) {
	s := populated(t)
	require.NoError(t, s.AddSystem(&nameSystem{}))
	require.NoError(t, ExecuteSystemOf[*nameSystem](s))

	for _, n := range ComponentsOf[*name](s) {
		assert.Equal(t, renamed, n.value)
	}
	assert.ErrorIs(t, ExecuteSystemOf[*positionSystem](s), systems.ErrSystemNotFound)
}

func TestRemoveSystem(t *testing.T) {
	s := New()
	require.NoError(t, s.AddSystem(&nameSystem{}))
	require.Len(t, s.Systems(), 1)
	require.NoError(t, RemoveSystemOf[*nameSystem](s))
	assert.Empty(t, s.Systems())
	assert.ErrorIs(t, RemoveSystemOf[*nameSystem](s), systems.ErrSystemNotFound)
}

func TestSystemsPriority(t *testing.T) {
	s := New()
	require.NoError(t, s.AddSystem(&nameSystem{Base: systems.NewBase(120)}))
	require.NoError(t, s.AddSystem(&positionSystem{Base: systems.NewBase(10)}))

	got := s.Systems()
	assert.IsType(t, &nameSystem{}, got[0])
	assert.IsType(t, &positionSystem{}, got[1])
}

func TestTickFlushesQueuedRemovals(t *testing.T) {
	s := populated(t)
	for _, e := range s.Entities()[:intersectionCount] {
		require.NoError(t, s.AddComponents(e, &fooBar{}))
	}
	r := &reaper{Base: systems.NewBase(systems.PriorityHigh)}
	require.NoError(t, s.AddSystem(r))
	require.NoError(t, s.AddSystem(&positionSystem{}))

	require.NoError(t, s.Tick())
	assert.Equal(t, intersectionCount, r.seen)
	assert.Zero(t, s.PendingRemovals())
	assert.Equal(t, entitiesCount-intersectionCount, s.EntityCount())
	assert.Empty(t, s.Intersection(models.Tag[fooBar]()))

	for _, p := range ComponentsOf[*position](s) {
		owner, ok := s.ComponentEntity(p)
		require.True(t, ok)
		assert.Equal(t, int(owner.ID())+1, p.x)
	}
}

func TestQueueRemoval(t *testing.T) {
	s := New()
	e, _ := s.CreateEntity()
	gone, _ := s.CreateEntity()

	s.QueueRemoval(e)
	s.QueueRemoval(e)
	s.QueueRemoval(gone)
	s.QueueRemoval(models.NewEntity(42))
	assert.Equal(t, 2, s.PendingRemovals())

	require.NoError(t, s.RemoveEntity(gone))
	assert.Equal(t, 1, s.PendingRemovals())

	require.NoError(t, s.FlushRemovals())
	assert.Zero(t, s.EntityCount())
	assert.Zero(t, s.PendingRemovals())
}

func TestTickFlushesEvenWhenASystemFails(t *testing.T) {
	s := New()
	e, _ := s.CreateEntity()
	s.QueueRemoval(e)
	require.NoError(t, s.AddSystem(&failing{}))

	err := s.Tick()
	assert.ErrorIs(t, err, errFailing)
	assert.Zero(t, s.EntityCount())
}

var errFailing = errors.New("failing")

type failing struct{ systems.Base }

func (failing) Process(systems.World, ...any) error { return errFailing }

func TestEventsArePublished(t *testing.T) {
	b := bus.New()
	var seen []string
	_, err := b.Subscribe(bus.AllEvents, func(e bus.Event) error {
		seen = append(seen, e.Type())
		return nil
	})
	require.NoError(t, err)

	s := New(WithEventBus(b))
	n := &name{}
	e, err := s.CreateEntity(n)
	require.NoError(t, err)
	require.NoError(t, s.RemoveComponents(n))
	require.NoError(t, s.AddComponents(e, &position{}))
	require.NoError(t, s.RemoveEntity(e))

	assert.Equal(t, []string{
		EventEntityCreated,
		EventComponentAdded,
		EventComponentRemoved,
		EventComponentAdded,
		EventComponentRemoved,
		EventEntityRemoved,
	}, seen)
}

func TestHandlerErrorIsReturned(t *testing.T) {
	b := bus.New()
	boom := errors.New("boom")
	_, _ = b.Subscribe(EventEntityCreated, func(bus.Event) error { return boom })

	s := New(WithEventBus(b))
	e, err := s.CreateEntity()
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, e)
	assert.Equal(t, 1, s.EntityCount())
}

func TestStats(t *testing.T) {
	s := populated(t)
	require.NoError(t, s.AddSystem(&nameSystem{}))
	s.QueueRemoval(s.Entities()[0])

	nameTag, pos := models.Tag[name](), models.Tag[position]()
	s.Intersection(nameTag, pos)
	s.Intersection(pos, nameTag)
	s.Intersection(nameTag)

	st := s.Stats()
	assert.Equal(t, entitiesCount, st.Entities)
	assert.Equal(t, 2*entitiesCount, st.Components)
	assert.Equal(t, map[relations.TypeTag]int{nameTag: entitiesCount, pos: entitiesCount}, st.ByType)
	assert.Equal(t, 1, st.Systems)
	assert.Equal(t, 1, st.PendingRemovals)
	assert.Equal(t, uint64(3), st.Queries)
	require.Len(t, st.QueryCounts, 2)
	assert.Equal(t, uint64(2), st.QueryCounts[Signature(pos, nameTag)].Calls)
	assert.Equal(t, uint64(1), st.QueryCounts[Signature(nameTag)].Calls)
}

func TestSignatureIgnoresOrderAndDuplicates(t *testing.T) {
	a, b := models.Tag[name](), models.Tag[position]()
	assert.Equal(t, Signature(a, b), Signature(b, a, b))
	assert.NotEqual(t, Signature(a), Signature(b))
}

func BenchmarkIntersection(b *testing.B) {
	s := populated(b)
	for _, e := range s.Entities()[:intersectionCount] {
		require.NoError(b, s.AddComponents(e, &fooBar{}))
	}
	tags := []relations.TypeTag{models.Tag[name](), models.Tag[position](), models.Tag[fooBar]()}

	for b.Loop() {
		s.Intersection(tags...)
	}
}

func BenchmarkIntersectionWide(b *testing.B) {
	s := populated(b)
	nameTag, pos := models.Tag[name](), models.Tag[position]()

	for b.Loop() {
		s.Intersection(nameTag, pos)
	}
}
