package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

type nameSystem struct {
	Base
	rec  *recorder
	args []any
}

func (s *nameSystem) Process(_ World, args ...any) error {
	s.args = args
	if s.rec != nil {
		s.rec.calls = append(s.rec.calls, "name")
	}
	return nil
}

type positionSystem struct {
	Base
	rec *recorder
}

func (s *positionSystem) Process(World, ...any) error {
	if s.rec != nil {
		s.rec.calls = append(s.rec.calls, "position")
	}
	return nil
}

type failingSystem struct {
	Base
	err error
}

func (s *failingSystem) Process(World, ...any) error { return s.err }

func TestAddSortsByPriority(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.Add(&positionSystem{Base: NewBase(10)}))
	require.NoError(t, s.Add(&nameSystem{Base: NewBase(120)}))

	got := s.Systems()
	require.Len(t, got, 2)
	assert.IsType(t, &nameSystem{}, got[0])
	assert.IsType(t, &positionSystem{}, got[1])
}

func TestAddSortsExtremePriorities(t *testing.T) {
	s := NewScheduler(nil)
	low := &positionSystem{Base: NewBase(-2)}
	high := &nameSystem{Base: NewBase(math.MaxInt)}
	lowest := &positionSystem{Base: NewBase(math.MinInt)}
	require.NoError(t, s.Add(low))
	require.NoError(t, s.Add(high))
	require.NoError(t, s.Add(lowest))

	got := s.Systems()
	require.Len(t, got, 3)
	assert.Same(t, high, got[0])
	assert.Same(t, low, got[1])
	assert.Same(t, lowest, got[2])
}

func TestAddKeepsInsertionOrderOnTies(t *testing.T) {
	s := NewScheduler(nil)
	first := &nameSystem{Base: NewBase(PriorityNormal)}
	second := &positionSystem{Base: NewBase(PriorityNormal)}
	third := &nameSystem{Base: NewBase(PriorityNormal)}
	require.NoError(t, s.Add(first))
	require.NoError(t, s.Add(second))
	require.NoError(t, s.Add(third))

	got := s.Systems()
	assert.Same(t, first, got[0])
	assert.Same(t, second, got[1])
	assert.Same(t, third, got[2])
}

func TestAddNil(t *testing.T) {
	s := NewScheduler(nil)
	assert.ErrorIs(t, s.Add(nil), ErrNilSystem)
	assert.Zero(t, s.Len())
}

func TestRemove(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.Add(&nameSystem{}))
	require.NoError(t, s.Add(&nameSystem{}))
	require.NoError(t, s.Add(&positionSystem{}))

	require.NoError(t, s.Remove(KindFor[*nameSystem]()))
	assert.Equal(t, 1, s.Len())

	err := s.Remove(KindFor[*nameSystem]())
	assert.ErrorIs(t, err, ErrSystemNotFound)
	assert.True(t, IsNotFound(err))
}

func TestExecute(t *testing.T) {
	s := NewScheduler(nil)
	first := &nameSystem{Base: NewBase(PriorityHigh)}
	second := &nameSystem{Base: NewBase(PriorityLow)}
	require.NoError(t, s.Add(second))
	require.NoError(t, s.Add(first))

	require.NoError(t, s.Execute(KindFor[*nameSystem](), nil, "event", 42))
	assert.Equal(t, []any{"event", 42}, first.args)
	assert.Nil(t, second.args)

	err := s.Execute(KindFor[*positionSystem](), nil)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindFor[*positionSystem](), notFound.Kind())
}

func TestRunOrder(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(nil)
	require.NoError(t, s.Add(&positionSystem{Base: NewBase(PriorityLow), rec: rec}))
	require.NoError(t, s.Add(&nameSystem{Base: NewBase(PriorityHigh), rec: rec}))

	require.NoError(t, s.Run(nil))
	assert.Equal(t, []string{"name", "position"}, rec.calls)
}

func TestRunStopsAtFirstError(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	s := NewScheduler(nil)
	require.NoError(t, s.Add(&failingSystem{Base: NewBase(PriorityHighest), err: boom}))
	require.NoError(t, s.Add(&positionSystem{rec: rec}))

	err := s.Run(nil)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.calls)
}
