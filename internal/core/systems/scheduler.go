package systems

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zeusync/byt/internal/core/observability/log"
)

// Scheduler keeps systems ordered by descending priority. Systems with equal
// priority keep their registration order.
type Scheduler struct {
	systems []System
	log     log.Log
}

func NewScheduler(logger log.Log) *Scheduler {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Scheduler{log: logger}
}

func (s *Scheduler) Add(system System) error {
	if system == nil {
		return ErrNilSystem
	}
	s.systems = append(s.systems, system)
	slices.SortStableFunc(s.systems, func(a, b System) int {
		// descending
		return cmp.Compare(b.Priority(), a.Priority())
	})

	s.log.Debug("system registered",
		log.String("kind", KindOf(system).String()),
		log.Int("priority", int(system.Priority())),
	)
	return nil
}

// Remove unregisters every system of the given kind.
func (s *Scheduler) Remove(kind Kind) error {
	before := len(s.systems)
	s.systems = slices.DeleteFunc(s.systems, func(sys System) bool {
		return KindOf(sys) == kind
	})
	removed := before - len(s.systems)
	if removed == 0 {
		return &NotFoundError{kind: kind}
	}

	s.log.Debug("system removed", log.String("kind", kindName(kind)), log.Int("count", removed))
	return nil
}

// Find returns the first registered system of the given kind.
func (s *Scheduler) Find(kind Kind) (System, error) {
	for _, sys := range s.systems {
		if KindOf(sys) == kind {
			return sys, nil
		}
	}
	return nil, &NotFoundError{kind: kind}
}

// Execute runs the first system of the given kind.
func (s *Scheduler) Execute(kind Kind, world World, args ...any) error {
	sys, err := s.Find(kind)
	if err != nil {
		return err
	}
	return sys.Process(world, args...)
}

// Run executes every system in priority order and stops at the first error.
// Systems added or removed while running take effect on the next Run.
func (s *Scheduler) Run(world World, args ...any) error {
	for _, sys := range slices.Clone(s.systems) {
		if err := sys.Process(world, args...); err != nil {
			return fmt.Errorf("system %s: %w", KindOf(sys), err)
		}
	}
	return nil
}

// Systems returns the registered systems in execution order.
func (s *Scheduler) Systems() []System {
	return slices.Clone(s.systems)
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

func kindName(kind Kind) string {
	if kind == nil {
		return "<nil>"
	}
	return kind.String()
}
