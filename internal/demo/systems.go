package demo

import (
	"fmt"

	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/supervisor"
	"github.com/zeusync/byt/internal/core/systems"
)

// MovementSystem advances every entity that has both a Position and a
// Velocity. The first tick argument, if a float64, scales the step.
type MovementSystem struct {
	systems.Base
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{Base: systems.NewBase(systems.PriorityHigh)}
}

func (MovementSystem) Process(w systems.World, args ...any) error {
	dt := 1.0
	if len(args) > 0 {
		if v, ok := args[0].(float64); ok {
			dt = v
		}
	}
	for _, e := range w.Intersection(models.Tag[Position](), models.Tag[Velocity]()) {
		vel, _ := supervisor.ComponentOf[*Velocity](w, e)
		for _, pos := range supervisor.EntityComponentsOf[*Position](w, e) {
			pos.X += vel.DX * dt
			pos.Y += vel.DY * dt
		}
	}
	return nil
}

// NamingSystem stamps the tick number into the Name of every FooBar entity.
type NamingSystem struct {
	systems.Base
	tick int
}

func NewNamingSystem() *NamingSystem {
	return &NamingSystem{Base: systems.NewBase(systems.PriorityNormal)}
}

func (s *NamingSystem) Process(w systems.World, _ ...any) error {
	s.tick++
	for _, e := range w.Intersection(models.Tag[Name](), models.Tag[FooBar]()) {
		for _, n := range supervisor.EntityComponentsOf[*Name](w, e) {
			n.Value = fmt.Sprintf("%s@%d", e, s.tick)
		}
	}
	return nil
}

// LifetimeSystem counts Lifetime components down and queues their entities
// for removal once expired. It runs last so that other systems still see
// the entity during its final tick.
type LifetimeSystem struct {
	systems.Base
}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{Base: systems.NewBase(systems.PriorityLowest)}
}

func (LifetimeSystem) Process(w systems.World, _ ...any) error {
	for _, l := range supervisor.ComponentsOf[*Lifetime](w) {
		l.Ticks--
		if l.Ticks > 0 {
			continue
		}
		if e, ok := w.ComponentEntity(l); ok {
			w.QueueRemoval(e)
		}
	}
	return nil
}

// Install registers the demo systems with s.
func Install(s *supervisor.Supervisor) error {
	for _, sys := range []systems.System{NewMovementSystem(), NewNamingSystem(), NewLifetimeSystem()} {
		if err := s.AddSystem(sys); err != nil {
			return err
		}
	}
	return nil
}
