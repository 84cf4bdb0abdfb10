package supervisor

import (
	"errors"

	"github.com/zeusync/byt/internal/core/events/bus"
	"github.com/zeusync/byt/internal/core/models"
)

// Lifecycle event types published on the optional event bus
const (
	EventEntityCreated    = "entity.created"
	EventEntityRemoved    = "entity.removed"
	EventComponentAdded   = "component.added"
	EventComponentRemoved = "component.removed"
)

// EntityEvent is the payload of entity.* events
type EntityEvent struct {
	Entity *models.Entity
}

// ComponentEvent is the payload of component.* events
type ComponentEvent struct {
	Entity    *models.Entity
	Component models.Component
}

type pendingEvent struct {
	typ  string
	data any
}

// publish delivers events after a mutation has been committed. Handler
// errors are returned to the caller of the mutating operation.
func (s *Supervisor) publish(events ...pendingEvent) error {
	if s.bus == nil {
		return nil
	}
	var all error
	for _, e := range events {
		if err := s.bus.Publish(bus.NewEvent(e.typ, e.data)); err != nil {
			all = errors.Join(all, err)
		}
	}
	return all
}
