package systems

import (
	"reflect"

	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/relations"
)

// System is a processing unit run by the supervisor, once per tick or on demand.
type System interface {
	Priority() Priority
	// Process receives the world and whatever the caller passed to
	// ExecuteSystem or Tick, uninterpreted.
	Process(world World, args ...any) error
}

// World is the part of the supervisor systems are allowed to use
type World interface {
	CreateEntity(components ...models.Component) (*models.Entity, error)
	RemoveEntity(entity *models.Entity) error
	QueueRemoval(entity *models.Entity)

	AddComponents(entity *models.Entity, components ...models.Component) error
	RemoveComponents(components ...models.Component) error

	Components(tag relations.TypeTag) []models.Component
	EntityComponents(entity *models.Entity) map[relations.TypeTag][]models.Component
	ComponentEntity(component models.Component) (*models.Entity, bool)
	Intersection(tags ...relations.TypeTag) []*models.Entity
}

// Priority defines execution order, higher runs first
type Priority int

// System priorities
const (
	PriorityLowest  Priority = 0
	PriorityLow     Priority = 50
	PriorityNormal  Priority = 100
	PriorityHigh    Priority = 150
	PriorityHighest Priority = 200
)

// Base can be embedded to implement Priority. The zero value runs last.
type Base struct {
	priority Priority
}

func NewBase(priority Priority) Base {
	return Base{priority: priority}
}

func (b Base) Priority() Priority { return b.priority }

// Kind identifies a system by its runtime type
type Kind = reflect.Type

// KindOf returns the runtime type of s.
func KindOf(s System) Kind {
	return reflect.TypeOf(s)
}

// KindFor returns the kind of systems of type T, e.g. KindFor[*NameSystem]().
func KindFor[T System]() Kind {
	return reflect.TypeFor[T]()
}
