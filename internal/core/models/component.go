package models

import "github.com/zeusync/byt/internal/core/relations"

// Component is a typed data payload owned by at most one entity.
// Implementations are pointer types embedding ComponentBase:
//
//	type Position struct {
//		models.ComponentBase
//		X, Y int
//	}
type Component interface {
	relations.Participant
	// Owner is the One slot linking the component to its entity.
	Owner() *relations.Relation
}

// ComponentBase provides the owner slot. The zero value is ready to use; the
// slot is created on first access and never replaced afterwards. A component
// must not be copied once it has been attached.
type ComponentBase struct {
	owner *relations.Relation
}

// Slot implements relations.Participant
func (c *ComponentBase) Slot() *relations.Relation {
	if c.owner == nil {
		c.owner = relations.NewOne(EntityTag(), relations.ForbidSubstitution)
	}
	return c.owner
}

func (c *ComponentBase) Owner() *relations.Relation {
	return c.Slot()
}

// TagOf returns the type tag used to index c.
func TagOf(c Component) relations.TypeTag {
	return relations.TagOf(c)
}

// Tag returns the type tag of component type T, e.g. models.Tag[Position]().
func Tag[T any]() relations.TypeTag {
	return relations.Tag[T]()
}
