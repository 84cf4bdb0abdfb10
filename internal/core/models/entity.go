package models

import (
	"strconv"

	"github.com/zeusync/byt/internal/core/relations"
)

// EntityID represents a unique identifier for entities within one supervisor
type EntityID uint64

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Entity is an identity with a single Many slot. Its components exist only
// as edges of that slot; the entity never stores them itself.
type Entity struct {
	id         EntityID
	components *relations.Relation
}

// NewEntity is used by the supervisor, which owns id allocation.
func NewEntity(id EntityID) *Entity {
	return &Entity{
		id:         id,
		components: relations.NewMany(relations.AnyTag),
	}
}

func (e *Entity) ID() EntityID { return e.id }

// Slot implements relations.Participant
func (e *Entity) Slot() *relations.Relation { return e.components }

func (e *Entity) String() string {
	return "entity#" + e.id.String()
}

// EntityTag is the type tag of *Entity, the target of every component slot.
func EntityTag() relations.TypeTag {
	return relations.Tag[Entity]()
}
