package relations

import (
	"fmt"

	"github.com/google/uuid"
)

// Cardinality tells how many participants a relation slot may hold
type Cardinality uint8

const (
	// One slots hold at most one participant
	One Cardinality = iota + 1
	// Many slots hold an unbounded, duplicate-free set
	Many
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return "invalid"
	}
}

// Substitution decides whether an occupied One slot may be relinked by Add
type Substitution uint8

const (
	ForbidSubstitution Substitution = iota
	AllowSubstitution
)

// Relation is an immutable relation slot declaration. Its identity is the
// random id assigned at construction: two relations built with the same
// arguments are different relations.
type Relation struct {
	id           uuid.UUID
	target       TypeTag
	cardinality  Cardinality
	substitution Substitution
}

// NewOne declares a single-valued slot pointing at target.
func NewOne(target TypeTag, substitution Substitution) *Relation {
	return &Relation{
		id:           uuid.New(),
		target:       target,
		cardinality:  One,
		substitution: substitution,
	}
}

// NewMany declares a set-valued slot pointing at target.
func NewMany(target TypeTag) *Relation {
	return &Relation{
		id:          uuid.New(),
		target:      target,
		cardinality: Many,
	}
}

func (r *Relation) ID() uuid.UUID              { return r.id }
func (r *Relation) Target() TypeTag            { return r.target }
func (r *Relation) Cardinality() Cardinality   { return r.cardinality }
func (r *Relation) Substitution() Substitution { return r.substitution }

// AllowsSubstitution is always false for Many slots.
func (r *Relation) AllowsSubstitution() bool {
	return r.cardinality == One && r.substitution == AllowSubstitution
}

// Equal compares identities, never configuration.
func (r *Relation) Equal(other *Relation) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.id == other.id
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s->%s(%s)", r.cardinality, TypeName(r.target), r.id)
}

// Participant is implemented by every object that can be linked through a
// relation. Slot must return the same descriptor for the whole lifetime of
// the object. Participants are expected to be pointers: their identity is
// the identity of the interface value.
type Participant interface {
	Slot() *Relation
}
