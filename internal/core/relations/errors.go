package relations

import (
	"errors"

	"github.com/google/uuid"
)

// Relation errors
var (
	// ErrAmbiguousRelation is returned when an object does not expose exactly one relation slot.
	ErrAmbiguousRelation = errors.New("object must expose exactly one relation slot")
	// ErrSubstitutionNotAllowed is returned when relinking an occupied slot that forbids substitution.
	ErrSubstitutionNotAllowed = errors.New("substitution not allowed")
	// ErrOccupiedSlot is returned by the store when a One slot already holds another participant.
	ErrOccupiedSlot = errors.New("relation slot is occupied")
	// ErrMissingRelation is returned when removing an edge that does not exist.
	ErrMissingRelation = errors.New("relation does not exist")
	// ErrTargetMismatch is returned when a participant is not of the slot's declared target type.
	ErrTargetMismatch = errors.New("participant does not match relation target")
	// ErrParticipantLinked is returned when forgetting an object that still has edges.
	ErrParticipantLinked = errors.New("participant still has relations")
	// ErrInvalidParticipant is returned for nil or non-pointer participants.
	ErrInvalidParticipant = errors.New("participant must be a non-nil pointer")
	// ErrSelfRelation is returned when linking an object to itself.
	ErrSelfRelation = errors.New("object cannot be related to itself")
)

// Error carries the failed operation and the relation involved
type Error struct {
	Op       string
	Relation uuid.UUID
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Relation == uuid.Nil {
		return "relations: " + e.Op + ": " + e.Cause.Error()
	}
	return "relations: " + e.Op + " " + e.Relation.String() + ": " + e.Cause.Error()
}

// Unwrap returns the underlying sentinel
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op string, rel *Relation, cause error) *Error {
	e := &Error{Op: op, Cause: cause}
	if rel != nil {
		e.Relation = rel.id
	}
	return e
}
