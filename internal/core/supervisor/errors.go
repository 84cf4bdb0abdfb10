package supervisor

import "errors"

var (
	// ErrEntityNotFound is returned for entities this supervisor did not create or already removed.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrNoOwner is returned when detaching a component that is not attached to any entity.
	ErrNoOwner = errors.New("component has no owner")
	// ErrNilComponent is returned when a nil component is passed in.
	ErrNilComponent = errors.New("component is nil")
)
