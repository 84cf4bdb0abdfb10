package systems

import (
	"errors"
	"fmt"
)

var (
	// ErrSystemNotFound is returned when no registered system has the requested kind.
	ErrSystemNotFound = errors.New("system not found")
	// ErrNilSystem is returned when registering a nil system.
	ErrNilSystem = errors.New("system is nil")
)

// NotFoundError names the kind that was looked up
type NotFoundError struct {
	kind Kind
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("systems: %v: %s", e.kind, ErrSystemNotFound)
}

// Is lets errors.Is(err, ErrSystemNotFound) match.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrSystemNotFound
}

func (e *NotFoundError) Kind() Kind {
	return e.kind
}

// IsNotFound returns true if err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrSystemNotFound)
}
