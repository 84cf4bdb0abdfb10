package supervisor

import (
	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/systems"
)

// ComponentsOf returns every attached component of type T.
//
//	for _, pos := range supervisor.ComponentsOf[*Position](world) { ... }
func ComponentsOf[T models.Component](w systems.World) []T {
	return filter[T](w.Components(models.Tag[T]()))
}

// EntityComponentsOf returns the components of type T attached to entity.
func EntityComponentsOf[T models.Component](w systems.World, entity *models.Entity) []T {
	return filter[T](w.EntityComponents(entity)[models.Tag[T]()])
}

// ComponentOf returns the first component of type T attached to entity.
func ComponentOf[T models.Component](w systems.World, entity *models.Entity) (T, bool) {
	found := EntityComponentsOf[T](w, entity)
	if len(found) == 0 {
		var zero T
		return zero, false
	}
	return found[0], true
}

// RemoveSystemOf unregisters every system of type T.
func RemoveSystemOf[T systems.System](s *Supervisor) error {
	return s.RemoveSystem(systems.KindFor[T]())
}

// ExecuteSystemOf runs the first registered system of type T.
func ExecuteSystemOf[T systems.System](s *Supervisor, args ...any) error {
	return s.ExecuteSystem(systems.KindFor[T](), args...)
}

func filter[T models.Component](components []models.Component) []T {
	out := make([]T, 0, len(components))
	for _, c := range components {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
