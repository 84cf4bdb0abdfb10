package scenario

import (
	"fmt"
	"slices"
	"sync"

	"github.com/zeusync/byt/internal/core/models"
)

// Factory builds one component. index is the zero-based position of the
// entity within its spec, params come straight from the scenario file.
type Factory func(index int, params Params) (models.Component, error)

// Registry maps component type names used in scenario files to factories.
type Registry interface {
	Register(name string, factory Factory)
	New(name string, index int, params Params) (models.Component, error)
	Names() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return &registry{factories: make(map[string]Factory)}
}

func (r *registry) Register(name string, factory Factory) {
	r.mu.Lock()
	r.factories[name] = factory
	r.mu.Unlock()
}

func (r *registry) New(name string, index int, params Params) (models.Component, error) {
	r.mu.RLock()
	f := r.factories[name]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	return f(index, params)
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
