package relations

import (
	"reflect"
	"sync"
)

// TypeTag is a stable numeric identifier assigned once per Go type.
// Pointer types share the tag of the type they point to.
type TypeTag uint32

// AnyTag is used as a relation target when any participant type is accepted.
const AnyTag TypeTag = 0

type tagRegistry struct {
	mu    sync.RWMutex
	tags  map[reflect.Type]TypeTag
	types []reflect.Type
}

var registry = &tagRegistry{
	tags:  make(map[reflect.Type]TypeTag),
	types: []reflect.Type{nil}, // index 0 is AnyTag
}

// Tag returns the tag of T, registering T on first use.
func Tag[T any]() TypeTag {
	return registry.tagFor(reflect.TypeFor[T]())
}

// TagOf returns the tag of v's dynamic type.
func TagOf(v any) TypeTag {
	if v == nil {
		return AnyTag
	}
	return registry.tagFor(reflect.TypeOf(v))
}

// TypeName returns a printable name for tag, mostly for logs and errors.
func TypeName(tag TypeTag) string {
	if tag == AnyTag {
		return "any"
	}
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(tag) >= len(registry.types) {
		return "unknown"
	}
	return registry.types[tag].String()
}

func (r *tagRegistry) tagFor(t reflect.Type) TypeTag {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	tag, ok := r.tags[t]
	r.mu.RUnlock()
	if ok {
		return tag
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tag, ok = r.tags[t]; ok {
		return tag
	}
	tag = TypeTag(len(r.types))
	r.types = append(r.types, t)
	r.tags[t] = tag
	return tag
}
