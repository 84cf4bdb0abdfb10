package supervisor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zeusync/byt/internal/core/events/bus"
	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/observability/log"
	"github.com/zeusync/byt/internal/core/relations"
	"github.com/zeusync/byt/internal/core/systems"
)

var _ systems.World = (*Supervisor)(nil)

// Supervisor owns a world: its entities, the relation manager that holds
// their components, and the systems processing them.
//
// Like the relation manager, a Supervisor is single-threaded. Separate
// supervisors share nothing and may run on separate goroutines.
type Supervisor struct {
	entities  map[models.EntityID]*models.Entity
	nextID    models.EntityID
	relations *relations.Manager
	scheduler *systems.Scheduler
	removals  removalQueue
	bus       bus.EventBus
	log       log.Log
	queries   queryStats
}

type Option func(*Supervisor)

func WithLogger(l log.Log) Option {
	return func(s *Supervisor) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEventBus publishes lifecycle events on b.
func WithEventBus(b bus.EventBus) Option {
	return func(s *Supervisor) {
		s.bus = b
	}
}

func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		entities: make(map[models.EntityID]*models.Entity),
		log:      log.NewNop(),
		queries:  newQueryStats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.relations = relations.NewManager(relations.WithLogger(s.log.Named("relations")))
	s.scheduler = systems.NewScheduler(s.log.Named("scheduler"))
	return s
}

// Relations exposes the underlying manager for read access.
func (s *Supervisor) Relations() *relations.Manager {
	return s.relations
}

// CreateEntity allocates an entity and attaches components to it. If any
// component cannot be attached the entity is not created.
func (s *Supervisor) CreateEntity(components ...models.Component) (*models.Entity, error) {
	s.nextID++
	e := models.NewEntity(s.nextID)
	s.entities[e.ID()] = e

	added, err := s.attach(e, components)
	if err != nil {
		delete(s.entities, e.ID())
		return nil, errors.Join(err, s.relations.Forget(e))
	}

	s.log.Debug("entity created", log.Uint64("entity", uint64(e.ID())), log.Int("components", len(added)))
	events := append([]pendingEvent{{typ: EventEntityCreated, data: EntityEvent{Entity: e}}}, componentEvents(EventComponentAdded, e, added)...)
	return e, s.publish(events...)
}

// AddComponents attaches components to entity. Either every component is
// attached or, on the first failure, the ones attached by this call are
// detached again and the error is returned.
func (s *Supervisor) AddComponents(entity *models.Entity, components ...models.Component) error {
	if !s.owns(entity) {
		return fmt.Errorf("add components: %w", ErrEntityNotFound)
	}
	added, err := s.attach(entity, components)
	if err != nil {
		return err
	}
	return s.publish(componentEvents(EventComponentAdded, entity, added)...)
}

func (s *Supervisor) attach(entity *models.Entity, components []models.Component) ([]models.Component, error) {
	added := make([]models.Component, 0, len(components))
	for _, c := range components {
		if c == nil {
			return nil, s.rollback(entity, added, fmt.Errorf("add component to %s: %w", entity, ErrNilComponent))
		}
		if s.relations.Linked(entity, c) {
			continue
		}
		if err := s.relations.Add(entity, c); err != nil {
			return nil, s.rollback(entity, added, fmt.Errorf("add %s to %s: %w", relations.TypeName(models.TagOf(c)), entity, err))
		}
		added = append(added, c)
	}
	return added, nil
}

func (s *Supervisor) rollback(entity *models.Entity, added []models.Component, cause error) error {
	all := cause
	for _, c := range slices.Backward(added) {
		all = errors.Join(all, s.detach(entity, c))
	}
	return all
}

// RemoveComponents detaches components from whatever entity owns them.
// Every component is checked first; if one has no owner nothing changes.
func (s *Supervisor) RemoveComponents(components ...models.Component) error {
	type detach struct {
		owner     *models.Entity
		component models.Component
	}
	plan := make([]detach, 0, len(components))
	seen := make(map[models.Component]struct{}, len(components))
	for _, c := range components {
		if c == nil {
			return fmt.Errorf("remove components: %w", ErrNilComponent)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		owner, ok := s.ComponentEntity(c)
		if !ok {
			return fmt.Errorf("remove %s: %w", relations.TypeName(models.TagOf(c)), ErrNoOwner)
		}
		plan = append(plan, detach{owner: owner, component: c})
	}

	events := make([]pendingEvent, 0, len(plan))
	for _, d := range plan {
		if err := s.detach(d.owner, d.component); err != nil {
			return err
		}
		events = append(events, pendingEvent{typ: EventComponentRemoved, data: ComponentEvent{Entity: d.owner, Component: d.component}})
	}
	return s.publish(events...)
}

func (s *Supervisor) detach(owner *models.Entity, c models.Component) error {
	if err := s.relations.Remove(owner, c); err != nil {
		return err
	}
	return s.relations.Forget(c)
}

// RemoveEntity detaches every component of entity and deletes it. Detached
// components are released by the relation manager.
func (s *Supervisor) RemoveEntity(entity *models.Entity) error {
	if !s.owns(entity) {
		return fmt.Errorf("remove entity: %w", ErrEntityNotFound)
	}

	components := asComponents(s.relations.GetMany(entity.Slot()))
	events := make([]pendingEvent, 0, len(components)+1)
	for _, c := range components {
		if err := s.detach(entity, c); err != nil {
			return fmt.Errorf("remove %s: %w", entity, err)
		}
		events = append(events, pendingEvent{typ: EventComponentRemoved, data: ComponentEvent{Entity: entity, Component: c}})
	}
	if err := s.relations.Forget(entity); err != nil {
		return fmt.Errorf("remove %s: %w", entity, err)
	}
	delete(s.entities, entity.ID())
	s.removals.drop(entity.ID())

	s.log.Debug("entity removed", log.Uint64("entity", uint64(entity.ID())), log.Int("components", len(components)))
	events = append(events, pendingEvent{typ: EventEntityRemoved, data: EntityEvent{Entity: entity}})
	return s.publish(events...)
}

// Entity returns the live entity with the given id.
func (s *Supervisor) Entity(id models.EntityID) (*models.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Entities lists live entities ordered by id.
func (s *Supervisor) Entities() []*models.Entity {
	out := make([]*models.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	sortByID(out)
	return out
}

func (s *Supervisor) EntityCount() int {
	return len(s.entities)
}

// Components returns every attached component whose type has tag.
func (s *Supervisor) Components(tag relations.TypeTag) []models.Component {
	if tag == models.EntityTag() {
		return []models.Component{}
	}
	return asComponents(s.relations.GetType(tag))
}

// EntityComponents groups the components of entity by type tag. Unknown
// entities have no components.
func (s *Supervisor) EntityComponents(entity *models.Entity) map[relations.TypeTag][]models.Component {
	out := make(map[relations.TypeTag][]models.Component)
	if !s.owns(entity) {
		return out
	}
	for _, c := range asComponents(s.relations.GetMany(entity.Slot())) {
		tag := models.TagOf(c)
		out[tag] = append(out[tag], c)
	}
	return out
}

// ComponentEntity returns the entity component is attached to.
func (s *Supervisor) ComponentEntity(component models.Component) (*models.Entity, bool) {
	if component == nil {
		return nil, false
	}
	p, ok := s.relations.GetOne(component.Owner())
	if !ok {
		return nil, false
	}
	e, ok := p.(*models.Entity)
	return e, ok
}

// AddSystem registers system with the scheduler.
func (s *Supervisor) AddSystem(system systems.System) error {
	return s.scheduler.Add(system)
}

// RemoveSystem unregisters every system of the given kind.
func (s *Supervisor) RemoveSystem(kind systems.Kind) error {
	return s.scheduler.Remove(kind)
}

// ExecuteSystem runs the first system of the given kind once, passing args
// through untouched.
func (s *Supervisor) ExecuteSystem(kind systems.Kind, args ...any) error {
	return s.scheduler.Execute(kind, s, args...)
}

// Systems lists registered systems in execution order.
func (s *Supervisor) Systems() []systems.System {
	return s.scheduler.Systems()
}

// Tick runs every system in priority order, then removes the entities
// queued for removal during the tick. Queued removals are flushed even
// when a system fails.
func (s *Supervisor) Tick(args ...any) error {
	err := s.scheduler.Run(s, args...)
	return errors.Join(err, s.FlushRemovals())
}

func (s *Supervisor) owns(entity *models.Entity) bool {
	if entity == nil {
		return false
	}
	e, ok := s.entities[entity.ID()]
	return ok && e == entity
}

func asComponents(ps []relations.Participant) []models.Component {
	out := make([]models.Component, 0, len(ps))
	for _, p := range ps {
		if c, ok := p.(models.Component); ok {
			out = append(out, c)
		}
	}
	return out
}

func componentEvents(typ string, e *models.Entity, components []models.Component) []pendingEvent {
	out := make([]pendingEvent, 0, len(components))
	for _, c := range components {
		out = append(out, pendingEvent{typ: typ, data: ComponentEvent{Entity: e, Component: c}})
	}
	return out
}
