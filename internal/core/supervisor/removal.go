package supervisor

import (
	"errors"

	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/observability/log"
)

// removalQueue keeps entities scheduled for removal in queue order, once each.
type removalQueue struct {
	order   []*models.Entity
	pending map[models.EntityID]struct{}
}

func (q *removalQueue) push(e *models.Entity) bool {
	if q.pending == nil {
		q.pending = make(map[models.EntityID]struct{})
	}
	if _, ok := q.pending[e.ID()]; ok {
		return false
	}
	q.pending[e.ID()] = struct{}{}
	q.order = append(q.order, e)
	return true
}

func (q *removalQueue) drop(id models.EntityID) {
	delete(q.pending, id)
}

// take empties the queue, skipping entities dropped since they were pushed.
func (q *removalQueue) take() []*models.Entity {
	out := make([]*models.Entity, 0, len(q.pending))
	for _, e := range q.order {
		if _, ok := q.pending[e.ID()]; ok {
			out = append(out, e)
		}
	}
	q.order = q.order[:0]
	clear(q.pending)
	return out
}

func (q *removalQueue) len() int {
	return len(q.pending)
}

// QueueRemoval schedules entity for removal at the end of the current tick,
// so systems can drop entities while others still iterate over them.
// Unknown entities are ignored.
func (s *Supervisor) QueueRemoval(entity *models.Entity) {
	if !s.owns(entity) {
		return
	}
	if s.removals.push(entity) {
		s.log.Debug("entity queued for removal", log.Uint64("entity", uint64(entity.ID())))
	}
}

// PendingRemovals counts the entities waiting for FlushRemovals.
func (s *Supervisor) PendingRemovals() int {
	return s.removals.len()
}

// FlushRemovals removes every queued entity. Entities already removed
// directly are skipped. All removals are attempted and their errors joined.
func (s *Supervisor) FlushRemovals() error {
	var all error
	for _, e := range s.removals.take() {
		if !s.owns(e) {
			continue
		}
		if err := s.RemoveEntity(e); err != nil {
			all = errors.Join(all, err)
		}
	}
	return all
}
