package supervisor

import (
	"cmp"
	"slices"

	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/relations"
)

// Intersection returns the entities owning at least one component of every
// given type, ordered by entity id. The result is computed on every call.
// An empty request, or a type with no attached components, yields nothing.
func (s *Supervisor) Intersection(tags ...relations.TypeTag) []*models.Entity {
	tags = normalizeTags(tags)
	s.queries.record(tags)
	if len(tags) == 0 {
		return []*models.Entity{}
	}

	// cheapest type first, so the candidate set starts as small as possible
	slices.SortFunc(tags, func(a, b relations.TypeTag) int {
		return cmp.Compare(s.relations.CountType(a), s.relations.CountType(b))
	})
	if s.relations.CountType(tags[0]) == 0 {
		return []*models.Entity{}
	}

	candidates := s.owners(tags[0])
	for _, tag := range tags[1:] {
		if len(candidates) == 0 {
			break
		}
		next := s.owners(tag)
		for e := range candidates {
			if _, ok := next[e]; !ok {
				delete(candidates, e)
			}
		}
	}

	out := make([]*models.Entity, 0, len(candidates))
	for e := range candidates {
		out = append(out, e)
	}
	sortByID(out)
	return out
}

// owners collects the entities holding a component with tag.
func (s *Supervisor) owners(tag relations.TypeTag) map[*models.Entity]struct{} {
	components := s.Components(tag)
	out := make(map[*models.Entity]struct{}, len(components))
	for _, c := range components {
		if e, ok := s.ComponentEntity(c); ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// normalizeTags returns a sorted copy of tags without duplicates.
func normalizeTags(tags []relations.TypeTag) []relations.TypeTag {
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}

func sortByID(entities []*models.Entity) {
	slices.SortFunc(entities, func(a, b *models.Entity) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}
