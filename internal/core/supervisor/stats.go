package supervisor

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/relations"
)

// QueryStat counts the calls of one intersection signature
type QueryStat struct {
	Tags  []relations.TypeTag
	Calls uint64
}

// queryStats keys intersection requests by a hash of their sorted tag set.
type queryStats struct {
	total      uint64
	signatures map[uint64]*QueryStat
}

func newQueryStats() queryStats {
	return queryStats{signatures: make(map[uint64]*QueryStat)}
}

// Signature hashes a normalized tag set. Equal sets give equal signatures
// regardless of argument order.
func Signature(tags ...relations.TypeTag) uint64 {
	return signature(normalizeTags(tags))
}

func signature(sorted []relations.TypeTag) uint64 {
	buf := make([]byte, 0, 4*len(sorted))
	for _, t := range sorted {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(t))
	}
	return xxhash.Sum64(buf)
}

func (q *queryStats) record(sorted []relations.TypeTag) {
	q.total++
	sig := signature(sorted)
	st, ok := q.signatures[sig]
	if !ok {
		st = &QueryStat{Tags: slices.Clone(sorted)}
		q.signatures[sig] = st
	}
	st.Calls++
}

// Stats is a point-in-time snapshot of a supervisor
type Stats struct {
	Entities        int
	Components      int
	ByType          map[relations.TypeTag]int
	Systems         int
	PendingRemovals int
	Queries         uint64
	QueryCounts     map[uint64]QueryStat
}

func (s *Supervisor) Stats() Stats {
	byType := s.relations.Stats().ByType
	delete(byType, models.EntityTag())
	components := 0
	for _, n := range byType {
		components += n
	}

	queries := make(map[uint64]QueryStat, len(s.queries.signatures))
	for sig, st := range s.queries.signatures {
		queries[sig] = QueryStat{Tags: slices.Clone(st.Tags), Calls: st.Calls}
	}

	return Stats{
		Entities:        len(s.entities),
		Components:      components,
		ByType:          byType,
		Systems:         s.scheduler.Len(),
		PendingRemovals: s.removals.len(),
		Queries:         s.queries.total,
		QueryCounts:     queries,
	}
}
