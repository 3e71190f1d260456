package ecs

import (
	"sort"

	"github.com/milk9111/heighthop/ecs/component"
)

// Kind is satisfied by every component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
}

// Query returns the live entities holding every kind, in ascending entity
// order. The result is a fresh slice, safe to mutate the world while
// iterating it.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	sort.Slice(sets, func(i, j int) bool { return sets[i].Len() < sets[j].Len() })

	out := make([]Entity, 0, sets[0].Len())
	for _, e := range sets[0].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, s := range sets[1:] {
			if !s.Has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest live entity holding kind.
func (w *World) First(kind Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
