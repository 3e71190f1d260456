package ecs

import "github.com/milk9111/heighthop/ecs/component"

// World owns entities, their component stores and the per-tick clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. It returns
// false when the entity was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

// SetDelta records the duration of the current tick in seconds.
func (w *World) SetDelta(dt float64) {
	if w == nil {
		return
	}
	w.delta = dt
}

// Delta returns the duration of the current tick in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
