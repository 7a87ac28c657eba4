package glkit

import (
	"fmt"
	"reflect"
	"slices"
)

// Entity is a generational handle into a World. The zero value is never
// a live entity.
type Entity struct {
	index uint32 // slot+1
	gen   uint32
}

// String formats the entity as index:generation.
func (e Entity) String() string { return fmt.Sprintf("%d:%d", e.index, e.gen) }

type componentStore interface {
	remove(slot uint32)
}

type store[T any] struct {
	items map[uint32]*T
}

func (s *store[T]) remove(slot uint32) { delete(s.items, slot) }

// World holds entities and their components, one store per component type.
type World struct {
	gens   []uint32
	alive  []bool
	free   []uint32
	stores map[reflect.Type]componentStore
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{stores: make(map[reflect.Type]componentStore)}
}

// Spawn creates an entity with no components.
func (w *World) Spawn() Entity {
	var slot uint32
	if n := len(w.free); n > 0 {
		slot = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.gens = append(w.gens, 0)
		w.alive = append(w.alive, false)
		slot = uint32(len(w.gens))
	}
	w.alive[slot-1] = true
	return Entity{index: slot, gen: w.gens[slot-1]}
}

// Alive reports whether e has not been destroyed.
func (w *World) Alive(e Entity) bool {
	if e.index == 0 || int(e.index) > len(w.gens) {
		return false
	}
	return w.alive[e.index-1] && w.gens[e.index-1] == e.gen
}

// Destroy removes e and all of its components.
func (w *World) Destroy(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.index)
	}
	w.alive[e.index-1] = false
	w.gens[e.index-1]++
	w.free = append(w.free, e.index)
	return true
}

func storeFor[T any](w *World, create bool) *store[T] {
	key := reflect.TypeFor[T]()
	s, ok := w.stores[key]
	if !ok {
		if !create {
			return nil
		}
		s = &store[T]{items: make(map[uint32]*T)}
		w.stores[key] = s
	}
	return s.(*store[T])
}

// AddComponent attaches c to e, replacing any component of the same type.
func AddComponent[T any](w *World, e Entity, c T) error {
	if !w.Alive(e) {
		return fmt.Errorf("entity %s: %w", e, ErrStaleHandle)
	}
	storeFor[T](w, true).items[e.index] = &c
	return nil
}

// Component returns e's component of type T. The pointer stays valid until
// the component is removed or replaced.
func Component[T any](w *World, e Entity) (*T, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	s := storeFor[T](w, false)
	if s == nil {
		return nil, false
	}
	c, ok := s.items[e.index]
	return c, ok
}

// RemoveComponent detaches e's component of type T.
func RemoveComponent[T any](w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	s := storeFor[T](w, false)
	if s == nil {
		return false
	}
	if _, ok := s.items[e.index]; !ok {
		return false
	}
	delete(s.items, e.index)
	return true
}

// Each calls fn for every entity holding a T, in entity slot order.
// fn must not add or remove components of type T.
func Each[T any](w *World, fn func(Entity, *T)) {
	s := storeFor[T](w, false)
	if s == nil {
		return
	}
	slots := make([]uint32, 0, len(s.items))
	for slot := range s.items {
		slots = append(slots, slot)
	}
	slices.Sort(slots)
	for _, slot := range slots {
		fn(Entity{index: slot, gen: w.gens[slot-1]}, s.items[slot])
	}
}
