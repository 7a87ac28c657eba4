package glkit

import (
	"errors"
	"slices"
)

// ErrStaleHandle is returned when a handle refers to a removed node.
var ErrStaleHandle = errors.New("glkit: stale handle")

// HandlerID identifies a handler in an EventTree. The zero value is the
// tree's root, which has no handler of its own.
type HandlerID struct {
	index uint32 // slot+1; 0 is the root
	gen   uint32
}

// IsRoot reports whether id is the zero value.
func (id HandlerID) IsRoot() bool { return id.index == 0 }

// Handler reacts to an event. Returning true consumes the event for the
// handler's descendants.
type Handler[E any] func(E) bool

type handlerNode[E any] struct {
	fn       Handler[E]
	gen      uint32
	alive    bool
	parent   uint32
	children []uint32
}

// EventTree is a parent/child tree of event handlers stored in a slot
// arena. Removed slots are reused with a bumped generation so old
// HandlerIDs stop resolving.
type EventTree[E any] struct {
	nodes []handlerNode[E]
	free  []uint32
	roots []uint32
	live  int
}

// NewEventTree returns an empty tree.
func NewEventTree[E any]() *EventTree[E] {
	return &EventTree[E]{}
}

func (t *EventTree[E]) resolve(id HandlerID) (uint32, bool) {
	if id.index == 0 || int(id.index) > len(t.nodes) {
		return 0, false
	}
	n := &t.nodes[id.index-1]
	return id.index, n.alive && n.gen == id.gen
}

// Contains reports whether id refers to a live handler.
func (t *EventTree[E]) Contains(id HandlerID) bool {
	_, ok := t.resolve(id)
	return ok
}

// Len returns the number of live handlers.
func (t *EventTree[E]) Len() int { return t.live }

// Add registers fn as the last child of parent.
func (t *EventTree[E]) Add(parent HandlerID, fn Handler[E]) (HandlerID, error) {
	var p uint32
	if !parent.IsRoot() {
		var ok bool
		if p, ok = t.resolve(parent); !ok {
			return HandlerID{}, ErrStaleHandle
		}
	}

	var slot uint32
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, handlerNode[E]{})
		slot = uint32(len(t.nodes))
	}
	n := &t.nodes[slot-1]
	n.fn = fn
	n.alive = true
	n.parent = p
	n.children = n.children[:0]

	if p == 0 {
		t.roots = append(t.roots, slot)
	} else {
		t.nodes[p-1].children = append(t.nodes[p-1].children, slot)
	}
	t.live++
	return HandlerID{index: slot, gen: n.gen}, nil
}

// Remove unregisters id and its whole subtree. Stale IDs are ignored.
func (t *EventTree[E]) Remove(id HandlerID) bool {
	slot, ok := t.resolve(id)
	if !ok {
		return false
	}
	parent := t.nodes[slot-1].parent
	if parent == 0 {
		t.roots = deleteValue(t.roots, slot)
	} else {
		t.nodes[parent-1].children = deleteValue(t.nodes[parent-1].children, slot)
	}
	t.release(slot)
	return true
}

func (t *EventTree[E]) release(slot uint32) {
	n := &t.nodes[slot-1]
	for _, c := range n.children {
		t.release(c)
	}
	n.fn = nil
	n.alive = false
	n.gen++
	n.children = n.children[:0]
	t.free = append(t.free, slot)
	t.live--
}

// Dispatch delivers e to every handler in pre-order. A handler returning
// true stops delivery to its own subtree; siblings still receive e.
// Dispatch reports whether any handler consumed the event.
func (t *EventTree[E]) Dispatch(e E) bool {
	return t.dispatch(t.snapshot(t.roots), e)
}

// snapshot pins the generation of each slot so handlers may add or remove
// nodes while an event is in flight.
func (t *EventTree[E]) snapshot(slots []uint32) []HandlerID {
	ids := make([]HandlerID, len(slots))
	for i, s := range slots {
		ids[i] = HandlerID{index: s, gen: t.nodes[s-1].gen}
	}
	return ids
}

func (t *EventTree[E]) dispatch(ids []HandlerID, e E) bool {
	consumed := false
	for _, id := range ids {
		s, ok := t.resolve(id)
		if !ok {
			continue
		}
		if fn := t.nodes[s-1].fn; fn != nil && fn(e) {
			consumed = true
			continue
		}
		if !t.Contains(id) {
			continue
		}
		if t.dispatch(t.snapshot(t.nodes[s-1].children), e) {
			consumed = true
		}
	}
	return consumed
}

func deleteValue(s []uint32, v uint32) []uint32 {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

// EventKind classifies an Event.
type EventKind int

const (
	EventKey EventKind = iota
	EventChar
	EventMouseButton
	EventMouseMove
	EventScroll
	EventResize
)

// Action is the state change of a key or button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is a window input event as delivered by a backend.
type Event struct {
	Kind   EventKind
	Key    Key
	Button MouseButton
	Action Action
	Char   rune
	Pos    Vec2 // cursor position, or scroll offset for EventScroll
	Width  int  // framebuffer size for EventResize
	Height int

	Ctrl, Shift, Alt, Super bool
}
