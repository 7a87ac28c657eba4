package glkit

import "errors"

// ErrCycle is returned when reparenting would make a node its own ancestor.
var ErrCycle = errors.New("glkit: transform cycle")

// NodeID identifies a node in a TransformTree. The zero value is the
// implicit root, whose world transform is the identity.
type NodeID struct {
	index uint32 // slot+1; 0 is the root
	gen   uint32
}

// IsRoot reports whether id is the zero value.
func (id NodeID) IsRoot() bool { return id.index == 0 }

// Transform is a node's local placement relative to its parent. Rotation
// and scale pivot around Origin.
type Transform struct {
	Position Vec2
	Rotation float32 // radians, counter-clockwise
	Scale    Vec2
	Origin   Vec2
}

// Matrix returns T(Position) * R(Rotation) * S(Scale) * T(-Origin).
func (t Transform) Matrix() Mat3 {
	return Translate3(t.Position).
		Mul(Rotate3(t.Rotation)).
		Mul(Scale3(t.Scale)).
		Mul(Translate3(Vec2{X: -t.Origin.X, Y: -t.Origin.Y}))
}

type transformNode struct {
	local    Transform
	world    Mat3
	dirty    bool
	gen      uint32
	alive    bool
	parent   uint32
	children []uint32
}

// TransformTree is a 2D transform hierarchy stored in a slot arena. Setters
// mark the node and its subtree dirty; World recomputes on demand.
type TransformTree struct {
	nodes []transformNode
	free  []uint32
	live  int
}

// NewTransformTree returns an empty tree.
func NewTransformTree() *TransformTree {
	return &TransformTree{}
}

func (t *TransformTree) node(id NodeID) (*transformNode, error) {
	if id.index == 0 || int(id.index) > len(t.nodes) {
		return nil, ErrStaleHandle
	}
	n := &t.nodes[id.index-1]
	if !n.alive || n.gen != id.gen {
		return nil, ErrStaleHandle
	}
	return n, nil
}

// Contains reports whether id refers to a live node.
func (t *TransformTree) Contains(id NodeID) bool {
	_, err := t.node(id)
	return err == nil
}

// Len returns the number of live nodes.
func (t *TransformTree) Len() int { return t.live }

// Add creates a node with the identity transform under parent.
func (t *TransformTree) Add(parent NodeID) (NodeID, error) {
	if !parent.IsRoot() {
		if _, err := t.node(parent); err != nil {
			return NodeID{}, err
		}
	}
	var slot uint32
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, transformNode{})
		slot = uint32(len(t.nodes))
	}
	n := &t.nodes[slot-1]
	n.local = Transform{Scale: Vec2{X: 1, Y: 1}}
	n.dirty = true
	n.alive = true
	n.parent = parent.index
	n.children = n.children[:0]
	if parent.index != 0 {
		p := &t.nodes[parent.index-1]
		p.children = append(p.children, slot)
	}
	t.live++
	return NodeID{index: slot, gen: n.gen}, nil
}

// Parent returns the parent of id, or the root.
func (t *TransformTree) Parent(id NodeID) (NodeID, error) {
	n, err := t.node(id)
	if err != nil {
		return NodeID{}, err
	}
	if n.parent == 0 {
		return NodeID{}, nil
	}
	return NodeID{index: n.parent, gen: t.nodes[n.parent-1].gen}, nil
}

// Children returns the direct children of id in insertion order.
func (t *TransformTree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}
	out := make([]NodeID, len(n.children))
	for i, c := range n.children {
		out[i] = NodeID{index: c, gen: t.nodes[c-1].gen}
	}
	return out, nil
}

// Local returns the local transform of id.
func (t *TransformTree) Local(id NodeID) (Transform, error) {
	n, err := t.node(id)
	if err != nil {
		return Transform{}, err
	}
	return n.local, nil
}

// SetLocal replaces the local transform of id.
func (t *TransformTree) SetLocal(id NodeID, tr Transform) error {
	return t.update(id, func(l *Transform) { *l = tr })
}

// SetPosition sets the local position of id.
func (t *TransformTree) SetPosition(id NodeID, p Vec2) error {
	return t.update(id, func(l *Transform) { l.Position = p })
}

// SetRotation sets the local rotation of id in radians.
func (t *TransformTree) SetRotation(id NodeID, r float32) error {
	return t.update(id, func(l *Transform) { l.Rotation = r })
}

// SetScale sets the local scale of id.
func (t *TransformTree) SetScale(id NodeID, s Vec2) error {
	return t.update(id, func(l *Transform) { l.Scale = s })
}

// SetOrigin sets the pivot of id in local coordinates.
func (t *TransformTree) SetOrigin(id NodeID, o Vec2) error {
	return t.update(id, func(l *Transform) { l.Origin = o })
}

func (t *TransformTree) update(id NodeID, fn func(*Transform)) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	fn(&n.local)
	t.markDirty(id.index)
	return nil
}

// markDirty flags slot and its descendants. A dirty node's subtree is
// already dirty, so the walk stops there.
func (t *TransformTree) markDirty(slot uint32) {
	n := &t.nodes[slot-1]
	n.dirty = true
	for _, c := range n.children {
		if !t.nodes[c-1].dirty {
			t.markDirty(c)
		}
	}
}

// World returns the transform from id's local space to root space.
func (t *TransformTree) World(id NodeID) (Mat3, error) {
	if _, err := t.node(id); err != nil {
		return Mat3{}, err
	}
	return t.world(id.index), nil
}

func (t *TransformTree) world(slot uint32) Mat3 {
	n := &t.nodes[slot-1]
	if n.dirty {
		parent := Identity3()
		if n.parent != 0 {
			parent = t.world(n.parent)
		}
		n.world = parent.Mul(n.local.Matrix())
		n.dirty = false
	}
	return n.world
}

// Reparent moves id and its subtree under parent.
func (t *TransformTree) Reparent(id, parent NodeID) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if !parent.IsRoot() {
		if _, err := t.node(parent); err != nil {
			return err
		}
		for a := parent.index; a != 0; a = t.nodes[a-1].parent {
			if a == id.index {
				return ErrCycle
			}
		}
	}
	if n.parent != 0 {
		p := &t.nodes[n.parent-1]
		p.children = deleteValue(p.children, id.index)
	}
	n.parent = parent.index
	if parent.index != 0 {
		p := &t.nodes[parent.index-1]
		p.children = append(p.children, id.index)
	}
	t.markDirty(id.index)
	return nil
}

// Remove deletes id and its subtree.
func (t *TransformTree) Remove(id NodeID) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if n.parent != 0 {
		p := &t.nodes[n.parent-1]
		p.children = deleteValue(p.children, id.index)
	}
	t.release(id.index)
	return nil
}

func (t *TransformTree) release(slot uint32) {
	n := &t.nodes[slot-1]
	for _, c := range n.children {
		t.release(c)
	}
	n.alive = false
	n.gen++
	n.children = n.children[:0]
	t.free = append(t.free, slot)
	t.live--
}
