package starship

// nodeIDCounter is a plain counter (no atomic, the scene graph is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Listener is notified synchronously after a node mutates. Implementations
// must be comparable (typically a pointer) so registration has set semantics.
type Listener interface {
	NodeChanged(n *Node)
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node kinds; per-kind behavior is looked up in kindTable.
//
// Every node caches its global transform. The cache is recomputed for the
// whole subtree synchronously on each local change, so Global, HitTest and
// rendering can always rely on it.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Kind NodeKind

	// Hierarchy
	parent   *Node
	children []*Node

	// Transforms
	local  Affine
	global Affine

	// Local bounding box, in the node's own coordinate space.
	bounds Rect

	// Interactive nodes participate in HitTest.
	Interactive bool
	visible     bool

	listeners []Listener

	// Per-kind state (nil unless the kind uses it)
	body   *bodyState
	star   *starState
	fire   *fireState
	status *statusState
}

// NewNode creates a detached node of the given kind with the kind's default
// bounding box and interactivity.
func NewNode(kind NodeKind, name string) *Node {
	b := kindTable[kind]
	n := &Node{
		ID:          nextNodeID(),
		Name:        name,
		Kind:        kind,
		local:       identityTransform,
		global:      identityTransform,
		bounds:      b.bounds,
		Interactive: b.interactive,
		visible:     !b.hidden,
	}
	if b.init != nil {
		b.init(n)
	}
	return n
}

// --- Accessors ---

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// Local returns the transform relative to the parent.
func (n *Node) Local() Affine { return n.local }

// Global returns the cached transform relative to the root.
func (n *Node) Global() Affine { return n.global }

// Bounds returns the local bounding box.
func (n *Node) Bounds() Rect { return n.bounds }

// Visible reports whether the node and its subtree are drawn.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the node and notifies listeners when the value changes.
func (n *Node) SetVisible(v bool) {
	if n.visible == v {
		return
	}
	n.visible = v
	n.Notify()
}

// --- Tree manipulation ---

// AddChild attaches child to n. See Attach.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("starship: cannot add nil child")
	}
	child.Attach(n)
}

// Attach makes n a child of parent and recomputes the global transforms of n's
// subtree. Attaching to the current parent is a no-op. A node attached
// elsewhere is removed from its old parent first.
// Panics if parent is nil or n is an ancestor of parent (cycle).
func (n *Node) Attach(parent *Node) {
	if parent == nil {
		panic("starship: cannot attach to nil parent")
	}
	if n.parent == parent {
		return
	}
	if isAncestor(n, parent) {
		panic("starship: attaching node would create a cycle")
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
	}
	n.parent = parent
	parent.children = append(parent.children, n)
	n.updateGlobal()
	if globalDebug {
		debugCheckTreeDepth(n)
	}
}

// Detach removes n from its parent. Siblings are untouched; n's subtree
// becomes its own tree, so its global transforms fall back to the local ones.
// No-op if n has no parent.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	n.parent.removeChildByPtr(n)
	n.parent = nil
	n.updateGlobal()
}

// --- Mutation ---

// Rotate rotates n by theta radians about (x, y) in its current local frame.
func (n *Node) Rotate(theta, x, y float64) {
	n.local.Rotate(theta, x, y)
	n.changed()
}

// Translate moves n by (dx, dy) in its current local frame.
func (n *Node) Translate(dx, dy float64) {
	n.local.Translate(dx, dy)
	n.changed()
}

// Scale scales n in its current local frame. Near-zero factors are rejected
// with ErrDegenerateScale and nothing changes.
func (n *Node) Scale(sx, sy float64) error {
	if err := n.local.Scale(sx, sy); err != nil {
		return err
	}
	n.changed()
	return nil
}

// TranslateGlobal moves n by (dx, dy) expressed in root coordinates. Both
// endpoints of the delta are mapped through the inverse global transform and
// the difference is applied with Translate. Returns ErrSingular without
// moving when the global transform cannot be inverted.
func (n *Node) TranslateGlobal(dx, dy float64) error {
	lx, ly, err := n.globalDeltaToLocal(dx, dy)
	if err != nil {
		return err
	}
	n.Translate(lx, ly)
	return nil
}

// globalDeltaToLocal converts a root-space delta into n's local frame.
func (n *Node) globalDeltaToLocal(dx, dy float64) (float64, float64, error) {
	inv, err := n.global.Invert()
	if err != nil {
		return 0, 0, err
	}
	var pts [2]Vec2
	pts[1] = Vec2{dx, dy}
	inv.TransformPoints(pts[:], pts[:])
	return pts[1].X - pts[0].X, pts[1].Y - pts[0].Y, nil
}

// changed recomputes the subtree and notifies n's listeners once.
func (n *Node) changed() {
	n.updateGlobal()
	n.Notify()
}

// updateGlobal recomputes n's global transform from its parent, then each
// descendant top-down.
func (n *Node) updateGlobal() {
	if n.parent != nil {
		n.global = multiplyAffine(n.parent.global, n.local)
	} else {
		n.global = n.local
	}
	for _, child := range n.children {
		child.updateGlobal()
	}
}

// --- Hit testing ---

// HitTest reports whether the root-space point (x, y) falls inside n's
// bounding box. Non-interactive nodes and nodes with a singular global
// transform never report a hit.
func (n *Node) HitTest(x, y float64) bool {
	if !n.Interactive {
		return false
	}
	inv, err := n.global.Invert()
	if err != nil {
		return false
	}
	lx, ly := inv.Apply(x, y)
	return n.bounds.Contains(lx, ly)
}

// --- Coordinate conversion ---

// WorldToLocal converts a root-space point to this node's local coordinate space.
// A singular global transform maps the point unchanged.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv, _ := n.global.Invert()
	return inv.Apply(wx, wy)
}

// LocalToWorld converts a local-space point to root space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.global.Apply(lx, ly)
}

// --- Listeners ---

// AddListener registers l. Adding a listener twice is a no-op.
func (n *Node) AddListener(l Listener) {
	for _, existing := range n.listeners {
		if existing == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

// RemoveListener unregisters l. Removing an absent listener is a no-op.
func (n *Node) RemoveListener(l Listener) {
	for i, existing := range n.listeners {
		if existing == l {
			copy(n.listeners[i:], n.listeners[i+1:])
			n.listeners[len(n.listeners)-1] = nil
			n.listeners = n.listeners[:len(n.listeners)-1]
			return
		}
	}
}

// NumListeners returns the number of registered listeners.
func (n *Node) NumListeners() int {
	return len(n.listeners)
}

// Notify calls every registered listener once, in registration order.
func (n *Node) Notify() {
	for _, l := range n.listeners {
		l.NodeChanged(n)
	}
}

// --- Rendering ---

// RenderAll draws n and its subtree. The painter state is saved, n's local
// transform is applied, n draws itself at its local origin, children are
// drawn in order, and the painter state is restored. Hidden nodes skip their
// whole subtree.
func (n *Node) RenderAll(p Painter) {
	if !n.visible {
		return
	}
	p.Save()
	p.Transform(n.local)
	if draw := kindTable[n.Kind].draw; draw != nil {
		draw(n, p)
	}
	for _, child := range n.children {
		child.RenderAll(p)
	}
	p.Restore()
}

// Walk calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
