package drift

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Updater is implemented by per-entity behavior attached to a node. Update is
// called once per frame after the node's physics has been integrated, so it
// observes the already-moved transform.
type Updater interface {
	Update(n *Node, dt float64)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(n *Node, dt float64)

// Update calls f(n, dt).
func (f UpdaterFunc) Update(n *Node, dt float64) {
	f(n, dt)
}

// CollisionHandler receives a collision notification. self is the node the
// handler was connected to; other is the node it overlaps.
type CollisionHandler func(self, other *Node)

// collisionListener pairs a handler with the collider types it listens for.
type collisionListener struct {
	types   CollisionType
	handler CollisionHandler
}

// --- ID counter ---

// nodeIDCounter is a plain counter; trees are only touched from the frame loop.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. It combines a local transform,
// optional physics, optional collision bounds, a render style and behavior
// hooks. A single flat struct is used for every entity kind; behavior is
// attached through Updater and collision handlers rather than embedding.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children []*Node

	// Local transform relative to the parent.
	transform Transform

	physics *Physics
	bounds  *Polygon

	// Style controls how Render draws the node.
	Style Style

	enabled bool

	// Collision
	collisionType CollisionType
	collisionMask CollisionType
	listeners     []collisionListener

	// Behavior
	behavior Updater
	// OnUpdate, when set, is called every frame after the behavior.
	OnUpdate func(dt float64)
	tweens   []*TweenGroup

	// Metadata
	UserData any

	// Internal
	frame    uint64 // last frame this node was integrated
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.transform = identityTransform
	n.enabled = true
	n.Style = Style{Alpha: 1}
}

// NewNode creates an empty group node with no bounds and no visual output.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewPolygonNode creates a node that uses poly as both collision bounds and
// visual shape, filled white by default. poly is referenced, not copied.
func NewPolygonNode(name string, poly *Polygon) *Node {
	n := NewNode(name)
	n.bounds = poly
	n.Style.Fill = ColorWhite
	return n
}

// NewImageNode creates a node that draws img centered on its origin and uses
// bounds for collision. bounds may be nil.
func NewImageNode(name string, img *ebiten.Image, bounds *Polygon) *Node {
	n := NewNode(name)
	n.bounds = bounds
	n.Style.Image = img
	return n
}

// --- Tree manipulation ---

// AppendChild links child as the last child of this node.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		panic("drift: cannot append nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AppendChild (parent)")
		debugCheckDisposed(child, "AppendChild (child)")
	}
	if isAncestor(child, n) {
		panic("drift: appending child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// InsertBefore links child directly before ref. If ref is nil or not a child
// of this node, child is appended. Same reparenting and cycle-check behavior
// as AppendChild.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref == nil || ref.parent != n || ref == child {
		n.AppendChild(child)
		return
	}
	if child == nil {
		panic("drift: cannot insert nil child")
	}
	if isAncestor(child, n) {
		panic("drift: inserting child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	index := n.indexOf(ref)
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild detaches child from this node.
// No-op if child is nil or not a child of this node.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.parent = nil
}

// Remove detaches this node from its parent. It is safe to call from inside
// an update hook or collision handler while a traversal is visiting the node
// or its siblings. No-op if this node has no parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// NextSibling returns the sibling following this node, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// PrevSibling returns the sibling preceding this node, or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// Root returns the topmost ancestor of this node (the node itself when it
// has no parent).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsDescendantOf reports whether ancestor is a strict ancestor of this node.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	if ancestor == nil || ancestor == n {
		return false
	}
	return isAncestor(ancestor, n)
}

// --- State ---

// Enable lets the node take part in update, collision and render again.
func (n *Node) Enable() {
	n.enabled = true
}

// Disable freezes the node and its subtree without removing it from the tree:
// no integration, no update hooks, no collisions and no rendering.
func (n *Node) Disable() {
	n.enabled = false
}

// SetEnabled enables or disables the node.
func (n *Node) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Enabled reports whether the node itself is enabled. Ancestors are not
// consulted.
func (n *Node) Enabled() bool {
	return n.enabled
}

// Transform returns the node's local transform for in-place mutation.
func (n *Node) Transform() *Transform {
	return &n.transform
}

// WorldTransform composes the local transform with every ancestor's.
func (n *Node) WorldTransform() Transform {
	m := n.transform
	for p := n.parent; p != nil; p = p.parent {
		m = multiplyAffine(p.transform, m)
	}
	return m
}

// Position returns the translation of the local transform.
func (n *Node) Position() Vec2 {
	return n.transform.Translation()
}

// SetPosition replaces the translation of the local transform.
func (n *Node) SetPosition(x, y float64) {
	n.transform.SetTranslation(x, y)
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() Vec2 {
	return n.WorldTransform().Translation()
}

// SetPhysics attaches p, or detaches physics when p is nil. A node without
// physics is static.
func (n *Node) SetPhysics(p *Physics) {
	n.physics = p
}

// Physics returns the attached physics or nil.
func (n *Node) Physics() *Physics {
	return n.physics
}

// SetBounds sets the collision and visual polygon. nil makes the node
// non-collidable.
func (n *Node) SetBounds(p *Polygon) {
	n.bounds = p
}

// Bounds returns the collision polygon or nil.
func (n *Node) Bounds() *Polygon {
	return n.bounds
}

// SetBehavior attaches per-entity behavior, replacing any previous one.
func (n *Node) SetBehavior(u Updater) {
	n.behavior = u
}

// Behavior returns the attached behavior or nil.
func (n *Node) Behavior() Updater {
	return n.behavior
}

// --- Collision configuration ---

// SetCollisionType sets the category this node belongs to.
func (n *Node) SetCollisionType(t CollisionType) {
	n.collisionType = t
}

// CollisionType returns the node's collision category.
func (n *Node) CollisionType() CollisionType {
	return n.collisionType
}

// SetCollisionMask sets the categories this node wants to be notified about.
func (n *Node) SetCollisionMask(mask CollisionType) {
	n.collisionMask = mask
}

// CollisionMask returns the node's collision mask.
func (n *Node) CollisionMask() CollisionType {
	return n.collisionMask
}

// Connect registers a handler fired for every collider matching the node's
// collision mask. Handlers stay registered for the node's lifetime.
func (n *Node) Connect(h CollisionHandler) {
	n.ConnectMask(^CollisionNone, h)
}

// ConnectMask registers a handler fired only for colliders whose type is in
// types (and in the node's collision mask).
func (n *Node) ConnectMask(types CollisionType, h CollisionHandler) {
	if h == nil {
		return
	}
	n.listeners = append(n.listeners, collisionListener{types: types, handler: h})
}

// Disconnect removes all collision handlers.
func (n *Node) Disconnect() {
	n.listeners = nil
}

// collidable reports whether the node takes part in the collision pass.
func (n *Node) collidable() bool {
	return n.bounds != nil && n.bounds.Len() > 0 &&
		(n.collisionType != CollisionNone || n.collisionMask != CollisionNone)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.Remove()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.physics = nil
	n.bounds = nil
	n.listeners = nil
	n.behavior = nil
	n.OnUpdate = nil
	n.tweens = nil
	n.Style.Image = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// indexOf returns the position of child in n.children, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	if i := n.indexOf(child); i >= 0 {
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
	}
}

// IsAttached reports whether the node has a parent.
func (n *Node) IsAttached() bool {
	return n.parent != nil
}
