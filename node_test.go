package drift

import (
	"math"
	"testing"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("group")
	if n.Name != "group" || n.ID == 0 {
		t.Errorf("name/id = %q/%d", n.Name, n.ID)
	}
	if !n.Enabled() {
		t.Error("new node should be enabled")
	}
	if !n.Transform().IsIdentity() {
		t.Error("new node should have the identity transform")
	}
	if n.Physics() != nil || n.Bounds() != nil || n.Behavior() != nil {
		t.Error("new node should have no physics, bounds or behavior")
	}
	if n.Style.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Style.Alpha)
	}
	if n.collidable() {
		t.Error("a group node is not collidable")
	}
}

func TestNewPolygonNode(t *testing.T) {
	poly := square(10)
	n := NewPolygonNode("box", poly)
	if n.Bounds() != poly {
		t.Error("bounds should reference the template")
	}
	if n.Style.Fill != ColorWhite {
		t.Errorf("Fill = %v, want white", n.Style.Fill)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for range 100 {
		id := NewNode("n").ID
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}

func TestAppendChild(t *testing.T) {
	parent := NewNode("parent")
	a, b := NewNode("a"), NewNode("b")
	parent.AppendChild(a)
	parent.AppendChild(b)

	if parent.NumChildren() != 2 || parent.FirstChild() != a || parent.LastChild() != b {
		t.Fatalf("children = %v", parent.Children())
	}
	if a.Parent() != parent || !a.IsAttached() {
		t.Error("parent link not set")
	}
	if a.NextSibling() != b || b.PrevSibling() != a {
		t.Error("sibling links wrong")
	}
	if a.PrevSibling() != nil || b.NextSibling() != nil {
		t.Error("end siblings should be nil")
	}
	if parent.ChildAt(1) != b {
		t.Error("ChildAt(1) != b")
	}
}

func TestAppendChildReparent(t *testing.T) {
	p1, p2 := NewNode("p1"), NewNode("p2")
	child := NewNode("child")
	p1.AppendChild(child)
	p2.AppendChild(child)

	if p1.NumChildren() != 0 {
		t.Error("child still listed under old parent")
	}
	if child.Parent() != p2 || p2.NumChildren() != 1 {
		t.Error("child not moved to new parent")
	}
}

func TestAppendChildCyclePanic(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	a.AppendChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AppendChild(a)
}

func TestAppendChildSelfPanic(t *testing.T) {
	a := NewNode("a")
	defer func() {
		if recover() == nil {
			t.Error("expected panic when appending to self")
		}
	}()
	a.AppendChild(a)
}

func TestAppendChildNilPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewNode("a").AppendChild(nil)
}

func TestInsertBefore(t *testing.T) {
	parent := NewNode("parent")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertBefore(b, c)

	want := []*Node{a, b, c}
	for i, n := range parent.Children() {
		if n != want[i] {
			t.Fatalf("child %d = %s, want %s", i, n.Name, want[i].Name)
		}
	}

	// A foreign ref appends.
	d := NewNode("d")
	parent.InsertBefore(d, NewNode("stranger"))
	if parent.LastChild() != d {
		t.Error("InsertBefore with foreign ref should append")
	}
}

func TestRemove(t *testing.T) {
	parent := NewNode("parent")
	a, b := NewNode("a"), NewNode("b")
	parent.AppendChild(a)
	parent.AppendChild(b)

	a.Remove()
	if a.Parent() != nil || parent.NumChildren() != 1 || parent.FirstChild() != b {
		t.Error("Remove did not detach the node")
	}
	a.Remove() // no-op on a detached node

	parent.RemoveChild(NewNode("stranger")) // no-op
	if parent.NumChildren() != 1 {
		t.Error("RemoveChild of a stranger changed the children")
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewNode("parent")
	kids := []*Node{NewNode("a"), NewNode("b"), NewNode("c")}
	for _, k := range kids {
		parent.AppendChild(k)
	}
	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent() != nil || k.IsDisposed() {
			t.Errorf("%s should be detached but not disposed", k.Name)
		}
	}
}

func TestRootAndDescendant(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AppendChild(b)
	b.AppendChild(c)

	if c.Root() != a || a.Root() != a {
		t.Error("Root() wrong")
	}
	if !c.IsDescendantOf(a) || a.IsDescendantOf(c) || c.IsDescendantOf(c) {
		t.Error("IsDescendantOf wrong")
	}
}

func TestWorldTransform(t *testing.T) {
	parent := NewNode("parent")
	parent.Transform().Translate(100, 0).Rotate(math.Pi / 2)
	child := NewNode("child")
	child.SetPosition(10, 0)
	parent.AppendChild(child)

	// The parent's quarter turn maps local +X to world +Y.
	assertVec(t, "WorldPosition", child.WorldPosition(), Vec2{100, 10})
	assertVec(t, "Position", child.Position(), Vec2{10, 0})
}

func TestDispose(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	parent.AppendChild(child)
	child.AppendChild(grandchild)
	child.SetPhysics(NewPhysics())

	child.Dispose()
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("Dispose should mark the subtree")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	if child.Physics() != nil || child.ID != 0 {
		t.Error("Dispose should clear state")
	}
	child.Dispose() // idempotent
}

func TestCollidable(t *testing.T) {
	n := NewPolygonNode("n", square(4))
	if n.collidable() {
		t.Error("node without type or mask should not collide")
	}
	n.SetCollisionType(1)
	if !n.collidable() {
		t.Error("typed node with bounds should collide")
	}
	n.SetBounds(NewPolygon())
	if n.collidable() {
		t.Error("empty bounds should not collide")
	}
}

func TestConnectMask(t *testing.T) {
	n := NewNode("n")
	n.Connect(func(_, _ *Node) {})
	n.ConnectMask(2, func(_, _ *Node) {})
	n.ConnectMask(2, nil)
	if len(n.listeners) != 2 {
		t.Fatalf("listeners = %d, want 2", len(n.listeners))
	}
	if n.listeners[0].types != ^CollisionNone || n.listeners[1].types != 2 {
		t.Errorf("listener types = %v, %v", n.listeners[0].types, n.listeners[1].types)
	}
	n.Disconnect()
	if len(n.listeners) != 0 {
		t.Error("Disconnect should drop all handlers")
	}
}

func TestEnableDisable(t *testing.T) {
	n := NewNode("n")
	n.Disable()
	if n.Enabled() {
		t.Error("Disable had no effect")
	}
	n.SetEnabled(true)
	if !n.Enabled() {
		t.Error("SetEnabled(true) had no effect")
	}
}
