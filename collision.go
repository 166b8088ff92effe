package drift

// collider is a node prepared for the collision pass: its bounds mapped to
// world space once per frame.
type collider struct {
	node       *Node
	start, end int // world vertices in Scene.points
	aabb       Rect
}

// detectCollisions runs the per-frame collision pass. Every collidable node
// is gathered with its world polygon, then each unordered pair is tested at
// most once: mask filter (broad phase), bounding box, then the separating
// axis test (narrow phase). Nodes removed or disabled by a handler are
// skipped for the rest of the pass.
func (s *Scene) detectCollisions() {
	s.colliders = s.colliders[:0]
	s.points = s.points[:0]
	s.gatherColliders(s.root, identityTransform)
	s.stats.Collidable = len(s.colliders)

	cs := s.colliders
	for i := 0; i < len(cs); i++ {
		a := &cs[i]
		for j := i + 1; j < len(cs); j++ {
			if !s.live(a.node) {
				break
			}
			b := &cs[j]
			if !eligible(a.node, b.node) || !s.live(b.node) {
				continue
			}
			s.stats.Pairs++
			if !a.aabb.Intersects(b.aabb) {
				continue
			}
			if !polygonsOverlap(s.points[a.start:a.end], s.points[b.start:b.end]) {
				continue
			}
			s.stats.Hits++
			s.dispatch(a.node, b.node)
		}
	}

	clear(cs)
}

// gatherColliders walks the enabled part of the tree computing world
// transforms and records every collidable node.
func (s *Scene) gatherColliders(n *Node, parent Transform) {
	if !n.enabled {
		return
	}
	world := multiplyAffine(parent, n.transform)
	if n.collidable() {
		start := len(s.points)
		s.points = n.bounds.Transformed(world, s.points)
		end := len(s.points)
		s.colliders = append(s.colliders, collider{
			node:  n,
			start: start,
			end:   end,
			aabb:  rectFromPoints(s.points[start:end]),
		})
	}
	for _, child := range n.children {
		s.gatherColliders(child, world)
	}
}

// eligible is the broad phase: the pair is tested when either side's mask
// contains the other side's type.
func eligible(a, b *Node) bool {
	return a.collisionMask.Has(b.collisionType) || b.collisionMask.Has(a.collisionType)
}

// dispatch reports an overlapping pair. Each side is notified only when its
// own mask contains the other's type, and only while both nodes are still
// live, so a handler that removes either node suppresses the other side's
// notification.
func (s *Scene) dispatch(a, b *Node) {
	if s.sink != nil {
		s.sink.EmitCollision(CollisionEvent{
			Frame: s.frame,
			A:     a.ID,
			B:     b.ID,
			NameA: a.Name,
			NameB: b.Name,
			TypeA: a.collisionType,
			TypeB: b.collisionType,
		})
	}
	if a.collisionMask.Has(b.collisionType) {
		s.notify(a, b)
	}
	if b.collisionMask.Has(a.collisionType) {
		s.notify(b, a)
	}
}

// notify runs self's listeners that match other's type.
func (s *Scene) notify(self, other *Node) {
	listeners := self.listeners
	for _, l := range listeners {
		if !s.live(self) || !s.live(other) {
			return
		}
		if !l.types.Has(other.collisionType) {
			continue
		}
		s.invokeHandler(l.handler, self, other)
	}
}

func (s *Scene) invokeHandler(h CollisionHandler, self, other *Node) {
	defer s.recoverHook(self, "collision handler")
	h(self, other)
}

// Collide reports whether the world-space bounds of a and b overlap right
// now, ignoring collision types and masks. Nodes without bounds never
// collide.
func Collide(a, b *Node) bool {
	if a == nil || b == nil || a.bounds == nil || b.bounds == nil {
		return false
	}
	return Overlaps(a.bounds, a.WorldTransform(), b.bounds, b.WorldTransform())
}
