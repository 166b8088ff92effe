package drift

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// EventSink is the interface for optional ECS integration.
// When set on a Scene, every reported collision is forwarded to it.
type EventSink interface {
	EmitCollision(event CollisionEvent)
}

// CollisionEvent describes one overlapping pair found in a frame.
type CollisionEvent struct {
	Frame        uint64
	A, B         uint32 // node IDs
	NameA, NameB string
	TypeA, TypeB CollisionType
}

// FrameStats summarizes the work done by the most recent Update.
type FrameStats struct {
	Frame      uint64
	Visited    int // nodes reached by the update traversal
	Integrated int // nodes with physics that were stepped
	Expired    int // nodes removed because their lifetime ran out
	Collidable int // nodes taking part in the collision pass
	Pairs      int // mask-eligible pairs tested
	Hits       int // overlapping pairs reported
	Recovered  int // panics recovered from hooks and handlers
	Drawn      int // nodes drawn by the most recent Render

	UpdateTime    time.Duration
	CollisionTime time.Duration
}

// Scene is the top-level object that owns the node tree and drives the frame
// loop: Update integrates and detects collisions, Render draws.
type Scene struct {
	root   *Node
	sink   EventSink
	camera *Camera
	debug  bool
	logger *zap.Logger

	paused bool
	frame  uint64
	stats  FrameStats

	// ClearColor fills the surface before Render when its alpha is non-zero.
	ClearColor Color

	updateFunc func() error
	updateErr  error

	// Traversal scratch: child-list snapshots for the update walk.
	walk []*Node

	// Collision scratch, reused across frames.
	colliders []collider
	points    []Vec2

	// Render scratch.
	renderBuf []Vec2
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{
		root:   NewNode("root"),
		logger: zap.NewNop(),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetRoot replaces the root node. The previous root is detached from the
// scene but not disposed. Panics if root is nil.
func (s *Scene) SetRoot(root *Node) {
	if root == nil {
		panic("drift: scene root cannot be nil")
	}
	root.Remove()
	s.root = root
}

// Update advances the scene by dt seconds: it runs the host update func,
// integrates physics and runs update hooks depth-first, then performs one
// collision pass over the resulting tree. Does nothing while paused.
//
// Update never panics because of game code: panics raised by hooks and
// collision handlers are recovered and logged.
func (s *Scene) Update(dt float64) {
	if s.paused {
		return
	}
	s.frame++
	s.stats = FrameStats{Frame: s.frame}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.updateFunc != nil {
		s.runUpdateFunc()
	}
	if s.camera != nil {
		s.camera.update(float32(dt))
	}
	s.updateNode(s.root, dt)

	if s.debug {
		s.stats.UpdateTime = time.Since(t0)
		t0 = time.Now()
	}

	s.detectCollisions()

	if s.debug {
		s.stats.CollisionTime = time.Since(t0)
		s.debugLog(s.stats)
	}
}

// updateNode integrates n, runs its hooks, then visits its children. The
// child list is snapshotted before the visit so hooks may append or remove
// nodes anywhere in the tree: removed children are skipped, appended ones are
// first visited next frame. Once n or any ancestor is removed or disabled, the
// rest of the subtree waits for the next frame.
func (s *Scene) updateNode(n *Node, dt float64) {
	if !n.enabled || n.frame == s.frame {
		return
	}
	n.frame = s.frame
	s.stats.Visited++

	if n.physics != nil {
		s.stats.Integrated++
		if !n.physics.step(&n.transform, dt) {
			s.stats.Expired++
			if n.parent == nil {
				// A root cannot be removed; its physics ends instead.
				n.physics = nil
			} else {
				n.Remove()
				return
			}
		}
	}

	if n.behavior != nil {
		s.invokeBehavior(n, dt)
		if !s.live(n) {
			return
		}
	}
	if n.OnUpdate != nil {
		s.invokeOnUpdate(n, dt)
		if !s.live(n) {
			return
		}
	}
	if len(n.tweens) > 0 {
		n.updateTweens(dt)
	}

	if len(n.children) == 0 {
		return
	}
	start := len(s.walk)
	s.walk = append(s.walk, n.children...)
	end := len(s.walk)
	for i := start; i < end; i++ {
		child := s.walk[i]
		if child.parent != n {
			continue
		}
		s.updateNode(child, dt)
		if !s.live(n) {
			break
		}
	}
	clear(s.walk[start:end])
	s.walk = s.walk[:start]
}

// live reports whether n is enabled, attached to this scene's root and has
// no disabled ancestor.
func (s *Scene) live(n *Node) bool {
	for p := n; p != nil; p = p.parent {
		if !p.enabled || p.disposed {
			return false
		}
		if p == s.root {
			return true
		}
	}
	return false
}

func (s *Scene) invokeBehavior(n *Node, dt float64) {
	defer s.recoverHook(n, "behavior")
	n.behavior.Update(n, dt)
}

func (s *Scene) invokeOnUpdate(n *Node, dt float64) {
	defer s.recoverHook(n, "OnUpdate")
	n.OnUpdate(dt)
}

func (s *Scene) runUpdateFunc() {
	defer s.recoverHook(s.root, "update func")
	if err := s.updateFunc(); err != nil && s.updateErr == nil {
		s.updateErr = err
	}
}

// recoverHook converts a panic raised by game code into a logged error so
// the frame always completes. Must be deferred directly.
func (s *Scene) recoverHook(n *Node, where string) {
	if r := recover(); r != nil {
		s.stats.Recovered++
		err := fmt.Errorf("drift: panic in %s of node %q: %v", where, n.Name, r)
		s.logger.Error("recovered panic",
			zap.Error(err),
			zap.Uint64("frame", s.frame),
			zap.Uint32("node", n.ID),
		)
	}
}

// Pause stops Update from integrating and detecting collisions. Render keeps
// drawing the frozen state.
func (s *Scene) Pause() {
	s.paused = true
}

// Resume undoes Pause.
func (s *Scene) Resume() {
	s.paused = false
}

// Paused reports whether the scene is paused.
func (s *Scene) Paused() bool {
	return s.paused
}

// Frame returns the number of Update calls that advanced the scene.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Stats returns the statistics of the most recent frame.
func (s *Scene) Stats() FrameStats {
	return s.stats
}

// SetUpdateFunc sets a host callback that Update runs before the traversal.
// The first error it returns is kept and reported by Err; Run stops the game
// loop with it.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Err returns the error returned by the update func, if any.
func (s *Scene) Err() error {
	return s.updateErr
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetCamera sets the camera used by Render. nil renders with the identity view.
func (s *Scene) SetCamera(cam *Camera) {
	s.camera = cam
}

// Camera returns the scene camera or nil.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetLogger sets the logger used for diagnostics and recovered panics.
// nil restores the no-op logger.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
	if s.debug {
		debugLogger = l
	}
}

// Logger returns the scene logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and per-frame
// stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.logger
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLogger is the logger of the scene that last enabled debug mode.
var debugLogger = zap.NewNop()
