// Package drift is a small retained-mode engine for arcade shooters in the
// style of Asteroids, built on [Ebitengine].
//
// Drift provides the scene graph, affine transforms, per-node kinematics,
// polygon collision with type/mask filtering, a camera and tweens. Game rules
// live outside the engine; see the arcade package for a complete game.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := drift.NewScene()
//	// ... add nodes ...
//	drift.Run(scene, drift.RunConfig{
//		Title: "My Game", Width: 800, Height: 600, Centered: true,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Render] directly:
//
//	type Game struct {
//		scene   *drift.Scene
//		surface *drift.EbitenSurface
//	}
//
//	func (g *Game) Update() error        { g.scene.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.surface.Reset(s); g.scene.Render(g.surface) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// Rendering goes through the [Surface] interface, so the same scene can be
// drawn to a terminal with [TerminalSurface].
//
// # Scene graph
//
// Every entity is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children inherit their parent's transform and alpha. A node's local
// [Transform] is mutated in place:
//
//	ship := drift.NewPolygonNode("ship", shipShape)
//	ship.Transform().Translate(0, 100).Rotate(math.Pi / 4)
//	scene.Root().AppendChild(ship)
//
// # Physics
//
// Attach a [Physics] to make a node move. Each frame the scene integrates
// velocity, spin, decay, scaling and lifetime before the node's behavior
// runs; a node whose lifetime runs out is removed from the tree:
//
//	ship.SetPhysics(drift.NewPhysics().SetMaxVelocity(200))
//	ship.SetBehavior(drift.UpdaterFunc(func(n *drift.Node, dt float64) {
//		// steer by setting n.Physics().Acceleration
//	}))
//
// # Collisions
//
// Nodes carry a [CollisionType] bit and a mask of the types they care about.
// After the update traversal, every eligible pair is tested once with a
// bounding box check followed by the separating axis test. Each side whose
// mask contains the other's type has its handlers called:
//
//	laser.SetCollisionType(TypeLaser)
//	laser.SetCollisionMask(TypeAsteroid)
//	laser.Connect(func(self, other *drift.Node) {
//		self.Remove()
//	})
//
// Handlers may add and remove nodes anywhere in the tree. Removed nodes are
// skipped for the rest of the frame; added ones take part from the next one.
//
// # Key features
//
// Drift also includes a camera with follow and scroll-to, tweens (via
// [gween]), structured logging through [zap], headless frame scripts for
// tests, and collision event forwarding to [Donburi] in drift/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [zap]: https://github.com/uber-go/zap
// [Donburi]: https://github.com/yohamta/donburi
package drift
