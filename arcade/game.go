// Package arcade implements the rules of a Destroids-style arcade shooter on
// top of the drift engine: a ship, asteroids that split, a laser-firing
// saucer, energy and repair drops, particle explosions and levels.
//
// A Game drives itself from the scene root's behavior, so a host only has to
// feed Controls and call Scene.Update and Scene.Render every frame.
package arcade

import (
	"math"
	"math/rand/v2"

	"github.com/phanxgames/drift"
	"go.uber.org/zap"
)

// Controls is the player input for the current frame.
type Controls struct {
	Thrust bool
	Left   bool
	Right  bool
	Fire   bool
}

// ScoreReason tells what a score entry was awarded for. The values are the
// journal codes submitted with a score, which start at 2; keep them stable.
type ScoreReason uint8

const (
	ScoreUFODestroyed ScoreReason = iota + 2
	ScoreRepairKit
	ScoreEnergy
	ScoreSmallShot
	ScoreLargeShot
	ScoreSmallRammed
	ScoreLargeRammed
	ScoreUFORammed
	ScoreEjectBonus
)

// ScoreEntry is one line of the score journal.
type ScoreEntry struct {
	Points int
	Reason ScoreReason
	At     float64 // game clock in seconds
}

// timer runs fn once the game clock reaches at.
type timer struct {
	at float64
	fn func()
}

// Game holds the state of one arcade session.
type Game struct {
	cfg   Config
	scene *drift.Scene
	root  *drift.Node
	log   *zap.Logger
	rng   *rand.Rand

	// Controls is read every frame while a ship is alive.
	Controls Controls

	ship *Ship

	level        int
	score        int
	journal      []ScoreEntry
	asteroids    int
	ufos         int
	lastUFOLevel int
	gameOver     bool
	ejecting     bool

	clock  float64
	timers []timer
	due    []timer
}

// NewGame attaches a game to scene and shows the intro: a couple of drifting
// asteroids and a saucer. Call Start to begin playing. A nil logger is
// replaced by the scene's logger.
func NewGame(scene *drift.Scene, cfg Config, log *zap.Logger) *Game {
	if log == nil {
		log = scene.Logger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Game{
		cfg:      cfg,
		scene:    scene,
		root:     scene.Root(),
		log:      log,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		gameOver: true,
	}
	g.root.SetBehavior(g)
	g.Intro()
	return g
}

// Update advances timers and applies Controls. The scene calls it through
// the root node's behavior before any entity is updated.
func (g *Game) Update(_ *drift.Node, dt float64) {
	g.clock += dt
	g.runTimers()
	if g.ship != nil && !g.gameOver {
		g.ship.apply(g.Controls)
	}
}

// after schedules fn to run delay seconds from now on the game clock.
func (g *Game) after(delay float64, fn func()) {
	g.timers = append(g.timers, timer{at: g.clock + delay, fn: fn})
}

// runTimers fires every due timer. Timers scheduled by a firing timer wait
// for the next frame.
func (g *Game) runTimers() {
	g.due = g.due[:0]
	kept := g.timers[:0]
	for _, t := range g.timers {
		if t.at <= g.clock {
			g.due = append(g.due, t)
		} else {
			kept = append(kept, t)
		}
	}
	clear(g.timers[len(kept):])
	g.timers = kept
	for _, t := range g.due {
		t.fn()
	}
	clear(g.due)
}

// Start clears the playfield and begins a new game at level 1.
func (g *Game) Start() {
	g.root.SetPhysics(nil)
	g.root.Transform().SetIdentity()
	g.root.RemoveChildren()
	clear(g.timers)
	g.timers = g.timers[:0]
	g.asteroids = 0
	g.ufos = 0
	g.ejecting = false

	g.ship = newShip(g)
	g.root.AppendChild(g.ship.node)
	g.score = 0
	g.journal = g.journal[:0]
	g.lastUFOLevel = 0
	g.gameOver = false
	g.log.Info("game started", zap.Uint64("frame", g.scene.Frame()))
	g.setLevel(1)
}

// Intro resets the playfield to the attract mode shown between games.
func (g *Game) Intro() {
	g.destroyGame()
	for i := g.asteroids; i < 2; i++ {
		g.root.AppendChild(newAsteroid(g, false, nil, 0).node)
	}
	g.newUFO()
}

// Pause freezes the scene, including game timers.
func (g *Game) Pause() {
	g.scene.Pause()
}

// Resume undoes Pause.
func (g *Game) Resume() {
	g.scene.Resume()
}

// Eject ends a running game by spinning the whole playfield away. The score
// earns a bonus of 100 points per full 1000.
func (g *Game) Eject() {
	if g.gameOver {
		return
	}
	g.ejecting = true
	g.root.SetPhysics(drift.NewPhysics().
		SetScaling(0.7).
		SetSpin(45 * math.Pi / 180))
	bonus := g.score / 1000 * 100
	g.register(bonus, ScoreEjectBonus)
	g.gameOver = true
	g.log.Info("ejected", zap.Int("score", g.score), zap.Int("bonus", bonus))
	g.after(g.cfg.Timing.OverDelay, g.Intro)
}

// endGame is called when the ship is destroyed.
func (g *Game) endGame() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.log.Info("game over", zap.Int("score", g.score), zap.Int("level", g.level))
	g.after(g.cfg.Timing.OverDelay, g.Intro)
}

// destroyGame removes everything left over from the previous game.
func (g *Game) destroyGame() {
	g.root.SetPhysics(nil)
	g.root.Transform().SetIdentity()
	g.asteroids = 0
	if g.ejecting {
		g.root.RemoveChildren()
		g.ufos = 0
	} else {
		g.destroyAll()
	}
	g.ejecting = false
	g.ship = nil
}

// destroyer is implemented by entities that explode when cleared.
type destroyer interface {
	destroy()
}

// destroyAll blows up every entity on the playfield.
func (g *Game) destroyAll() {
	for _, n := range append([]*drift.Node(nil), g.root.Children()...) {
		if d, ok := n.UserData.(destroyer); ok {
			d.destroy()
		} else {
			n.Remove()
		}
	}
}

// setLevel spawns the asteroids of level: one large rock plus one per three
// levels, and level%3 small ones.
func (g *Game) setLevel(level int) {
	if g.gameOver {
		return
	}
	g.level = level
	g.asteroids = 0
	for range 1 + level/3 {
		g.root.AppendChild(newAsteroid(g, false, nil, 0).node)
	}
	for range level % 3 {
		g.root.AppendChild(newAsteroid(g, true, nil, 0).node)
	}
	g.log.Info("level started", zap.Int("level", level), zap.Int("asteroids", g.asteroids))
}

func (g *Game) completeLevel() {
	next := g.level + 1
	g.log.Info("level complete", zap.Int("level", g.level), zap.Int("score", g.score))
	g.after(g.cfg.Timing.LevelDelay, func() { g.setLevel(next) })
}

func (g *Game) addAsteroid() {
	if g.gameOver {
		return
	}
	g.asteroids++
}

// removeAsteroid counts a destroyed rock. The last one completes the level;
// otherwise a saucer may show up, more likely the fewer rocks remain.
func (g *Game) removeAsteroid() {
	if g.gameOver {
		return
	}
	g.asteroids--
	if g.asteroids <= 0 {
		g.asteroids = 0
		g.completeLevel()
		return
	}
	if g.rng.IntN(g.asteroids) == 0 {
		g.newUFO()
	}
}

// newUFO spawns a saucer in the intro, or once per level while none is alive.
func (g *Game) newUFO() {
	if !g.cfg.ufoEnabled() {
		return
	}
	if g.gameOver || (g.lastUFOLevel < g.level && g.ufos == 0) {
		g.root.AppendChild(newUFO(g).node)
		g.lastUFOLevel = g.level
		g.log.Debug("ufo spawned", zap.Int("level", g.level))
	}
}

// register adds points to the score and the journal.
func (g *Game) register(points int, reason ScoreReason) {
	g.score += points
	g.journal = append(g.journal, ScoreEntry{Points: points, Reason: reason, At: g.clock})
}

// award registers base*level points unless the game is over.
func (g *Game) award(base int, reason ScoreReason) {
	if g.gameOver {
		return
	}
	g.register(base*g.level, reason)
}

// wrap moves n to the opposite edge once its origin leaves the playfield by
// more than half the bounds. Nothing wraps while ejecting.
func (g *Game) wrap(n *drift.Node, bounds *drift.Polygon) {
	if g.ejecting {
		return
	}
	bb := bounds.BoundingBox()
	rx := (g.cfg.Width + bb.Width) / 2
	ry := (g.cfg.Height + bb.Height) / 2
	t := n.Transform()
	p := t.Translation()
	switch {
	case p.X > rx:
		p.X = -rx
	case p.X < -rx:
		p.X = rx
	}
	switch {
	case p.Y > ry:
		p.Y = -ry
	case p.Y < -ry:
		p.Y = ry
	}
	t.SetTranslation(p.X, p.Y)
}

// randomHeading returns a heading in degrees that keeps at least 22.5
// degrees away from the axes, so nothing drifts along the edge forever.
func (g *Game) randomHeading() float64 {
	return saneHeading(22.5 + g.rng.Float64()*45 + float64(g.rng.IntN(4))*90)
}

func saneHeading(heading float64) float64 {
	tmp := math.Mod(math.Mod(heading, 360)+360, 90)
	if tmp < 22.5 {
		heading += 22.5 - tmp
	}
	if tmp > 90-22.5 {
		heading -= tmp - (90 - 22.5)
	}
	return heading
}

// spawnRadius is the distance from the center at which an entity with the
// given bounds is just outside the playfield corner.
func (g *Game) spawnRadius(bounds *drift.Polygon) float64 {
	bb := bounds.BoundingBox()
	return math.Hypot(g.cfg.Width/2+bb.Width/2, g.cfg.Height/2+bb.Height/2)
}

// Scene returns the scene the game runs in.
func (g *Game) Scene() *drift.Scene { return g.scene }

// Config returns the game tuning.
func (g *Game) Config() Config { return g.cfg }

// Ship returns the player's ship, or nil outside a running game.
func (g *Game) Ship() *Ship { return g.ship }

// Level returns the current level.
func (g *Game) Level() int { return g.level }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Journal returns the score entries of the current game.
func (g *Game) Journal() []ScoreEntry { return g.journal }

// Asteroids returns the number of asteroids left in the level.
func (g *Game) Asteroids() int { return g.asteroids }

// UFOs returns the number of saucers alive.
func (g *Game) UFOs() int { return g.ufos }

// GameOver reports whether no game is running.
func (g *Game) GameOver() bool { return g.gameOver }

// Ejecting reports whether the eject animation is running.
func (g *Game) Ejecting() bool { return g.ejecting }

// Clock returns the game time in seconds.
func (g *Game) Clock() float64 { return g.clock }
