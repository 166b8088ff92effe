package arcade

import (
	"math"

	"github.com/phanxgames/drift"
)

// DropKind tells what a drop gives the ship.
type DropKind uint8

const (
	DropEnergy DropKind = iota
	DropRepair
)

// Drop is a collectible left behind by a destroyed saucer. It slows down,
// spins and vanishes after a while.
type Drop struct {
	g    *Game
	node *drift.Node
	kind DropKind
}

func newDrop(g *Game, kind DropKind) *Drop {
	d := &Drop{g: g, kind: kind}
	n := drift.NewPolygonNode("drop", DropBounds)
	n.UserData = d
	d.node = n
	switch kind {
	case DropRepair:
		n.Name = "repair-kit"
		n.Style.Fill = colorRepair
	default:
		n.Name = "energy"
		n.Style.Fill = colorEnergy
	}

	n.SetPhysics(drift.NewPhysics().
		SetLifetime(g.cfg.Drop.Lifetime).
		SetDecay(g.cfg.Drop.Decay).
		SetSpin(drift.Range{Min: -math.Pi / 2, Max: math.Pi / 2}.RandomFrom(g.rng)))

	n.SetCollisionType(TypeDrop)
	n.SetBehavior(d)
	return d
}

// Node returns the scene node of the drop.
func (d *Drop) Node() *drift.Node { return d.node }

// Kind returns what the drop gives.
func (d *Drop) Kind() DropKind { return d.kind }

// Update wraps the drop around the playfield.
func (d *Drop) Update(n *drift.Node, _ float64) {
	d.g.wrap(n, DropBounds)
}

func (d *Drop) destroy() {
	if d.node.Parent() == nil {
		return
	}
	d.g.Explode(d.node, ExplosionRock)
	d.node.Remove()
}
