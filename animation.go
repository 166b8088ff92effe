package drift

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenAlpha,
// TweenColor, TweenSpin, TweenScale) and either call Update(dt) each frame
// or hand it to Node.AddTween so the scene drives it after integration.
// If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	apply  func(g *TweenGroup)
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if g.apply != nil {
		g.apply(g)
	}
	g.Done = allDone
}

// AddTween attaches g to the node. The scene advances attached tweens every
// frame after the node's hooks and drops them once Done.
func (n *Node) AddTween(g *TweenGroup) {
	if g == nil {
		return
	}
	n.tweens = append(n.tweens, g)
}

// NumTweens returns the number of tweens still attached to the node.
func (n *Node) NumTweens() int {
	return len(n.tweens)
}

// updateTweens advances and prunes attached tweens in place.
func (n *Node) updateTweens(dt float64) {
	kept := n.tweens[:0]
	for _, g := range n.tweens {
		g.Update(float32(dt))
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(n.tweens[len(kept):])
	n.tweens = kept
}

// TweenPosition creates a TweenGroup that moves the node's local translation
// to (toX, toY) over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.transform[4]), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.transform[5]), float32(toY), duration, fn)
	g.fields[0] = &node.transform[4]
	g.fields[1] = &node.transform[5]
	return g
}

// TweenAlpha creates a TweenGroup that animates the node's Style.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Style.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Style.Alpha
	return g
}

// TweenColor creates a TweenGroup that animates all four components of the
// node's fill color to the target color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := &node.Style.Fill
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// TweenSpin creates a TweenGroup that animates the spin of the node's
// physics. Returns nil when the node has no physics.
func TweenSpin(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := node.physics
	if p == nil {
		return nil
	}
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(p.Spin), float32(to), duration, fn)
	g.fields[0] = &p.Spin
	return g
}

// TweenScale creates a TweenGroup that scales the node's local transform
// uniformly to factor times its current scale. Rotation and translation
// changes made while the tween runs are preserved. A factor of 0 is clamped
// to a tiny positive value so the transform stays invertible.
func TweenScale(node *Node, factor float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	factor = max(factor, 1e-6)
	prev := 1.0
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(1, float32(factor), duration, fn)
	g.fields[0] = new(float64)
	g.apply = func(g *TweenGroup) {
		f := max(*g.fields[0], 1e-6)
		node.transform.Scale(f / prev)
		prev = f
	}
	return g
}
