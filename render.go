package drift

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Style controls how Render draws a node.
type Style struct {
	// Fill is the polygon fill color, used when Image is nil. A transparent
	// fill draws nothing.
	Fill Color
	// Image, when non-nil, is drawn centered on the node origin instead of
	// the filled bounds.
	Image *ebiten.Image
	// Alpha multiplies the node's and its subtree's opacity.
	Alpha float64
}

// Surface is a render target. Points handed to FillPolygon are already in
// surface coordinates; the slice is only valid for the duration of the call.
type Surface interface {
	// Bounds returns the drawable area in surface coordinates.
	Bounds() Rect
	// Clear fills the whole surface with c.
	Clear(c Color)
	// FillPolygon fills the closed polygon pts with c.
	FillPolygon(pts []Vec2, c Color)
	// DrawImage draws img transformed by m (image pixel space to surface),
	// tinted by c.
	DrawImage(img *ebiten.Image, m Transform, c Color)
}

// Render draws the tree depth-first onto dst using each node's world
// transform, composed with the camera view when a camera is set. Disabled
// subtrees are skipped. Render works the same whether or not the scene is
// paused.
func (s *Scene) Render(dst Surface) {
	if dst == nil {
		return
	}
	if !s.ClearColor.Transparent() {
		dst.Clear(s.ClearColor)
	}
	view := identityTransform
	if s.camera != nil {
		view = s.camera.computeViewMatrix()
	}
	s.stats.Drawn = 0
	s.renderNode(dst, dst.Bounds(), s.root, view, 1)
}

// renderNode draws n and its subtree. Render runs no game code, so the
// child list is iterated directly.
func (s *Scene) renderNode(dst Surface, clip Rect, n *Node, parent Transform, parentAlpha float64) {
	if !n.enabled {
		return
	}
	world := multiplyAffine(parent, n.transform)
	alpha := parentAlpha * n.Style.Alpha

	if alpha > 0 {
		switch {
		case n.Style.Image != nil:
			s.drawImage(dst, clip, n, world, alpha)
		case n.bounds != nil && n.bounds.Len() >= 3 && !n.Style.Fill.Transparent():
			s.renderBuf = n.bounds.Transformed(world, s.renderBuf[:0])
			if rectFromPoints(s.renderBuf).Intersects(clip) {
				c := n.Style.Fill
				c.A *= alpha
				dst.FillPolygon(s.renderBuf, c)
				s.stats.Drawn++
			}
		}
	}

	for _, child := range n.children {
		s.renderNode(dst, clip, child, world, alpha)
	}
}

// drawImage draws the node image centered on the node origin.
func (s *Scene) drawImage(dst Surface, clip Rect, n *Node, world Transform, alpha float64) {
	b := n.Style.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	m := world
	m.Translate(-w/2, -h/2)
	if !worldAABB(m, w, h).Intersects(clip) {
		return
	}
	dst.DrawImage(n.Style.Image, m, Color{1, 1, 1, alpha})
	s.stats.Drawn++
}

// worldAABB computes the axis-aligned bounding box for a rectangle of size (w, h)
// transformed by the given affine matrix. Zero allocations.
func worldAABB(m Transform, w, h float64) Rect {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, 0)
	x2, y2 := transformPoint(m, w, h)
	x3, y3 := transformPoint(m, 0, h)

	minX := min(x0, x1, x2, x3)
	minY := min(y0, y1, y2, y3)
	maxX := max(x0, x1, x2, x3)
	maxY := max(y0, y1, y2, y3)

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
