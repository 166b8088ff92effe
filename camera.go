package drift

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera maps world space onto a rectangle of the render surface. World point
// (X, Y) lands in the middle of Viewport, so a scene whose origin is the
// playfield center needs no extra offset.
type Camera struct {
	X, Y float64
	// Zoom scales the world; values above 1 magnify.
	Zoom float64
	// Rotation turns the view clockwise, in radians.
	Rotation float64
	// Viewport is the surface rectangle the camera renders into.
	Viewport Rect

	follow *cameraFollow
	scroll *cameraScroll

	view, inv Transform
	key       cameraKey
	cached    bool
}

type cameraFollow struct {
	target *Node
	offset Vec2
	lerp   float64
}

// cameraScroll eases X and Y independently; each axis stops once its tween
// reports done.
type cameraScroll struct {
	x, y         *gween.Tween
	doneX, doneY bool
}

// cameraKey holds every field the view depends on.
type cameraKey struct {
	x, y, zoom, rotation float64
	viewport             Rect
}

// NewCamera returns an unrotated camera at the world origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// Follow tracks target, keeping target+offset centered. Each frame the camera
// closes lerp of the remaining distance; 1 snaps.
func (c *Camera) Follow(target *Node, offsetX, offsetY, lerp float64) {
	c.follow = &cameraFollow{target: target, offset: Vec2{offsetX, offsetY}, lerp: lerp}
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() {
	c.follow = nil
}

// ScrollTo eases the camera to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	c.scroll = &cameraScroll{
		x: gween.New(float32(c.X), float32(x), duration, fn),
		y: gween.New(float32(c.Y), float32(y), duration, fn),
	}
}

// Scrolling reports whether a ScrollTo is in progress.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

func (c *Camera) update(dt float32) {
	if f := c.follow; f != nil && !f.target.IsDisposed() {
		p := f.target.WorldPosition().Add(f.offset)
		c.X += (p.X - c.X) * f.lerp
		c.Y += (p.Y - c.Y) * f.lerp
	}

	s := c.scroll
	if s == nil {
		return
	}
	var v float32
	if !s.doneX {
		v, s.doneX = s.x.Update(dt)
		c.X = float64(v)
	}
	if !s.doneY {
		v, s.doneY = s.y.Update(dt)
		c.Y = float64(v)
	}
	if s.doneX && s.doneY {
		c.scroll = nil
	}
}

// computeViewMatrix returns the world-to-surface transform, rebuilding it only
// when a field changed:
//
//	Translate(viewport center) · Scale(Zoom) · Rotate(-Rotation) · Translate(-X, -Y)
func (c *Camera) computeViewMatrix() Transform {
	key := cameraKey{c.X, c.Y, c.Zoom, c.Rotation, c.Viewport}
	if c.cached && key == c.key {
		return c.view
	}
	center := c.Viewport.Center()
	c.view = Identity()
	c.view.Translate(center.X, center.Y).Scale(c.Zoom).Rotate(-c.Rotation).Translate(-c.X, -c.Y)
	c.inv = c.view.Invert()
	c.key = key
	c.cached = true
	return c.view
}

// WorldToScreen maps a world point onto the surface.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	p := c.computeViewMatrix().Apply(Vec2{wx, wy})
	return p.X, p.Y
}

// ScreenToWorld maps a surface point back into the world.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	p := c.inv.Apply(Vec2{sx, sy})
	return p.X, p.Y
}

// VisibleBounds returns the world-space bounding box of the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	m := c.inv
	m.Translate(c.Viewport.X, c.Viewport.Y)
	return worldAABB(m, c.Viewport.Width, c.Viewport.Height)
}
