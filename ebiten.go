package drift

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used as the source texture for untextured
// polygon fills. Created lazily so importing the package does not touch the
// graphics driver.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// toRGBA converts a straight-alpha Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// EbitenSurface renders onto an *ebiten.Image.
type EbitenSurface struct {
	dst   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface wraps dst. Surfaces are cheap; creating one per frame is
// fine, but reusing one keeps the vertex buffers warm.
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{dst: dst}
}

// Reset points the surface at a new destination image.
func (s *EbitenSurface) Reset(dst *ebiten.Image) {
	s.dst = dst
}

// Bounds returns the destination image bounds.
func (s *EbitenSurface) Bounds() Rect {
	b := s.dst.Bounds()
	return Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear fills the destination with c.
func (s *EbitenSurface) Clear(c Color) {
	s.dst.Fill(c.toRGBA())
}

// FillPolygon draws pts as a fan-triangulated mesh sampling the white pixel.
// Fan triangulation is exact for convex shapes and close enough for the
// nearly convex outlines this engine works with.
func (s *EbitenSurface) FillPolygon(pts []Vec2, c Color) {
	n := len(pts)
	if n < 3 {
		return
	}
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)

	s.verts = s.verts[:0]
	for _, p := range pts {
		s.verts = append(s.verts, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}

	// Fan triangulation: vertex 0 is the hub.
	s.inds = s.inds[:0]
	for i := 0; i < n-2; i++ {
		s.inds = append(s.inds, 0, uint16(i+1), uint16(i+2))
	}

	s.dst.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
}

// DrawImage draws img with the affine transform m, tinted by c.
func (s *EbitenSurface) DrawImage(img *ebiten.Image, m Transform, c Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}
