package drift

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

// Default cell size in surface units. Terminal cells are roughly twice as tall
// as they are wide, so a square in world space stays square on screen.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// TerminalSurface rasterizes polygons into the cells of a tcell screen. Each
// cell covers CellWidth x CellHeight surface units and is painted when its
// center lies inside the polygon.
type TerminalSurface struct {
	screen tcell.Screen

	CellWidth  float64
	CellHeight float64
	// Rune is drawn in every filled cell, colored with the fill color.
	Rune rune

	xs []float64
}

// NewTerminalSurface wraps an initialized screen.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	return &TerminalSurface{
		screen:     screen,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		Rune:       '█',
	}
}

// Screen returns the underlying tcell screen.
func (s *TerminalSurface) Screen() tcell.Screen {
	return s.screen
}

// Bounds returns the screen size in surface units.
func (s *TerminalSurface) Bounds() Rect {
	cols, rows := s.screen.Size()
	return Rect{Width: float64(cols) * s.CellWidth, Height: float64(rows) * s.CellHeight}
}

// Clear paints every cell with the background color c.
func (s *TerminalSurface) Clear(c Color) {
	s.screen.Fill(' ', tcell.StyleDefault.Background(tcellColor(c)))
}

// FillPolygon paints the cells whose centers are inside pts (even-odd rule).
func (s *TerminalSurface) FillPolygon(pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	cols, rows := s.screen.Size()
	style := tcell.StyleDefault.Foreground(tcellColor(c))
	s.xs = scanlineCells(pts, s.CellWidth, s.CellHeight, cols, rows, s.xs, func(col, row int) {
		s.screen.SetContent(col, row, s.Rune, nil, style)
	})
}

// DrawImage cannot show pixels in a terminal; it fills the transformed image
// rectangle with the tint color instead.
func (s *TerminalSurface) DrawImage(img *ebiten.Image, m Transform, c Color) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	quad := []Vec2{
		m.Apply(Vec2{0, 0}),
		m.Apply(Vec2{w, 0}),
		m.Apply(Vec2{w, h}),
		m.Apply(Vec2{0, h}),
	}
	s.FillPolygon(quad, c)
}

// Show flushes pending cell changes to the terminal.
func (s *TerminalSurface) Show() {
	s.screen.Show()
}

// tcellColor converts a straight-alpha color to an opaque terminal color,
// darkening by alpha as if composited over black.
func tcellColor(c Color) tcell.Color {
	a := min(max(c.A, 0), 1)
	ch := func(v float64) int32 {
		return int32(math.Round(min(max(v, 0), 1) * a * 255))
	}
	return tcell.NewRGBColor(ch(c.R), ch(c.G), ch(c.B))
}

// scanlineCells calls plot for every cell of a cols x rows grid whose center
// lies inside the polygon pts. xs is scratch space and is returned for reuse.
func scanlineCells(pts []Vec2, cw, ch float64, cols, rows int, xs []float64, plot func(col, row int)) []float64 {
	bb := rectFromPoints(pts)
	r0 := max(int(math.Floor(bb.Y/ch)), 0)
	r1 := min(int(math.Ceil((bb.Y+bb.Height)/ch)), rows-1)
	n := len(pts)

	for row := r0; row <= r1; row++ {
		y := (float64(row) + 0.5) * ch
		xs = xs[:0]
		for i := range n {
			a, b := pts[i], pts[(i+1)%n]
			// Half-open rule so shared vertices are counted once.
			if (a.Y <= y) == (b.Y <= y) {
				continue
			}
			t := (y - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			c0 := max(int(math.Ceil(xs[i]/cw-0.5)), 0)
			c1 := min(int(math.Floor(xs[i+1]/cw-0.5)), cols-1)
			for col := c0; col <= c1; col++ {
				plot(col, row)
			}
		}
	}
	return xs
}
