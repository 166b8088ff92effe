package drift

import "math"

// overlapEpsilon is the tolerance used when comparing projections and point
// positions in the overlap test.
const overlapEpsilon = 1e-9

// Polygon is an ordered, implicitly closed list of vertices in local space.
// Shapes are expected to be convex or nearly so; concave shapes are tested
// as their convex hull.
//
// A Polygon may be shared by many nodes as a read-only template. Code that
// animates vertices must work on a Clone.
type Polygon struct {
	points    []Vec2
	bbox      Rect
	bboxDirty bool
}

// NewPolygon creates a polygon from the given vertices. The slice is copied.
func NewPolygon(points ...Vec2) *Polygon {
	p := &Polygon{points: make([]Vec2, len(points)), bboxDirty: true}
	copy(p.points, points)
	return p
}

// NewRegularPolygon creates a polygon with sides vertices evenly spaced on a
// circle of the given radius, starting straight up.
func NewRegularPolygon(sides int, radius float64) *Polygon {
	if sides < 1 {
		return NewPolygon()
	}
	pts := make([]Vec2, sides)
	for i := range pts {
		angle := float64(i)*2*math.Pi/float64(sides) - math.Pi/2
		pts[i] = Vec2{math.Cos(angle) * radius, math.Sin(angle) * radius}
	}
	return NewPolygon(pts...)
}

// NewRectPolygon creates an axis-aligned rectangle centered on the origin.
func NewRectPolygon(w, h float64) *Polygon {
	hw, hh := w/2, h/2
	return NewPolygon(Vec2{-hw, -hh}, Vec2{hw, -hh}, Vec2{hw, hh}, Vec2{-hw, hh})
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.points)
}

// Vertex returns the i-th vertex.
func (p *Polygon) Vertex(i int) Vec2 {
	return p.points[i]
}

// SetVertex replaces the i-th vertex and invalidates the cached bounding box.
func (p *Polygon) SetVertex(i int, v Vec2) {
	p.points[i] = v
	p.bboxDirty = true
}

// Vertices returns a copy of the vertex list.
func (p *Polygon) Vertices() []Vec2 {
	out := make([]Vec2, len(p.points))
	copy(out, p.points)
	return out
}

// Clone returns a deep copy that can be mutated independently.
func (p *Polygon) Clone() *Polygon {
	return NewPolygon(p.points...)
}

// BoundingBox returns the axis-aligned bounding box of the local-space
// vertices. The result is cached until a vertex changes.
func (p *Polygon) BoundingBox() Rect {
	if p.bboxDirty {
		p.bbox = rectFromPoints(p.points)
		p.bboxDirty = false
	}
	return p.bbox
}

// Transformed maps every vertex through m and appends the results to dst,
// returning the extended slice.
func (p *Polygon) Transformed(m Transform, dst []Vec2) []Vec2 {
	for _, v := range p.points {
		x, y := transformPoint(m, v.X, v.Y)
		dst = append(dst, Vec2{x, y})
	}
	return dst
}

// Area returns the signed area of the polygon (positive when the vertices
// wind clockwise on screen).
func (p *Polygon) Area() float64 {
	return signedArea(p.points)
}

// Overlaps reports whether polygon a placed by transform ma intersects
// polygon b placed by transform mb. Touching edges count as overlap.
func Overlaps(a *Polygon, ma Transform, b *Polygon, mb Transform) bool {
	if a == nil || b == nil {
		return false
	}
	wa := a.Transformed(ma, make([]Vec2, 0, a.Len()))
	wb := b.Transformed(mb, make([]Vec2, 0, b.Len()))
	if !rectFromPoints(wa).Intersects(rectFromPoints(wb)) {
		return false
	}
	return polygonsOverlap(wa, wb)
}

// polygonsOverlap runs the separating axis test over two world-space vertex
// lists. An empty list never overlaps. A single vertex is a point: it
// overlaps when it lies inside or on the other shape.
func polygonsOverlap(a, b []Vec2) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(a) == 1 && len(b) == 1 {
		return a[0].Distance(b[0]) <= overlapEpsilon
	}
	return !separated(a, b) && !separated(b, a)
}

// separated reports whether one of a's edge normals separates a and b.
// Flat shapes (segments, collinear vertex runs) also contribute their
// direction, otherwise two shapes on the same line could never be separated.
func separated(a, b []Vec2) bool {
	n := len(a)
	if n < 2 {
		return false
	}
	edges := n
	if n == 2 {
		edges = 1
	}
	var dir Vec2
	for i := 0; i < edges; i++ {
		e := a[(i+1)%n].Sub(a[i])
		if e.LengthSq() < overlapEpsilon*overlapEpsilon {
			continue
		}
		if dir == (Vec2{}) {
			dir = e
		}
		if axisSeparates(e.Perp(), a, b) {
			return true
		}
	}
	if dir != (Vec2{}) && math.Abs(signedArea(a)) < overlapEpsilon {
		return axisSeparates(dir, a, b)
	}
	return false
}

// axisSeparates projects both shapes onto axis and reports a gap.
func axisSeparates(axis Vec2, a, b []Vec2) bool {
	minA, maxA := project(a, axis)
	minB, maxB := project(b, axis)
	// Scale the tolerance with the axis length, since axes are not normalized.
	eps := overlapEpsilon * axis.Length()
	return maxA < minB-eps || maxB < minA-eps
}

// project returns the interval covered by pts on axis.
func project(pts []Vec2, axis Vec2) (lo, hi float64) {
	lo = pts[0].Dot(axis)
	hi = lo
	for _, p := range pts[1:] {
		d := p.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// signedArea returns the shoelace area of pts.
func signedArea(pts []Vec2) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += pts[i].Cross(pts[(i+1)%n])
	}
	return sum / 2
}
