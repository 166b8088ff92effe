package drift

import (
	"math"
	"testing"
)

func square(size float64) *Polygon {
	return NewRectPolygon(size, size)
}

func TestNewPolygonCopies(t *testing.T) {
	pts := []Vec2{{0, 0}, {1, 0}, {0, 1}}
	p := NewPolygon(pts...)
	pts[0] = Vec2{9, 9}
	if p.Vertex(0) != (Vec2{0, 0}) {
		t.Errorf("polygon aliases caller slice: %v", p.Vertex(0))
	}
	v := p.Vertices()
	v[1] = Vec2{9, 9}
	if p.Vertex(1) != (Vec2{1, 0}) {
		t.Error("Vertices() should return a copy")
	}
}

func TestBoundingBoxCache(t *testing.T) {
	p := NewPolygon(Vec2{-1, -2}, Vec2{3, 0}, Vec2{0, 4})
	want := Rect{X: -1, Y: -2, Width: 4, Height: 6}
	if got := p.BoundingBox(); got != want {
		t.Errorf("BoundingBox = %v, want %v", got, want)
	}
	p.SetVertex(1, Vec2{10, 0})
	if got := p.BoundingBox(); got.Width != 11 {
		t.Errorf("BoundingBox after SetVertex = %v, want width 11", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := square(10)
	c := p.Clone()
	c.SetVertex(0, Vec2{-100, -100})
	if p.Vertex(0) == c.Vertex(0) {
		t.Error("Clone shares vertices with the original")
	}
}

func TestRegularPolygon(t *testing.T) {
	p := NewRegularPolygon(4, 10)
	if p.Len() != 4 {
		t.Fatalf("Len = %d, want 4", p.Len())
	}
	// First vertex is straight up.
	assertVec(t, "first vertex", p.Vertex(0), Vec2{0, -10})
	if NewRegularPolygon(0, 10).Len() != 0 {
		t.Error("zero sides should give an empty polygon")
	}
}

func TestArea(t *testing.T) {
	assertNear(t, "square area", math.Abs(square(4).Area()), 16)
	assertNear(t, "segment area", NewPolygon(Vec2{0, 0}, Vec2{1, 1}).Area(), 0)
}

func TestTransformed(t *testing.T) {
	p := square(2)
	m := NewTransform(10, 0, 0, 1)
	got := p.Transformed(m, nil)
	assertVec(t, "first", got[0], Vec2{9, -1})
	assertVec(t, "third", got[2], Vec2{11, 1})
}

func TestOverlaps(t *testing.T) {
	id := Identity()
	tests := []struct {
		name string
		a, b *Polygon
		mb   Transform
		want bool
	}{
		{"identical squares", square(10), square(10), id, true},
		{"disjoint bounding boxes", square(10), square(10), NewTransform(100, 0, 0, 1), false},
		{"touching edges", square(10), square(10), NewTransform(10, 0, 0, 1), true},
		{"contained", square(10), square(2), NewTransform(1, 1, 0, 1), true},
		// Rotated 45 degrees the diamond's tip reaches x = 5 + 7.07.
		{"rotated reaches", square(10), square(10), NewTransform(11, 0, math.Pi/4, 1), true},
		{"rotated misses", square(10), square(10), NewTransform(12.2, 0, math.Pi/4, 1), false},
		{"nil polygon", square(10), nil, id, false},
		{"empty polygon", square(10), NewPolygon(), id, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, id, tt.b, tt.mb); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.mb, tt.a, id); got != tt.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsSATSeparatesInsideBoundingBox(t *testing.T) {
	// Two triangles whose bounding boxes overlap but whose hypotenuses face
	// each other with a gap.
	a := NewPolygon(Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 10})
	b := NewPolygon(Vec2{10, 10}, Vec2{10, 1}, Vec2{1, 10})
	id := Identity()
	if Overlaps(a, id, b, id) {
		t.Error("triangles separated by the diagonal should not overlap")
	}
}

func TestOverlapsDegenerate(t *testing.T) {
	id := Identity()
	point := NewPolygon(Vec2{0, 0})
	if !Overlaps(point, id, square(10), id) {
		t.Error("point inside square should overlap")
	}
	if Overlaps(point, NewTransform(20, 0, 0, 1), square(10), id) {
		t.Error("point outside square should not overlap")
	}
	if !Overlaps(point, id, NewPolygon(Vec2{0, 0}), id) {
		t.Error("coincident points should overlap")
	}

	seg := NewPolygon(Vec2{-20, 0}, Vec2{20, 0})
	if !Overlaps(seg, id, square(10), id) {
		t.Error("segment crossing square should overlap")
	}
	if Overlaps(seg, NewTransform(0, 6, 0, 1), square(10), id) {
		t.Error("segment above square should not overlap")
	}
	// Collinear segments that do not meet are separated along their direction.
	other := NewPolygon(Vec2{30, 0}, Vec2{40, 0})
	if Overlaps(seg, id, other, id) {
		t.Error("disjoint collinear segments should not overlap")
	}
}
