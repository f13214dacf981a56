package geom

import (
	"math"
	"testing"
)

func TestLineIntersection(t *testing.T) {
	// y = x and y = -x + 2 cross at (1, 1)
	a := LineFromSlope(1, Mercator{})
	b := LineFromSlope(-1, Mercator{X: 0, Y: 2})

	p, ok := a.Intersection(b)
	if !ok {
		t.Fatal("no intersection")
	}
	if math.Abs(p.X-1) > 1e-15 || math.Abs(p.Y-1) > 1e-15 {
		t.Fatalf("%v", p)
	}

	// same crossing from two-point construction
	c := NewLine(Mercator{X: -1, Y: 3}, Mercator{X: 3, Y: -1})
	p, ok = a.Intersection(c)
	if !ok {
		t.Fatal("no intersection")
	}
	if math.Abs(p.X-1) > 1e-15 || math.Abs(p.Y-1) > 1e-15 {
		t.Fatalf("%v", p)
	}
}

func TestLineIntersectionParallel(t *testing.T) {
	a := LineFromSlope(2, Mercator{})
	b := LineFromSlope(2, Mercator{X: 0, Y: 1})

	if p, ok := a.Intersection(b); ok {
		t.Fatalf("parallel lines intersected at %v", p)
	}

	// slope difference below epsilon*|slope|
	c := LineFromSlope(2*(1+1e-17), Mercator{X: 0, Y: 1})
	if p, ok := a.Intersection(c); ok {
		t.Fatalf("near-parallel lines intersected at %v", p)
	}

	// clearly distinct slopes still intersect
	d := LineFromSlope(2.0001, Mercator{X: 0, Y: 1})
	if _, ok := a.Intersection(d); !ok {
		t.Fatal("no intersection")
	}
}

func TestSegmentIntersection(t *testing.T) {
	seg := Segment{A: Mercator{X: 0, Y: 0}, B: Mercator{X: 2, Y: 2}}
	l := LineFromSlope(-1, Mercator{X: 0, Y: 2})

	p, ok := seg.Intersection(l)
	if !ok {
		t.Fatal("no intersection")
	}
	if math.Abs(p.X-1) > 1e-15 || math.Abs(p.Y-1) > 1e-15 {
		t.Fatalf("%v", p)
	}

	// endpoint order must not matter
	rev := Segment{A: seg.B, B: seg.A}
	if _, ok := rev.Intersection(l); !ok {
		t.Fatal("no intersection on reversed segment")
	}
}

func TestSegmentIntersectionOutOfBounds(t *testing.T) {
	// crossing lies on the segment's extension, beyond B
	seg := Segment{A: Mercator{X: 0, Y: 0}, B: Mercator{X: 2, Y: 2}}
	l := LineFromSlope(-1, Mercator{X: 0, Y: 10})

	if p, ok := seg.Intersection(l); ok {
		t.Fatalf("out-of-bounds intersection %v", p)
	}
	// the unbounded lines do cross
	if _, ok := seg.Line().Intersection(l); !ok {
		t.Fatal("no line intersection")
	}
}

func TestSegmentIntersectionVertical(t *testing.T) {
	seg := Segment{A: Mercator{X: 1, Y: 0}, B: Mercator{X: 1, Y: 2}}
	l := LineFromSlope(0, Mercator{X: 0, Y: 1})

	p, ok := seg.Intersection(l)
	if !ok {
		t.Fatal("no intersection")
	}
	if p.X != 1 || p.Y != 1 {
		t.Fatalf("%v", p)
	}

	// crossing outside the vertical segment's y span
	high := LineFromSlope(0, Mercator{X: 0, Y: 5})
	if p, ok := seg.Intersection(high); ok {
		t.Fatalf("out-of-span intersection %v", p)
	}
}

func TestTessellateEndpoints(t *testing.T) {
	a := CartographicFromDegrees(-71.1, 42.3)
	b := CartographicFromDegrees(-71.0, 42.4)
	seg := Segment{A: a.Mercator(), B: b.Mercator()}

	points := seg.Tessellate()
	if len(points) < 2 {
		t.Fatalf("%d points", len(points))
	}
	first := points[0]
	last := points[len(points)-1]
	if math.Abs(first.Long-a.Long) > 1e-9 || math.Abs(first.Lat-a.Lat) > 1e-9 {
		t.Fatalf("first %v != %v", first, a)
	}
	if math.Abs(last.Long-b.Long) > 1e-9 || math.Abs(last.Lat-b.Lat) > 1e-9 {
		t.Fatalf("last %v != %v", last, b)
	}
}

func TestTessellateMonotone(t *testing.T) {
	seg := Segment{
		A: CartographicFromDegrees(10, 10).Mercator(),
		B: CartographicFromDegrees(9.9, 9.7).Mercator(),
	}
	line := seg.Line()

	points := seg.Tessellate()
	prev := math.Inf(-1)
	for i, c := range points {
		m := c.Mercator()
		if m.X <= prev {
			t.Fatalf("x not increasing at %d: %v <= %v", i, m.X, prev)
		}
		prev = m.X
		if math.Abs(m.Y-line.At(m.X)) > 1e-9 {
			t.Fatalf("point %d off line: %v", i, m)
		}
	}
}

func TestTessellateStepCount(t *testing.T) {
	// a flat segment 0.01 rad long should sample every 0.0005 rad
	seg := Segment{A: Mercator{X: 0, Y: 0}, B: Mercator{X: 0.01, Y: 0}}
	points := seg.Tessellate()
	if len(points) != 21 {
		t.Fatalf("%d points", len(points))
	}
}
