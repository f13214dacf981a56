package geom

import (
	"math"
	"testing"
)

func TestMercatorProjection(t *testing.T) {
	p := CartographicFromDegrees(0, 0).Mercator()
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("%v", p)
	}

	p = CartographicFromDegrees(8, 53).Mercator()
	if math.Abs(p.X-0.13962634015954636) > 1e-12 {
		t.Fatalf("%v", p)
	}
	// asinh(tan(53 deg))
	if math.Abs(p.Y-1.0948334788653469) > 1e-9 {
		t.Fatalf("%v", p)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	for long := -179.5; long < 180; long += 7.25 {
		for lat := -89.5; lat < 89.9; lat += 3.75 {
			c := CartographicFromDegrees(long, lat)
			r := c.Mercator().Cartographic()
			if math.Abs(r.Long-c.Long) > 1e-9 || math.Abs(r.Lat-c.Lat) > 1e-9 {
				t.Fatalf("round trip %v -> %v", c, r)
			}
		}
	}
}

func TestVectorOps(t *testing.T) {
	a := Mercator{X: 1, Y: 2}
	b := Mercator{X: 4, Y: 6}

	if d := a.Add(b); d.X != 5 || d.Y != 8 {
		t.Fatalf("%v", d)
	}
	if d := b.Sub(a); d.X != 3 || d.Y != 4 {
		t.Fatalf("%v", d)
	}
	if d := a.Mul(2); d.X != 2 || d.Y != 4 {
		t.Fatalf("%v", d)
	}
	if d := Sum([]Mercator{a, b, a}); d.X != 6 || d.Y != 10 {
		t.Fatalf("%v", d)
	}
	if d := a.Distance(b); d != 5 {
		t.Fatalf("%v", d)
	}
	if s := a.Slope(b); math.Abs(s-4.0/3.0) > 1e-15 {
		t.Fatalf("%v", s)
	}
}

func TestVerticalSlope(t *testing.T) {
	a := Mercator{X: 1, Y: 2}

	if s := a.Slope(Mercator{X: 1, Y: 5}); !math.IsInf(s, 1) {
		t.Fatalf("%v", s)
	}
	if s := a.Slope(Mercator{X: 1, Y: -5}); !math.IsInf(s, -1) {
		t.Fatalf("%v", s)
	}
}
