// Package geom implements the planar geometry used to clip and tessellate
// surveyed reference lines: a unit-radius web-Mercator projection and
// slope/intercept line algebra on the projected plane.
package geom

import (
	"math"
)

// Cartographic is a longitude/latitude pair in radians.
// Latitude must stay strictly inside (-pi/2, pi/2); the poles are not
// validated and project to infinite or NaN Mercator coordinates.
type Cartographic struct {
	Long float64
	Lat  float64
}

func CartographicFromDegrees(long, lat float64) Cartographic {
	return Cartographic{Long: long * math.Pi / 180, Lat: lat * math.Pi / 180}
}

func (c Cartographic) LongDegrees() float64 {
	return c.Long * 180 / math.Pi
}

func (c Cartographic) LatDegrees() float64 {
	return c.Lat * 180 / math.Pi
}

// Mercator projects c onto the unit-radius web-Mercator plane:
// x is the longitude in radians, y is asinh(tan(lat)).
func (c Cartographic) Mercator() Mercator {
	return Mercator{
		X: c.Long,
		Y: math.Asinh(math.Tan(c.Lat)),
	}
}

// Mercator is a point on the projected plane. It forms a plain 2D vector
// space; values are transient and carry no invariants.
type Mercator struct {
	X float64
	Y float64
}

// Cartographic is the inverse projection of Cartographic.Mercator.
func (m Mercator) Cartographic() Cartographic {
	return Cartographic{
		Long: m.X,
		Lat:  math.Atan(math.Sinh(m.Y)),
	}
}

func (m Mercator) Add(other Mercator) Mercator {
	return Mercator{X: m.X + other.X, Y: m.Y + other.Y}
}

func (m Mercator) Sub(other Mercator) Mercator {
	return Mercator{X: m.X - other.X, Y: m.Y - other.Y}
}

func (m Mercator) Mul(f float64) Mercator {
	return Mercator{X: m.X * f, Y: m.Y * f}
}

func Sum(points []Mercator) Mercator {
	var s Mercator
	for _, p := range points {
		s = s.Add(p)
	}
	return s
}

// Distance is the Euclidean distance on the projected plane, not a ground
// distance. Use geo.Distance for meters.
func (m Mercator) Distance(other Mercator) float64 {
	diff := other.Sub(m)
	return math.Hypot(diff.X, diff.Y)
}

// Slope returns dy/dx towards other. A vertical difference yields a signed
// infinity, which is a legitimate value callers must carry through.
func (m Mercator) Slope(other Mercator) float64 {
	diff := other.Sub(m)
	return diff.Y / diff.X
}
