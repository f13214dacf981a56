package geom

import (
	"math"
)

// Line is an infinite line on the Mercator plane in slope/intercept form.
// Vertical lines are not representable; Segment.Intersection handles the
// vertical case before lines come into play.
type Line struct {
	Slope      float64
	YIntercept float64
}

func NewLine(start, end Mercator) Line {
	return LineFromSlope(start.Slope(end), start)
}

func LineFromSlope(slope float64, point Mercator) Line {
	return Line{
		Slope:      slope,
		YIntercept: point.Y - slope*point.X,
	}
}

// At returns the y value of the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.YIntercept
}

// Intersection solves the crossing of two infinite lines. It reports no
// intersection for near-parallel lines, where the slope difference is below
// the machine epsilon scaled by the larger-magnitude slope, since the solved
// point would be numerically meaningless.
func (l Line) Intersection(other Line) (Mercator, bool) {
	limit := epsilon * math.Max(math.Abs(l.Slope), math.Abs(other.Slope))
	if math.Abs(l.Slope-other.Slope) < limit {
		return Mercator{}, false
	}
	x := (other.YIntercept - l.YIntercept) / (l.Slope - other.Slope)
	return Mercator{X: x, Y: l.At(x)}, true
}

// epsilon is the distance from 1.0 to the next larger float64 (2^-52).
var epsilon = math.Nextafter(1, 2) - 1

// Segment is a bounded pair of Mercator points. A and B carry no ordering
// by x.
type Segment struct {
	A Mercator
	B Mercator
}

// Line fits an infinite line through both endpoints.
func (s Segment) Line() Line {
	return NewLine(s.A, s.B)
}

// Intersection restricts the crossing of the segment's line and l to the
// segment's own span. The x bounds are inclusive. Vertical segments are
// solved directly at their shared x and restricted by the y span instead.
func (s Segment) Intersection(l Line) (Mercator, bool) {
	if s.A.X == s.B.X {
		p := Mercator{X: s.A.X, Y: l.At(s.A.X)}
		if math.Min(s.A.Y, s.B.Y) <= p.Y && p.Y <= math.Max(s.A.Y, s.B.Y) {
			return p, true
		}
		return Mercator{}, false
	}
	p, ok := s.Line().Intersection(l)
	if !ok {
		return Mercator{}, false
	}
	if math.Min(s.A.X, s.B.X) <= p.X && p.X <= math.Max(s.A.X, s.B.X) {
		return p, true
	}
	return Mercator{}, false
}

// tessellateStep keeps samples roughly uniform in combined x/y magnitude
// regardless of the line's steepness.
func tessellateStep(slope float64) float64 {
	return 0.0005 / math.Sqrt(slope*slope+1)
}

// Tessellate samples the segment's line from the low-x endpoint to the
// high-x endpoint. The first sample is the exact low-x endpoint and the
// exact high-x endpoint is always appended last; samples are strictly
// increasing in planar x.
func (s Segment) Tessellate() []Cartographic {
	line := s.Line()
	dx := tessellateStep(line.Slope)
	x := math.Min(s.A.X, s.B.X)
	end := math.Max(s.A.X, s.B.X)

	var points []Cartographic
	for x < end {
		points = append(points, Mercator{X: x, Y: line.At(x)}.Cartographic())
		x += dx
	}
	points = append(points, Mercator{X: end, Y: line.At(end)}.Cartographic())
	return points
}
