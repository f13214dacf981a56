// Package geo provides great-circle calculations on spherical
// longitude/latitude coordinates.
package geo

import (
	"math"

	"github.com/geosurvey/fieldmap/geom"
)

// Mean earth radius in meters.
const earthRadius = 6371008.8

// Distance returns the haversine great-circle distance between a and b in
// meters.
// From: "Virtues of the Haversine", R. W. Sinnott,
// Sky and Telescope, vol 68, no 2, 1984.
func Distance(a, b geom.Cartographic) float64 {
	dLat := b.Lat - a.Lat
	dLong := b.Long - a.Long

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat)*math.Cos(b.Lat)*math.Sin(dLong/2)*math.Sin(dLong/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Length sums the haversine distances over consecutive points of a
// polyline.
func Length(points []geom.Cartographic) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Destination returns the point reached by travelling distance meters from
// origin along the initial bearing (degrees, clockwise from north) on a
// great circle.
func Destination(origin geom.Cartographic, bearing, distance float64) geom.Cartographic {
	theta := bearing * math.Pi / 180
	delta := distance / earthRadius

	lat := math.Asin(math.Sin(origin.Lat)*math.Cos(delta) +
		math.Cos(origin.Lat)*math.Sin(delta)*math.Cos(theta))
	long := origin.Long + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(origin.Lat),
		math.Cos(delta)-math.Sin(origin.Lat)*math.Sin(lat))
	return geom.Cartographic{Long: long, Lat: lat}
}

// BearingFromSlope converts a slope on the Mercator plane into a compass
// bearing in degrees. Mercator is conformal, so the planar angle is the
// true bearing. Lines have no direction; the result is in [0, 180).
func BearingFromSlope(slope float64) float64 {
	return math.Mod(90-math.Atan(slope)*180/math.Pi, 180)
}
