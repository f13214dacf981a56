// Package boundary loads the survey area's boundary polygon and clips
// reference lines against it.
package boundary

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/geosurvey/fieldmap/geo"
	"github.com/geosurvey/fieldmap/geom"
)

// Ring is the ordered vertex sequence of the boundary polygon. Edges are
// the pairwise adjacent vertices; the ring is not closed implicitly, the
// source is expected to repeat the first vertex if the polygon closes.
// A Ring is loaded once at startup and read-only afterwards.
type Ring []geom.Cartographic

// NewFromFile loads a boundary ring, from GeoJSON for .geojson/.json files
// and from plain coordinate text otherwise.
func NewFromFile(filename string) (Ring, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening boundary file")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".geojson", ".json":
		return NewFromGeoJSON(f)
	}
	return NewFromText(f)
}

// NewFromText reads one vertex per line: comma-separated fields with
// longitude and latitude in degrees first. Lines starting with # are
// comments. Incomplete or unparsable lines are dropped, not errors.
func NewFromText(r io.Reader) (Ring, error) {
	var ring Ring
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(strings.TrimSpace(line), ",", 3)
		if len(fields) < 2 {
			continue
		}
		long, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			continue
		}
		ring = append(ring, geom.CartographicFromDegrees(long, lat))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading boundary")
	}
	return ring, nil
}

// NewFromGeoJSON reads the outer ring of the first polygon in a GeoJSON
// document (bare geometry, feature or feature collection).
func NewFromGeoJSON(r io.Reader) (Ring, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading boundary")
	}

	g, err := unmarshalGeometry(buf)
	if err != nil {
		return nil, err
	}

	var outer [][]float64
	switch {
	case g.IsPolygon() && len(g.Polygon) > 0:
		outer = g.Polygon[0]
	case g.IsMultiPolygon() && len(g.MultiPolygon) > 0 && len(g.MultiPolygon[0]) > 0:
		outer = g.MultiPolygon[0][0]
	default:
		return nil, errors.Errorf("unsupported boundary geometry type %q", g.Type)
	}

	ring := make(Ring, 0, len(outer))
	for _, coord := range outer {
		if len(coord) < 2 {
			continue
		}
		ring = append(ring, geom.CartographicFromDegrees(coord[0], coord[1]))
	}
	return ring, nil
}

func unmarshalGeometry(buf []byte) (*geojson.Geometry, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(buf); err == nil && len(fc.Features) > 0 {
		return fc.Features[0].Geometry, nil
	}
	if f, err := geojson.UnmarshalFeature(buf); err == nil && f.Geometry != nil {
		return f.Geometry, nil
	}
	g, err := geojson.UnmarshalGeometry(buf)
	if err != nil {
		return nil, errors.Wrap(err, "parsing boundary GeoJSON")
	}
	return g, nil
}

// ErrNotBracketed is returned by Clip when the boundary does not cross the
// reference line on both sides of the field point.
var ErrNotBracketed = errors.New("boundary does not bracket the reference line")

// Clip finds the two boundary crossings of line that bracket field, one to
// each side. Where a side has several crossings (non-convex boundaries)
// the one nearest to field by great-circle distance wins. The result is
// ordered west crossing first.
func (ring Ring) Clip(line geom.Line, field geom.Cartographic) (geom.Segment, error) {
	fieldX := field.Mercator().X

	var west, east []geom.Mercator
	for i := 1; i < len(ring); i++ {
		edge := geom.Segment{
			A: ring[i-1].Mercator(),
			B: ring[i].Mercator(),
		}
		crossing, ok := edge.Intersection(line)
		if !ok {
			continue
		}
		if crossing.X < fieldX {
			west = append(west, crossing)
		} else {
			east = append(east, crossing)
		}
	}

	if len(west) == 0 || len(east) == 0 {
		return geom.Segment{}, ErrNotBracketed
	}
	return geom.Segment{
		A: nearest(west, field),
		B: nearest(east, field),
	}, nil
}

func nearest(crossings []geom.Mercator, to geom.Cartographic) geom.Mercator {
	best := crossings[0]
	bestDist := geo.Distance(to, best.Cartographic())
	for _, c := range crossings[1:] {
		if d := geo.Distance(to, c.Cartographic()); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
