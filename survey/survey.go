// Package survey reads the per-team surveyed reference lines and the team
// registry.
package survey

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/geosurvey/fieldmap/geo"
	"github.com/geosurvey/fieldmap/geom"
)

// Survey is a surveyed reference line with its interior field point. The
// field point disambiguates which boundary crossings are relevant when the
// boundary polygon crosses the reference line more than twice.
type Survey struct {
	Start geom.Cartographic
	End   geom.Cartographic
	Field geom.Cartographic
}

// Line returns the infinite reference line through the surveyed endpoints
// on the Mercator plane.
func (s *Survey) Line() geom.Line {
	return geom.NewLine(s.Start.Mercator(), s.End.Mercator())
}

// Bearing is the compass bearing of the reference line in degrees.
func (s *Survey) Bearing() float64 {
	return geo.BearingFromSlope(s.Start.Mercator().Slope(s.End.Mercator()))
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	// some exports skip the Document element
	BarePlacemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name       string       `xml:"name"`
	Point      *kmlGeometry `xml:"Point"`
	LineString *kmlGeometry `xml:"LineString"`
}

type kmlGeometry struct {
	Coordinates string `xml:"coordinates"`
}

// ReadKML parses a survey KML file. The first LineString placemark is the
// reference line (first and last coordinate are its endpoints), the first
// Point placemark is the field point.
func ReadKML(r io.Reader) (*Survey, error) {
	doc := kmlDoc{}
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing survey KML")
	}

	placemarks := doc.Placemarks
	if len(placemarks) == 0 {
		placemarks = doc.BarePlacemarks
	}

	survey := Survey{}
	var haveLine, haveField bool
	for _, pm := range placemarks {
		if pm.LineString != nil && !haveLine {
			points := parseCoordinates(pm.LineString.Coordinates)
			if len(points) < 2 {
				return nil, errors.Errorf("reference line %q has %d points", pm.Name, len(points))
			}
			survey.Start = points[0]
			survey.End = points[len(points)-1]
			haveLine = true
		}
		if pm.Point != nil && !haveField {
			points := parseCoordinates(pm.Point.Coordinates)
			if len(points) != 1 {
				return nil, errors.Errorf("field point %q has %d points", pm.Name, len(points))
			}
			survey.Field = points[0]
			haveField = true
		}
	}
	if !haveLine {
		return nil, errors.New("survey KML has no reference line placemark")
	}
	if !haveField {
		return nil, errors.New("survey KML has no field point placemark")
	}
	return &survey, nil
}

// parseCoordinates reads a KML coordinates string: whitespace-separated
// lon,lat[,alt] tuples in degrees. Unparsable tuples are dropped.
func parseCoordinates(s string) []geom.Cartographic {
	var points []geom.Cartographic
	for _, tuple := range strings.Fields(s) {
		parts := strings.SplitN(tuple, ",", 3)
		if len(parts) < 2 {
			continue
		}
		long, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		points = append(points, geom.CartographicFromDegrees(long, lat))
	}
	return points
}
