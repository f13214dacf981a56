// Package fields computes the clipped, tessellated field line for every
// team: the boundary crossing bracket, the field's placement boxes and the
// line's ground length.
package fields

import (
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/geosurvey/fieldmap/boundary"
	"github.com/geosurvey/fieldmap/config"
	"github.com/geosurvey/fieldmap/geo"
	"github.com/geosurvey/fieldmap/geom"
	"github.com/geosurvey/fieldmap/logging"
	"github.com/geosurvey/fieldmap/survey"
)

var log = logging.NewLogger("fields")

const metersPerFoot = 0.3048

// Params are the rendering dimensions, constructed once by the caller.
type Params struct {
	FieldWidth  float64 // meters
	LabelWidth  float64 // meters
	LabelHeight float64 // meters
}

func NewParams(opts config.Base) Params {
	return Params{
		FieldWidth:  opts.FieldWidth * metersPerFoot,
		LabelWidth:  opts.FieldWidth * metersPerFoot * opts.LabelScale,
		LabelHeight: opts.LabelHeight * metersPerFoot * opts.LabelScale,
	}
}

// Field is the computed result for one team.
type Field struct {
	Team survey.Team

	// West and East are the two boundary crossings bracketing the field
	// point, in that order.
	West geom.Cartographic
	East geom.Cartographic

	// Line is the tessellated clipped reference line, west to east.
	Line []geom.Cartographic

	// Length is the ground length of Line in meters.
	Length float64

	Center  geom.Cartographic
	Bearing float64

	Box         LatLonBox
	Label       LatLonBox
	LabelRegion LatLonBox
}

// Compute clips the team's reference line against the boundary ring and
// derives the field geometry. Returns boundary.ErrNotBracketed when the
// boundary does not cross the line on both sides of the field point.
func Compute(ring boundary.Ring, s *survey.Survey, team survey.Team, params Params) (*Field, error) {
	clipped, err := ring.Clip(s.Line(), s.Field)
	if err != nil {
		return nil, err
	}

	line := clipped.Tessellate()
	center := geom.Sum([]geom.Mercator{clipped.A, clipped.B}).Mul(0.5).Cartographic()
	length := geo.Length(line)

	field := &Field{
		Team:    team,
		West:    clipped.A.Cartographic(),
		East:    clipped.B.Cartographic(),
		Line:    line,
		Length:  length,
		Center:  center,
		Bearing: geo.BearingFromSlope(clipped.A.Slope(clipped.B)),
	}
	field.Box = NewLatLonBox(center, params.FieldWidth, length).
		AdjustWidth(s.Field, params.FieldWidth)
	field.Label = NewLatLonBox(s.Field, params.LabelWidth, params.LabelHeight)
	diag := diagonal(params.LabelWidth, params.LabelHeight)
	field.LabelRegion = NewLatLonBox(s.Field, diag, diag)
	return field, nil
}

// ComputeAll runs the pipeline for every registered team. Teams without a
// survey file are skipped silently; teams whose line the boundary does not
// bracket are skipped with a warning.
func ComputeAll(opts config.Base) ([]*Field, error) {
	step := log.StartStep("Reading boundary")
	ring, err := boundary.NewFromFile(opts.Boundary)
	if err != nil {
		return nil, err
	}
	log.StopStep(step)
	if len(ring) < 2 {
		return nil, errors.Errorf("boundary %s has only %d vertices", opts.Boundary, len(ring))
	}

	teams, err := survey.TeamsFromFile(opts.Teams)
	if err != nil {
		return nil, err
	}

	params := NewParams(opts)

	var results []*Field
	for _, team := range teams {
		filename := filepath.Join(opts.SurveyDir, team.Name+".kml")
		f, err := os.Open(filename)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "survey of team %s", team.Name)
		}
		s, err := survey.ReadKML(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "survey of team %s", team.Name)
		}

		field, err := Compute(ring, s, team, params)
		if err == boundary.ErrNotBracketed {
			log.Warnf("skipping team %s: %v", team.Name, err)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "field of team %s", team.Name)
		}
		results = append(results, field)
	}
	log.Printf("computed %d of %d fields", len(results), len(teams))
	return results, nil
}

// LatLonBox is an axis-aligned box in degrees, the shape downstream
// renderers place rotated overlays into.
type LatLonBox struct {
	North float64
	South float64
	East  float64
	West  float64
}

// NewLatLonBox spans width x height meters around center.
func NewLatLonBox(center geom.Cartographic, width, height float64) LatLonBox {
	return LatLonBox{
		North: geo.Destination(center, 0, height/2).LatDegrees(),
		South: geo.Destination(center, 180, height/2).LatDegrees(),
		East:  geo.Destination(center, 90, width/2).LongDegrees(),
		West:  geo.Destination(center, 270, width/2).LongDegrees(),
	}
}

// AdjustWidth recenters the box horizontally and sets its width to the
// angular width that width meters span at the latitude of at. Keeps the
// box's visual width stable away from its own center latitude.
func (b LatLonBox) AdjustWidth(at geom.Cartographic, width float64) LatLonBox {
	long := (b.East + b.West) / 2
	angle := geo.Destination(at, 90, width/2).LongDegrees() - at.LongDegrees()
	b.East = long + angle
	b.West = long - angle
	return b
}

func diagonal(width, height float64) float64 {
	return math.Hypot(width, height)
}
