package fields

import (
	"io"
	"os"
	"path/filepath"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// WriteGeoJSON emits one LineString feature per field with the tessellated
// clipped line and the rendering properties downstream consumers need.
func WriteGeoJSON(w io.Writer, fields []*Field) error {
	fc := geojson.NewFeatureCollection()
	for _, field := range fields {
		coords := make([][]float64, len(field.Line))
		for i, p := range field.Line {
			coords[i] = []float64{p.LongDegrees(), p.LatDegrees()}
		}
		f := geojson.NewLineStringFeature(coords)
		f.SetProperty("team", field.Team.Name)
		f.SetProperty("abbr", field.Team.Abbr)
		f.SetProperty("color", field.Team.Color)
		f.SetProperty("bearing", field.Bearing)
		f.SetProperty("length_m", field.Length)
		f.SetProperty("center", []float64{field.Center.LongDegrees(), field.Center.LatDegrees()})
		f.SetProperty("box", boxProperty(field.Box))
		f.SetProperty("label", boxProperty(field.Label))
		f.SetProperty("label_region", boxProperty(field.LabelRegion))
		fc.AddFeature(f)
	}

	buf, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding fields GeoJSON")
	}
	_, err = w.Write(buf)
	return err
}

// WriteGeoJSONFile writes the feature collection to filename, creating
// parent directories as needed.
func WriteGeoJSONFile(filename string, fields []*Field) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteGeoJSON(f, fields); err != nil {
		return err
	}
	return f.Close()
}

func boxProperty(b LatLonBox) map[string]float64 {
	return map[string]float64{
		"north": b.North,
		"south": b.South,
		"east":  b.East,
		"west":  b.West,
	}
}
