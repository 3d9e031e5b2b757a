package geo

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/truckershub-backend/internal/domain"
)

var ErrTooFewPoints = eris.New("geo: a path needs at least two points")

// PathToGeoJSON encodes a decoded route path as a GeoJSON LineString feature
func PathToGeoJSON(id string, path []domain.Coordinate, properties map[string]interface{}) ([]byte, error) {
	if len(path) < 2 {
		return nil, ErrTooFewPoints
	}

	flat := make([]float64, 0, 2*len(path))
	for _, c := range path {
		flat = append(flat, c.Lon, c.Lat)
	}
	line := geom.NewLineStringFlat(geom.XY, flat)

	feature := &geojson.Feature{
		ID:         id,
		BBox:       line.Bounds(),
		Geometry:   line,
		Properties: properties,
	}

	data, err := json.Marshal(feature)
	if err != nil {
		return nil, eris.Wrap(err, "geo: encode geojson")
	}
	return data, nil
}
