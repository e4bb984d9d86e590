package geom

import (
	"encoding/json"
	"math"

	"github.com/cockroachdb/errors"
)

// GeoJSON is the projection of a geometry to a GeoJSON geometry object.
// Coordinates holds []float64 for a Point, [][]float64 for MultiPoint and
// LineString, [][][]float64 for MultiLineString and Polygon and
// [][][][]float64 for MultiPolygon. Positions are always [x, y].
type GeoJSON struct {
	Type        Kind `json:"type" yaml:"type"`
	Coordinates any  `json:"coordinates" yaml:"coordinates"`
}

func position(c Coordinate) []float64 { return []float64{c.x, c.y} }

func positions(coords []Coordinate) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = position(c)
	}
	return out
}

func polygonPositions(p Polygon) [][][]float64 {
	out := make([][][]float64, 0, p.Len())
	for _, r := range p.Rings() {
		out = append(out, positions(r.coords))
	}
	return out
}

func (p Point) GeoJSON() GeoJSON {
	return GeoJSON{Type: KindPoint, Coordinates: position(p.coord)}
}

func (mp MultiPoint) GeoJSON() GeoJSON {
	return GeoJSON{Type: KindMultiPoint, Coordinates: positions(mp.coords)}
}

func (ls LineString) GeoJSON() GeoJSON {
	return GeoJSON{Type: KindLineString, Coordinates: positions(ls.coords)}
}

func (ml MultiLineString) GeoJSON() GeoJSON {
	out := make([][][]float64, len(ml.lines))
	for i, ls := range ml.lines {
		out[i] = positions(ls.coords)
	}
	return GeoJSON{Type: KindMultiLineString, Coordinates: out}
}

func (p Polygon) GeoJSON() GeoJSON {
	return GeoJSON{Type: KindPolygon, Coordinates: polygonPositions(p)}
}

func (mp MultiPolygon) GeoJSON() GeoJSON {
	out := make([][][][]float64, len(mp.polygons))
	for i, p := range mp.polygons {
		out[i] = polygonPositions(p)
	}
	return GeoJSON{Type: KindMultiPolygon, Coordinates: out}
}

func (p Point) MarshalJSON() ([]byte, error)            { return json.Marshal(p.GeoJSON()) }
func (mp MultiPoint) MarshalJSON() ([]byte, error)      { return json.Marshal(mp.GeoJSON()) }
func (ls LineString) MarshalJSON() ([]byte, error)      { return json.Marshal(ls.GeoJSON()) }
func (ml MultiLineString) MarshalJSON() ([]byte, error) { return json.Marshal(ml.GeoJSON()) }
func (p Polygon) MarshalJSON() ([]byte, error)          { return json.Marshal(p.GeoJSON()) }
func (mp MultiPolygon) MarshalJSON() ([]byte, error)    { return json.Marshal(mp.GeoJSON()) }

// ParseGeoJSON decodes a GeoJSON geometry object. A third position value
// becomes z; anything past it is ignored.
func ParseGeoJSON(data []byte) (Geometry, error) {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "geojson")
	}

	decode := func(v any) error {
		if len(raw.Coordinates) == 0 {
			return categoryf(ErrMalformedCoordinate, "geojson %s: missing coordinates", raw.Type)
		}
		if err := json.Unmarshal(raw.Coordinates, v); err != nil {
			return categoryf(ErrMalformedCoordinate, "geojson %s: %v", raw.Type, err)
		}
		return nil
	}

	switch Kind(raw.Type) {
	case KindPoint:
		var pos []float64
		if err := decode(&pos); err != nil {
			return nil, err
		}
		c, err := fromPosition(pos)
		if err != nil {
			return nil, err
		}
		return NewPoint(c), nil

	case KindMultiPoint:
		var pos [][]float64
		if err := decode(&pos); err != nil {
			return nil, err
		}
		coords, err := fromPositions(pos)
		if err != nil {
			return nil, err
		}
		return NewMultiPoint(coords...), nil

	case KindLineString:
		var pos [][]float64
		if err := decode(&pos); err != nil {
			return nil, err
		}
		return lineFromPositions(pos)

	case KindMultiLineString:
		var pos [][][]float64
		if err := decode(&pos); err != nil {
			return nil, err
		}
		lines := make([]LineString, 0, len(pos))
		for _, l := range pos {
			ls, err := lineFromPositions(l)
			if err != nil {
				return nil, err
			}
			lines = append(lines, ls)
		}
		return NewMultiLineString(lines...), nil

	case KindPolygon:
		var pos [][][]float64
		if err := decode(&pos); err != nil {
			return nil, err
		}
		return polygonFromPositions(pos)

	case KindMultiPolygon:
		var pos [][][][]float64
		if err := decode(&pos); err != nil {
			return nil, err
		}
		polygons := make([]Polygon, 0, len(pos))
		for _, pp := range pos {
			poly, err := polygonFromPositions(pp)
			if err != nil {
				return nil, err
			}
			polygons = append(polygons, poly)
		}
		return NewMultiPolygon(polygons...), nil
	}
	return nil, categoryf(ErrUnsupportedGeometry, "unsupported geojson type %q", raw.Type)
}

func fromPosition(pos []float64) (Coordinate, error) {
	if len(pos) < 2 {
		return Coordinate{}, categoryf(ErrMalformedCoordinate, "position needs at least 2 values, got %d", len(pos))
	}
	for _, v := range pos[:min(len(pos), 3)] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coordinate{}, categoryf(ErrMalformedCoordinate, "position value %v is not finite", v)
		}
	}
	return CoordinateFromSlice(pos), nil
}

func fromPositions(pos [][]float64) ([]Coordinate, error) {
	coords := make([]Coordinate, 0, len(pos))
	for _, p := range pos {
		c, err := fromPosition(p)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

func lineFromPositions(pos [][]float64) (LineString, error) {
	coords, err := fromPositions(pos)
	if err != nil {
		return LineString{}, err
	}
	return NewLineString(coords)
}

func polygonFromPositions(pos [][][]float64) (Polygon, error) {
	if len(pos) == 0 {
		return Polygon{}, shapeErrorf("polygon needs a shell ring")
	}
	rings := make([]LinearRing, 0, len(pos))
	for _, rp := range pos {
		coords, err := fromPositions(rp)
		if err != nil {
			return Polygon{}, err
		}
		r, err := NewLinearRing(coords)
		if err != nil {
			return Polygon{}, err
		}
		rings = append(rings, r)
	}
	return NewPolygon(rings[0], rings[1:]...), nil
}
