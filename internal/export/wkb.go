package export

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbhex"

	"geowkt/internal/geom"
)

// flatCoords appends coords to flat in the given layout.
func flatCoords(flat []float64, coords []geom.Coordinate, layout gogeom.Layout) []float64 {
	for _, c := range coords {
		flat = append(flat, c.X(), c.Y())
		if layout == gogeom.XYZ {
			flat = append(flat, c.Z())
		}
	}
	return flat
}

func flatRings(flat []float64, p geom.Polygon, layout gogeom.Layout) ([]float64, []int) {
	rings := p.Rings()
	ends := make([]int, 0, len(rings))
	for _, r := range rings {
		flat = flatCoords(flat, r.Coordinates(), layout)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

// ToGeom converts g to its go-geom equivalent, with a Z ordinate when
// includeZ is set.
func ToGeom(g geom.Geometry, includeZ bool) (gogeom.T, error) {
	layout := gogeom.XY
	if includeZ {
		layout = gogeom.XYZ
	}

	switch g := g.(type) {
	case geom.Point:
		return gogeom.NewPointFlat(layout, flatCoords(nil, []geom.Coordinate{g.Coordinate()}, layout)), nil
	case geom.MultiPoint:
		return gogeom.NewMultiPointFlat(layout, flatCoords(nil, g.Coordinates(), layout)), nil
	case geom.LineString:
		return gogeom.NewLineStringFlat(layout, flatCoords(nil, g.Coordinates(), layout)), nil
	case geom.MultiLineString:
		var flat []float64
		ends := make([]int, 0, g.Len())
		for _, ls := range g.LineStrings() {
			flat = flatCoords(flat, ls.Coordinates(), layout)
			ends = append(ends, len(flat))
		}
		return gogeom.NewMultiLineStringFlat(layout, flat, ends), nil
	case geom.Polygon:
		flat, ends := flatRings(nil, g, layout)
		return gogeom.NewPolygonFlat(layout, flat, ends), nil
	case geom.MultiPolygon:
		var flat []float64
		endss := make([][]int, 0, g.Len())
		for _, p := range g.Polygons() {
			var ends []int
			flat, ends = flatRings(flat, p, layout)
			endss = append(endss, ends)
		}
		return gogeom.NewMultiPolygonFlat(layout, flat, endss), nil
	}
	return nil, errors.Wrapf(geom.ErrUnsupportedGeometry, "cannot convert %T", g)
}

// WKB encodes g as little-endian Well-Known Binary.
func WKB(g geom.Geometry, includeZ bool) ([]byte, error) {
	t, err := ToGeom(g, includeZ)
	if err != nil {
		return nil, err
	}
	b, err := wkb.Marshal(t, binary.LittleEndian)
	return b, errors.Wrap(err, "encode wkb")
}

// HexWKB is WKB as a lowercase hex string.
func HexWKB(g geom.Geometry, includeZ bool) (string, error) {
	t, err := ToGeom(g, includeZ)
	if err != nil {
		return "", err
	}
	s, err := wkbhex.Encode(t, binary.LittleEndian)
	return s, errors.Wrap(err, "encode wkb")
}
