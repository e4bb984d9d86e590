// Package geom models vector geometries and converts them to and from WKT
// and GeoJSON.
//
// Every variant is an immutable value: constructors copy their input and
// accessors return copies, so a geometry never shares mutable storage with
// its caller or with another geometry.
package geom

import (
	"encoding/json"
	"slices"

	"github.com/cockroachdb/errors"
)

// Geometry is one of Point, MultiPoint, LineString, MultiLineString, Polygon
// or MultiPolygon. The set is closed.
type Geometry interface {
	Kind() Kind
	// WKT renders the geometry as Well-Known Text, with elevation when
	// includeZ is set.
	WKT(includeZ bool) string
	// GeoJSON projects the geometry to its 2-D GeoJSON form.
	GeoJSON() GeoJSON
	json.Marshaler

	sealed()
}

type Point struct {
	coord Coordinate
}

func NewPoint(c Coordinate) Point { return Point{coord: c} }

func (p Point) Coordinate() Coordinate { return p.coord }

type MultiPoint struct {
	coords []Coordinate
}

func NewMultiPoint(coords ...Coordinate) MultiPoint {
	return MultiPoint{coords: slices.Clone(coords)}
}

func (mp MultiPoint) Coordinates() []Coordinate { return slices.Clone(mp.coords) }
func (mp MultiPoint) Len() int                  { return len(mp.coords) }

// LineString is an open chain of coordinates. The zero value is empty and
// renders as "LINESTRING ()", which does not parse back; use NewLineString.
type LineString struct {
	coords []Coordinate
}

// NewLineString needs at least two coordinates.
func NewLineString(coords []Coordinate) (LineString, error) {
	if len(coords) < 2 {
		return LineString{}, shapeErrorf("linestring needs at least 2 coordinates, got %d", len(coords))
	}
	return LineString{coords: slices.Clone(coords)}, nil
}

func (ls LineString) Coordinates() []Coordinate { return slices.Clone(ls.coords) }
func (ls LineString) Len() int                  { return len(ls.coords) }

// LinearRing is a closed line string used as a polygon shell or hole. It is
// a building block, not a geometry of its own. Only NewLinearRing produces a
// valid ring; the zero value is empty.
type LinearRing struct {
	coords []Coordinate
}

// NewLinearRing needs at least four coordinates, the last equal to the first
// in x, y and z.
func NewLinearRing(coords []Coordinate) (LinearRing, error) {
	if len(coords) < 4 {
		return LinearRing{}, shapeErrorf("linear ring needs at least 4 coordinates, got %d", len(coords))
	}
	first, last := coords[0], coords[len(coords)-1]
	if !first.Equals(last) {
		err := shapeErrorf("linear ring is not closed: first (%s) != last (%s)", first, last)
		return LinearRing{}, errors.WithHint(err, "repeat the first coordinate at the end of the ring")
	}
	return LinearRing{coords: slices.Clone(coords)}, nil
}

func (r LinearRing) Coordinates() []Coordinate { return slices.Clone(r.coords) }
func (r LinearRing) Len() int                  { return len(r.coords) }

// LineString returns the ring as an open geometry.
func (r LinearRing) LineString() LineString { return LineString(r) }

type MultiLineString struct {
	lines []LineString
}

func NewMultiLineString(lines ...LineString) MultiLineString {
	return MultiLineString{lines: slices.Clone(lines)}
}

func (ml MultiLineString) LineStrings() []LineString { return slices.Clone(ml.lines) }
func (ml MultiLineString) Len() int                  { return len(ml.lines) }

func (ml MultiLineString) Coordinates() [][]Coordinate {
	out := make([][]Coordinate, len(ml.lines))
	for i, ls := range ml.lines {
		out[i] = ls.Coordinates()
	}
	return out
}

// Polygon is a shell followed by zero or more holes. The zero value has no
// rings and renders as "POLYGON ()", which does not parse back; build
// polygons from NewLinearRing results.
type Polygon struct {
	shell LinearRing
	holes []LinearRing
}

func NewPolygon(shell LinearRing, holes ...LinearRing) Polygon {
	p := Polygon{shell: shell}
	if len(holes) > 0 {
		p.holes = slices.Clone(holes)
	}
	return p
}

func (p Polygon) Shell() LinearRing   { return p.shell }
func (p Polygon) Holes() []LinearRing { return slices.Clone(p.holes) }

func (p Polygon) empty() bool { return p.shell.coords == nil && len(p.holes) == 0 }

// Len is the number of rings, shell included.
func (p Polygon) Len() int {
	if p.empty() {
		return 0
	}
	return 1 + len(p.holes)
}

// Rings returns the shell followed by the holes, or nothing for the zero
// value.
func (p Polygon) Rings() []LinearRing {
	if p.empty() {
		return nil
	}
	return append([]LinearRing{p.shell}, p.holes...)
}

func (p Polygon) Coordinates() [][]Coordinate {
	out := make([][]Coordinate, 0, p.Len())
	for _, r := range p.Rings() {
		out = append(out, r.Coordinates())
	}
	return out
}

type MultiPolygon struct {
	polygons []Polygon
}

func NewMultiPolygon(polygons ...Polygon) MultiPolygon {
	return MultiPolygon{polygons: slices.Clone(polygons)}
}

func (mp MultiPolygon) Polygons() []Polygon { return slices.Clone(mp.polygons) }
func (mp MultiPolygon) Len() int            { return len(mp.polygons) }

func (mp MultiPolygon) Coordinates() [][][]Coordinate {
	out := make([][][]Coordinate, len(mp.polygons))
	for i, p := range mp.polygons {
		out[i] = p.Coordinates()
	}
	return out
}

func (Point) Kind() Kind           { return KindPoint }
func (MultiPoint) Kind() Kind      { return KindMultiPoint }
func (LineString) Kind() Kind      { return KindLineString }
func (MultiLineString) Kind() Kind { return KindMultiLineString }
func (Polygon) Kind() Kind         { return KindPolygon }
func (MultiPolygon) Kind() Kind    { return KindMultiPolygon }

func (Point) sealed()           {}
func (MultiPoint) sealed()      {}
func (LineString) sealed()      {}
func (MultiLineString) sealed() {}
func (Polygon) sealed()         {}
func (MultiPolygon) sealed()    {}
