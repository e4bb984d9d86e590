package geom

import "math"

// Kind is the discriminant of a geometry variant. Its value is the GeoJSON
// type name.
type Kind string

const (
	KindPoint           Kind = "Point"
	KindMultiPoint      Kind = "MultiPoint"
	KindLineString      Kind = "LineString"
	KindMultiLineString Kind = "MultiLineString"
	KindPolygon         Kind = "Polygon"
	KindMultiPolygon    Kind = "MultiPolygon"
)

// Keyword is the uppercase WKT type keyword.
func (k Kind) Keyword() string {
	switch k {
	case KindPoint:
		return "POINT"
	case KindMultiPoint:
		return "MULTIPOINT"
	case KindLineString:
		return "LINESTRING"
	case KindMultiLineString:
		return "MULTILINESTRING"
	case KindPolygon:
		return "POLYGON"
	case KindMultiPolygon:
		return "MULTIPOLYGON"
	}
	return ""
}

func kindForKeyword(keyword string) (Kind, bool) {
	switch keyword {
	case "POINT":
		return KindPoint, true
	case "MULTIPOINT":
		return KindMultiPoint, true
	case "LINESTRING":
		return KindLineString, true
	case "MULTILINESTRING":
		return KindMultiLineString, true
	case "POLYGON":
		return KindPolygon, true
	case "MULTIPOLYGON":
		return KindMultiPolygon, true
	}
	return "", false
}

// BBox is a planar bounding box.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBBox returns a box that any Extend call will replace.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b BBox) Extend(c Coordinate) BBox {
	b.MinX = math.Min(b.MinX, c.x)
	b.MinY = math.Min(b.MinY, c.y)
	b.MaxX = math.Max(b.MaxX, c.x)
	b.MaxY = math.Max(b.MaxY, c.y)
	return b
}

func (b BBox) Union(o BBox) BBox {
	if !o.Valid() {
		return b
	}
	if !b.Valid() {
		return o
	}
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Valid reports whether at least one coordinate was added.
func (b BBox) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Bounds returns the planar bounding box of g. Empty collections yield an
// invalid box.
func Bounds(g Geometry) BBox {
	bb := EmptyBBox()
	switch g := g.(type) {
	case Point:
		bb = bb.Extend(g.coord)
	case MultiPoint:
		bb = extendAll(bb, g.coords)
	case LineString:
		bb = extendAll(bb, g.coords)
	case MultiLineString:
		for _, ls := range g.lines {
			bb = extendAll(bb, ls.coords)
		}
	case Polygon:
		bb = extendAll(bb, g.shell.coords)
	case MultiPolygon:
		for _, p := range g.polygons {
			bb = extendAll(bb, p.shell.coords)
		}
	}
	return bb
}

func extendAll(bb BBox, coords []Coordinate) BBox {
	for _, c := range coords {
		bb = bb.Extend(c)
	}
	return bb
}
