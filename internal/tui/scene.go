package tui

import (
	"math"

	"geowkt/internal/feature"
	"geowkt/internal/geom"
)

// vertex is a planar position in data coordinates.
type vertex [2]float64

type scenePoint struct {
	v       vertex
	feature int
}

type sceneLine struct {
	coords  []vertex
	feature int
}

// scenePolygon holds the shell followed by the holes.
type scenePolygon struct {
	rings   [][]vertex
	feature int
}

// scene is a collection flattened into drawable shapes. Each shape keeps the
// index of the feature it came from.
type scene struct {
	points   []scenePoint
	lines    []sceneLine
	polygons []scenePolygon
	bbox     geom.BBox
}

func vertices(coords []geom.Coordinate) []vertex {
	out := make([]vertex, len(coords))
	for i, c := range coords {
		out[i] = vertex{c.X(), c.Y()}
	}
	return out
}

func polygonRings(p geom.Polygon) [][]vertex {
	rings := p.Rings()
	out := make([][]vertex, len(rings))
	for i, r := range rings {
		out[i] = vertices(r.Coordinates())
	}
	return out
}

func newScene(c *feature.Collection) scene {
	var s scene
	if c == nil {
		s.bbox = geom.EmptyBBox()
		return s
	}
	for i, f := range c.Features() {
		switch g := f.Geometry.(type) {
		case geom.Point:
			s.points = append(s.points, scenePoint{v: vertices([]geom.Coordinate{g.Coordinate()})[0], feature: i})
		case geom.MultiPoint:
			for _, v := range vertices(g.Coordinates()) {
				s.points = append(s.points, scenePoint{v: v, feature: i})
			}
		case geom.LineString:
			s.lines = append(s.lines, sceneLine{coords: vertices(g.Coordinates()), feature: i})
		case geom.MultiLineString:
			for _, ls := range g.LineStrings() {
				s.lines = append(s.lines, sceneLine{coords: vertices(ls.Coordinates()), feature: i})
			}
		case geom.Polygon:
			s.polygons = append(s.polygons, scenePolygon{rings: polygonRings(g), feature: i})
		case geom.MultiPolygon:
			for _, p := range g.Polygons() {
				s.polygons = append(s.polygons, scenePolygon{rings: polygonRings(p), feature: i})
			}
		}
	}
	s.bbox = padBBox(c.Bounds())
	return s
}

// padBBox widens a box with no width or height so a single point or an axis
// aligned line can still be projected.
func padBBox(bb geom.BBox) geom.BBox {
	if !bb.Valid() {
		return bb
	}
	w, h := bb.MaxX-bb.MinX, bb.MaxY-bb.MinY
	pad := func(extent, other float64) float64 {
		if extent > 0 {
			return 0
		}
		if other > 0 {
			return other / 2
		}
		return math.Max(1, math.Abs(bb.MinX)*0.01)
	}
	px, py := pad(w, h), pad(h, w)
	bb.MinX -= px
	bb.MaxX += px
	bb.MinY -= py
	bb.MaxY += py
	return bb
}

func (s scene) empty() bool {
	return len(s.points) == 0 && len(s.lines) == 0 && len(s.polygons) == 0
}

// eachVertex visits every vertex with its feature index.
func (s scene) eachVertex(fn func(v vertex, feature int)) {
	for _, p := range s.points {
		fn(p.v, p.feature)
	}
	for _, ls := range s.lines {
		for _, v := range ls.coords {
			fn(v, ls.feature)
		}
	}
	for _, poly := range s.polygons {
		for _, ring := range poly.rings {
			for _, v := range ring {
				fn(v, poly.feature)
			}
		}
	}
}
