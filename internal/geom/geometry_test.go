package geom

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, coords ...Coordinate) LineString {
	t.Helper()
	ls, err := NewLineString(coords)
	require.NoError(t, err)
	return ls
}

func mustRing(t *testing.T, coords ...Coordinate) LinearRing {
	t.Helper()
	r, err := NewLinearRing(coords)
	require.NoError(t, err)
	return r
}

// square returns the closed ring (o,o) (o,o+s) (o+s,o+s) (o+s,o) (o,o) at z=0.
func square(t *testing.T, o, s float64) LinearRing {
	return mustRing(t,
		NewCoordinate(o, o, 0),
		NewCoordinate(o, o+s, 0),
		NewCoordinate(o+s, o+s, 0),
		NewCoordinate(o+s, o, 0),
		NewCoordinate(o, o, 0),
	)
}

type fixtures struct {
	point        Point
	multiPoint   MultiPoint
	line         LineString
	multiLine    MultiLineString
	polygon      Polygon
	holed        Polygon
	multiPolygon MultiPolygon
}

func newFixtures(t *testing.T) fixtures {
	c := NewCoordinate(1, 2, 3)
	line := mustLine(t, NewCoordinate(1, 2, 3), NewCoordinate(4, 5, 6))
	polygon := NewPolygon(square(t, 0, 5))
	holed := NewPolygon(square(t, 0, 5), square(t, 1, 3))
	return fixtures{
		point:        NewPoint(c),
		multiPoint:   NewMultiPoint(c, c),
		line:         line,
		multiLine:    NewMultiLineString(line, line),
		polygon:      polygon,
		holed:        holed,
		multiPolygon: NewMultiPolygon(polygon, holed),
	}
}

func TestGeometryWKT(t *testing.T) {
	f := newFixtures(t)
	testCases := []struct {
		g      Geometry
		flat   string
		withZ  string
		asJSON string
	}{
		{
			f.point,
			"POINT (1 2)",
			"POINT Z(1 2 3)",
			`{"type":"Point","coordinates":[1,2]}`,
		},
		{
			f.multiPoint,
			"MULTIPOINT (1 2, 1 2)",
			"MULTIPOINT Z(1 2 3, 1 2 3)",
			`{"type":"MultiPoint","coordinates":[[1,2],[1,2]]}`,
		},
		{
			f.line,
			"LINESTRING (1 2, 4 5)",
			"LINESTRING Z(1 2 3, 4 5 6)",
			`{"type":"LineString","coordinates":[[1,2],[4,5]]}`,
		},
		{
			f.multiLine,
			"MULTILINESTRING ((1 2, 4 5), (1 2, 4 5))",
			"MULTILINESTRING Z((1 2 3, 4 5 6), (1 2 3, 4 5 6))",
			`{"type":"MultiLineString","coordinates":[[[1,2],[4,5]],[[1,2],[4,5]]]}`,
		},
		{
			f.polygon,
			"POLYGON ((0 0, 0 5, 5 5, 5 0, 0 0))",
			"POLYGON Z((0 0 0, 0 5 0, 5 5 0, 5 0 0, 0 0 0))",
			`{"type":"Polygon","coordinates":[[[0,0],[0,5],[5,5],[5,0],[0,0]]]}`,
		},
		{
			f.holed,
			"POLYGON ((0 0, 0 5, 5 5, 5 0, 0 0), (1 1, 1 4, 4 4, 4 1, 1 1))",
			"POLYGON Z((0 0 0, 0 5 0, 5 5 0, 5 0 0, 0 0 0), (1 1 0, 1 4 0, 4 4 0, 4 1 0, 1 1 0))",
			`{"type":"Polygon","coordinates":[[[0,0],[0,5],[5,5],[5,0],[0,0]],[[1,1],[1,4],[4,4],[4,1],[1,1]]]}`,
		},
		{
			f.multiPolygon,
			"MULTIPOLYGON (((0 0, 0 5, 5 5, 5 0, 0 0)), ((0 0, 0 5, 5 5, 5 0, 0 0), (1 1, 1 4, 4 4, 4 1, 1 1)))",
			"MULTIPOLYGON Z(((0 0 0, 0 5 0, 5 5 0, 5 0 0, 0 0 0)), ((0 0 0, 0 5 0, 5 5 0, 5 0 0, 0 0 0), (1 1 0, 1 4 0, 4 4 0, 4 1 0, 1 1 0)))",
			`{"type":"MultiPolygon","coordinates":[[[[0,0],[0,5],[5,5],[5,0],[0,0]]],[[[0,0],[0,5],[5,5],[5,0],[0,0]],[[1,1],[1,4],[4,4],[4,1],[1,1]]]]}`,
		},
	}
	for _, tc := range testCases {
		t.Run(string(tc.g.Kind()), func(t *testing.T) {
			require.Equal(t, tc.flat, tc.g.WKT(false))
			require.Equal(t, tc.withZ, tc.g.WKT(true))

			out, err := json.Marshal(tc.g)
			require.NoError(t, err)
			require.JSONEq(t, tc.asJSON, string(out))
			require.Equal(t, tc.asJSON, string(out))
		})
	}
}

func TestEmptyCollectionsWKT(t *testing.T) {
	require.Equal(t, "MULTIPOINT ()", NewMultiPoint().WKT(false))
	require.Equal(t, "MULTILINESTRING Z()", NewMultiLineString().WKT(true))
	require.Equal(t, "MULTIPOLYGON ()", NewMultiPolygon().WKT(false))

	out, err := json.Marshal(NewMultiPoint())
	require.NoError(t, err)
	require.Equal(t, `{"type":"MultiPoint","coordinates":[]}`, string(out))
}

func TestZeroValuesRenderEmpty(t *testing.T) {
	require.Equal(t, "LINESTRING ()", LineString{}.WKT(false))
	require.Equal(t, "POLYGON ()", Polygon{}.WKT(false))
	require.Equal(t, "POLYGON Z()", Polygon{}.WKT(true))
	require.Equal(t, 0, Polygon{}.Len())
	require.Empty(t, Polygon{}.Rings())

	out, err := json.Marshal(Polygon{})
	require.NoError(t, err)
	require.Equal(t, `{"type":"Polygon","coordinates":[]}`, string(out))

	for _, g := range []Geometry{LineString{}, Polygon{}} {
		_, err := ParseWKT(g.WKT(false))
		require.True(t, errors.Is(err, ErrShapeInvalid), "got %v", err)
	}
}

func TestLineStringBoundaries(t *testing.T) {
	_, err := NewLineString([]Coordinate{NewCoordinate(0, 0, 0), NewCoordinate(1, 1, 0)})
	require.NoError(t, err)

	_, err = NewLineString([]Coordinate{NewCoordinate(0, 0, 0)})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShapeInvalid))

	_, err = NewLineString(nil)
	require.True(t, errors.Is(err, ErrShapeInvalid))
}

func TestLinearRingBoundaries(t *testing.T) {
	t.Run("four closed", func(t *testing.T) {
		r, err := NewLinearRing([]Coordinate{
			NewCoordinate(0, 0, 0), NewCoordinate(1, 0, 0), NewCoordinate(1, 1, 0), NewCoordinate(0, 0, 0),
		})
		require.NoError(t, err)
		require.Equal(t, 4, r.Len())
		require.Equal(t, "LINESTRING (0 0, 1 0, 1 1, 0 0)", r.LineString().WKT(false))
	})

	t.Run("four open", func(t *testing.T) {
		_, err := NewLinearRing([]Coordinate{
			NewCoordinate(0, 0, 0), NewCoordinate(1, 0, 0), NewCoordinate(1, 1, 0), NewCoordinate(0, 1, 0),
		})
		require.True(t, errors.Is(err, ErrShapeInvalid))
		require.Contains(t, errors.FlattenHints(err), "repeat the first coordinate")
	})

	t.Run("closed in plane only", func(t *testing.T) {
		_, err := NewLinearRing([]Coordinate{
			NewCoordinate(0, 0, 0), NewCoordinate(1, 0, 0), NewCoordinate(1, 1, 0), NewCoordinate(0, 0, 1),
		})
		require.True(t, errors.Is(err, ErrShapeInvalid))
	})

	t.Run("three", func(t *testing.T) {
		_, err := NewLinearRing([]Coordinate{
			NewCoordinate(0, 0, 0), NewCoordinate(1, 0, 0), NewCoordinate(0, 0, 0),
		})
		require.True(t, errors.Is(err, ErrShapeInvalid))
	})
}

func TestGeometryImmutable(t *testing.T) {
	coords := []Coordinate{NewCoordinate(1, 2, 0), NewCoordinate(3, 4, 0)}
	ls, err := NewLineString(coords)
	require.NoError(t, err)

	coords[0] = NewCoordinate(9, 9, 9)
	require.Equal(t, "LINESTRING (1 2, 3 4)", ls.WKT(false))

	got := ls.Coordinates()
	got[1] = NewCoordinate(7, 7, 7)
	require.Equal(t, "LINESTRING (1 2, 3 4)", ls.WKT(false))

	mp := NewMultiPoint(coords...)
	coords[1] = NewCoordinate(0, 0, 0)
	require.Equal(t, "MULTIPOINT (9 9, 3 4)", mp.WKT(false))

	f := newFixtures(t)
	holes := f.holed.Holes()
	holes[0] = square(t, 2, 1)
	require.Equal(t, newFixtures(t).holed.WKT(false), f.holed.WKT(false))
}

func TestPolygonAccessors(t *testing.T) {
	f := newFixtures(t)
	require.Equal(t, 2, f.holed.Len())
	require.Len(t, f.holed.Rings(), 2)
	require.Equal(t, 5, f.holed.Shell().Len())
	require.Len(t, f.holed.Coordinates(), 2)
	require.Len(t, f.multiPolygon.Coordinates(), 2)
	require.Equal(t, [][]Coordinate{
		{NewCoordinate(1, 2, 3), NewCoordinate(4, 5, 6)},
		{NewCoordinate(1, 2, 3), NewCoordinate(4, 5, 6)},
	}, f.multiLine.Coordinates())
}

func TestBounds(t *testing.T) {
	f := newFixtures(t)
	require.Equal(t, BBox{MinX: 1, MinY: 2, MaxX: 1, MaxY: 2}, Bounds(f.point))
	require.Equal(t, BBox{MinX: 1, MinY: 2, MaxX: 4, MaxY: 5}, Bounds(f.multiLine))
	require.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}, Bounds(f.multiPolygon))
	require.False(t, Bounds(NewMultiPoint()).Valid())

	u := Bounds(f.point).Union(Bounds(f.polygon))
	require.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}, u)
	require.Equal(t, u, EmptyBBox().Union(u))
}
