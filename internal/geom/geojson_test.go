package geom

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestGeoJSONDropsElevation(t *testing.T) {
	p := NewPoint(NewCoordinate(1, 2, 3))
	require.Equal(t, GeoJSON{Type: KindPoint, Coordinates: []float64{1, 2}}, p.GeoJSON())
	require.Equal(t, p.GeoJSON(), NewPoint(NewCoordinate(1, 2, 0)).GeoJSON())
}

func TestParseGeoJSON(t *testing.T) {
	f := newFixtures(t)
	for _, g := range []Geometry{f.point, f.multiPoint, f.line, f.multiLine, f.polygon, f.holed, f.multiPolygon} {
		t.Run(string(g.Kind()), func(t *testing.T) {
			data, err := json.Marshal(g)
			require.NoError(t, err)

			parsed, err := ParseGeoJSON(data)
			require.NoError(t, err)
			require.Equal(t, g.GeoJSON(), parsed.GeoJSON())
			require.Equal(t, g.WKT(false), parsed.WKT(false))
		})
	}
}

func TestParseGeoJSONElevation(t *testing.T) {
	g, err := ParseGeoJSON([]byte(`{"type":"LineString","coordinates":[[1,2,3],[4,5,6,7]]}`))
	require.NoError(t, err)
	require.Equal(t, "LINESTRING Z(1 2 3, 4 5 6)", g.WKT(true))
}

func TestPositionMustBeFinite(t *testing.T) {
	for _, pos := range [][]float64{
		{math.NaN(), 1},
		{1, math.Inf(1)},
		{1, 2, math.Inf(-1)},
	} {
		_, err := fromPosition(pos)
		require.True(t, errors.Is(err, ErrMalformedCoordinate), "got %v", err)
	}
	c, err := fromPosition([]float64{1, 2, 3, math.NaN()})
	require.NoError(t, err)
	require.True(t, c.Equals(NewCoordinate(1, 2, 3)))
}

func TestParseGeoJSONErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		category error
	}{
		{"unknown type", `{"type":"Circle","coordinates":[1,2]}`, ErrUnsupportedGeometry},
		{"collection", `{"type":"GeometryCollection","geometries":[]}`, ErrUnsupportedGeometry},
		{"missing coordinates", `{"type":"Point"}`, ErrMalformedCoordinate},
		{"short position", `{"type":"Point","coordinates":[1]}`, ErrMalformedCoordinate},
		{"wrong nesting", `{"type":"Polygon","coordinates":[[1,2],[3,4]]}`, ErrMalformedCoordinate},
		{"string coordinate", `{"type":"Point","coordinates":["1",2]}`, ErrMalformedCoordinate},
		{"short line", `{"type":"LineString","coordinates":[[1,2]]}`, ErrShapeInvalid},
		{"open ring", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]]]}`, ErrShapeInvalid},
		{"no rings", `{"type":"Polygon","coordinates":[]}`, ErrShapeInvalid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGeoJSON([]byte(tc.input))
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.category), "got %v", err)
		})
	}

	_, err := ParseGeoJSON([]byte(`{`))
	require.Error(t, err)
}
