package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geowkt/internal/geom"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"a.wkt", "a.txt", "a.GeoJSON", "a.json", "a.csv", "a.KML"} {
		assert.True(t, Supported(name), name)
	}
	for _, name := range []string{"a.shp", "a", "a.kmz"} {
		assert.False(t, Supported(name), name)
	}
	_, err := Load("a.shp")
	assert.Error(t, err)
}

func TestLoadWKT(t *testing.T) {
	path := writeFile(t, "shapes.wkt", `# fixtures
POINT (1 2)

LINESTRING Z(1 2 3, 4 5 6)
  POLYGON ((0 0, 0 5, 5 5, 5 0, 0 0))
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	assert.Equal(t, "LINESTRING Z(1 2 3, 4 5 6)", c.At(1).Geometry.WKT(true))
	assert.Equal(t, geom.KindPolygon, c.At(2).Geometry.Kind())
}

func TestLoadWKTError(t *testing.T) {
	path := writeFile(t, "bad.wkt", "POINT (1 2)\n\nLINESTRING (1 2)\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, geom.ErrShapeInvalid))
	assert.Contains(t, err.Error(), "line 3")

	var perr *geom.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestScanWKT(t *testing.T) {
	input := "POINT (1 2)\n# skip\nPOINT (1\n\nLINESTRING (0 0, 1 1)\nCIRCLE (0 0)\n"
	var lines []int
	var failed []string
	err := ScanWKT(strings.NewReader(input), func(n int, g geom.Geometry, err error) bool {
		lines = append(lines, n)
		if err != nil {
			failed = append(failed, geom.Category(err))
		}
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 6}, lines)
	assert.Equal(t, []string{"syntax", "unsupported"}, failed)

	calls := 0
	require.NoError(t, ScanWKT(strings.NewReader(input), func(int, geom.Geometry, error) bool {
		calls++
		return false
	}))
	assert.Equal(t, 1, calls)
}

func TestLoadGeoJSON(t *testing.T) {
	path := writeFile(t, "fc.geojson", `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Point","coordinates":[1,2]}},
		{"type":"Feature","properties":{},"geometry":{"type":"MultiLineString","coordinates":[[[1,2],[3,4]]]}}
	]}`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	v, ok := c.At(0).Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	path = writeFile(t, "pt.json", `{"type":"Point","coordinates":[5,6]}`)
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "POINT (5 6)", c.At(0).Geometry.WKT(false))

	path = writeFile(t, "bad.json", `{"type":"Point","coordinates":[5]}`)
	_, err = Load(path)
	assert.True(t, errors.Is(err, geom.ErrMalformedCoordinate))
}

func TestLoadCSVLatLon(t *testing.T) {
	path := writeFile(t, "pts.csv", `name,Latitude,LON,kind
alpha,10,20,a
beta,bad,21,b
gamma,11,22
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "POINT (20 10)", c.At(0).Geometry.WKT(false))
	assert.Equal(t, []string{"name", "kind"}, c.At(0).Properties.Keys())
	v, _ := c.At(1).Properties.Get("kind")
	assert.Equal(t, "", v)
}

func TestLoadCSVWKTColumn(t *testing.T) {
	path := writeFile(t, "shapes.csv", `id,wkt,lat
1,"LINESTRING (1 2, 3 4)",9
2,"POINT (5 6)",8
3,"POINT (oops)",7
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, geom.KindLineString, c.At(0).Geometry.Kind())
	assert.Equal(t, []string{"id", "lat"}, c.At(1).Properties.Keys())
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := Load(writeFile(t, "empty.csv", ""))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "nocols.csv", "a,b\n1,2\n"))
	assert.ErrorContains(t, err, "latitude/longitude")

	_, err = Load(writeFile(t, "norows.csv", "lat,lon\nx,y\n"))
	assert.True(t, errors.Is(err, ErrNoFeatures))
}

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <name>Tower</name>
        <description>tall</description>
        <Point><coordinates>10.5,20.25,100</coordinates></Point>
      </Placemark>
    </Folder>
    <Placemark>
      <name>Road</name>
      <LineString><coordinates>
        1,2 3,4 5,6
      </coordinates></LineString>
    </Placemark>
    <Placemark>
      <name>Park</name>
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 0,5 5,5 5,0 0,0</coordinates></LinearRing></outerBoundaryIs>
        <innerBoundaryIs><LinearRing><coordinates>1,1 1,4 4,4 4,1 1,1</coordinates></LinearRing></innerBoundaryIs>
      </Polygon>
    </Placemark>
    <Placemark>
      <name>Broken</name>
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 0,5 5,5</coordinates></LinearRing></outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Placemark><name>Empty</name></Placemark>
  </Document>
</kml>`

func TestLoadKML(t *testing.T) {
	c, err := Load(writeFile(t, "doc.kml", sampleKML))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	assert.Equal(t, "POINT Z(10.5 20.25 100)", c.At(0).Geometry.WKT(true))
	assert.Equal(t, []string{"name", "description"}, c.At(0).Properties.Keys())
	assert.Equal(t, "LINESTRING (1 2, 3 4, 5 6)", c.At(1).Geometry.WKT(false))
	assert.Equal(t,
		"POLYGON ((0 0, 0 5, 5 5, 5 0, 0 0), (1 1, 1 4, 4 4, 4 1, 1 1))",
		c.At(2).Geometry.WKT(false))
	name, _ := c.At(2).Properties.Get("name")
	assert.Equal(t, "Park", name)
}

func TestReadKMLErrors(t *testing.T) {
	_, err := Read(strings.NewReader(`<kml><Document></Document></kml>`), FormatKML)
	assert.True(t, errors.Is(err, ErrNoFeatures))

	_, err = Read(strings.NewReader(`<kml><Placemark>`), FormatKML)
	assert.Error(t, err)

	_, err = Read(strings.NewReader(""), Format("shp"))
	assert.Error(t, err)
}
