package source

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"geowkt/internal/feature"
	"geowkt/internal/geom"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Name        string      `xml:"name"`
	Description string      `xml:"description"`
	Point       *kmlCoords  `xml:"Point"`
	LineString  *kmlCoords  `xml:"LineString"`
	Polygon     *kmlPolygon `xml:"Polygon"`
}

// parseKMLCoords reads whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) ([]geom.Coordinate, error) {
	var coords []geom.Coordinate
	for _, tuple := range strings.Fields(s) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, errors.Newf("bad coordinate tuple %q", tuple)
		}
		values := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, errors.Wrapf(geom.ErrMalformedCoordinate, "tuple %q", tuple)
			}
			values[i] = f
		}
		coords = append(coords, geom.CoordinateFromSlice(values))
	}
	return coords, nil
}

func (pm kmlPlacemark) geometry() (geom.Geometry, error) {
	switch {
	case pm.Point != nil:
		coords, err := parseKMLCoords(pm.Point.Coordinates)
		if err != nil {
			return nil, err
		}
		if len(coords) != 1 {
			return nil, errors.Newf("point needs 1 coordinate, got %d", len(coords))
		}
		return geom.NewPoint(coords[0]), nil

	case pm.LineString != nil:
		coords, err := parseKMLCoords(pm.LineString.Coordinates)
		if err != nil {
			return nil, err
		}
		return geom.NewLineString(coords)

	case pm.Polygon != nil:
		ring := func(r kmlRing) (geom.LinearRing, error) {
			coords, err := parseKMLCoords(r.Coordinates)
			if err != nil {
				return geom.LinearRing{}, err
			}
			return geom.NewLinearRing(coords)
		}
		shell, err := ring(pm.Polygon.Outer)
		if err != nil {
			return nil, errors.Wrap(err, "outer boundary")
		}
		holes := make([]geom.LinearRing, 0, len(pm.Polygon.Inner))
		for i, in := range pm.Polygon.Inner {
			h, err := ring(in)
			if err != nil {
				return nil, errors.Wrapf(err, "inner boundary %d", i)
			}
			holes = append(holes, h)
		}
		return geom.NewPolygon(shell, holes...), nil
	}
	return nil, errors.Wrap(geom.ErrUnsupportedGeometry, "placemark has no Point, LineString or Polygon")
}

// readKML turns every Placemark, at any depth, into a feature. Placemarks
// without a usable geometry are skipped with a warning.
func readKML(r io.Reader) (*feature.Collection, error) {
	c := feature.NewCollection()
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read kml")
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}

		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, errors.Wrap(err, "read kml placemark")
		}
		g, err := pm.geometry()
		if err != nil {
			log.Warn().Err(err).Str("name", pm.Name).Msg("Skipping kml placemark")
			continue
		}
		f := feature.NewFeature(g)
		if pm.Name != "" {
			f.Properties.Set("name", strings.TrimSpace(pm.Name))
		}
		if pm.Description != "" {
			f.Properties.Set("description", strings.TrimSpace(pm.Description))
		}
		c.Add(f)
	}
	if c.Len() == 0 {
		return nil, errors.Wrap(ErrNoFeatures, "kml")
	}
	return c, nil
}
