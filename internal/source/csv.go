package source

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"geowkt/internal/feature"
	"geowkt/internal/geom"
)

type csvColumns struct {
	wkt, lat, lon int
	props         []int
}

// detectColumns finds the geometry columns: wkt|geometry, or
// lat|latitude|y and lon|lng|long|longitude|x (case-insensitive). Every other
// column is a property.
func detectColumns(header []string) (csvColumns, error) {
	cols := csvColumns{wkt: -1, lat: -1, lon: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "wkt", "geometry":
			if cols.wkt == -1 {
				cols.wkt = i
				continue
			}
		case "lat", "latitude", "y":
			if cols.lat == -1 {
				cols.lat = i
				continue
			}
		case "lon", "lng", "long", "longitude", "x":
			if cols.lon == -1 {
				cols.lon = i
				continue
			}
		}
		cols.props = append(cols.props, i)
	}

	if cols.wkt != -1 {
		// lat/lon stay plain properties next to a wkt column
		for _, i := range []int{cols.lat, cols.lon} {
			if i != -1 {
				cols.props = append(cols.props, i)
			}
		}
		cols.lat, cols.lon = -1, -1
		slices.Sort(cols.props)
		return cols, nil
	}
	if cols.lat == -1 || cols.lon == -1 {
		return cols, errors.New("csv: no wkt column and latitude/longitude columns not found")
	}
	return cols, nil
}

func (cols csvColumns) geometry(row []string) (geom.Geometry, error) {
	field := func(i int) (string, error) {
		if i >= len(row) {
			return "", errors.Newf("missing column %d", i+1)
		}
		return strings.TrimSpace(row[i]), nil
	}
	if cols.wkt != -1 {
		s, err := field(cols.wkt)
		if err != nil {
			return nil, err
		}
		return geom.ParseWKT(s)
	}

	latS, err := field(cols.lat)
	if err != nil {
		return nil, err
	}
	lonS, err := field(cols.lon)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(lonS, 64)
	if err != nil {
		return nil, errors.Wrap(err, "longitude")
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return nil, errors.Wrap(err, "latitude")
	}
	return geom.NewPoint(geom.NewCoordinate(lon, lat, 0)), nil
}

// readCSV turns each row into a feature. Rows without a usable geometry are
// skipped with a warning.
func readCSV(r io.Reader) (*feature.Collection, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}

	header := recs[0]
	cols, err := detectColumns(header)
	if err != nil {
		return nil, err
	}

	c := feature.NewCollection()
	for n, row := range recs[1:] {
		g, err := cols.geometry(row)
		if err != nil {
			log.Warn().Err(err).Int("row", n+2).Msg("Skipping csv row")
			continue
		}
		f := feature.NewFeature(g)
		for _, i := range cols.props {
			var v string
			if i < len(row) {
				v = row[i]
			}
			f.Properties.Set(header[i], v)
		}
		c.Add(f)
	}
	if c.Len() == 0 {
		return nil, errors.Wrap(ErrNoFeatures, "csv")
	}
	return c, nil
}
