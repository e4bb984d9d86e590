// Package source loads feature collections from WKT, GeoJSON, CSV and KML
// files.
package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"geowkt/internal/feature"
)

type Format string

const (
	FormatWKT     Format = "wkt"
	FormatGeoJSON Format = "geojson"
	FormatCSV     Format = "csv"
	FormatKML     Format = "kml"
)

// ErrNoFeatures is returned when a lenient loader skipped every record.
var ErrNoFeatures = errors.New("no features found")

// FormatFor picks the loader for path by extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wkt", ".txt":
		return FormatWKT, true
	case ".geojson", ".json":
		return FormatGeoJSON, true
	case ".csv":
		return FormatCSV, true
	case ".kml":
		return FormatKML, true
	}
	return "", false
}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	_, ok := FormatFor(path)
	return ok
}

// Load reads the file at path with the loader for its extension.
func Load(path string) (*feature.Collection, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, errors.Newf("unsupported file type %q", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format) (*feature.Collection, error) {
	switch format {
	case FormatWKT:
		return readWKT(r)
	case FormatGeoJSON:
		return readGeoJSON(r)
	case FormatCSV:
		return readCSV(r)
	case FormatKML:
		return readKML(r)
	}
	return nil, errors.Newf("unknown format %q", format)
}
