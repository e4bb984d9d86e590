// Package export writes feature collections as GeoJSON, YAML, WKT or hex
// encoded WKB.
package export

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"geowkt/internal/feature"
)

type Format string

const (
	FormatGeoJSON Format = "geojson"
	FormatYAML    Format = "yaml"
	FormatWKT     Format = "wkt"
	FormatWKB     Format = "wkb"
)

var Formats = []Format{FormatGeoJSON, FormatYAML, FormatWKT, FormatWKB}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatGeoJSON, FormatYAML, FormatWKT, FormatWKB:
		return f, nil
	case "json":
		return FormatGeoJSON, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf("unknown output format %q", s)
}

type Options struct {
	Format Format
	// IncludeZ keeps elevation in WKT and WKB output. GeoJSON is always 2-D.
	IncludeZ bool
	// Indent pretty-prints GeoJSON with this many spaces.
	Indent int
}

// Write encodes c to w. Features without a geometry are written as an empty
// line in the WKT and WKB formats.
func Write(w io.Writer, c *feature.Collection, opts Options) error {
	switch opts.Format {
	case FormatGeoJSON, "":
		enc := json.NewEncoder(w)
		if opts.Indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", opts.Indent))
		}
		return errors.Wrap(enc.Encode(c), "write geojson")

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if opts.Indent > 0 {
			enc.SetIndent(opts.Indent)
		}
		if err := enc.Encode(c); err != nil {
			return errors.Wrap(err, "write yaml")
		}
		return errors.Wrap(enc.Close(), "write yaml")

	case FormatWKT, FormatWKB:
		bw := bufio.NewWriter(w)
		for i, f := range c.Features() {
			line, err := encodeLine(f, opts)
			if err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
		return errors.Wrap(bw.Flush(), "write")
	}
	return errors.Newf("unknown output format %q", opts.Format)
}

func encodeLine(f *feature.Feature, opts Options) (string, error) {
	if f.Geometry == nil {
		return "", nil
	}
	if opts.Format == FormatWKT {
		return f.Geometry.WKT(opts.IncludeZ), nil
	}
	return HexWKB(f.Geometry, opts.IncludeZ)
}
