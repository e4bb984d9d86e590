package source

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"geowkt/internal/feature"
	"geowkt/internal/geom"
)

// ScanWKT calls fn for every WKT line of r with its 1-based line number and
// the parse result. Blank lines and lines starting with '#' are skipped.
// Scanning stops early when fn returns false.
func ScanWKT(r io.Reader, fn func(line int, g geom.Geometry, err error) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := geom.ParseWKT(line)
		if !fn(n, g, err) {
			return nil
		}
	}
	return errors.Wrap(sc.Err(), "read wkt")
}

// readWKT reads one geometry per line and fails on the first invalid one.
func readWKT(r io.Reader) (*feature.Collection, error) {
	c := feature.NewCollection()
	var failed error
	err := ScanWKT(r, func(n int, g geom.Geometry, err error) bool {
		if err != nil {
			failed = errors.Wrapf(err, "line %d", n)
			return false
		}
		c.Add(feature.NewFeature(g))
		return true
	})
	if failed != nil {
		return nil, failed
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func readGeoJSON(r io.Reader) (*feature.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var c feature.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
