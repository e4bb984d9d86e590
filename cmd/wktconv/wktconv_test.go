package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withIO swaps stdin and stdout for the duration of the test.
func withIO(t *testing.T, in string) *bytes.Buffer {
	t.Helper()
	out := &bytes.Buffer{}
	oldIn, oldOut := stdin, stdout
	stdin, stdout = strings.NewReader(in), out
	t.Cleanup(func() { stdin, stdout = oldIn, oldOut })
	return out
}

// captureLog routes the global logger into a buffer as JSON lines.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := log.Logger
	log.Logger = zerolog.New(buf)
	t.Cleanup(func() { log.Logger = old })
	return buf
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertStdinToGeoJSON(t *testing.T) {
	out := withIO(t, "POINT Z(1 2 3)\n\nLINESTRING (0 0, 1 1)\n")
	captureLog(t)

	err := CmdConvert{Format: "geojson"}.Execute(nil)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"FeatureCollection","features":[`+
		`{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}},`+
		`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`+"\n",
		out.String())
}

func TestConvertFileToWKT(t *testing.T) {
	withIO(t, "")
	captureLog(t)
	in := writeFile(t, "pts.csv", "name,lat,lon\nA,2,1\nB,4,3.5\n")
	dst := filepath.Join(t.TempDir(), "out.wkt")

	err := CmdConvert{Format: "wkt", Output: dst}.Execute([]string{in})
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "POINT (1 2)\nPOINT (3.5 4)\n", string(data))
}

func TestConvertWKBKeepsZ(t *testing.T) {
	out := withIO(t, "POINT Z(1 2 3)\n")
	captureLog(t)

	require.NoError(t, CmdConvert{Format: "wkb", IncludeZ: true}.Execute([]string{"-"}))
	assert.Equal(t, "01e9030000000000000000f03f00000000000000400000000000000840\n", out.String())
}

func TestConvertErrors(t *testing.T) {
	withIO(t, "POINT (1 2)\nPOINT (1\n")
	captureLog(t)

	err := CmdConvert{Format: "geojson"}.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	err = CmdConvert{Format: "geojson"}.Execute([]string{"a.wkt", "b.wkt"})
	assert.ErrorContains(t, err, "at most one input")

	err = CmdConvert{Format: "svg"}.Execute(nil)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestBuild(t *testing.T) {
	out := withIO(t, "")
	logs := captureLog(t)
	cfg := writeFile(t, "features.yaml", `output:
  format: wkt
  include_z: true
features:
  - wkt: POINT Z(1 2 3)
    properties:
      name: well
  - wkt: LINESTRING (0 0, 1 1)
`)

	require.NoError(t, CmdBuild{Config: cfg}.Execute(nil))
	assert.Equal(t, "POINT Z(1 2 3)\nLINESTRING Z(0 0 0, 1 1 0)\n", out.String())
	assert.Contains(t, logs.String(), `"features":2`)

	out.Reset()
	require.NoError(t, CmdBuild{Config: cfg, Format: "geojson"}.Execute(nil))
	assert.True(t, strings.HasPrefix(out.String(), `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"well"}`), out.String())
}

func TestBuildInvalidFeature(t *testing.T) {
	withIO(t, "")
	captureLog(t)
	cfg := writeFile(t, "features.yaml", "features:\n  - wkt: POINT (1 2)\n  - wkt: POLYGON ((0 0, 1 0, 1 1, 0 1))\n")

	err := CmdBuild{Config: cfg}.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature 1")

	err = CmdBuild{Config: filepath.Join(t.TempDir(), "missing.yaml")}.Execute(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	withIO(t, "")
	logs := captureLog(t)
	in := writeFile(t, "mixed.wkt", "POINT (1 2)\n# comment\nLINESTRING (1 2)\nPOINT (1 2)\nCIRCLE (0 0)\n")

	err := CmdValidate{}.Execute([]string{in})
	require.EqualError(t, err, "2 of 4 lines invalid")

	out := logs.String()
	assert.Contains(t, out, `"line":3`)
	assert.Contains(t, out, `"category":"shape"`)
	assert.Contains(t, out, `"line":5`)
	assert.Contains(t, out, `"category":"unsupported"`)
	assert.Contains(t, out, `"invalid":2`)
}

func TestValidateStdin(t *testing.T) {
	withIO(t, "POINT (1 2)\nMULTIPOINT ((1 2), (3 4))\n")
	logs := captureLog(t)

	require.NoError(t, CmdValidate{}.Execute(nil))
	assert.Contains(t, logs.String(), `"lines":2`)
	assert.NotContains(t, logs.String(), "Invalid WKT")
}

func TestRunHelp(t *testing.T) {
	out := withIO(t, "")
	require.NoError(t, Run([]string{"--help"}))
	assert.Contains(t, out.String(), "convert")
	assert.Contains(t, out.String(), "validate")

	assert.Error(t, Run([]string{"nope"}))
}
