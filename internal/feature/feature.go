// Package feature attaches ordered properties to geometries and groups them
// into collections with GeoJSON and YAML envelopes.
package feature

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"geowkt/internal/geom"
)

const (
	typeFeature           = "Feature"
	typeFeatureCollection = "FeatureCollection"
)

// Properties are a feature's attributes in insertion order.
type Properties = Map[string, any]

// Feature is a geometry with properties. A nil Geometry encodes as null.
type Feature struct {
	Geometry   geom.Geometry
	Properties Properties
}

func NewFeature(g geom.Geometry) *Feature {
	return &Feature{Geometry: g}
}

// With sets a property and returns the feature for chaining.
func (f *Feature) With(key string, value any) *Feature {
	f.Properties.Set(key, value)
	return f
}

// Bounds is the bounding box of the geometry, invalid when there is none.
func (f *Feature) Bounds() geom.BBox {
	if f.Geometry == nil {
		return geom.EmptyBBox()
	}
	return geom.Bounds(f.Geometry)
}

type featureJSON struct {
	Type       string        `json:"type"`
	Properties Properties    `json:"properties"`
	Geometry   geom.Geometry `json:"geometry"`
}

func (f Feature) MarshalJSON() ([]byte, error) {
	return json.Marshal(featureJSON{
		Type:       typeFeature,
		Properties: f.Properties,
		Geometry:   f.Geometry,
	})
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       string          `json:"type"`
		Properties Properties      `json:"properties"`
		Geometry   json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode feature")
	}
	if raw.Type != typeFeature {
		return errors.Newf("decode feature: unexpected type %q", raw.Type)
	}
	g, err := decodeGeometryJSON(raw.Geometry)
	if err != nil {
		return err
	}
	*f = Feature{Geometry: g, Properties: raw.Properties}
	return nil
}

func decodeGeometryJSON(data json.RawMessage) (geom.Geometry, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	g, err := geom.ParseGeoJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode geometry")
	}
	return g, nil
}

type featureYAML struct {
	Type       string        `yaml:"type"`
	Properties Properties    `yaml:"properties"`
	Geometry   *geom.GeoJSON `yaml:"geometry"`
}

func (f Feature) MarshalYAML() (interface{}, error) {
	out := featureYAML{Type: typeFeature, Properties: f.Properties}
	if f.Geometry != nil {
		gj := f.Geometry.GeoJSON()
		out.Geometry = &gj
	}
	return out, nil
}

func (f *Feature) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type       string     `yaml:"type"`
		Properties Properties `yaml:"properties"`
		Geometry   yaml.Node  `yaml:"geometry"`
	}
	if err := value.Decode(&raw); err != nil {
		return errors.Wrap(err, "decode feature")
	}
	if raw.Type != typeFeature {
		return errors.Newf("decode feature: line %d: unexpected type %q", value.Line, raw.Type)
	}
	g, err := decodeGeometryYAML(&raw.Geometry)
	if err != nil {
		return err
	}
	*f = Feature{Geometry: g, Properties: raw.Properties}
	return nil
}

// decodeGeometryYAML converts a YAML geometry mapping through its JSON form
// so both encodings share one validating decoder.
func decodeGeometryYAML(node *yaml.Node) (geom.Geometry, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "decode geometry at line %d", node.Line)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode geometry at line %d", node.Line)
	}
	return decodeGeometryJSON(data)
}
