package feature

import (
	"encoding/json"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"geowkt/internal/geom"
)

// Collection is an ordered list of features with a cursor. The cursor starts
// before the first feature.
type Collection struct {
	features []*Feature
	// pos is the cursor index plus one; 0 is before the first feature.
	pos int
}

func NewCollection(features ...*Feature) *Collection {
	return &Collection{features: slices.Clone(features)}
}

func (c *Collection) Add(f *Feature) { c.features = append(c.features, f) }

func (c *Collection) AddRange(features []*Feature) {
	c.features = append(c.features, features...)
}

func (c *Collection) Len() int { return len(c.features) }

func (c *Collection) At(i int) *Feature { return c.features[i] }

func (c *Collection) Features() []*Feature { return slices.Clone(c.features) }

// Where returns a new collection of the features matching pred.
func (c *Collection) Where(pred func(*Feature) bool) *Collection {
	out := &Collection{}
	for _, f := range c.features {
		if pred(f) {
			out.features = append(out.features, f)
		}
	}
	return out
}

// First returns the first feature matching pred.
func (c *Collection) First(pred func(*Feature) bool) (*Feature, bool) {
	for _, f := range c.features {
		if pred(f) {
			return f, true
		}
	}
	return nil, false
}

// GroupBy buckets the features of c by key, with groups in first-seen order.
func GroupBy[K comparable](c *Collection, key func(*Feature) K) *Map[K, []*Feature] {
	groups := &Map[K, []*Feature]{}
	for _, f := range c.features {
		k := key(f)
		group, _ := groups.Get(k)
		groups.Set(k, append(group, f))
	}
	return groups
}

// Bounds is the union of the features' bounding boxes.
func (c *Collection) Bounds() geom.BBox {
	bb := geom.EmptyBBox()
	for _, f := range c.features {
		bb = bb.Union(f.Bounds())
	}
	return bb
}

// MoveNext advances the cursor. It returns false without moving when the
// cursor is already on the last feature.
func (c *Collection) MoveNext() (*Feature, bool) {
	if c.pos >= len(c.features) {
		return nil, false
	}
	c.pos++
	return c.Current()
}

// MoveBack moves the cursor n features back, or one when n <= 0. Moving past
// the first feature resets the cursor.
func (c *Collection) MoveBack(n int) (*Feature, bool) {
	if n <= 0 {
		n = 1
	}
	c.pos -= n
	if c.pos < 1 {
		c.Reset()
	}
	return c.Current()
}

func (c *Collection) Reset() { c.pos = 0 }

// Current returns the feature under the cursor, or false before the first.
func (c *Collection) Current() (*Feature, bool) {
	if c.pos == 0 || c.pos > len(c.features) {
		return nil, false
	}
	return c.features[c.pos-1], true
}

// IsEnd reports whether the cursor is on the last feature.
func (c *Collection) IsEnd() bool {
	return len(c.features) > 0 && c.pos == len(c.features)
}

type collectionJSON struct {
	Type     string     `json:"type" yaml:"type"`
	Features []*Feature `json:"features" yaml:"features"`
}

func (c *Collection) envelope() collectionJSON {
	features := c.features
	if features == nil {
		features = []*Feature{}
	}
	return collectionJSON{Type: typeFeatureCollection, Features: features}
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.envelope())
}

func (c *Collection) MarshalYAML() (interface{}, error) {
	return c.envelope(), nil
}

// UnmarshalJSON accepts a FeatureCollection, a single Feature or a bare
// geometry object.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var head struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return errors.Wrap(err, "decode collection")
	}

	var features []*Feature
	switch head.Type {
	case typeFeatureCollection:
		features = make([]*Feature, 0, len(head.Features))
		for i, raw := range head.Features {
			f := &Feature{}
			if err := f.UnmarshalJSON(raw); err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			features = append(features, f)
		}
	case typeFeature:
		f := &Feature{}
		if err := f.UnmarshalJSON(data); err != nil {
			return err
		}
		features = []*Feature{f}
	default:
		g, err := geom.ParseGeoJSON(data)
		if err != nil {
			return errors.Wrap(err, "decode collection")
		}
		features = []*Feature{NewFeature(g)}
	}
	*c = Collection{features: features}
	return nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (c *Collection) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type     string      `yaml:"type"`
		Features []yaml.Node `yaml:"features"`
	}
	if err := value.Decode(&head); err != nil {
		return errors.Wrap(err, "decode collection")
	}

	var features []*Feature
	switch head.Type {
	case typeFeatureCollection:
		features = make([]*Feature, 0, len(head.Features))
		for i := range head.Features {
			f := &Feature{}
			if err := f.UnmarshalYAML(&head.Features[i]); err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			features = append(features, f)
		}
	case typeFeature:
		f := &Feature{}
		if err := f.UnmarshalYAML(value); err != nil {
			return err
		}
		features = []*Feature{f}
	default:
		g, err := decodeGeometryYAML(value)
		if err != nil {
			return errors.Wrap(err, "decode collection")
		}
		if g == nil {
			return errors.Newf("decode collection: line %d: empty document", value.Line)
		}
		features = []*Feature{NewFeature(g)}
	}
	*c = Collection{features: features}
	return nil
}
