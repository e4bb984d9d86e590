package feature

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateKey is returned by Push when the key is already present.
var ErrDuplicateKey = errors.New("duplicate key")

// Pair is one key/value entry of a Map.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a map that remembers insertion order. The zero value is empty and
// ready to use.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func NewMap[K comparable, V any](pairs ...Pair[K, V]) (*Map[K, V], error) {
	m := &Map[K, V]{}
	if err := m.PushRange(pairs...); err != nil {
		return nil, err
	}
	return m, nil
}

// Set adds key or replaces its value in place.
func (m *Map[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Push adds key, failing if it is already present.
func (m *Map[K, V]) Push(key K, value V) error {
	if m.Has(key) {
		return errors.Wrapf(ErrDuplicateKey, "key %v", key)
	}
	m.Set(key, value)
	return nil
}

// PushRange pushes pairs in order and stops at the first duplicate.
func (m *Map[K, V]) PushRange(pairs ...Pair[K, V]) error {
	for _, p := range pairs {
		if err := m.Push(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

func (m *Map[K, V]) Keys() []K { return slices.Clone(m.keys) }

func (m *Map[K, V]) Values() []V {
	out := make([]V, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.values[k]
	}
	return out
}

func (m *Map[K, V]) Len() int { return len(m.keys) }

// Remove deletes key and reports whether it was present.
func (m *Map[K, V]) Remove(key K) bool {
	if !m.Has(key) {
		return false
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k K) bool { return k == key })
	return true
}

func (m *Map[K, V]) Clear() {
	m.keys = nil
	m.values = nil
}

// Range calls fn for each entry in order until fn returns false.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

func keyString(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case encoding.TextMarshaler:
		b, err := k.MarshalText()
		return string(b), err
	case fmt.Stringer:
		return k.String(), nil
	}
	return fmt.Sprint(key), nil
}

func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		ks, err := keyString(k)
		if err != nil {
			return nil, errors.Wrapf(err, "encode key %v", k)
		}
		kb, err := json.Marshal(ks)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, errors.Wrapf(err, "encode value of %q", ks)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object in document order. Only string keyed maps
// can be decoded.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "decode ordered map")
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Newf("decode ordered map: expected object, found %v", tok)
	}

	m.Clear()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "decode ordered map")
		}
		key, ok := any(tok).(K)
		if !ok {
			return errors.Newf("decode ordered map: cannot use %q as %T key", tok, key)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return errors.Wrapf(err, "decode value of %q", tok)
		}
		m.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "decode ordered map")
	}
	return nil
}

func (m Map[K, V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var kn, vn yaml.Node
		ks, err := keyString(k)
		if err != nil {
			return nil, errors.Wrapf(err, "encode key %v", k)
		}
		if err := kn.Encode(ks); err != nil {
			return nil, err
		}
		if err := vn.Encode(m.values[k]); err != nil {
			return nil, errors.Wrapf(err, "encode value of %q", ks)
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}

func (m *Map[K, V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return errors.Newf("decode ordered map: line %d: expected mapping", value.Line)
	}

	m.Clear()
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key K
		if err := value.Content[i].Decode(&key); err != nil {
			return errors.Wrapf(err, "decode key at line %d", value.Content[i].Line)
		}
		var v V
		if err := value.Content[i+1].Decode(&v); err != nil {
			return errors.Wrapf(err, "decode value of %v", key)
		}
		m.Set(key, v)
	}
	return nil
}
