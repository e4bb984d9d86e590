// Package config loads feature build files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"geowkt/internal/feature"
	"geowkt/internal/geom"
)

// Config is the root of a feature build file.
type Config struct {
	Output   Output        `yaml:"output"`
	Features []FeatureSpec `yaml:"features"`
}

// Output holds defaults that command line flags override.
type Output struct {
	Format   string `yaml:"format,omitempty"`
	Indent   int    `yaml:"indent,omitempty"`
	IncludeZ bool   `yaml:"include_z,omitempty"`
}

// FeatureSpec is one feature written as WKT with its properties in
// document order.
type FeatureSpec struct {
	WKT        string             `yaml:"wkt"`
	Properties feature.Properties `yaml:"properties,omitempty"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	return &cfg, nil
}

// Build parses every feature. The first invalid WKT aborts the build.
func (c *Config) Build() (*feature.Collection, error) {
	out := feature.NewCollection()
	for i, spec := range c.Features {
		g, err := geom.ParseWKT(spec.WKT)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		out.Add(&feature.Feature{Geometry: g, Properties: spec.Properties})
	}
	return out, nil
}
