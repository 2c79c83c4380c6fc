// Package table reads and writes side table definitions stored as JSON or YAML
// files.
package table

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"github.com/smell-of-curry/dieface/dieface/die"
	"gopkg.in/yaml.v3"
)

// Config describes one die. Sides are appended after the sides of Preset, if
// one is set.
type Config struct {
	Name       string       `json:"name" yaml:"name"`
	Identifier string       `json:"identifier" yaml:"identifier"`
	Preset     string       `json:"preset,omitempty" yaml:"preset,omitempty"`
	Sides      []SideConfig `json:"sides" yaml:"sides"`

	path string
}

// SideConfig ...
type SideConfig struct {
	Value  int        `json:"value" yaml:"value"`
	Normal [3]float64 `json:"normal" yaml:"normal,flow"`
}

// Path returns the file the config was read from, if any.
func (c Config) Path() string {
	return c.path
}

// Die builds the die described by c.
func (c Config) Die() (*die.Die, error) {
	d := die.New()
	if c.Preset != "" {
		p, err := die.Preset(c.Preset)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", c.Identifier, err)
		}
		d = p
	}
	for _, s := range c.Sides {
		d.Sides = append(d.Sides, die.Side{Value: s.Value, Normal: mgl64.Vec3(s.Normal)})
	}
	return d, nil
}

// WithDie returns a copy of c listing every side of d. The preset is cleared
// since the sides are now spelled out.
func (c Config) WithDie(d *die.Die) Config {
	c.Preset = ""
	c.Sides = lo.Map(d.Sides, func(s die.Side, _ int) SideConfig {
		return SideConfig{Value: s.Value, Normal: [3]float64(s.Normal)}
	})
	return c
}

// IsTableFile reports whether path has an extension ReadAll understands.
func IsTableFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ReadAll parses every table file under path.
func ReadAll(path string) ([]Config, error) {
	var configs []Config
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsTableFile(p) {
			cfg, err := Parse(p)
			if err != nil {
				return fmt.Errorf("error: %w", err)
			}
			configs = append(configs, cfg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// Parse reads a single table file. The identifier defaults to the file name
// without its extension, and the name defaults to the identifier.
func Parse(file string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("failed to read file %s: %w", file, err)
	}
	if isYAML(file) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse file %s: %w", file, err)
	}

	if cfg.Identifier == "" {
		cfg.Identifier = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Identifier
	}
	cfg.path = file
	return cfg, nil
}

// isYAML ...
func isYAML(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	return ext == ".yaml" || ext == ".yml"
}
