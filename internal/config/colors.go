package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColorSpec is the style of one log level: a single color name ("gray") or
// a list of names combined ("bgRed", "white").
type ColorSpec []string

func (c *ColorSpec) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = ColorSpec{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("color must be a name or a list of names: %w", err)
	}
	*c = list
	return nil
}

func (c *ColorSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = ColorSpec{value.Value}
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return fmt.Errorf("color must be a name or a list of names: %w", err)
	}
	*c = list
	return nil
}

func (c *ColorSpec) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		*c = ColorSpec{v}
	case []interface{}:
		list := make(ColorSpec, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return fmt.Errorf("color list entries must be names, got %T", item)
			}
			list = append(list, name)
		}
		*c = list
	default:
		return fmt.Errorf("color must be a name or a list of names, got %T", data)
	}
	return nil
}

// LevelColors returns the colors keyed by level name, in the form the logger
// takes.
func (c *Config) LevelColors() map[string][]string {
	out := make(map[string][]string, len(c.Colors))
	for level, spec := range c.Colors {
		out[level] = []string(spec)
	}
	return out
}
