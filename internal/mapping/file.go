package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the import/export format for one domain's mappings.
type File struct {
	Domain   string       `yaml:"domain"`
	Mappings FieldMapping `yaml:"mappings"`
}

// LoadFile reads and parses a YAML mapping file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	return ParseFile(data)
}

// ParseFile parses YAML data into a File and validates its entries.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}
	if err := f.Mappings.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// MarshalFile serializes f to YAML.
func MarshalFile(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes f to path.
func WriteFile(f *File, path string) error {
	data, err := MarshalFile(f)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}
	return nil
}

// MarshalYAML writes the mapping as a YAML mapping with keys in match order.
func (m FieldMapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m.entries {
		var val yaml.Node
		if err := val.Encode(e.Patterns); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Path}
		node.Content = append(node.Content, key, &val)
	}
	return node, nil
}

// UnmarshalYAML reads path → pattern or pattern list, keeping key order.
func (m *FieldMapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("mappings must be a YAML mapping, got kind %v", node.Kind)
	}

	var out FieldMapping
	for i := 0; i+1 < len(node.Content); i += 2 {
		path := node.Content[i].Value
		val := node.Content[i+1]

		switch val.Kind {
		case yaml.ScalarNode:
			var single string
			if err := val.Decode(&single); err != nil {
				return fmt.Errorf("patterns for %s: %w", path, err)
			}
			out.Set(path, single)
		case yaml.SequenceNode:
			var list []string
			if err := val.Decode(&list); err != nil {
				return fmt.Errorf("patterns for %s: %w", path, err)
			}
			out.Set(path, list...)
		default:
			return fmt.Errorf("patterns for %s: expected string or array, got kind %v", path, val.Kind)
		}
	}
	*m = out
	return nil
}
