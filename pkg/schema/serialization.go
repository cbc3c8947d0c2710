package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	// VariablesKey is the top-level section holding the variable specs.
	VariablesKey = "REQUIRED_VARIABLES"
	// ConditionalKey holds conditional variables, which are accepted but not evaluated.
	ConditionalKey = "CONDITIONAL_VARIABLES"
)

// Load reads a YAML or JSON schema file.
// A missing file yields an error wrapping ErrConfigNotFound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a schema document. JSON is accepted as a subset of YAML.
// Documents that are empty or not a mapping fail with ErrInvalidConfig.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrInvalidConfig
	}

	cfg := &Config{}
	if err := cfg.UnmarshalYAML(doc.Content[0]); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnmarshalYAML decodes the schema from a mapping node, keeping declaration order.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return ErrInvalidConfig
	}

	var cfg Config
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case VariablesKey:
			vars, warnings, err := decodeVariables(value)
			if err != nil {
				return err
			}
			cfg.Variables = vars
			cfg.Warnings = append(cfg.Warnings, warnings...)
		case ConditionalKey:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s are not evaluated", ConditionalKey))
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown section %q was ignored", key.Value))
		}
	}

	*c = cfg
	return nil
}

func decodeVariables(node *yaml.Node) ([]Variable, []string, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("%s: expected mapping, got %s", VariablesKey, kindName(node.Kind))
	}

	var (
		vars     []Variable
		warnings []string
	)
	seen := make(map[string]bool, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if seen[name] {
			return nil, nil, fmt.Errorf("variable %s: declared more than once", name)
		}
		seen[name] = true

		spec, unused, err := decodeFieldSpec(node.Content[i+1])
		if err != nil {
			return nil, nil, fmt.Errorf("variable %s: %w", name, err)
		}
		for _, field := range unused {
			warnings = append(warnings, fmt.Sprintf("%s: field %q is not supported and was ignored", name, field))
		}
		vars = append(vars, Variable{Name: name, Spec: spec})
	}

	return vars, warnings, nil
}

// fieldSpecInput adds the aliases accepted in schema files.
type fieldSpecInput struct {
	FieldSpec     `mapstructure:",squash"`
	AllowedValues []string `mapstructure:"allowedValues"`
}

func decodeFieldSpec(node *yaml.Node) (FieldSpec, []string, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return FieldSpec{}, nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return FieldSpec{}, nil, fmt.Errorf("expected mapping, got %s", kindName(node.Kind))
	}

	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return FieldSpec{}, nil, err
	}

	var in fieldSpecInput
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &in,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return FieldSpec{}, nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return FieldSpec{}, nil, err
	}

	spec := in.FieldSpec
	if len(spec.Allowed) == 0 {
		spec.Allowed = in.AllowedValues
	}

	unused := md.Unused
	sort.Strings(unused)
	return spec, unused, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown node"
	}
}

// MarshalJSON serializes the schema in its file shape, keeping declaration order.
func (c *Config) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteString(`{"` + VariablesKey + `":{`)
	for i, v := range c.Variables {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		spec, err := json.Marshal(v.Spec)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", v.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(spec)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}
