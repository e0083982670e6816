package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements custom YAML unmarshaling for FieldDefs.
// Accepts a mapping whose keys are output names and whose values are:
//   - null (or nothing): a plain field reading the column of the same name
//   - a string: shorthand for {source: <string>}
//   - a mapping of field options
//
// Declaration order is kept.
func (d *FieldDefs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping, got %s", node.Line, nodeKindName(node.Kind))
	}

	defs := make(FieldDefs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return fmt.Errorf("line %d: field name: %w", keyNode.Line, err)
		}

		def, err := decodeFieldDef(valueNode)
		if err != nil {
			return fmt.Errorf("line %d: field %q: %w", keyNode.Line, name, err)
		}
		def.Name = name
		def.Line = keyNode.Line

		defs = append(defs, def)
	}

	*d = defs
	return nil
}

var fieldOptions = map[string]bool{
	"kind":            true,
	"source":          true,
	"unique":          true,
	"hidden":          true,
	"function":        true,
	"drop_duplicates": true,
	"serializer":      true,
}

func decodeFieldDef(node *yaml.Node) (FieldDef, error) {
	var def FieldDef

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return def, nil
		}
		// Single string value: the source column
		var source string
		if err := node.Decode(&source); err != nil {
			return def, err
		}
		def.Source = source
		return def, nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if key := node.Content[i].Value; !fieldOptions[key] {
				return def, fmt.Errorf("line %d: unknown option %q", node.Content[i].Line, key)
			}
		}
		if err := node.Decode(&def); err != nil {
			return def, err
		}
		return def, nil

	default:
		return def, fmt.Errorf("expected null, string or mapping, got %s", nodeKindName(node.Kind))
	}
}

// MarshalYAML writes the definitions back as an ordered mapping. Plain
// fields without options are written as null.
func (d FieldDefs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, def := range d {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: def.Name}

		value := &yaml.Node{}
		if def == (FieldDef{Name: def.Name, Line: def.Line}) {
			value.Kind = yaml.ScalarNode
			value.Tag = "!!null"
			value.Value = "null"
		} else if err := value.Encode(def); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
