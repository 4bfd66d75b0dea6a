package datasheet

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/pakdecode/internal/localization"
)

// MarshalYAML renders d as a YAML sequence of ordered row mappings
// (DatasheetFormat YAML). yaml.v3 dropped v2's MapSlice, so this
// builds the document's *yaml.Node tree by hand to keep column order
// the mapping's literal key order (spec.md invariant 3).
func MarshalYAML(d *Datasheet, loc *localization.Map) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, row := range d.Rows {
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for j, col := range d.Columns {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col.Name}
			valNode, err := scalarNode(row[j], col, loc)
			if err != nil {
				return nil, err
			}
			mapping.Content = append(mapping.Content, keyNode, valNode)
		}
		seq.Content = append(seq.Content, mapping)
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}
	return yaml.Marshal(doc)
}

func scalarNode(c Cell, col Column, loc *localization.Map) (*yaml.Node, error) {
	switch col.Type {
	case CellInt32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", c.Int32)}, nil
	case CellFloat32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprintf("%g", c.Float)}, nil
	case CellBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", c.Bool)}, nil
	case CellString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: loc.Resolve(c.String)}, nil
	default:
		return nil, fmt.Errorf("datasheet: unknown cell type %d", col.Type)
	}
}
