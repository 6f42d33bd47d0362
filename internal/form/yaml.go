package form

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

func parseYAML(data []byte) (*Document, error) {
	doc := New(YAML)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]

		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}

		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("field %q: %w", key.Value, ErrNested)
		}

		if value.ShortTag() == "!!null" {
			doc.Set(key.Value, "")

			continue
		}

		doc.Set(key.Value, value.Value)
	}

	return doc, nil
}

func (d *Document) marshalYAML() ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range d.keys {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.values[k]},
		)
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(mapping); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return buf.Bytes(), nil
}
