package paranoia

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/emavok/paranoia/internal/engine"
	"github.com/emavok/paranoia/internal/yamlalias"
)

// MarshalJSON writes the members as a JSON object in declaration order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, fmt.Errorf("properties: %s: %w", prop.Name, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping member order. Duplicated member
// names are rejected.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	keys, err := engine.ObjectKeys(data)
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	var m map[string]*Schema
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	out := make(Properties, 0, len(keys))
	for _, k := range keys {
		out = append(out, Property{Name: k, Schema: m[k]})
	}
	*p = out
	return nil
}

// MarshalYAML emits a mapping node in declaration order.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, prop := range p {
		var v yaml.Node
		if err := v.Encode(prop.Schema); err != nil {
			return nil, fmt.Errorf("properties: %s: %w", prop.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: prop.Name},
			&v,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node keeping member order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*p = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: line %d: expected a mapping", node.Line)
	}
	if err := yamlalias.Check(node); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	out := make(Properties, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if _, dup := seen[k.Value]; dup {
			return fmt.Errorf("properties: line %d: key '%s' duplicated", k.Line, k.Value)
		}
		seen[k.Value] = struct{}{}
		var s *Schema
		if err := v.Decode(&s); err != nil {
			return fmt.Errorf("properties: %s: %w", k.Value, err)
		}
		out = append(out, Property{Name: k.Value, Schema: s})
	}
	*p = out
	return nil
}
