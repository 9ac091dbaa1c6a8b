// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field is one collection-wide extra metadata entry.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered set of extra metadata entries. Order is preserved from
// the configuration file through to the JSON output.
type Fields []Field

// Get returns the value of key.
func (f Fields) Get(key string) (any, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of key or appends it.
func (f *Fields) Set(key string, v any) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = v
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: v})
}

// UnmarshalYAML reads a YAML mapping keeping key order.
func (f *Fields) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("metadata: extra metadata must be a mapping, got line %d", n.Line)
	}
	out := make(Fields, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("metadata: extra metadata %q: %w", n.Content[i].Value, err)
		}
		out.Set(n.Content[i].Value, v)
	}
	*f = out
	return nil
}

// MarshalYAML writes the fields as a mapping in order.
func (f Fields) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range f {
		var v yaml.Node
		if err := v.Encode(kv.Value); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: kv.Key}, &v)
	}
	return n, nil
}
