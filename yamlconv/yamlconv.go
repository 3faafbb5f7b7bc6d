// Package yamlconv converts YAML documents into jsonmap Value trees, so YAML
// input can flow through the same coercion engine as JSON. Mapping key order
// is preserved.
package yamlconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	jm "github.com/kyantra/jsonmap"
)

// Parse converts one YAML document into a Value tree. An empty document
// yields null.
func Parse(data []byte) (jm.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return jm.Null(), err
	}
	if node.Kind == 0 {
		return jm.Null(), nil
	}
	return fromNode(&node)
}

// ParseAll converts a multi-document stream, one Value per document.
func ParseAll(data []byte) ([]jm.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []jm.Value
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		v, err := fromNode(&node)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// Decode parses one YAML document and maps it onto a T through the context's
// coercion rules.
func Decode[T any](c *jm.Context, data []byte) (T, error) {
	v, err := Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return jm.DecodeValue[T](c, v)
}

func fromNode(n *yaml.Node) (jm.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jm.Null(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]jm.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return jm.Null(), err
			}
			items = append(items, v)
		}
		return jm.Array(items...), nil
	case yaml.MappingNode:
		obj := jm.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return jm.Null(), fmt.Errorf("yamlconv: non-scalar mapping key at line %d", k.Line)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return jm.Null(), err
			}
			obj.Set(k.Value, v)
		}
		return jm.ObjectValue(obj), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return jm.Null(), fmt.Errorf("yamlconv: unsupported node kind %d", n.Kind)
	}
}

func fromScalar(n *yaml.Node) (jm.Value, error) {
	switch n.Tag {
	case "!!null":
		return jm.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return jm.Null(), fmt.Errorf("yamlconv: bad bool %q at line %d", n.Value, n.Line)
		}
		return jm.Bool(b), nil
	case "!!int":
		// Base 0 accepts the 0x/0o/0b forms YAML allows.
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return jm.Int(i), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return jm.Null(), fmt.Errorf("yamlconv: bad integer %q at line %d", n.Value, n.Line)
		}
		return jm.Float(f), nil
	case "!!float":
		switch n.Value {
		case ".inf", "+.inf", "-.inf", ".nan", ".Inf", "+.Inf", "-.Inf", ".NaN":
			return jm.Null(), fmt.Errorf("yamlconv: %s has no JSON form (line %d)", n.Value, n.Line)
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return jm.Null(), fmt.Errorf("yamlconv: bad float %q at line %d", n.Value, n.Line)
		}
		return jm.Float(f), nil
	default:
		// Strings, timestamps and unknown tags keep their text form; the
		// coercion engine handles any further narrowing.
		return jm.String(n.Value), nil
	}
}
