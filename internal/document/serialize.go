package document

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrNotSerializable is returned by Serialize when the value tree contains a
// reference cycle or a value that has no textual representation. The error is
// fatal: callers must abort the save rather than write truncated output.
var ErrNotSerializable = errors.New("document not serializable")

const serializeIndent = 2

// Serialize renders the document's value tree to canonical text: 2-space
// indentation, block style, no forced line wrapping. Byte-identical output is
// not guaranteed against the original source (quoting and whitespace are
// normalized), but reparsing the result yields a deep-equal value tree,
// including scalar types and element order.
func Serialize(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: nil document", ErrNotSerializable)
	}

	node, err := toNode(doc.Value, make(map[uintptr]bool))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(serializeIndent)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	return buf.String(), nil
}

// toNode converts a domain value into a yaml node tree. seen holds the
// container identities on the current descent path for cycle detection.
func toNode(v any, seen map[uintptr]bool) (*yaml.Node, error) {
	switch c := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	case *Mapping:
		id := reflect.ValueOf(c).Pointer()
		if seen[id] {
			return nil, fmt.Errorf("%w: reference cycle", ErrNotSerializable)
		}
		seen[id] = true
		defer delete(seen, id)

		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range c.keys {
			kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			vn, err := toNode(c.items[k], seen)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, vn)
		}
		return n, nil

	case map[string]any:
		id := reflect.ValueOf(c).Pointer()
		if id != 0 {
			if seen[id] {
				return nil, fmt.Errorf("%w: reference cycle", ErrNotSerializable)
			}
			seen[id] = true
			defer delete(seen, id)
		}

		// Plain maps carry no order; sort keys for deterministic output.
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			vn, err := toNode(c[k], seen)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, vn)
		}
		return n, nil

	case []any:
		var id uintptr
		if len(c) > 0 {
			id = reflect.ValueOf(c).Pointer()
			if seen[id] {
				return nil, fmt.Errorf("%w: reference cycle", ErrNotSerializable)
			}
			seen[id] = true
			defer delete(seen, id)
		}

		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range c {
			vn, err := toNode(item, seen)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, vn)
		}
		return n, nil

	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotSerializable, err)
		}
		return n, nil
	}
}
