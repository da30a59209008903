// Package document implements the structured document model: parsing YAML/JSON
// text into a plain domain value tree, addressing values by canonical path,
// producing immutable path-scoped updates, and serializing back to canonical
// text.
package document

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind classifies a document node.
type Kind int

const (
	KindDocument Kind = iota
	KindMapping
	KindSequence
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Range is a half-open byte range [Start, End) into the source text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Document is a parsed document: the fully materialized domain value tree plus
// the byte range of the whole input. Value contains only *Mapping, []any, and
// scalar values (string, int, int64, float64, bool, nil) — no parser wrapper
// types. A Document is immutable once built; Update returns a fresh one.
type Document struct {
	Kind  Kind
	Value any
	Range Range

	// root is the underlying parse tree, kept so the position index can use
	// exact line/column information. It is nil on documents produced by
	// Update, which have no source text until serialized and reparsed.
	root *yaml.Node
}

// ParseError reports a syntax error from the underlying grammar parser. The
// parse is all-or-nothing: no partial tree accompanies a ParseError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse document: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Build parses text (YAML or JSON syntax) into a Document.
func Build(text string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	value, err := materialize(&root)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return &Document{
		Kind:  KindDocument,
		Value: value,
		Range: Range{Start: 0, End: len(text)},
		root:  &root,
	}, nil
}

// materialize converts a yaml parse node into the plain domain value tree.
func materialize(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return materialize(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.New("alias without anchor")
		}
		return materialize(n.Alias)
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := materialize(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := materialize(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case 0:
		// Zero node: empty input.
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported node kind %d", n.Kind)
	}
}
