package document

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidPath is returned by Update when the target path is empty, contains
// an unsafe segment, or does not resolve to an existing container at every
// step before the last. Callers should validate with Find first; hitting this
// error indicates a programming error, not a user condition.
var ErrInvalidPath = errors.New("invalid path")

// Update returns a new Document whose value tree has the node at path replaced
// with value. The original document is never mutated: the containers along the
// path are copied, everything else is shared by reference. The last segment
// may name a new mapping key (insert); a sequence index must be in bounds.
//
// The returned document carries no parse tree; serialize and reparse it to
// refresh positions.
func Update(doc *Document, path Path, value any) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidPath)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if path.Unsafe() {
		// Deliberately the same error as an absent path: blocked segments are
		// indistinguishable from missing ones.
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path.String())
	}

	newValue, err := setAt(doc.Value, path, value)
	if err != nil {
		return nil, err
	}
	return &Document{
		Kind:  doc.Kind,
		Value: newValue,
		Range: doc.Range,
	}, nil
}

// setAt returns a copy of container with path replaced by value, cloning only
// the containers along the path.
func setAt(container any, path Path, value any) (any, error) {
	seg := path[0]
	last := len(path) == 1

	switch c := container.(type) {
	case *Mapping:
		clone := c.clone()
		if last {
			clone.Set(seg, value)
			return clone, nil
		}
		cur, ok := c.Get(seg)
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrInvalidPath, seg)
		}
		nv, err := setAt(cur, path[1:], value)
		if err != nil {
			return nil, err
		}
		clone.Set(seg, nv)
		return clone, nil

	case map[string]any:
		clone := make(map[string]any, len(c))
		for k, v := range c {
			clone[k] = v
		}
		if last {
			clone[seg] = value
			return clone, nil
		}
		cur, ok := c[seg]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrInvalidPath, seg)
		}
		nv, err := setAt(cur, path[1:], value)
		if err != nil {
			return nil, err
		}
		clone[seg] = nv
		return clone, nil

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(c) {
			return nil, fmt.Errorf("%w: sequence index %q out of range", ErrInvalidPath, seg)
		}
		clone := make([]any, len(c))
		copy(clone, c)
		if last {
			clone[idx] = value
			return clone, nil
		}
		nv, err := setAt(c[idx], path[1:], value)
		if err != nil {
			return nil, err
		}
		clone[idx] = nv
		return clone, nil

	default:
		return nil, fmt.Errorf("%w: segment %q addresses a non-container", ErrInvalidPath, seg)
	}
}
