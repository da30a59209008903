package document

import (
	"strconv"
	"strings"
)

// Path is a canonical path: an ordered sequence of string segments (mapping
// keys, or base-10 string forms of sequence indices) identifying a unique
// location in a document's value tree.
type Path []string

// ParsePath splits a dotted path string into a Path. An empty string yields an
// empty path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String returns the dotted string form of the path.
func (p Path) String() string { return strings.Join(p, ".") }

// Unsafe reports whether any segment of the path is an unsafe segment.
func (p Path) Unsafe() bool {
	for _, seg := range p {
		if UnsafeSegment(seg) {
			return true
		}
	}
	return false
}

// UnsafeSegment reports whether a path segment must never be used to index,
// read, or write a container. These segments are the prototype-pollution
// vectors of the JavaScript object model; documents authored to smuggle them
// in are treated as if the path were simply absent. This predicate is the
// single authority shared by the position index, Find, and Update.
func UnsafeSegment(seg string) bool {
	switch seg {
	case "__proto__", "constructor", "prototype":
		return true
	}
	return false
}

// Find walks path segment by segment starting from the document's value and
// returns the value it ends on. Absence of any kind — missing key, index out
// of bounds, non-integer index into a sequence, descent through a scalar, or
// an unsafe segment — is reported as found == false, never as an error. An
// unsafe segment stops the walk immediately. A terminal nil value is returned
// as (nil, true).
func Find(doc *Document, path Path) (any, bool) {
	if doc == nil {
		return nil, false
	}
	cur := doc.Value
	for _, seg := range path {
		if UnsafeSegment(seg) {
			return nil, false
		}
		next, ok := child(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// child resolves one path segment against a container value.
func child(v any, seg string) (any, bool) {
	switch c := v.(type) {
	case *Mapping:
		return c.Get(seg)
	case map[string]any:
		cv, ok := c[seg]
		return cv, ok
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
