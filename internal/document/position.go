package document

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position locates a canonical path in the source text. Line is 1-based,
// Column is 0-based.
type Position struct {
	Path   Path `json:"path"`
	Line   int  `json:"line"`
	Column int  `json:"column"`
}

// Index builds the lookup table from dotted path to source position for every
// safe reachable path in the document. When the document carries its parse
// tree, positions come from the parser's exact per-node line/column ranges.
// Only when a node lacks position information (or the document was produced by
// Update and has no parse tree) does the index fall back to a forward
// substring scan for "<key>:" starting at the parent's line. The scan is a
// heuristic: a key name reappearing verbatim in a later sibling branch can be
// misattributed, which is why exact ranges are preferred whenever available.
//
// Index never fails; a child whose key cannot be located still gets an entry
// at parent line + 1. Paths containing an unsafe segment get no entry and are
// not descended into.
func Index(doc *Document, source string) map[string]Position {
	out := make(map[string]Position)
	if doc == nil {
		return out
	}
	lines := strings.Split(source, "\n")
	if doc.root != nil {
		indexNode(doc.root, nil, 1, lines, out)
		return out
	}
	indexValue(doc.Value, nil, 1, lines, out)
	return out
}

// indexNode walks the parse tree, recording each child's exact position.
func indexNode(n *yaml.Node, prefix Path, parentLine int, lines []string, out map[string]Position) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			indexNode(n.Content[0], prefix, parentLine, lines, out)
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			indexNode(n.Alias, prefix, parentLine, lines, out)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if UnsafeSegment(kn.Value) {
				continue
			}
			path := childPath(prefix, kn.Value)
			pos := nodePosition(kn, kn.Value, parentLine, lines)
			out[path.String()] = Position{Path: path, Line: pos.Line, Column: pos.Column}
			indexNode(vn, path, pos.Line, lines, out)
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			path := childPath(prefix, strconv.Itoa(i))
			pos := nodePosition(c, "", parentLine, lines)
			out[path.String()] = Position{Path: path, Line: pos.Line, Column: pos.Column}
			indexNode(c, path, pos.Line, lines, out)
		}
	}
}

// nodePosition prefers the parser-reported position, falling back to a key
// scan from the parent line when the node has none.
func nodePosition(n *yaml.Node, key string, parentLine int, lines []string) Position {
	if n.Line > 0 {
		col := n.Column - 1
		if col < 0 {
			col = 0
		}
		return Position{Line: n.Line, Column: col}
	}
	if key != "" {
		if line := scanForKey(lines, key, parentLine); line > 0 {
			return Position{Line: line, Column: 0}
		}
	}
	return Position{Line: parentLine + 1, Column: 0}
}

// indexValue walks the domain value tree with the scan heuristic only, for
// documents that carry no parse tree.
func indexValue(v any, prefix Path, parentLine int, lines []string, out map[string]Position) {
	switch c := v.(type) {
	case *Mapping:
		for _, key := range c.keys {
			if UnsafeSegment(key) {
				continue
			}
			indexScannedChild(c.items[key], prefix, key, parentLine, lines, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if UnsafeSegment(key) {
				continue
			}
			indexScannedChild(c[key], prefix, key, parentLine, lines, out)
		}
	case []any:
		for i, item := range c {
			path := childPath(prefix, strconv.Itoa(i))
			line := parentLine + 1
			out[path.String()] = Position{Path: path, Line: line, Column: 0}
			indexValue(item, path, line, lines, out)
		}
	}
}

func indexScannedChild(v any, prefix Path, key string, parentLine int, lines []string, out map[string]Position) {
	path := childPath(prefix, key)
	line := scanForKey(lines, key, parentLine)
	if line == 0 {
		line = parentLine + 1
	}
	out[path.String()] = Position{Path: path, Line: line, Column: 0}
	indexValue(v, path, line, lines, out)
}

// scanForKey returns the 1-based number of the first line at or after
// fromLine containing the literal substring "<key>:", or 0 if none does.
func scanForKey(lines []string, key string, fromLine int) int {
	needle := key + ":"
	start := fromLine - 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		if strings.Contains(lines[i], needle) {
			return i + 1
		}
	}
	return 0
}

// childPath appends seg to prefix without aliasing the prefix's backing array.
func childPath(prefix Path, seg string) Path {
	path := make(Path, len(prefix)+1)
	copy(path, prefix)
	path[len(prefix)] = seg
	return path
}
