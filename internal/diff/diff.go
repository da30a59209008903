// Package diff compares two text revisions line by line, groups the result
// into collapsible hunks, and marks word-level spans inside changed lines.
package diff

import "strings"

// Kind classifies a diff line.
type Kind int

const (
	Context Kind = iota // identical in both revisions
	Added               // present only in the new revision
	Removed             // present only in the old revision
)

func (k Kind) String() string {
	switch k {
	case Context:
		return "context"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so Kind serializes as its name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Span is a word-level segment of a changed line. Whitespace runs are kept
// verbatim with Changed=false; every non-whitespace token is a changed span.
type Span struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}

// Line is one classified line of the diff. Context lines carry both line
// numbers; Added lines only NewLine; Removed lines only OldLine. Line numbers
// are 1-based, 0 meaning "not present in that revision". Words is populated
// only for Added and Removed lines.
type Line struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
	OldLine int    `json:"oldLine,omitempty"`
	NewLine int    `json:"newLine,omitempty"`
	Words   []Span `json:"words,omitempty"`
}

// Stats aggregates line counts over a diff.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// Strategy selects the diff algorithm.
type Strategy int

const (
	// Positional compares line i of the old revision against line i of the
	// new one: a mismatch is a single remove+add substitution, never a search
	// for a better alignment. O(max(m,n)) and deterministic, but an insertion
	// that shifts subsequent lines shows every following line as changed.
	Positional Strategy = iota
	// Minimal computes a minimal edit script (Myers), so insertions and
	// deletions align cleanly at the cost of O((m+n)·d).
	Minimal
)

func (s Strategy) String() string {
	if s == Minimal {
		return "minimal"
	}
	return "positional"
}

// ParseStrategy maps a caller-supplied name to a Strategy. Empty and
// "positional" select the default.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "", "positional":
		return Positional, true
	case "minimal":
		return Minimal, true
	default:
		return Positional, false
	}
}

// Lines computes the full ordered diff line sequence between two texts. Every
// source line from either revision appears in exactly one result entry.
func Lines(oldText, newText string, strategy Strategy) ([]Line, Stats) {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)

	var lines []Line
	if strategy == Minimal {
		lines = minimalLines(oldLines, newLines)
	} else {
		lines = positionalLines(oldLines, newLines)
	}

	var stats Stats
	for i := range lines {
		switch lines[i].Kind {
		case Added:
			stats.Additions++
			lines[i].Words = wordSpans(lines[i].Content)
		case Removed:
			stats.Deletions++
			lines[i].Words = wordSpans(lines[i].Content)
		}
	}
	return lines, stats
}

// positionalLines runs two cursors over the revisions in lockstep.
func positionalLines(oldLines, newLines []string) []Line {
	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}
	out := make([]Line, 0, n)

	oldIdx, newIdx := 0, 0
	for oldIdx < len(oldLines) || newIdx < len(newLines) {
		switch {
		case oldIdx < len(oldLines) && newIdx < len(newLines):
			if oldLines[oldIdx] == newLines[newIdx] {
				out = append(out, Line{
					Kind:    Context,
					Content: oldLines[oldIdx],
					OldLine: oldIdx + 1,
					NewLine: newIdx + 1,
				})
			} else {
				out = append(out,
					Line{Kind: Removed, Content: oldLines[oldIdx], OldLine: oldIdx + 1},
					Line{Kind: Added, Content: newLines[newIdx], NewLine: newIdx + 1},
				)
			}
			oldIdx++
			newIdx++
		case oldIdx < len(oldLines):
			out = append(out, Line{Kind: Removed, Content: oldLines[oldIdx], OldLine: oldIdx + 1})
			oldIdx++
		default:
			out = append(out, Line{Kind: Added, Content: newLines[newIdx], NewLine: newIdx + 1})
			newIdx++
		}
	}
	return out
}

// splitLines splits text into lines without trailing newline characters. An
// empty text has no lines; a trailing newline does not produce a phantom
// empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// wordSpans splits a changed line into whitespace and word spans. Whitespace
// is preserved verbatim and unhighlighted; every word token is a changed span.
func wordSpans(s string) []Span {
	if s == "" {
		return nil
	}
	var spans []Span
	i := 0
	for i < len(s) {
		start := i
		ws := isSpace(s[i])
		for i < len(s) && isSpace(s[i]) == ws {
			i++
		}
		spans = append(spans, Span{Text: s[start:i], Changed: !ws})
	}
	return spans
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}
