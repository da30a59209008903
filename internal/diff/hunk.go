package diff

// DefaultCollapseThreshold is the unchanged-run length above which a hunk
// starts out collapsed.
const DefaultCollapseThreshold = 3

// Hunk is a maximal contiguous run of diff lines sharing a classification
// family: either all Context (Changed=false) or all Added/Removed
// (Changed=true). An unchanged hunk longer than the collapse threshold starts
// collapsed; expanding it is a pure UI-state toggle.
type Hunk struct {
	Changed   bool   `json:"changed"`
	Lines     []Line `json:"lines"`
	Collapsed bool   `json:"collapsed"`
}

// Result is a complete diff: the hunk partition plus aggregate stats.
// Concatenating Lines across hunks in order reproduces the full diff line
// sequence with no gaps or duplicates.
type Result struct {
	Hunks []Hunk `json:"hunks"`
	Stats Stats  `json:"stats"`
}

// Options tunes a comparison. The zero value means the positional strategy
// with the default collapse threshold.
type Options struct {
	Strategy          Strategy
	CollapseThreshold int // 0 means DefaultCollapseThreshold
}

// Compare diffs two texts and returns the hunk-grouped result.
func Compare(oldText, newText string, opts Options) Result {
	lines, stats := Lines(oldText, newText, opts.Strategy)
	threshold := opts.CollapseThreshold
	if threshold <= 0 {
		threshold = DefaultCollapseThreshold
	}
	return Result{Hunks: Hunks(lines, threshold), Stats: stats}
}

// Hunks partitions the line sequence into maximal same-family runs. A run
// boundary occurs exactly where the classification family flips between
// Context and Added/Removed.
func Hunks(lines []Line, collapseThreshold int) []Hunk {
	if len(lines) == 0 {
		return nil
	}

	var hunks []Hunk
	start := 0
	changed := lines[0].Kind != Context
	for i := 1; i <= len(lines); i++ {
		if i < len(lines) && (lines[i].Kind != Context) == changed {
			continue
		}
		run := lines[start:i]
		hunks = append(hunks, Hunk{
			Changed:   changed,
			Lines:     run,
			Collapsed: !changed && len(run) > collapseThreshold,
		})
		if i < len(lines) {
			start = i
			changed = lines[i].Kind != Context
		}
	}
	return hunks
}
