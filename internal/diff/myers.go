package diff

// minimalLines computes a minimal edit script between the two line slices
// using Myers' O((m+n)·d) greedy algorithm and converts it into the same Line
// sequence shape the positional strategy produces.
func minimalLines(oldLines, newLines []string) []Line {
	n, m := len(oldLines), len(newLines)
	switch {
	case n == 0 && m == 0:
		return nil
	case n == 0:
		out := make([]Line, m)
		for i, s := range newLines {
			out[i] = Line{Kind: Added, Content: s, NewLine: i + 1}
		}
		return out
	case m == 0:
		out := make([]Line, n)
		for i, s := range oldLines {
			out[i] = Line{Kind: Removed, Content: s, OldLine: i + 1}
		}
		return out
	}

	trace := shortestEditTrace(oldLines, newLines)
	return backtrack(trace, oldLines, newLines)
}

// shortestEditTrace runs the forward Myers search, snapshotting the furthest-x
// vector per edit distance for backtracking.
func shortestEditTrace(a, b []string) [][]int {
	n, m := len(a), len(b)
	max := n + m
	v := make([]int, 2*max+1)
	var trace [][]int

	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			idx := k + max
			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1]
			} else {
				x = v[idx-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[idx] = x
			if x >= n && y >= m {
				return trace
			}
		}
	}
	return trace
}

// backtrack walks the trace from (n, m) back to (0, 0), emitting lines in
// reverse and flipping them at the end.
func backtrack(trace [][]int, a, b []string) []Line {
	n, m := len(a), len(b)
	max := n + m

	var rev []Line
	x, y := n, m
	for d := len(trace) - 1; d > 0 && (x > 0 || y > 0); d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[prevK+max]
		prevY := prevX - prevK

		// Diagonal moves: matching lines.
		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, Line{Kind: Context, Content: a[x], OldLine: x + 1, NewLine: y + 1})
		}

		if y > prevY {
			y--
			rev = append(rev, Line{Kind: Added, Content: b[y], NewLine: y + 1})
		} else if x > prevX {
			x--
			rev = append(rev, Line{Kind: Removed, Content: a[x], OldLine: x + 1})
		}
	}
	// Any remaining diagonal at d == 0.
	for x > 0 && y > 0 {
		x--
		y--
		rev = append(rev, Line{Kind: Context, Content: a[x], OldLine: x + 1, NewLine: y + 1})
	}

	out := make([]Line, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}
