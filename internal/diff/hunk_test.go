package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHunks_Partition(t *testing.T) {
	lines, _ := Lines(join("a", "b", "c"), join("a", "x", "c"), Positional)
	hunks := Hunks(lines, DefaultCollapseThreshold)

	require.Len(t, hunks, 3)
	assert.False(t, hunks[0].Changed)
	assert.True(t, hunks[1].Changed)
	assert.False(t, hunks[2].Changed)
	assert.Len(t, hunks[1].Lines, 2, "remove+add pair shares one changed hunk")
}

func TestHunks_Reconstruction(t *testing.T) {
	lines, _ := Lines(
		join("a", "b", "c", "d", "e", "f", "g"),
		join("a", "x", "c", "d", "e", "f", "z"),
		Positional,
	)
	hunks := Hunks(lines, DefaultCollapseThreshold)

	var flat []Line
	for _, h := range hunks {
		flat = append(flat, h.Lines...)
	}
	assert.Equal(t, lines, flat, "hunks concatenate back to the full sequence")

	// Adjacent hunks always alternate family.
	for i := 1; i < len(hunks); i++ {
		assert.NotEqual(t, hunks[i-1].Changed, hunks[i].Changed)
	}
}

func TestHunks_CollapseThreshold(t *testing.T) {
	text := join("a", "b", "c", "d", "e")
	lines, _ := Lines(text, text, Positional)

	hunks := Hunks(lines, 3)
	require.Len(t, hunks, 1)
	assert.False(t, hunks[0].Changed)
	assert.Len(t, hunks[0].Lines, 5)
	assert.True(t, hunks[0].Collapsed, "unchanged run longer than threshold starts collapsed")

	// Exactly at the threshold stays expanded.
	three, _ := Lines(join("a", "b", "c"), join("a", "b", "c"), Positional)
	hunks = Hunks(three, 3)
	require.Len(t, hunks, 1)
	assert.False(t, hunks[0].Collapsed)
}

func TestHunks_ChangedNeverCollapsed(t *testing.T) {
	lines, _ := Lines("", join("a", "b", "c", "d", "e", "f"), Positional)
	hunks := Hunks(lines, 3)
	require.Len(t, hunks, 1)
	assert.True(t, hunks[0].Changed)
	assert.False(t, hunks[0].Collapsed)
}

func TestHunks_Empty(t *testing.T) {
	assert.Nil(t, Hunks(nil, 3))
}

func TestCompare(t *testing.T) {
	res := Compare(join("a", "b", "c"), join("a", "x", "c"), Options{})
	assert.Equal(t, Stats{Additions: 1, Deletions: 1}, res.Stats)
	require.Len(t, res.Hunks, 3)

	// Zero options mean positional strategy and default threshold.
	identical := Compare(join("a", "b", "c", "d"), join("a", "b", "c", "d"), Options{})
	require.Len(t, identical.Hunks, 1)
	assert.True(t, identical.Hunks[0].Collapsed)
}
