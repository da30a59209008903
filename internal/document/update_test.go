package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_ReplaceScalar(t *testing.T) {
	doc, err := Build(sampleSpec)
	require.NoError(t, err)

	doc2, err := Update(doc, Path{"info", "version"}, 2)
	require.NoError(t, err)

	v, ok := Find(doc2, Path{"info", "version"})
	require.True(t, ok)
	assert.Equal(t, 2, v)

	// The original is untouched.
	v, ok = Find(doc, Path{"info", "version"})
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestUpdate_SharesSiblings(t *testing.T) {
	doc, err := Build("a:\n  x: 1\nb:\n  y: 2")
	require.NoError(t, err)

	doc2, err := Update(doc, Path{"a", "x"}, 9)
	require.NoError(t, err)

	origB, _ := Find(doc, Path{"b"})
	newB, _ := Find(doc2, Path{"b"})
	assert.Same(t, origB, newB, "untouched sibling subtree is shared, not cloned")

	origA, _ := Find(doc, Path{"a"})
	newA, _ := Find(doc2, Path{"a"})
	assert.NotSame(t, origA, newA, "containers on the mutated path are copied")
}

func TestUpdate_InsertMappingKey(t *testing.T) {
	doc, err := Build("info:\n  title: A")
	require.NoError(t, err)

	doc2, err := Update(doc, Path{"info", "description"}, "added")
	require.NoError(t, err)

	v, ok := Find(doc2, Path{"info", "description"})
	require.True(t, ok)
	assert.Equal(t, "added", v)

	_, ok = Find(doc, Path{"info", "description"})
	assert.False(t, ok)
}

func TestUpdate_SequenceElement(t *testing.T) {
	doc, err := Build("items:\n  - a\n  - b")
	require.NoError(t, err)

	doc2, err := Update(doc, Path{"items", "1"}, "B")
	require.NoError(t, err)

	items, _ := Find(doc2, Path{"items"})
	assert.Equal(t, []any{"a", "B"}, items)

	items, _ = Find(doc, Path{"items"})
	assert.Equal(t, []any{"a", "b"}, items)
}

func TestUpdate_ContainerValue(t *testing.T) {
	doc, err := Build("paths: {}")
	require.NoError(t, err)

	users := NewMapping()
	users.Set("get", "handler")
	doc2, err := Update(doc, Path{"paths", "/users"}, users)
	require.NoError(t, err)

	v, ok := Find(doc2, Path{"paths", "/users", "get"})
	require.True(t, ok)
	assert.Equal(t, "handler", v)
}

func TestUpdate_InvalidPaths(t *testing.T) {
	doc, err := Build(sampleSpec)
	require.NoError(t, err)

	cases := []struct {
		name string
		path Path
	}{
		{"empty path", nil},
		{"missing intermediate", Path{"nope", "x"}},
		{"through scalar", Path{"openapi", "x"}},
		{"unsafe segment", Path{"info", "__proto__"}},
		{"unsafe root", Path{"constructor"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Update(doc, tc.path, "v")
			require.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestUpdate_SequenceBounds(t *testing.T) {
	doc, err := Build("items:\n  - a")
	require.NoError(t, err)

	for _, seg := range []string{"-1", "1", "x"} {
		_, err := Update(doc, Path{"items", seg}, "v")
		require.ErrorIs(t, err, ErrInvalidPath, "segment %q", seg)
	}
}

func TestUpdate_ThenFindRoundTrip(t *testing.T) {
	doc, err := Build("a:\n  b:\n    - x\n    - y\nc: 3")
	require.NoError(t, err)

	paths := []Path{
		{"a", "b", "0"},
		{"a", "b", "1"},
		{"c"},
		{"a", "new"},
	}
	for _, p := range paths {
		doc2, err := Update(doc, p, "sentinel")
		require.NoError(t, err, p.String())
		v, ok := Find(doc2, p)
		require.True(t, ok, p.String())
		assert.Equal(t, "sentinel", v)
	}
}
