package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"flat mapping", "a: 1\nb: two\nc: 3.5"},
		{"nested", sampleSpec},
		{"sequence", "items:\n  - a\n  - b\n  - n: 1"},
		{"mixed scalars", "s: hello\ni: 42\nf: 2.5\nb: false\nz: null\nq: \"007\""},
		{"json flow", `{"info": {"title": "A"}, "tags": [1, 2]}`},
		{"empty mapping", "paths: {}"},
		{"key order", "zebra: 1\nalpha: 2\nmm: 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Build(tc.text)
			require.NoError(t, err)

			text, err := Serialize(doc)
			require.NoError(t, err)

			doc2, err := Build(text)
			require.NoError(t, err)
			assert.True(t, ValueEqual(doc.Value, doc2.Value),
				"reparsed value tree must deep-equal the original\nserialized:\n%s", text)
		})
	}
}

func TestSerialize_PreservesKeyOrder(t *testing.T) {
	doc, err := Build("zebra: 1\nalpha: 2")
	require.NoError(t, err)

	text, err := Serialize(doc)
	require.NoError(t, err)
	assert.Less(t, strings.Index(text, "zebra"), strings.Index(text, "alpha"))
}

func TestSerialize_NumberStaysNumber(t *testing.T) {
	doc, err := Build(sampleSpec)
	require.NoError(t, err)

	doc2, err := Update(doc, Path{"info", "version"}, 2)
	require.NoError(t, err)

	text, err := Serialize(doc2)
	require.NoError(t, err)

	doc3, err := Build(text)
	require.NoError(t, err)
	v, ok := Find(doc3, Path{"info", "version"})
	require.True(t, ok)
	assert.Equal(t, 2, v, "number must survive serialize/reparse as a number")
}

func TestSerialize_Cycle(t *testing.T) {
	inner := NewMapping()
	outer := NewMapping()
	outer.Set("child", inner)
	inner.Set("parent", outer)

	doc := &Document{Kind: KindDocument, Value: outer}
	_, err := Serialize(doc)
	require.ErrorIs(t, err, ErrNotSerializable)
}

func TestSerialize_SharedSubtreeIsNotACycle(t *testing.T) {
	shared := NewMapping()
	shared.Set("x", 1)
	root := NewMapping()
	root.Set("a", shared)
	root.Set("b", shared)

	_, err := Serialize(&Document{Kind: KindDocument, Value: root})
	require.NoError(t, err, "diamond sharing is fine, only true cycles fail")
}

func TestSerialize_UnrepresentableValue(t *testing.T) {
	m := NewMapping()
	m.Set("fn", func() {})

	_, err := Serialize(&Document{Kind: KindDocument, Value: m})
	require.ErrorIs(t, err, ErrNotSerializable)
}

func TestSerialize_NilDocumentValue(t *testing.T) {
	doc, err := Build("")
	require.NoError(t, err)

	text, err := Serialize(doc)
	require.NoError(t, err)

	doc2, err := Build(text)
	require.NoError(t, err)
	assert.Nil(t, doc2.Value)
}

func TestSerialize_PlainMapSortsKeys(t *testing.T) {
	// Values inserted via Update may be plain maps (e.g. decoded JSON), which
	// carry no order; output must still be deterministic.
	doc, err := Build("root: {}")
	require.NoError(t, err)

	doc2, err := Update(doc, Path{"root"}, map[string]any{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)

	first, err := Serialize(doc2)
	require.NoError(t, err)
	for range 10 {
		again, err := Serialize(doc2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Less(t, strings.Index(first, "a:"), strings.Index(first, "b:"))
}
