package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSpec = "openapi: 3.1.0\ninfo:\n  title: A\n  version: 1"

func TestBuild_Basic(t *testing.T) {
	doc, err := Build(sampleSpec)
	require.NoError(t, err)

	assert.Equal(t, KindDocument, doc.Kind)
	assert.Equal(t, Range{Start: 0, End: len(sampleSpec)}, doc.Range)

	root, ok := doc.Value.(*Mapping)
	require.True(t, ok, "top-level value should be a mapping")
	assert.Equal(t, []string{"openapi", "info"}, root.Keys())

	openapi, ok := root.Get("openapi")
	require.True(t, ok)
	assert.Equal(t, "3.1.0", openapi, "dotted version must stay a string")

	info, ok := root.Get("info")
	require.True(t, ok)
	version, ok := info.(*Mapping).Get("version")
	require.True(t, ok)
	assert.Equal(t, 1, version, "bare integer must decode as a number")
}

func TestBuild_ScalarTypes(t *testing.T) {
	doc, err := Build("str: hello\nint: 42\nfloat: 2.5\nbool: true\nnothing: null\nquoted: \"7\"")
	require.NoError(t, err)

	m := doc.Value.(*Mapping)
	get := func(k string) any {
		v, ok := m.Get(k)
		require.True(t, ok, k)
		return v
	}
	assert.Equal(t, "hello", get("str"))
	assert.Equal(t, 42, get("int"))
	assert.Equal(t, 2.5, get("float"))
	assert.Equal(t, true, get("bool"))
	assert.Nil(t, get("nothing"))
	assert.Equal(t, "7", get("quoted"), "quoted scalar must stay a string")
}

func TestBuild_Sequences(t *testing.T) {
	doc, err := Build("servers:\n  - url: /v1\n  - url: /v2\ntags: [a, b, c]")
	require.NoError(t, err)

	m := doc.Value.(*Mapping)
	servers, _ := m.Get("servers")
	require.Len(t, servers, 2)
	first := servers.([]any)[0].(*Mapping)
	url, _ := first.Get("url")
	assert.Equal(t, "/v1", url)

	tags, _ := m.Get("tags")
	assert.Equal(t, []any{"a", "b", "c"}, tags)
}

func TestBuild_JSONInput(t *testing.T) {
	doc, err := Build(`{"info": {"title": "A", "version": 1}}`)
	require.NoError(t, err)

	v, ok := Find(doc, Path{"info", "version"})
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestBuild_SyntaxError(t *testing.T) {
	doc, err := Build("key: [unclosed")
	require.Error(t, err)
	assert.Nil(t, doc, "no partial tree on syntax error")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestBuild_Empty(t *testing.T) {
	doc, err := Build("")
	require.NoError(t, err)
	assert.Nil(t, doc.Value)
}

func TestBuild_Anchors(t *testing.T) {
	doc, err := Build("base: &b\n  timeout: 30\nother: *b")
	require.NoError(t, err)

	v, ok := Find(doc, Path{"other", "timeout"})
	require.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestBuild_KeyOrderPreserved(t *testing.T) {
	doc, err := Build("zebra: 1\nalpha: 2\nmiddle: 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha", "middle"}, doc.Value.(*Mapping).Keys())
}
