package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibengeu/YASP-sub006/internal/document"
)

const validSpec = `openapi: 3.0.3
info:
  title: Test API
  version: 1.0.0
paths: {}
`

func TestDocument_ValidSpec(t *testing.T) {
	diags := Document(context.Background(), validSpec)
	assert.Empty(t, diags)
}

func TestDocument_MissingInfo(t *testing.T) {
	diags := Document(context.Background(), "openapi: 3.0.3\npaths: {}\n")
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, SeverityError, d.Severity)
		assert.NotEmpty(t, d.Code)
		assert.NotEmpty(t, d.Message)
	}
}

func TestDocument_NotAnOpenAPIDocument(t *testing.T) {
	diags := Document(context.Background(), "just: yaml\nnothing: special\n")
	require.NotEmpty(t, diags)
}

func TestWithPositions(t *testing.T) {
	text := "openapi: 3.0.3\ninfo:\n  title: T\npaths: {}\n"
	doc, err := document.Build(text)
	require.NoError(t, err)
	positions := document.Index(doc, text)

	diags := WithPositions([]Diagnostic{
		{Code: "x", Path: document.Path{"info", "title"}},
		{Code: "y", Path: document.Path{"info", "missing", "deeper"}},
		{Code: "z"},
	}, positions)

	require.Len(t, diags, 3)
	assert.Equal(t, 3, diags[0].Line, "exact path hit")
	assert.Equal(t, 2, diags[1].Line, "falls back to nearest indexed ancestor")
	assert.Equal(t, 1, diags[2].Line, "pathless diagnostic anchors at line 1")
}
