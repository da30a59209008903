// Package validate produces OpenAPI validation diagnostics for a document.
// It plays the role of the diagnostics collaborator: the document core only
// promises path↔position translation, and this package supplies the
// {code, message, severity, path} records to translate.
package validate

import (
	"context"
	"errors"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ibengeu/YASP-sub006/internal/document"
)

// Severity levels for diagnostics.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Diagnostic is one validation finding. Path addresses the offending value
// when known; Line/Column are filled in by WithPositions.
type Diagnostic struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Severity string        `json:"severity"`
	Path     document.Path `json:"path,omitempty"`
	Line     int           `json:"line,omitempty"`
	Column   int           `json:"column,omitempty"`
}

// Document validates text as an OpenAPI 3 document and returns diagnostics.
// A syntactically valid document that is not a loadable OpenAPI spec yields a
// single load diagnostic; a loadable spec yields one diagnostic per
// validation failure. No diagnostics means the document is a valid spec.
func Document(ctx context.Context, text string) []Diagnostic {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData([]byte(text))
	if err != nil {
		return []Diagnostic{{
			Code:     "openapi-load",
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}

	if err := doc.Validate(ctx); err != nil {
		return flatten(err)
	}
	return nil
}

// flatten unpacks kin-openapi's error shapes into individual diagnostics.
func flatten(err error) []Diagnostic {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Diagnostic
		for _, e := range multi {
			out = append(out, flatten(e)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Diagnostic{{
			Code:     "openapi-schema",
			Message:  schemaErr.Error(),
			Severity: SeverityError,
			Path:     document.Path(schemaErr.JSONPointer()),
		}}
	}

	return []Diagnostic{{
		Code:     "openapi-validate",
		Message:  err.Error(),
		Severity: SeverityError,
	}}
}

// WithPositions returns the diagnostics with Line/Column attached from the
// position index. A diagnostic whose exact path has no entry falls back to
// its nearest indexed ancestor; a pathless diagnostic anchors at line 1.
func WithPositions(diags []Diagnostic, positions map[string]document.Position) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		pos, ok := locate(d.Path, positions)
		if ok {
			d.Line = pos.Line
			d.Column = pos.Column
		} else {
			d.Line = 1
		}
		out[i] = d
	}
	return out
}

func locate(path document.Path, positions map[string]document.Position) (document.Position, bool) {
	for end := len(path); end > 0; end-- {
		if pos, ok := positions[path[:end].String()]; ok {
			return pos, true
		}
	}
	return document.Position{}, false
}
