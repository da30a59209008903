package api

import (
	"context"
	stdjson "encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ibengeu/YASP-sub006/internal/document"
	"github.com/ibengeu/YASP-sub006/internal/validate"
)

// registerDocuments registers the document lifecycle and query operations.
func (s *Server) registerDocuments(api huma.API) {
	// Open (parse and register) a document.
	huma.Register(api, huma.Operation{
		OperationID: "openDocument",
		Method:      http.MethodPost,
		Path:        "/api/documents",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *OpenDocumentInput) (*OpenDocumentOutput, error) {
		info, snap, err := s.ws.Open(input.Body.Text)
		if err != nil {
			parseFailuresTotal.Inc()
			return nil, mapError(err)
		}
		documentsOpenedTotal.Inc()

		out := &OpenDocumentOutput{}
		out.Body.Document = info
		out.Body.Value = snap.Doc.Value
		return out, nil
	})

	// Document metadata.
	huma.Register(api, huma.Operation{
		OperationID: "getDocument",
		Method:      http.MethodGet,
		Path:        "/api/documents/{docID}",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error) {
		info, err := s.ws.Get(input.DocID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &GetDocumentOutput{}
		out.Body.Document = info
		return out, nil
	})

	// Close a document.
	huma.Register(api, huma.Operation{
		OperationID:   "closeDocument",
		Method:        http.MethodDelete,
		Path:          "/api/documents/{docID}",
		Tags:          []string{"Documents"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *CloseDocumentInput) (*struct{}, error) {
		if err := s.ws.Close(input.DocID); err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})

	// Resolve a value at a canonical path.
	huma.Register(api, huma.Operation{
		OperationID: "getValue",
		Method:      http.MethodGet,
		Path:        "/api/documents/{docID}/value",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *GetValueInput) (*GetValueOutput, error) {
		path := document.ParsePath(input.Path)
		value, found, err := s.ws.ValueAt(input.DocID, path)
		if err != nil {
			return nil, mapError(err)
		}
		out := &GetValueOutput{}
		out.Body.Path = path.String()
		out.Body.Found = found
		if found {
			out.Body.Value = value
		}
		return out, nil
	})

	// Replace a value at a canonical path, producing a new revision.
	huma.Register(api, huma.Operation{
		OperationID: "updateValue",
		Method:      http.MethodPatch,
		Path:        "/api/documents/{docID}/value",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *UpdateValueInput) (*UpdateValueOutput, error) {
		var value any
		if len(input.Body.Value) > 0 {
			if err := stdjson.Unmarshal(input.Body.Value, &value); err != nil {
				return nil, huma.NewError(http.StatusBadRequest, "invalid value: "+err.Error())
			}
		}

		info, _, err := s.ws.UpdateAt(input.DocID, document.ParsePath(input.Body.Path), value)
		if err != nil {
			return nil, mapError(err)
		}
		valueUpdatesTotal.Inc()

		text, err := s.ws.Text(input.DocID, "")
		if err != nil {
			return nil, mapError(err)
		}

		out := &UpdateValueOutput{}
		out.Body.Document = info
		out.Body.Text = text
		return out, nil
	})

	// Canonical text of a revision.
	huma.Register(api, huma.Operation{
		OperationID: "getText",
		Method:      http.MethodGet,
		Path:        "/api/documents/{docID}/text",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *GetTextInput) (*GetTextOutput, error) {
		text, err := s.ws.Text(input.DocID, input.Revision)
		if err != nil {
			return nil, mapError(err)
		}
		out := &GetTextOutput{}
		out.Body.Text = text
		return out, nil
	})

	// Path → position table for the current revision.
	huma.Register(api, huma.Operation{
		OperationID: "getPositions",
		Method:      http.MethodGet,
		Path:        "/api/documents/{docID}/positions",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *GetPositionsInput) (*GetPositionsOutput, error) {
		positions, err := s.ws.Positions(input.DocID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &GetPositionsOutput{}
		out.Body.Positions = positions
		return out, nil
	})

	// OpenAPI validation diagnostics, joined with source positions.
	huma.Register(api, huma.Operation{
		OperationID: "getDiagnostics",
		Method:      http.MethodGet,
		Path:        "/api/documents/{docID}/diagnostics",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *GetDiagnosticsInput) (*GetDiagnosticsOutput, error) {
		snap, text, err := s.ws.Snapshot(input.DocID)
		if err != nil {
			return nil, mapError(err)
		}

		diags := validate.Document(ctx, text)
		diags = validate.WithPositions(diags, snap.Positions)

		out := &GetDiagnosticsOutput{}
		out.Body.Diagnostics = diags
		return out, nil
	})

	// Revision history, oldest first.
	huma.Register(api, huma.Operation{
		OperationID: "listRevisions",
		Method:      http.MethodGet,
		Path:        "/api/documents/{docID}/revisions",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *ListRevisionsInput) (*ListRevisionsOutput, error) {
		revs, err := s.ws.Revisions(input.DocID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &ListRevisionsOutput{}
		out.Body.Revisions = revs
		return out, nil
	})
}
