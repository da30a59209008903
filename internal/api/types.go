package api

import (
	"encoding/json"

	"github.com/ibengeu/YASP-sub006/internal/diff"
	"github.com/ibengeu/YASP-sub006/internal/document"
	"github.com/ibengeu/YASP-sub006/internal/validate"
	"github.com/ibengeu/YASP-sub006/internal/workspace"
)

// --- Path param mixins ---

// DocumentParams contains the document ID path parameter.
type DocumentParams struct {
	DocID string `path:"docID" doc:"Document ID"`
}

// --- Document operations ---

// OpenDocumentInput opens (parses) a document from raw text.
type OpenDocumentInput struct {
	Body struct {
		Text string `json:"text" doc:"YAML or JSON document text"`
	}
}

// OpenDocumentOutput returns the registered document and its value tree.
type OpenDocumentOutput struct {
	Body struct {
		Document workspace.DocumentInfo `json:"document"`
		Value    any                    `json:"value"`
	}
}

// GetDocumentInput fetches document metadata.
type GetDocumentInput struct {
	DocumentParams
}

// GetDocumentOutput carries document metadata.
type GetDocumentOutput struct {
	Body struct {
		Document workspace.DocumentInfo `json:"document"`
	}
}

// CloseDocumentInput removes a document from the workspace.
type CloseDocumentInput struct {
	DocumentParams
}

// GetValueInput resolves a canonical path against the current revision.
type GetValueInput struct {
	DocumentParams
	Path string `query:"path" doc:"Dotted canonical path, e.g. info.title (empty = whole tree)"`
}

// GetValueOutput reports the resolved value. Absence is part of the response
// body, not an error status.
type GetValueOutput struct {
	Body struct {
		Path  string `json:"path"`
		Found bool   `json:"found"`
		Value any    `json:"value,omitempty"`
	}
}

// UpdateValueInput replaces the value at a canonical path.
type UpdateValueInput struct {
	DocumentParams
	Body struct {
		Path  string          `json:"path" doc:"Dotted canonical path to replace"`
		Value json.RawMessage `json:"value" doc:"New value as JSON"`
	}
}

// UpdateValueOutput returns the new revision's info and canonical text.
type UpdateValueOutput struct {
	Body struct {
		Document workspace.DocumentInfo `json:"document"`
		Text     string                 `json:"text"`
	}
}

// GetTextInput requests a revision's canonical text.
type GetTextInput struct {
	DocumentParams
	Revision string `query:"revision" doc:"Revision ID (empty = current)"`
}

// GetTextOutput carries document text.
type GetTextOutput struct {
	Body struct {
		Text string `json:"text"`
	}
}

// GetPositionsInput requests the path → position table.
type GetPositionsInput struct {
	DocumentParams
}

// GetPositionsOutput carries the position index keyed by dotted path.
type GetPositionsOutput struct {
	Body struct {
		Positions map[string]document.Position `json:"positions"`
	}
}

// GetDiagnosticsInput requests OpenAPI validation diagnostics.
type GetDiagnosticsInput struct {
	DocumentParams
}

// GetDiagnosticsOutput carries diagnostics with positions attached.
type GetDiagnosticsOutput struct {
	Body struct {
		Diagnostics []validate.Diagnostic `json:"diagnostics"`
	}
}

// ListRevisionsInput lists a document's revisions.
type ListRevisionsInput struct {
	DocumentParams
}

// ListRevisionsOutput carries revision descriptions, oldest first.
type ListRevisionsOutput struct {
	Body struct {
		Revisions []workspace.RevisionInfo `json:"revisions"`
	}
}

// --- Diff operations ---

// DiffInput compares two texts, or two revisions of an open document.
// Exactly one of the two addressing modes is used: raw texts, or a document
// ID with optional revision IDs.
type DiffInput struct {
	Body struct {
		OldText *string `json:"oldText,omitempty" doc:"Old revision text"`
		NewText *string `json:"newText,omitempty" doc:"New revision text"`

		DocumentID  string `json:"documentId,omitempty" doc:"Open document to diff"`
		OldRevision string `json:"oldRevision,omitempty" doc:"Old revision ID (empty = predecessor of new)"`
		NewRevision string `json:"newRevision,omitempty" doc:"New revision ID (empty = current)"`

		Strategy          string `json:"strategy,omitempty" doc:"Diff strategy: positional (default) or minimal"`
		CollapseThreshold int    `json:"collapseThreshold,omitempty" doc:"Unchanged lines above this start collapsed (default 3)"`
	}
}

// DiffOutput carries the hunk-grouped diff and its stats.
type DiffOutput struct {
	Body struct {
		Hunks []diff.Hunk `json:"hunks"`
		Stats diff.Stats  `json:"stats"`
	}
}

// --- Meta ---

// HealthCheckOutput is the health probe response.
type HealthCheckOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}
