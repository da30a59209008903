package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ibengeu/YASP-sub006/internal/diff"
)

// registerDiff registers the diff operation. Two addressing modes: raw old/new
// texts, or revisions of an already-open document.
func (s *Server) registerDiff(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "computeDiff",
		Method:      http.MethodPost,
		Path:        "/api/diff",
		Tags:        []string{"Diff"},
	}, func(ctx context.Context, input *DiffInput) (*DiffOutput, error) {
		strategy := diff.Positional
		if input.Body.Strategy != "" {
			parsed, ok := diff.ParseStrategy(input.Body.Strategy)
			if !ok {
				return nil, huma.NewError(http.StatusBadRequest, "unknown diff strategy: "+input.Body.Strategy)
			}
			strategy = parsed
		}

		threshold := s.collapseThreshold
		if input.Body.CollapseThreshold > 0 {
			threshold = input.Body.CollapseThreshold
		}
		opts := diff.Options{Strategy: strategy, CollapseThreshold: threshold}

		var result diff.Result
		switch {
		case input.Body.OldText != nil || input.Body.NewText != nil:
			var oldText, newText string
			if input.Body.OldText != nil {
				oldText = *input.Body.OldText
			}
			if input.Body.NewText != nil {
				newText = *input.Body.NewText
			}
			result = s.ws.DiffTexts(oldText, newText, opts)
		case input.Body.DocumentID != "":
			var err error
			result, err = s.ws.DiffRevisions(input.Body.DocumentID, input.Body.OldRevision, input.Body.NewRevision, opts)
			if err != nil {
				return nil, mapError(err)
			}
		default:
			return nil, huma.NewError(http.StatusBadRequest, "either oldText/newText or documentId is required")
		}

		diffRequestsTotal.WithLabelValues(strategy.String()).Inc()

		out := &DiffOutput{}
		out.Body.Hunks = result.Hunks
		out.Body.Stats = result.Stats
		return out, nil
	})
}
