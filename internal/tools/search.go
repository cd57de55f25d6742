package tools

import (
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/gatehouse0/gatehouse/internal/manual"
)

// SearchInput is the input schema for the manual_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema_description:"What to search the manual text for"`
	TopK  int    `json:"top_k,omitempty" jsonschema_description:"Number of passages to return (default 5, max 10)"`
}

// SearchManual searches the manual text using semantic similarity and
// returns matched passages with their page and section provenance.
func (q *Quarantine) SearchManual(ctx *ai.ToolContext, input SearchInput) (Result, error) {
	q.logger.Info("SearchManual called", "query", input.Query, "topK", input.TopK)

	if strings.TrimSpace(input.Query) == "" {
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeValidation,
				Message: "query is required",
			},
		}, nil
	}

	topK := clampTopK(input.TopK, DefaultSearchTopK)
	docs, err := q.retrieve(ctx, input.Query, topK)
	if err != nil {
		q.logger.Warn("SearchManual failed", "query", input.Query, "error", err)
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeExecution,
				Message: fmt.Sprintf("searching manual: %v", err),
			},
		}, nil
	}

	results := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		text := docText(doc)
		if text == "" {
			continue
		}
		cite := chunkProvenance(doc)
		results = append(results, map[string]any{
			"content":  text,
			"page":     cite.Page,
			"section":  cite.Section,
			"citation": cite.String(),
			"source":   manual.ManualSource,
		})
	}

	q.logger.Info("SearchManual succeeded", "query", input.Query, "result_count", len(results))
	return Result{
		Status: StatusSuccess,
		Data: map[string]any{
			"query":        input.Query,
			"result_count": len(results),
			"results":      results,
		},
	}, nil
}
