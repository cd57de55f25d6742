package tools

// quarantine.go defines the quarantine toolset shared by the agent, the
// MCP server and the HTTP API: import_lookup (structured lookup with
// semantic fallback), pest_status (direct presence checks) and
// manual_search (raw semantic search over the manual text).

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/postgresql"

	"github.com/gatehouse0/gatehouse/internal/index"
	"github.com/gatehouse0/gatehouse/internal/manual"
)

// Tool name constants for quarantine operations registered with Genkit.
const (
	// ImportLookupName is the Genkit tool name for commodity import lookups.
	ImportLookupName = "import_lookup"
	// PestStatusName is the Genkit tool name for pest presence checks.
	PestStatusName = "pest_status"
	// ManualSearchName is the Genkit tool name for semantic manual search.
	ManualSearchName = "manual_search"
)

// Default TopK values for semantic retrieval.
const (
	DefaultLookupTopK = 5
	DefaultSearchTopK = 5
	MaxTopK           = 10
)

// manualFilter restricts retrieval to manual chunks. A precomputed
// constant keeps user input out of the SQL filter path entirely.
const manualFilter = "source_type = 'manual'"

// retrieveRetryDelay is the backoff before the single bounded retry of a
// failed retrieval call.
const retrieveRetryDelay = 500 * time.Millisecond

// Quarantine holds dependencies for the quarantine tool handlers.
type Quarantine struct {
	store     *manual.Store
	retriever ai.Retriever
	logger    *slog.Logger
}

// NewQuarantine creates a Quarantine toolset.
func NewQuarantine(store *manual.Store, retriever ai.Retriever, logger *slog.Logger) (*Quarantine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if retriever == nil {
		return nil, fmt.Errorf("retriever is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Quarantine{store: store, retriever: retriever, logger: logger}, nil
}

// RegisterQuarantine registers the quarantine tools with Genkit.
// Tools are registered with event emission wrappers for streaming support.
func RegisterQuarantine(g *genkit.Genkit, q *Quarantine) ([]ai.Tool, error) {
	if g == nil {
		return nil, fmt.Errorf("genkit instance is required")
	}
	if q == nil {
		return nil, fmt.Errorf("Quarantine is required")
	}

	tools := []ai.Tool{
		genkit.DefineTool(g, ImportLookupName,
			"Look up Tasmanian import conditions for a commodity from an Australian state. "+
				"Resolves the commodity against the structured quarantine tables and falls back "+
				"to semantic search over the manual text when no verified entry exists. "+
				"Returns: a fully formatted answer with import requirements, pest considerations "+
				"and manual citations. Relay the response field to the user verbatim; "+
				"do not paraphrase or drop citations.",
			WithEvents(ImportLookupName, q.ImportLookup)),
		genkit.DefineTool(g, PestStatusName,
			"Check whether a quarantine pest or disease is recorded as present in an "+
				"Australian state or territory. Accepts the Table 1 code (QFF, MFF, GP, ...) "+
				"or the common name. Returns: the presence verdict with the pest's details. "+
				"Use this for direct pest distribution questions.",
			WithEvents(PestStatusName, q.PestStatus)),
		genkit.DefineTool(g, ManualSearchName,
			"Search the Plant Quarantine Manual text using semantic similarity. "+
				"Finds manual passages conceptually related to the query. "+
				"Returns: matched passages with page and section citations. "+
				"Use this for general manual questions not tied to one commodity. "+
				"Default topK: 5. Maximum topK: 10.",
			WithEvents(ManualSearchName, q.SearchManual)),
	}

	return tools, nil
}

// clampTopK validates topK and returns a value within [1, MaxTopK].
// If topK <= 0, returns defaultVal.
func clampTopK(topK, defaultVal int) int {
	if topK <= 0 {
		return defaultVal
	}
	if topK > MaxTopK {
		return MaxTopK
	}
	return topK
}

// retrieve runs a semantic query over the manual chunks with one bounded
// retry. Retrieval failures after the retry are returned to the caller,
// which degrades the response rather than failing the tool call.
func (q *Quarantine) retrieve(ctx context.Context, query string, topK int) ([]*ai.Document, error) {
	req := &ai.RetrieverRequest{
		Query: ai.DocumentFromText(query, nil),
		Options: &postgresql.RetrieverOptions{
			Filter: manualFilter,
			K:      topK,
		},
	}

	resp, err := q.retriever.Retrieve(ctx, req)
	if err == nil {
		return resp.Documents, nil
	}

	q.logger.Warn("retrieval failed, retrying once", "error", err)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retrieveRetryDelay):
	}

	resp, err = q.retriever.Retrieve(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("retrieving manual chunks: %w", err)
	}
	return resp.Documents, nil
}

// chunkProvenance extracts page and section from retrieved chunk metadata.
// Metadata read back from JSONB arrives with float64 numbers.
func chunkProvenance(doc *ai.Document) chunkCitation {
	c := chunkCitation{Section: index.SectionUnknown}
	if doc == nil || doc.Metadata == nil {
		return c
	}
	switch v := doc.Metadata["page"].(type) {
	case int:
		c.Page = v
	case float64:
		c.Page = int(v)
	}
	if s, ok := doc.Metadata["section"].(string); ok && s != "" {
		c.Section = s
	}
	return c
}
