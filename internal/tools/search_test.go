package tools

import (
	"strings"
	"testing"

	"github.com/firebase/genkit/go/ai"

	"github.com/gatehouse0/gatehouse/internal/manual"
)

func TestSearchManualValidation(t *testing.T) {
	q := newTestQuarantine(t, &mockRetriever{})

	result, err := q.SearchManual(nil, SearchInput{Query: "   "})
	if err != nil {
		t.Fatalf("SearchManual() unexpected error: %v", err)
	}
	if result.Status != StatusError || result.Error == nil || result.Error.Code != ErrCodeValidation {
		t.Fatalf("SearchManual() = %+v, want validation error", result)
	}
	if !strings.Contains(result.Error.Message, "query is required") {
		t.Errorf("error message = %q, want to contain %q", result.Error.Message, "query is required")
	}
}

func TestSearchManual(t *testing.T) {
	stub := &stubRetriever{docs: []*ai.Document{
		manualDoc("Host produce must be treated before entry.", 38, "3.1"),
		manualDoc("Appendix 3 lists the approved treatments.", 85, "unknown"),
		ai.DocumentFromText("   ", map[string]any{"page": 99}),
	}}
	q := newTestQuarantine(t, stub)

	result, err := q.SearchManual(toolCtx(), SearchInput{Query: "approved treatments"})
	if err != nil {
		t.Fatalf("SearchManual() unexpected error: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("SearchManual() status = %q, want %q (error: %+v)", result.Status, StatusSuccess, result.Error)
	}

	data, ok := result.Data.(map[string]any)
	if !ok {
		t.Fatalf("SearchManual() data type = %T, want map[string]any", result.Data)
	}
	if data["result_count"] != 2 {
		t.Errorf("result_count = %v, want 2 (blank documents skipped)", data["result_count"])
	}

	results, ok := data["results"].([]map[string]any)
	if !ok || len(results) != 2 {
		t.Fatalf("results = %v, want two entries", data["results"])
	}
	first := results[0]
	if first["page"] != 38 || first["section"] != "3.1" {
		t.Errorf("results[0] provenance = page %v section %v, want page 38 section 3.1", first["page"], first["section"])
	}
	if first["citation"] != "Section 3.1, Page 38" {
		t.Errorf("results[0] citation = %v, want %q", first["citation"], "Section 3.1, Page 38")
	}
	if first["source"] != manual.ManualSource {
		t.Errorf("results[0] source = %v, want %q", first["source"], manual.ManualSource)
	}
	if results[1]["citation"] != "Page 85" {
		t.Errorf("results[1] citation = %v, want %q", results[1]["citation"], "Page 85")
	}
}

func TestSearchManualRetriesThenFails(t *testing.T) {
	stub := &stubRetriever{err: errAlwaysDown}
	q := newTestQuarantine(t, stub)

	result, err := q.SearchManual(toolCtx(), SearchInput{Query: "fruit fly"})
	if err != nil {
		t.Fatalf("SearchManual() unexpected error: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("retriever calls = %d, want 2 (initial plus one bounded retry)", stub.calls)
	}
	if result.Status != StatusError || result.Error == nil || result.Error.Code != ErrCodeExecution {
		t.Fatalf("SearchManual() = %+v, want execution error", result)
	}
}
