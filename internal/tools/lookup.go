package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/gatehouse0/gatehouse/internal/manual"
)

// maxSuggestions caps the near-miss commodity suggestions offered when a
// name misses the register.
const maxSuggestions = 5

// irMentionRe matches import requirement references in manual text, with
// or without the space ("IR 4", "IR4").
var irMentionRe = regexp.MustCompile(`(?i)\bIR\s*(\d{1,2})\b`)

// LookupInput is the input schema for the import_lookup tool.
type LookupInput struct {
	Commodity   string `json:"commodity" jsonschema_description:"Commodity name as the user gave it, e.g. 'table grapes' or 'seed potatoes'"`
	OriginState string `json:"origin_state" jsonschema_description:"Australian origin state or territory, as a code (NSW) or a full name (New South Wales)"`
	Question    string `json:"question,omitempty" jsonschema_description:"The user's question in their own words, used for semantic manual search when the structured tables have no complete answer"`
	TopK        int    `json:"top_k,omitempty" jsonschema_description:"Number of manual chunks to retrieve on fallback (default 5, max 10)"`
}

// ImportLookup resolves Tasmanian import conditions for a commodity
// consigned from an Australian state. The structured tables are
// authoritative; semantic search over the manual text runs only when the
// structured result is absent or incomplete, and structured findings win
// on overlap.
func (q *Quarantine) ImportLookup(ctx *ai.ToolContext, input LookupInput) (Result, error) {
	q.logger.Info("ImportLookup called",
		"commodity", input.Commodity, "origin_state", input.OriginState)

	if strings.TrimSpace(input.Commodity) == "" {
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeValidation,
				Message: "commodity is required",
			},
		}, nil
	}
	if strings.TrimSpace(input.OriginState) == "" {
		return Result{
			Status: StatusError,
			Error: &Error{
				Code:    ErrCodeValidation,
				Message: "origin_state is required",
			},
		}, nil
	}

	f := q.gather(ctx, input)

	q.logger.Info("ImportLookup succeeded",
		"commodity", input.Commodity,
		"matched", f.commodity != nil,
		"complete", f.complete,
		"fallback", f.fallback,
		"degraded", f.degraded)

	return Result{
		Status: StatusSuccess,
		Data: map[string]any{
			"response":          renderResponse(f),
			"commodity":         input.Commodity,
			"origin_state":      input.OriginState,
			"matched":           f.commodity != nil,
			"complete":          f.complete,
			"semantic_fallback": f.fallback,
			"degraded":          f.degraded,
			"citations":         responseCitations(f),
		},
	}, nil
}

// gather runs the two-stage lookup pipeline and returns the typed
// intermediate the renderer consumes. An unresolvable origin state stops
// the pipeline immediately: presence data is keyed by state, so nothing
// downstream can be answered without one.
func (q *Quarantine) gather(ctx context.Context, input LookupInput) *findings {
	f := &findings{
		commodityRaw: strings.TrimSpace(input.Commodity),
		originRaw:    strings.TrimSpace(input.OriginState),
	}

	origin, err := manual.ParseState(f.originRaw)
	if err != nil {
		return f
	}
	f.origin = origin
	f.originKnown = true
	f.classification = q.store.Classify(f.commodityRaw)

	if c, findErr := q.store.Find(f.commodityRaw); findErr == nil {
		f.commodity = c
		q.gatherStructured(f)
		if f.complete {
			return f
		}
	} else {
		f.fallback = true
		f.suggestions = clipSuggestions(q.store.Search(f.commodityRaw))
	}

	q.gatherSemantic(ctx, f, input)
	return f
}

// gatherStructured fills the verified-table findings and decides
// completeness: the structured answer is complete when every pest the
// commodity hosts that is present in the origin state is covered by at
// least one applicable import requirement.
func (q *Quarantine) gatherStructured(f *findings) {
	f.requirements = q.store.RequirementsFor(f.commodity, f.origin)
	f.pests = q.store.PestsFor(f.commodity, f.origin)

	seen := make(map[string]bool)
	for _, r := range f.requirements {
		for _, ica := range q.store.ICAsFor(r) {
			if seen[ica.Code] {
				continue
			}
			seen[ica.Code] = true
			f.icas = append(f.icas, ica)
		}
	}

	covered := make(map[manual.PestCode]bool)
	for _, r := range f.requirements {
		covered[r.Pest] = true
	}
	f.complete = true
	for _, ps := range f.pests {
		if !ps.Present || covered[ps.Pest.Code] {
			continue
		}
		f.complete = false
		f.gaps = append(f.gaps, fmt.Sprintf(
			"Coverage gap: %s (%s) is present in %s but no verified import requirement covers this commodity class for it.",
			ps.Pest.Name, ps.Pest.Code, f.origin.DisplayName()))
	}

	if f.commodity.HostOf(manual.PestGP) {
		f.zoned = true
		f.zone = q.store.Zone(f.origin)
	}

	if needsTreatment(f.requirements) {
		f.treatments = q.store.Treatments()
		f.documentation = q.store.Documentation()
	}
}

// gatherSemantic runs the fallback stage: a similarity query over the
// manual text using the user's own words, with requirement and pest
// mentions extracted from the matched chunks. Only IR codes that resolve
// against the verified register are kept, so a stray number in the manual
// text can never fabricate a requirement.
func (q *Quarantine) gatherSemantic(ctx context.Context, f *findings, input LookupInput) {
	query := strings.TrimSpace(input.Question)
	if query == "" {
		query = f.commodityRaw + " from " + f.originRaw + " import conditions"
	}

	docs, err := q.retrieve(ctx, query, clampTopK(input.TopK, DefaultLookupTopK))
	if err != nil {
		q.logger.Warn("manual retrieval failed", "query", query, "error", err)
		f.degraded = true
		return
	}

	structured := make(map[string]bool)
	for _, r := range f.requirements {
		structured[r.Code] = true
	}

	seenIR := make(map[string]bool)
	seenPest := make(map[manual.PestCode]bool)
	for _, doc := range docs {
		text := docText(doc)
		if text == "" {
			continue
		}
		cite := chunkProvenance(doc)
		f.matches = append(f.matches, cite)

		for _, m := range irMentionRe.FindAllStringSubmatch(text, -1) {
			r, ok := q.store.Requirement("IR " + m[1])
			if !ok || structured[r.Code] || seenIR[r.Code] {
				continue
			}
			seenIR[r.Code] = true
			f.semantic = append(f.semantic, semanticFinding{req: r, citation: cite})
		}

		if f.commodity != nil {
			continue
		}
		lower := strings.ToLower(text)
		for _, p := range q.store.Pests() {
			if seenPest[p.Code] || !strings.Contains(lower, strings.ToLower(p.Name)) {
				continue
			}
			seenPest[p.Code] = true
			f.mentioned = append(f.mentioned, manual.PestStatus{Pest: p, Present: p.Present(f.origin)})
		}
	}
}

func needsTreatment(reqs []*manual.ImportRequirement) bool {
	for _, r := range reqs {
		if r.NeedsTreatment {
			return true
		}
	}
	return false
}

func clipSuggestions(cs []*manual.Commodity) []*manual.Commodity {
	if len(cs) > maxSuggestions {
		return cs[:maxSuggestions]
	}
	return cs
}

// docText concatenates the text parts of a retrieved document.
func docText(doc *ai.Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range doc.Content {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
