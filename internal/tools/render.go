package tools

// render.go turns lookup findings into the fixed four-section response
// template. The template shape is a contract with downstream consumers:
// the same four headers and the closing pre-entry reminder appear in
// every response, however little the lookup found.

import (
	"fmt"
	"strings"

	"github.com/gatehouse0/gatehouse/internal/index"
	"github.com/gatehouse0/gatehouse/internal/manual"
)

// insufficientInfo marks answers that could not be verified against the
// structured tables. Responses carry this exact marker instead of a
// fabricated section.
const insufficientInfo = "insufficient information"

// chunkCitation locates a retrieved manual chunk for provenance.
type chunkCitation struct {
	Page    int    `json:"page"`
	Section string `json:"section"`
}

func (c chunkCitation) String() string {
	if c.Section == "" || c.Section == index.SectionUnknown {
		return fmt.Sprintf("Page %d", c.Page)
	}
	return fmt.Sprintf("Section %s, Page %d", c.Section, c.Page)
}

// semanticFinding is an import requirement surfaced by text search rather
// than the structured tables, with the chunk that mentioned it. The IR
// details come from the verified register; only its applicability to the
// query is unverified.
type semanticFinding struct {
	req      *manual.ImportRequirement
	citation chunkCitation
}

// findings is the typed intermediate between the two lookup stages and
// the renderer. Stage one fills the structured fields; stage two, run
// only when the structured result is absent or incomplete, fills the
// semantic ones.
type findings struct {
	commodityRaw string
	originRaw    string
	origin       manual.State
	originKnown  bool

	commodity      *manual.Commodity
	classification manual.Classification
	requirements   []*manual.ImportRequirement
	icas           []*manual.ICA
	pests          []manual.PestStatus
	treatments     []manual.Treatment
	documentation  []string
	zoned          bool
	zone           manual.ZoneCode

	complete bool
	gaps     []string

	fallback    bool
	semantic    []semanticFinding
	mentioned   []manual.PestStatus
	matches     []chunkCitation
	suggestions []*manual.Commodity

	degraded bool
}

// renderResponse produces the response text. Output is deterministic for
// a given findings value.
func renderResponse(f *findings) string {
	sections := []string{
		"Commodity Type: " + commodityTypeLine(f),
		"Import Requirements:\n" + bulletBlock(requirementLines(f)),
		"Pest Considerations:\n" + bulletBlock(pestLines(f)),
		"Additional Requirements:\n" + bulletBlock(additionalLines(f)),
		manual.PreEntryReminder,
	}
	return strings.Join(sections, "\n\n")
}

func bulletBlock(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "• " + l
	}
	return strings.Join(out, "\n")
}

func commodityTypeLine(f *findings) string {
	switch {
	case !f.originKnown:
		return fmt.Sprintf("unknown (%s: %q is not a recognised Australian state or territory)",
			insufficientInfo, f.originRaw)
	case f.commodity == nil:
		return fmt.Sprintf("unknown (%s: %q is not in the verified commodity register)",
			insufficientInfo, f.commodityRaw)
	default:
		return string(f.commodity.Type)
	}
}

func requirementLines(f *findings) []string {
	if !f.originKnown {
		return []string{"None verified: origin state could not be resolved, so state-based conditions cannot be evaluated."}
	}

	var lines []string
	for _, r := range f.requirements {
		lines = append(lines, fmt.Sprintf("%s: %s (Section %s, Page %d)", r.Code, r.Title, r.Section, r.Page))
	}
	if len(f.requirements) > 0 {
		lines = append(lines, "Applicable ICAs: "+icaList(f.icas))
	}
	for _, sf := range f.semantic {
		lines = append(lines, fmt.Sprintf("%s: %s (Section %s, Page %d) [manual text match: Page %d]",
			sf.req.Code, sf.req.Title, sf.req.Section, sf.req.Page, sf.citation.Page))
	}
	if len(lines) > 0 {
		return lines
	}

	switch {
	case f.degraded:
		return []string{"None verified: semantic search is currently unavailable."}
	case f.commodity == nil:
		return []string{fmt.Sprintf("None verified (%s).", insufficientInfo)}
	default:
		return []string{fmt.Sprintf("No import requirements triggered for this commodity from %s.", f.origin.DisplayName())}
	}
}

func icaList(icas []*manual.ICA) string {
	if len(icas) == 0 {
		return "none recorded"
	}
	parts := make([]string, len(icas))
	for i, ica := range icas {
		parts[i] = fmt.Sprintf("%s (%s, %s)", ica.Code, ica.Title, ica.Status)
	}
	return strings.Join(parts, ", ")
}

func pestLines(f *findings) []string {
	if !f.originKnown {
		return []string{"None verified: pest presence is recorded per origin state."}
	}

	if f.commodity != nil {
		if len(f.pests) == 0 {
			return []string{"No recorded quarantine pests for this commodity."}
		}
		return []string{
			"Relevant pests: " + pestNames(f.pests),
			"State-specific presence: " + presenceDetails(f.pests, f.origin),
		}
	}

	if len(f.mentioned) == 0 {
		if f.degraded {
			return []string{"None verified: semantic search is currently unavailable."}
		}
		return []string{fmt.Sprintf("None identified (%s).", insufficientInfo)}
	}
	return []string{
		"Pests referenced in matched manual text: " + pestNames(f.mentioned),
		"State-specific presence: " + presenceDetails(f.mentioned, f.origin),
	}
}

func pestNames(statuses []manual.PestStatus) string {
	parts := make([]string, len(statuses))
	for i, ps := range statuses {
		parts[i] = fmt.Sprintf("%s (%s)", ps.Pest.Name, ps.Pest.Code)
	}
	return strings.Join(parts, ", ")
}

func presenceDetails(statuses []manual.PestStatus, origin manual.State) string {
	parts := make([]string, len(statuses))
	for i, ps := range statuses {
		parts[i] = presenceClause(ps, origin)
	}
	return strings.Join(parts, "; ")
}

func presenceClause(ps manual.PestStatus, origin manual.State) string {
	p := ps.Pest
	switch {
	case ps.Present:
		return fmt.Sprintf("%s: present in %s", p.Name, origin.DisplayName())
	case len(p.PresentIn) == 0 && p.Scientific == "":
		return fmt.Sprintf("%s: entry condition category, not tracked by state", p.Name)
	case len(p.PresentIn) == 0:
		return fmt.Sprintf("%s: not known to occur in Australia", p.Name)
	default:
		return fmt.Sprintf("%s: not recorded in %s", p.Name, origin.DisplayName())
	}
}

func additionalLines(f *findings) []string {
	if !f.originKnown {
		return []string{"Provide the origin as a state or territory code (QLD, NSW, VIC, SA, WA, NT, ACT, TAS) or its full name and retry."}
	}

	var lines []string

	switch f.classification.Category {
	case manual.CategoryProhibited:
		lines = append(lines, f.classification.Reason)
	case manual.CategoryPermitted:
		lines = append(lines, f.classification.Reason)
		lines = append(lines, f.classification.Requirements...)
	}

	lines = append(lines, conditionLines(f.requirements)...)

	if len(f.treatments) > 0 {
		lines = append(lines, "Approved treatments: "+treatmentList(f.treatments))
	}
	if len(f.documentation) > 0 {
		lines = append(lines, "Required documentation: "+strings.Join(f.documentation, "; "))
	}

	if f.zoned {
		lines = append(lines, fmt.Sprintf("Phylloxera zoning: %s is classified %s (%s).",
			f.origin.DisplayName(), f.zone.Describe(), f.zone))
	}

	lines = append(lines, f.gaps...)

	if len(f.suggestions) > 0 {
		lines = append(lines, "Closest register entries: "+suggestionList(f.suggestions))
	}

	if f.degraded {
		lines = append(lines, "Degraded response: semantic search failed after retry; only verified table data is shown.")
	}

	if f.commodity == nil && len(f.matches) > 0 {
		lines = append(lines, "Manual passages consulted: "+citationList(f.matches))
	}

	if len(lines) == 0 {
		lines = append(lines, "None beyond the standard entry conditions.")
	}
	return lines
}

// conditionLines flattens the entry conditions of the verified
// requirements, deduplicating conditions shared between IRs.
func conditionLines(reqs []*manual.ImportRequirement) []string {
	var lines []string
	seen := make(map[string]bool)
	for _, r := range reqs {
		for _, cond := range r.Conditions {
			if seen[cond] {
				continue
			}
			seen[cond] = true
			lines = append(lines, cond)
		}
	}
	return lines
}

func treatmentList(ts []manual.Treatment) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%s (%s)", t.Name, t.Detail)
	}
	return strings.Join(parts, ", ")
}

func suggestionList(cs []*manual.Commodity) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Name
	}
	return strings.Join(parts, ", ")
}

func citationList(cs []chunkCitation) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, "; ")
}

// responseCitations lists every provenance reference the response relies
// on, verified requirements first, for the structured tool payload.
func responseCitations(f *findings) []string {
	var out []string
	for _, r := range f.requirements {
		out = append(out, fmt.Sprintf("%s: Section %s, Page %d", r.Code, r.Section, r.Page))
	}
	for _, sf := range f.semantic {
		out = append(out, fmt.Sprintf("%s: Section %s, Page %d (manual text match: Page %d)",
			sf.req.Code, sf.req.Section, sf.req.Page, sf.citation.Page))
	}
	for _, c := range f.matches {
		out = append(out, c.String())
	}
	return out
}
