package index

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultChunkTokens is the per-chunk token budget. Tokens are estimated
// as runes/2, the same estimate the chat context budget uses.
const DefaultChunkTokens = 800

// separators is the split hierarchy, coarsest first. Splitting prefers
// paragraph breaks over lines over sentences and falls back to a hard
// rune cut when no separator helps.
var separators = []string{"\n\n", "\n", ".", "!", "?", ",", " "}

// sectionRe matches section headings such as "Section 3.8" in page text.
var sectionRe = regexp.MustCompile(`Section\s+(\d+[\.\d]*)`)

// SectionUnknown is recorded when a page carries no section heading.
const SectionUnknown = "unknown"

// Chunk is one indexable unit of manual text with its provenance.
type Chunk struct {
	ID      string
	Text    string
	Page    int
	Section string
	Seq     int
}

// Chunker splits manual pages into chunks bounded by a token budget.
// Chunks never span pages, so each chunk cites exactly one page.
type Chunker struct {
	budget int
}

// NewChunker creates a Chunker. A non-positive budget selects
// DefaultChunkTokens.
func NewChunker(budgetTokens int) *Chunker {
	if budgetTokens <= 0 {
		budgetTokens = DefaultChunkTokens
	}
	return &Chunker{budget: budgetTokens}
}

// Split chunks the given pages in order. Blank pages produce no chunks.
// Chunk IDs derive from page number and sequence, so rebuilding from an
// identical corpus yields identical IDs.
func (c *Chunker) Split(pages []Page) []Chunk {
	var chunks []Chunk
	for _, p := range pages {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		// The heading is extracted once per page. Every chunk of the
		// page inherits it, including chunks cut after the heading text
		// itself ended up in an earlier chunk.
		section := pageSection(text)
		for seq, piece := range c.split(text, separators) {
			chunks = append(chunks, Chunk{
				ID:      chunkID(p.Number, seq),
				Text:    piece,
				Page:    p.Number,
				Section: section,
				Seq:     seq,
			})
		}
	}
	return chunks
}

// pageSection returns the first section heading on a page, or
// SectionUnknown when the page has none.
func pageSection(text string) string {
	m := sectionRe.FindStringSubmatch(text)
	if m == nil {
		return SectionUnknown
	}
	return m[1]
}

func chunkID(page, seq int) string {
	return fmt.Sprintf("manual:p%03d:c%02d", page, seq)
}

// estimateTokens provides a rough token count.
// Uses rune count divided by 2 as a conservative estimate that works
// for both prose and the symbol-heavy table text in the manual.
func estimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 2
}

// split recursively divides text along the separator hierarchy until
// every piece fits the budget. Pieces are merged back greedily so chunks
// stay close to the budget instead of fragmenting at every separator.
func (c *Chunker) split(text string, seps []string) []string {
	if estimateTokens(text) <= c.budget {
		return []string{text}
	}
	if len(seps) == 0 {
		return c.hardSplit(text)
	}

	sep, rest := seps[0], seps[1:]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return c.split(text, rest)
	}
	// Keep the separator attached to the preceding part so sentence
	// punctuation survives the cut.
	for i := range len(parts) - 1 {
		parts[i] += sep
	}

	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s == "" {
			return
		}
		if estimateTokens(s) <= c.budget {
			out = append(out, s)
			return
		}
		out = append(out, c.split(s, rest)...)
	}
	for _, part := range parts {
		if cur.Len() > 0 && estimateTokens(cur.String()+part) > c.budget {
			flush()
		}
		cur.WriteString(part)
	}
	flush()
	return out
}

// hardSplit cuts text into budget-sized rune windows. Last resort for
// text with no usable separator.
func (c *Chunker) hardSplit(text string) []string {
	window := c.budget * 2 // budget counts tokens, the window counts runes
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += window {
		piece := strings.TrimSpace(string(runes[start:min(start+window, len(runes))]))
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
