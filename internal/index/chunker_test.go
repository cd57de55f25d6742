package index

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestChunkerKeepsSmallPageWhole(t *testing.T) {
	t.Parallel()

	page := Page{Number: 5, Text: "Section 1.1 Purpose\n\nShort page body.\n"}
	chunks := NewChunker(0).Split([]Page{page})

	if len(chunks) != 1 {
		t.Fatalf("Split() produced %d chunks, want 1", len(chunks))
	}
	got := chunks[0]
	if got.ID != "manual:p005:c00" {
		t.Errorf("ID = %q, want %q", got.ID, "manual:p005:c00")
	}
	if got.Page != 5 || got.Seq != 0 {
		t.Errorf("Page/Seq = %d/%d, want 5/0", got.Page, got.Seq)
	}
	if got.Section != "1.1" {
		t.Errorf("Section = %q, want %q", got.Section, "1.1")
	}
	if want := strings.TrimSpace(page.Text); got.Text != want {
		t.Errorf("Text = %q, want %q", got.Text, want)
	}
}

func TestChunkerRespectsBudget(t *testing.T) {
	t.Parallel()

	var paras []string
	for i := range 12 {
		paras = append(paras, fmt.Sprintf("clause %d: %s", i, strings.Repeat("alpha beta ", 8)))
	}
	page := Page{Number: 38, Text: strings.Join(paras, "\n\n")}

	const budget = 50
	chunks := NewChunker(budget).Split([]Page{page})

	if len(chunks) < 2 {
		t.Fatalf("Split() produced %d chunks, want several", len(chunks))
	}
	for i, ch := range chunks {
		if got := estimateTokens(ch.Text); got > budget {
			t.Errorf("chunk %s holds %d tokens, want <= %d", ch.ID, got, budget)
		}
		if ch.Page != 38 {
			t.Errorf("chunk %s cites page %d, want 38", ch.ID, ch.Page)
		}
		if ch.Seq != i {
			t.Errorf("chunk %d has Seq = %d, want %d", i, ch.Seq, i)
		}
	}
}

func TestChunkerDeterministic(t *testing.T) {
	t.Parallel()

	pages := Pages()
	first := NewChunker(0).Split(pages)
	second := NewChunker(0).Split(pages)

	if !slices.Equal(first, second) {
		t.Error("Split() is not deterministic for identical input")
	}
}

func TestChunkerSectionInheritedAcrossChunks(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("Section 3.8 Virus host material\n\n")
	for i := range 10 {
		fmt.Fprintf(&b, "Condition %d applies to host material from the named origins. %s\n\n",
			i, strings.Repeat("detail ", 10))
	}
	page := Page{Number: 50, Text: b.String()}

	chunks := NewChunker(60).Split([]Page{page})
	if len(chunks) < 2 {
		t.Fatalf("Split() produced %d chunks, want several", len(chunks))
	}
	for _, ch := range chunks {
		if ch.Section != "3.8" {
			t.Errorf("chunk %s has Section = %q, want %q", ch.ID, ch.Section, "3.8")
		}
	}
}

func TestChunkerSkipsBlankPages(t *testing.T) {
	t.Parallel()

	pages := []Page{
		{Number: 1, Text: "  \n\t "},
		{Number: 2, Text: "Body text."},
	}
	chunks := NewChunker(0).Split(pages)

	if len(chunks) != 1 {
		t.Fatalf("Split() produced %d chunks, want 1", len(chunks))
	}
	if chunks[0].Page != 2 {
		t.Errorf("chunk cites page %d, want 2", chunks[0].Page)
	}
}

func TestChunkerChunksNeverSpanPages(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Each consignment must be certified before dispatch. ", 20)
	pages := []Page{
		{Number: 1, Text: long},
		{Number: 2, Text: long},
	}
	chunks := NewChunker(60).Split(pages)

	seen := make(map[int]bool)
	for _, ch := range chunks {
		seen[ch.Page] = true
		if prefix := fmt.Sprintf("manual:p%03d", ch.Page); !strings.HasPrefix(ch.ID, prefix) {
			t.Errorf("chunk ID %q does not carry page prefix %q", ch.ID, prefix)
		}
	}
	if !seen[1] || !seen[2] {
		t.Errorf("chunks cover pages %v, want both 1 and 2", seen)
	}
}

func TestChunkerHardSplitsUnbrokenText(t *testing.T) {
	t.Parallel()

	const budget = 50
	page := Page{Number: 7, Text: strings.Repeat("x", 450)}
	chunks := NewChunker(budget).Split([]Page{page})

	if len(chunks) != 5 {
		t.Fatalf("Split() produced %d chunks, want 5", len(chunks))
	}
	for _, ch := range chunks {
		if got := estimateTokens(ch.Text); got > budget {
			t.Errorf("chunk %s holds %d tokens, want <= %d", ch.ID, got, budget)
		}
	}
}

func TestPageSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"heading at top", "Section 3.8 Tomato yellow leaf curl virus host material", "3.8"},
		{"two part number", "Section 3.10 Lupin anthracnose host seed", "3.10"},
		{"integer section", "Section 12 General provisions", "12"},
		{"mid page reference", "Conditions are given in Section 2.2 of this manual.", "2.2"},
		{"first heading wins", "Section 2.2 Notification\n\nSection 2.3 Inspection", "2.2"},
		{"no heading", "Appendix 1 Table 1 Pest and disease name key", SectionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pageSection(tt.text); got != tt.want {
				t.Errorf("pageSection(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "abcd", 2},
		{"multibyte runes", "héllo", 2},
		{"odd length rounds down", "abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := estimateTokens(tt.text); got != tt.want {
				t.Errorf("estimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
