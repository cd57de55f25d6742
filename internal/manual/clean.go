package manual

// clean.go normalizes raw table extracts from the PQM PDF. The extraction
// step (an external pdfplumber script) dumps each page's table as a grid of
// cells; cleaning collapses whitespace, folds typographic quotes, dashes and
// ellipses to ASCII, locates the header row, and converts the grid into
// keyed rows ready for ParseCommodityRows.

import "strings"

// RawPage is one page of a raw table extract: the page number in the manual
// and the table grid found on it.
type RawPage struct {
	Page int        `json:"page"`
	Rows [][]string `json:"rows"`
}

// CleanedTable is the normalized form of a scraped table.
type CleanedTable struct {
	Name     string              `json:"name"`
	Headers  []string            `json:"headers"`
	Rows     []map[string]string `json:"rows"`
	Metadata map[string]string   `json:"metadata"`
}

// typographicReplacer folds smart punctuation to ASCII equivalents.
var typographicReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"–", "-",
	"—", "-",
	"…", "...",
)

// CleanText collapses whitespace and folds typographic characters.
func CleanText(text string) string {
	text = typographicReplacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// headerMarker identifies the header row of an import requirement table.
const headerMarker = "import requirement"

func extractHeaders(row []string) []string {
	var out []string
	for _, cell := range row {
		if cell == "" {
			continue
		}
		out = append(out, CleanText(cell))
	}
	return out
}

func cleanRow(row, headers []string) map[string]string {
	out := make(map[string]string)
	for i, cell := range row {
		if i >= len(headers) || cell == "" {
			continue
		}
		if v := CleanText(cell); v != "" {
			out[headers[i]] = v
		}
	}
	return out
}

// isHeaderRow reports whether a cleaned row is just the header row mapped
// onto itself.
func isHeaderRow(row map[string]string) bool {
	if len(row) == 0 {
		return false
	}
	for k, v := range row {
		if k != v {
			return false
		}
	}
	return true
}

// CleanTables normalizes raw page extracts into a single keyed table.
// The header row is the first row in the top two rows of a page that
// mentions an import requirement column; failing that, the first row of the
// first non-empty page. Empty rows and repeated header rows are dropped.
func CleanTables(name string, pages []RawPage) CleanedTable {
	var headers []string
	var rows []map[string]string

	for _, page := range pages {
		if len(page.Rows) == 0 {
			continue
		}

		limit := min(2, len(page.Rows))
		for _, row := range page.Rows[:limit] {
			if rowMentions(row, headerMarker) {
				headers = extractHeaders(row)
				break
			}
		}
		if len(headers) == 0 {
			headers = extractHeaders(page.Rows[0])
		}

		for _, row := range page.Rows {
			if len(headers) == 0 {
				break
			}
			cleaned := cleanRow(row, headers)
			if len(cleaned) == 0 || isHeaderRow(cleaned) {
				continue
			}
			rows = append(rows, cleaned)
		}
	}

	return CleanedTable{
		Name:    name,
		Headers: headers,
		Rows:    rows,
		Metadata: map[string]string{
			"source": ManualSource,
		},
	}
}

func rowMentions(row []string, marker string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), marker) {
			return true
		}
	}
	return false
}
