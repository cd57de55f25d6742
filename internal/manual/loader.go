package manual

// loader.go reads raw table extracts from disk and converts cleaned rows
// into host register entries. Operators use this to refresh the commodity
// table from a new manual revision without recompiling: scrape the PDF
// tables, clean them, and load the result alongside the built-in data.

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadCommodityFile reads a raw table extract (the fetch step's tables
// output), cleans it, and parses the host register entries it holds.
// The int is the number of rows skipped for lacking a commodity cell.
// Callers merge the entries via LoadWithCommodities.
func LoadCommodityFile(path string) ([]Commodity, int, error) {
	pages, err := LoadRawTables(path)
	if err != nil {
		return nil, 0, err
	}
	return ParseCommodityRows(CleanTables("host register", pages))
}

// LoadRawTables reads a raw table extract file produced by the PDF scrape
// step: a JSON array of {"page": N, "rows": [[cells]]} objects.
func LoadRawTables(path string) ([]RawPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table extract: %w", err)
	}
	var pages []RawPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parsing table extract %s: %w", path, err)
	}
	return pages, nil
}

// column heading fragments used to identify table columns.
const (
	commodityColumn = "commodity"
	typeColumn      = "type"
	pestColumn      = "pest"
)

// ParseCommodityRows converts cleaned table rows into host register
// entries. The commodity column is required; the type column defaults to
// "other" when absent, and the pest column is split into Table 1 acronyms.
// Rows without a recognisable commodity cell are skipped and counted.
func ParseCommodityRows(table CleanedTable) ([]Commodity, int, error) {
	commodityHeader := findHeader(table.Headers, commodityColumn)
	if commodityHeader == "" {
		return nil, 0, fmt.Errorf("table %q has no commodity column (headers: %s)",
			table.Name, strings.Join(table.Headers, ", "))
	}
	typeHeader := findHeader(table.Headers, typeColumn)
	pestHeader := findHeader(table.Headers, pestColumn)

	var out []Commodity
	skipped := 0
	for _, row := range table.Rows {
		name := strings.TrimSpace(row[commodityHeader])
		if name == "" {
			skipped++
			continue
		}
		c := Commodity{
			Name: strings.ToLower(CleanText(name)),
			Type: parseCommodityType(row[typeHeader]),
		}
		if pestHeader != "" {
			c.Hosts = parsePestCodes(row[pestHeader])
		}
		out = append(out, c)
	}
	return out, skipped, nil
}

func findHeader(headers []string, fragment string) string {
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), fragment) {
			return h
		}
	}
	return ""
}

func parseCommodityType(cell string) CommodityType {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "fruit", "fresh fruit":
		return TypeFruit
	case "plant", "plants", "nursery stock":
		return TypePlant
	case "seed", "seeds":
		return TypeSeed
	default:
		return TypeOther
	}
}

// parsePestCodes extracts Table 1 acronyms from a free-form cell like
// "QFF, MFF" or "GP / QFF".
func parsePestCodes(cell string) []PestCode {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == ' '
	})
	var out []PestCode
	seen := make(map[PestCode]bool)
	for _, f := range fields {
		code := PestCode(strings.ToUpper(strings.TrimSpace(f)))
		if !knownPestCode(code) || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

func knownPestCode(code PestCode) bool {
	for i := range pestTable {
		if pestTable[i].Code == code {
			return true
		}
	}
	return false
}
