package manual

import "testing"

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "whitespace collapse", input: "  table \n grapes \t ", want: "table grapes"},
		{name: "smart quotes", input: "“certified” and ‘treated’", want: `"certified" and 'treated'`},
		{name: "dashes", input: "cold–treatment — 14 days", want: "cold-treatment - 14 days"},
		{name: "ellipsis", input: "see section 3…", want: "see section 3..."},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanTables(t *testing.T) {
	t.Parallel()

	pages := []RawPage{
		{
			Page: 83,
			Rows: [][]string{
				{"Table 3 — continued", "", ""},
				{"Commodity", "Import Requirement(s)", "Pest Key"},
				{"Grapes – table", "IR 1, IR 3", "QFF, GP"},
				{"", "", ""},
				{"Potatoes", "IR 4", "PCN"},
			},
		},
		{
			Page: 84,
			Rows: [][]string{
				{"Commodity", "Import Requirement(s)", "Pest Key"},
				{"Timber", "IR 12", "EHB"},
			},
		},
	}

	table := CleanTables("table_3", pages)

	wantHeaders := []string{"Commodity", "Import Requirement(s)", "Pest Key"}
	if len(table.Headers) != len(wantHeaders) {
		t.Fatalf("Headers = %v, want %v", table.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if table.Headers[i] != h {
			t.Errorf("header %d = %q, want %q", i, table.Headers[i], h)
		}
	}

	// The banner row survives (it has content under the first header), the
	// empty row and the repeated header rows are dropped.
	if len(table.Rows) != 4 {
		t.Fatalf("Rows len = %d, want 4: %v", len(table.Rows), table.Rows)
	}
	if got := table.Rows[1]["Commodity"]; got != "Grapes - table" {
		t.Errorf("row 1 commodity = %q, want dash folded", got)
	}
	if got := table.Rows[2]["Import Requirement(s)"]; got != "IR 4" {
		t.Errorf("row 2 requirement = %q, want IR 4", got)
	}
	if got := table.Rows[3]["Commodity"]; got != "Timber" {
		t.Errorf("row 3 commodity = %q, want Timber", got)
	}
	if table.Metadata["source"] != ManualSource {
		t.Errorf("metadata source = %q, want %q", table.Metadata["source"], ManualSource)
	}
}

func TestCleanTablesHeaderFallback(t *testing.T) {
	t.Parallel()

	// No row mentions an import requirement column; the first row becomes
	// the header.
	pages := []RawPage{
		{
			Page: 90,
			Rows: [][]string{
				{"Name", "Zone"},
				{"Yarra Valley", "PIZ"},
			},
		},
	}

	table := CleanTables("zones", pages)
	if len(table.Headers) != 2 || table.Headers[0] != "Name" {
		t.Fatalf("Headers = %v, want fallback to first row", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0]["Zone"] != "PIZ" {
		t.Fatalf("Rows = %v, want single data row", table.Rows)
	}
}

func TestParseCommodityRows(t *testing.T) {
	t.Parallel()

	table := CleanedTable{
		Name:    "table_3",
		Headers: []string{"Commodity", "Type", "Pest Key"},
		Rows: []map[string]string{
			{"Commodity": "Saffron corm", "Type": "plant", "Pest Key": "NS"},
			{"Commodity": "Hazelnut", "Type": "fruit", "Pest Key": "QFF, XYZ"},
			{"Type": "fruit"},
			{"Commodity": "Wasabi", "Pest Key": ""},
		},
	}

	got, skipped, err := ParseCommodityRows(table)
	if err != nil {
		t.Fatalf("ParseCommodityRows() error = %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (row without commodity cell)", skipped)
	}
	if len(got) != 3 {
		t.Fatalf("parsed %d commodities, want 3", len(got))
	}

	if got[0].Name != "saffron corm" || got[0].Type != TypePlant {
		t.Errorf("row 0 = %+v, want saffron corm/plant", got[0])
	}
	if len(got[1].Hosts) != 1 || got[1].Hosts[0] != PestQFF {
		t.Errorf("row 1 hosts = %v, want unknown code XYZ dropped", got[1].Hosts)
	}
	if got[2].Name != "wasabi" || got[2].Type != TypeOther {
		t.Errorf("row 2 = %+v, want wasabi with default type", got[2])
	}
}

func TestParseCommodityRowsNoCommodityColumn(t *testing.T) {
	t.Parallel()

	table := CleanedTable{Name: "bad", Headers: []string{"Name", "Zone"}}
	if _, _, err := ParseCommodityRows(table); err == nil {
		t.Fatal("ParseCommodityRows() accepted a table without a commodity column")
	}
}
