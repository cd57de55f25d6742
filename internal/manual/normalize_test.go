package manual

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase passthrough", input: "grape", want: "grape"},
		{name: "uppercase", input: "GRAPE", want: "grape"},
		{name: "padding", input: "  grape  ", want: "grape"},
		{name: "internal whitespace collapse", input: "dragon \t fruit", want: "dragon fruit"},
		{name: "plural fold", input: "grapes", want: "grape"},
		{name: "trade name", input: "table grapes", want: "grape"},
		{name: "variety name", input: "valencia oranges", want: "sweet orange"},
		{name: "citrus trade name", input: "clementines", want: "mandarin"},
		{name: "coffee trade name", input: "coffee beans", want: "coffee cherry"},
		{name: "irregular plural", input: "cherries", want: "sweet cherry"},
		{name: "berries", input: "boysenberries", want: "boysenberry"},
		{name: "unknown stays put", input: "unknown fruit x", want: "unknown fruit x"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	// Folding must land on a canonical form in one step; a second pass over
	// the output must be a no-op or the register lookups would be unstable.
	for variant, canonical := range canonicalForms {
		if got := Normalize(canonical); got != canonical {
			t.Errorf("Normalize(%q) = %q; canonical forms must be fixed points (variant %q)", canonical, got, variant)
		}
	}
}
