package chat

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/gatehouse0/gatehouse/internal/session"
)

// Each validation check should fire independently; every case provides
// enough deps to pass the checks before it.
func TestConfig_validate(t *testing.T) {
	t.Parallel()

	// Minimal non-nil stubs: validate() only nil-checks, never dereferences.
	g := new(genkit.Genkit)
	store := new(session.Store)
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"nil genkit", Config{}, "genkit instance is required"},
		{"nil session store", Config{Genkit: g}, "session store is required"},
		{"nil logger", Config{Genkit: g, SessionStore: store}, "logger is required"},
		{
			"empty tools",
			Config{Genkit: g, SessionStore: store, Logger: logger, Tools: []ai.Tool{}},
			"at least one tool is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.validate()
			if err == nil {
				t.Fatal("validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestCloneHistory_PreservesNilAndEmpty(t *testing.T) {
	t.Parallel()

	if got := cloneHistory(nil); got != nil {
		t.Errorf("cloneHistory(nil) = %v, want nil", got)
	}

	got := cloneHistory([]*ai.Message{})
	if got == nil || len(got) != 0 {
		t.Errorf("cloneHistory(empty) = %v, want non-nil empty slice", got)
	}
}

func TestCloneHistory_IndependentOfOriginal(t *testing.T) {
	t.Parallel()

	original := []*ai.Message{
		ai.NewUserMessage(ai.NewTextPart("can I bring apples from VIC?")),
		ai.NewModelMessage(ai.NewTextPart("IR 1 applies.")),
	}
	original[0].Metadata = map[string]any{"turn": 1}

	cloned := cloneHistory(original)

	// Mutate every layer of the original.
	original[0].Content[0].Text = "MUTATED"
	original[0].Metadata["turn"] = 99
	original[1].Content = append(original[1].Content, ai.NewTextPart("extra"))

	if cloned[0].Content[0].Text != "can I bring apples from VIC?" {
		t.Errorf("clone text = %q, leaked mutation from original", cloned[0].Content[0].Text)
	}
	if cloned[0].Metadata["turn"] != 1 {
		t.Errorf("clone metadata = %v, leaked mutation from original", cloned[0].Metadata["turn"])
	}
	if len(cloned[1].Content) != 1 {
		t.Errorf("clone content len = %d, want 1", len(cloned[1].Content))
	}
	if cloned[0].Role != ai.RoleUser || cloned[1].Role != ai.RoleModel {
		t.Error("clone roles do not match original")
	}
}

func TestClonePart(t *testing.T) {
	t.Parallel()

	t.Run("nil part", func(t *testing.T) {
		t.Parallel()
		if got := clonePart(nil); got != nil {
			t.Errorf("clonePart(nil) = %v, want nil", got)
		}
	})

	t.Run("tool request detaches", func(t *testing.T) {
		t.Parallel()
		original := &ai.Part{
			Kind:        ai.PartToolRequest,
			ToolRequest: &ai.ToolRequest{Name: "import_lookup", Input: map[string]any{"commodity": "apples"}},
		}
		cloned := clonePart(original)
		original.ToolRequest.Name = "MUTATED"
		if cloned.ToolRequest.Name != "import_lookup" {
			t.Errorf("clone ToolRequest.Name = %q, leaked mutation", cloned.ToolRequest.Name)
		}
	})

	t.Run("tool response detaches", func(t *testing.T) {
		t.Parallel()
		original := &ai.Part{
			Kind:         ai.PartToolResponse,
			ToolResponse: &ai.ToolResponse{Name: "pest_status", Output: "present"},
		}
		cloned := clonePart(original)
		original.ToolResponse.Name = "MUTATED"
		if cloned.ToolResponse.Name != "pest_status" {
			t.Errorf("clone ToolResponse.Name = %q, leaked mutation", cloned.ToolResponse.Name)
		}
	})

	t.Run("maps detach", func(t *testing.T) {
		t.Parallel()
		original := &ai.Part{
			Kind:     ai.PartText,
			Text:     "hello",
			Custom:   map[string]any{"c": "custom"},
			Metadata: map[string]any{"m": "meta"},
		}
		cloned := clonePart(original)
		original.Custom["c"] = "MUTATED"
		original.Metadata["m"] = "MUTATED"
		if cloned.Custom["c"] != "custom" || cloned.Metadata["m"] != "meta" {
			t.Error("clone maps leaked mutation from original")
		}
	})

	t.Run("resource detaches", func(t *testing.T) {
		t.Parallel()
		original := &ai.Part{Resource: &ai.ResourcePart{Uri: "manual://page/12"}}
		cloned := clonePart(original)
		original.Resource.Uri = "MUTATED"
		if cloned.Resource.Uri != "manual://page/12" {
			t.Errorf("clone Resource.Uri = %q, leaked mutation", cloned.Resource.Uri)
		}
	})
}

func TestClipRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short string untouched", "apples", 10, "apples"},
		{"exact length untouched", "apples", 6, "apples"},
		{"long string clipped", "abcdefghij", 4, "abcd..."},
		{"multibyte counts runes", "日本語のテキスト", 3, "日本語..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := clipRunes(tt.in, tt.n); got != tt.want {
				t.Errorf("clipRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}
