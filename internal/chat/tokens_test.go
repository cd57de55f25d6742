package chat

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/ai"
)

func newTokenTestAgent() *Agent {
	return &Agent{logger: slog.New(slog.DiscardHandler)}
}

func textMessage(role ai.Role, text string) *ai.Message {
	return &ai.Message{Role: role, Content: []*ai.Part{ai.NewTextPart(text)}}
}

func TestDefaultTokenBudget(t *testing.T) {
	t.Parallel()

	if got := DefaultTokenBudget().MaxHistoryTokens; got != 8000 {
		t.Errorf("MaxHistoryTokens = %d, want 8000", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single rune floors to one", text: "a", want: 1},
		{name: "ascii halves rune count", text: "can I bring apples from VIC?", want: 14},
		{name: "multibyte counts runes not bytes", text: "ürö", want: 1},
		{name: "long text", text: strings.Repeat("x", 100), want: 50},
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

func TestEstimateMessagesTokens(t *testing.T) {
	t.Parallel()

	msgs := []*ai.Message{
		textMessage(ai.RoleUser, strings.Repeat("a", 20)),  // 10 tokens
		textMessage(ai.RoleModel, strings.Repeat("b", 40)), // 20 tokens
		{Role: ai.RoleUser, Content: []*ai.Part{
			ai.NewTextPart(strings.Repeat("c", 8)), // 4 tokens
			ai.NewTextPart(strings.Repeat("d", 8)), // 4 tokens
		}},
	}

	if got := estimateMessagesTokens(msgs); got != 38 {
		t.Errorf("estimateMessagesTokens = %d, want 38", got)
	}
	if got := estimateMessagesTokens(nil); got != 0 {
		t.Errorf("estimateMessagesTokens(nil) = %d, want 0", got)
	}
}

func TestTruncateHistory_UnderBudgetUntouched(t *testing.T) {
	t.Parallel()

	a := newTokenTestAgent()
	msgs := []*ai.Message{
		textMessage(ai.RoleUser, "Can I bring cherries from NSW?"),
		textMessage(ai.RoleModel, "Cherries are a fruit fly host; conditions apply."),
	}

	got := a.truncateHistory(msgs, 1000)
	if len(got) != len(msgs) {
		t.Fatalf("len = %d, want %d", len(got), len(msgs))
	}
	for i := range msgs {
		if got[i] != msgs[i] {
			t.Errorf("message %d was replaced", i)
		}
	}
}

func TestTruncateHistory_DropsOldestFirst(t *testing.T) {
	t.Parallel()

	a := newTokenTestAgent()
	// 10 tokens each (20 ascii runes).
	oldest := textMessage(ai.RoleUser, "apples from VIC ok??")
	middle := textMessage(ai.RoleModel, "IR 1 applies to them")
	newest := textMessage(ai.RoleUser, "and cherries from SA")

	got := a.truncateHistory([]*ai.Message{oldest, middle, newest}, 20)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != middle || got[1] != newest {
		t.Error("want the two newest messages in chronological order")
	}
}

func TestTruncateHistory_KeepsSystemMessage(t *testing.T) {
	t.Parallel()

	a := newTokenTestAgent()
	system := textMessage(ai.RoleSystem, strings.Repeat("s", 20)) // 10 tokens
	old := textMessage(ai.RoleUser, strings.Repeat("o", 20))      // 10 tokens
	recent := textMessage(ai.RoleUser, strings.Repeat("r", 20))   // 10 tokens

	got := a.truncateHistory([]*ai.Message{system, old, recent}, 20)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != system {
		t.Error("system message must survive truncation")
	}
	if got[1] != recent {
		t.Error("want the newest non-system message kept")
	}
}

func TestTruncateHistory_SkipsOversizedMessage(t *testing.T) {
	t.Parallel()

	a := newTokenTestAgent()
	old := textMessage(ai.RoleUser, strings.Repeat("o", 20))    // 10 tokens
	huge := textMessage(ai.RoleModel, strings.Repeat("h", 200)) // 100 tokens
	recent := textMessage(ai.RoleUser, strings.Repeat("r", 20)) // 10 tokens

	got := a.truncateHistory([]*ai.Message{old, huge, recent}, 25)

	// The oversized middle message is skipped; both small ones fit.
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != old || got[1] != recent {
		t.Error("want both small messages kept, oversized one dropped")
	}
}

func TestTruncateHistory_EdgeCases(t *testing.T) {
	t.Parallel()

	a := newTokenTestAgent()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()
		if got := a.truncateHistory(nil, 100); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("zero budget drops everything but system", func(t *testing.T) {
		t.Parallel()
		msgs := []*ai.Message{
			textMessage(ai.RoleSystem, "sys"),
			textMessage(ai.RoleUser, "question"),
		}
		got := a.truncateHistory(msgs, 0)
		if len(got) != 1 || got[0].Role != ai.RoleSystem {
			t.Errorf("got %d messages, want only the system message", len(got))
		}
	})

	t.Run("single message over budget", func(t *testing.T) {
		t.Parallel()
		msgs := []*ai.Message{textMessage(ai.RoleUser, strings.Repeat("q", 100))}
		if got := a.truncateHistory(msgs, 10); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

func TestTruncateHistory_PreservesChronologicalOrder(t *testing.T) {
	t.Parallel()

	a := newTokenTestAgent()
	msgs := make([]*ai.Message, 0, 10)
	for i := range 10 {
		role := ai.RoleUser
		if i%2 == 1 {
			role = ai.RoleModel
		}
		// 10 tokens each.
		msgs = append(msgs, textMessage(role, strings.Repeat(string(rune('a'+i)), 20)))
	}

	got := a.truncateHistory(msgs, 45) // room for 4 of 10

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i, m := range got {
		want := msgs[len(msgs)-4+i]
		if m != want {
			t.Errorf("position %d: messages out of order", i)
		}
	}
}
