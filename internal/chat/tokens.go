package chat

import (
	"slices"
	"unicode/utf8"

	"github.com/firebase/genkit/go/ai"
)

// TokenBudget bounds how much conversation history is replayed into the
// prompt on each turn.
type TokenBudget struct {
	MaxHistoryTokens int // Maximum tokens of history per request
}

// DefaultTokenBudget returns sensible defaults for typical context windows.
func DefaultTokenBudget() TokenBudget {
	return TokenBudget{
		MaxHistoryTokens: 8000,
	}
}

// estimateTokens approximates the token count of text.
//
// Uses runes/2 as a rough middle ground: English averages ~4 characters
// per token, CJK averages ~1 token per character. This intentionally
// overestimates for English and underestimates for CJK, which is
// acceptable for budget enforcement (we only need to avoid blowing the
// context window, not bill by token). Non-empty text always costs at
// least 1 token.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := utf8.RuneCountInString(text) / 2
	if tokens == 0 {
		return 1
	}
	return tokens
}

// estimateMessagesTokens sums the estimated token cost of all text parts.
func estimateMessagesTokens(msgs []*ai.Message) int {
	total := 0
	for _, msg := range msgs {
		for _, part := range msg.Content {
			total += estimateTokens(part.Text)
		}
	}
	return total
}

// truncateHistory drops history messages until the estimated total fits
// within maxTokens. Messages are considered newest-first so that recent
// context survives; an oversized message in the middle is skipped rather
// than cutting off everything older than it. A leading system message is
// always retained (its cost is charged against the budget first), and
// chronological order is preserved in the result.
func (a *Agent) truncateHistory(msgs []*ai.Message, maxTokens int) []*ai.Message {
	if len(msgs) == 0 {
		return msgs
	}

	total := estimateMessagesTokens(msgs)
	if total <= maxTokens {
		return msgs
	}

	var system *ai.Message
	rest := msgs
	if msgs[0].Role == ai.RoleSystem {
		system = msgs[0]
		rest = msgs[1:]
	}

	remaining := maxTokens
	if system != nil {
		remaining -= estimateMessagesTokens([]*ai.Message{system})
	}

	kept := make([]*ai.Message, 0, len(rest))
	for i := len(rest) - 1; i >= 0; i-- {
		cost := estimateMessagesTokens([]*ai.Message{rest[i]})
		if cost > remaining {
			continue
		}
		kept = append(kept, rest[i])
		remaining -= cost
	}
	slices.Reverse(kept)

	result := kept
	if system != nil {
		result = append([]*ai.Message{system}, kept...)
	}

	a.logger.Debug("truncated history to fit token budget",
		"original_count", len(msgs),
		"kept_count", len(result),
		"original_tokens", total,
		"budget", maxTokens,
	)

	return result
}
