// Package session provides conversation history persistence with PostgreSQL.
//
// A session represents one conversation with the quarantine assistant:
// ordered messages exchanged between user and model. The [Store] handles
// persistence; conversation logic lives in the chat agent.
//
// Key operations:
//
//   - Session lifecycle: [Store.Create], [Store.Session], [Store.Sessions], [Store.Delete]
//   - Message persistence: [Store.AddMessages], [Store.Messages]
//   - Agent integration: [Store.History], [Store.AppendMessages]
//
// # Transaction Safety
//
// [Store.AddMessages] uses SELECT ... FOR UPDATE to lock the session row,
// preventing race conditions on sequence numbers during concurrent writes.
// If any step fails, the entire transaction rolls back.
//
// # Local State
//
// [SaveCurrentSessionID] and [LoadCurrentSessionID] persist the active
// session to ~/.gatehouse/current_session using atomic writes (temp file +
// rename) guarded by a [github.com/gofrs/flock] file lock.
package session

import (
	"errors"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"
)

// TitleMaxLength is the maximum length in runes for a session title.
// Longer titles are truncated with an ellipsis.
const TitleMaxLength = 100

// Role constants define valid message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ErrSessionNotFound indicates the requested session does not exist.
// Check with errors.Is().
var ErrSessionNotFound = errors.New("session not found")

// Session represents one conversation with the assistant.
type Session struct {
	ID           uuid.UUID
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// Message is a single conversation message. Content holds Genkit's ai.Part
// slice, serialized as JSONB in the database so tool requests and responses
// survive round-trips intact.
type Message struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	Role           string
	Content        []*ai.Part
	SequenceNumber int
	CreatedAt      time.Time
}

// Text returns the concatenated text parts of the message.
func (m *Message) Text() string {
	var out string
	for _, p := range m.Content {
		if p != nil && p.IsText() {
			out += p.Text
		}
	}
	return out
}
