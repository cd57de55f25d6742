package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sessionCols is the standard SELECT column list for scanSession.
const sessionCols = `id, title, created_at, updated_at, message_count`

// Store manages session persistence backed by PostgreSQL.
//
// Store is safe for concurrent use by multiple goroutines: all state lives
// in PostgreSQL, and AddMessages serializes concurrent writers per session
// with a row lock.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a session Store.
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Create creates a new conversation session. An empty title is allowed;
// the chat agent fills it in best-effort after the first exchange.
func (s *Store) Create(ctx context.Context, title string) (*Session, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO sessions (title) VALUES ($1) RETURNING `+sessionCols, title)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.logger.Debug("created session", "id", sess.ID, "title", sess.Title)
	return sess, nil
}

// Session retrieves a session by ID. Returns ErrSessionNotFound when no
// such session exists.
func (s *Store) Session(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sessionCols+` FROM sessions WHERE id = $1`, id)
	sess, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting session %s: %w", id, err)
	}
	return sess, nil
}

// Sessions lists sessions ordered by updated_at descending.
func (s *Store) Sessions(ctx context.Context, limit, offset int32) ([]*Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sessionCols+` FROM sessions
		 ORDER BY updated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// Delete deletes a session and all its messages (ON DELETE CASCADE).
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	s.logger.Debug("deleted session", "id", id)
	return nil
}

// UpdateTitle sets the session title, truncating to TitleMaxLength runes.
func (s *Store) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	runes := []rune(title)
	if len(runes) > TitleMaxLength {
		title = string(runes[:TitleMaxLength])
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET title = $1, updated_at = now() WHERE id = $2`, title, id)
	if err != nil {
		return fmt.Errorf("updating session title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return nil
}

// AddMessages appends messages to a session in one transaction.
//
// The session row is locked (SELECT ... FOR UPDATE) so concurrent writers
// cannot observe the same max sequence number and produce duplicate or
// out-of-order entries.
func (s *Store) AddMessages(ctx context.Context, sessionID uuid.UUID, messages []*Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Debug("transaction rollback", "error", err)
		}
	}()

	var locked uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM sessions WHERE id = $1 FOR UPDATE`, sessionID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	if err != nil {
		return fmt.Errorf("locking session: %w", err)
	}

	var maxSeq int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(sequence_number), 0) FROM session_messages WHERE session_id = $1`,
		sessionID).Scan(&maxSeq)
	if err != nil {
		return fmt.Errorf("reading max sequence number: %w", err)
	}

	for i, msg := range messages {
		contentJSON, err := json.Marshal(msg.Content)
		if err != nil {
			return fmt.Errorf("marshaling message %d content: %w", i, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO session_messages (session_id, role, content, sequence_number)
			 VALUES ($1, $2, $3, $4)`,
			sessionID, msg.Role, contentJSON, maxSeq+i+1); err != nil {
			return fmt.Errorf("inserting message %d: %w", i, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET message_count = $1, updated_at = now() WHERE id = $2`,
		maxSeq+len(messages), sessionID); err != nil {
		return fmt.Errorf("updating session metadata: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("added messages", "session_id", sessionID, "count", len(messages))
	return nil
}

// Messages retrieves messages for a session ordered by sequence number.
func (s *Store) Messages(ctx context.Context, sessionID uuid.UUID, limit, offset int32) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, role, content, sequence_number, created_at
		 FROM session_messages WHERE session_id = $1
		 ORDER BY sequence_number ASC LIMIT $2 OFFSET $3`,
		sessionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("getting messages for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var (
			m           Message
			contentJSON []byte
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &contentJSON,
			&m.SequenceNumber, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if err := json.Unmarshal(contentJSON, &m.Content); err != nil {
			s.logger.Warn("skipping malformed message content",
				"message_id", m.ID, "error", err)
			continue
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("getting messages: %w", err)
	}
	return messages, nil
}

// historyLimit bounds the number of messages replayed into the model
// context. The chat agent applies its own token budget on top.
const historyLimit = 1000

// History loads the conversation history for a session as Genkit messages,
// ready to replay into the prompt. A session with no messages yields an
// empty history, not an error.
func (s *Store) History(ctx context.Context, sessionID uuid.UUID) ([]*ai.Message, error) {
	messages, err := s.Messages(ctx, sessionID, historyLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	aiMessages := make([]*ai.Message, len(messages))
	for i, msg := range messages {
		aiMessages[i] = &ai.Message{
			Role:    roleToAI(msg.Role),
			Content: msg.Content,
		}
	}
	return aiMessages, nil
}

// AppendMessages persists new Genkit messages at the end of a session.
func (s *Store) AppendMessages(ctx context.Context, sessionID uuid.UUID, messages []*ai.Message) error {
	if len(messages) == 0 {
		return nil
	}
	stored := make([]*Message, len(messages))
	for i, msg := range messages {
		stored[i] = &Message{
			Role:    roleFromAI(msg.Role),
			Content: msg.Content,
		}
	}
	return s.AddMessages(ctx, sessionID, stored)
}

// roleToAI maps a stored role string onto Genkit's role type.
func roleToAI(role string) ai.Role {
	if role == RoleAssistant {
		return ai.RoleModel
	}
	return ai.Role(role)
}

// roleFromAI maps Genkit's role type onto the stored role string.
func roleFromAI(role ai.Role) string {
	if role == ai.RoleModel {
		return RoleAssistant
	}
	return string(role)
}

// scanSession scans one sessions row (sessionCols order).
func scanSession(row pgx.Row) (*Session, error) {
	var sess Session
	if err := row.Scan(&sess.ID, &sess.Title, &sess.CreatedAt,
		&sess.UpdatedAt, &sess.MessageCount); err != nil {
		return nil, err
	}
	return &sess, nil
}
