package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse0/gatehouse/internal/session"
)

// SessionStore is the slice of *session.Store the HTTP layer consumes.
// Defined here so handlers can be unit-tested against a fake.
type SessionStore interface {
	Create(ctx context.Context, title string) (*session.Session, error)
	Session(ctx context.Context, id uuid.UUID) (*session.Session, error)
	Sessions(ctx context.Context, limit, offset int32) ([]*session.Session, error)
	Messages(ctx context.Context, sessionID uuid.UUID, limit, offset int32) ([]*session.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionHandler struct {
	store  SessionStore
	logger *slog.Logger
}

// sessionJSON is the wire representation of a session.
type sessionJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MessageCount int       `json:"messageCount"`
}

// messageJSON is the wire representation of a transcript message. Only the
// flattened text is exposed; tool request/response parts stay internal.
type messageJSON struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"createdAt"`
}

func toSessionJSON(s *session.Session) sessionJSON {
	return sessionJSON{
		ID:           s.ID.String(),
		Title:        s.Title,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		MessageCount: s.MessageCount,
	}
}

// listSessions handles GET /api/v1/sessions?limit=&offset=
func (h *sessionHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", 50)
	offset := queryInt32(r, "offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := h.store.Sessions(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("listing sessions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "listing sessions failed", h.logger)
		return
	}

	out := make([]sessionJSON, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionJSON(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out}, h.logger)
}

// createSession handles POST /api/v1/sessions with body {"title": "..."}.
func (h *sessionHandler) createSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}
	if body.Title == "" {
		body.Title = "New conversation"
	}

	s, err := h.store.Create(r.Context(), body.Title)
	if err != nil {
		h.logger.Error("creating session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "creating session failed", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionJSON(s), h.logger)
}

// getSession handles GET /api/v1/sessions/{id}.
func (h *sessionHandler) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	s, err := h.store.Session(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "loading session")
		return
	}

	writeJSON(w, http.StatusOK, toSessionJSON(s), h.logger)
}

// getSessionMessages handles GET /api/v1/sessions/{id}/messages?limit=&offset=
func (h *sessionHandler) getSessionMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	limit := queryInt32(r, "limit", 200)
	offset := queryInt32(r, "offset", 0)
	if limit < 1 || limit > 500 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	// Confirm the session exists so an empty transcript and a missing
	// session are distinguishable.
	if _, err := h.store.Session(r.Context(), id); err != nil {
		h.respondStoreError(w, err, "loading session")
		return
	}

	messages, err := h.store.Messages(r.Context(), id, limit, offset)
	if err != nil {
		h.respondStoreError(w, err, "loading messages")
		return
	}

	out := make([]messageJSON, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageJSON{
			ID:        m.ID.String(),
			Role:      m.Role,
			Text:      m.Text(),
			Sequence:  m.SequenceNumber,
			CreatedAt: m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out}, h.logger)
}

// deleteSession handles DELETE /api/v1/sessions/{id}.
func (h *sessionHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, "deleting session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path value, writing a 400 on failure.
func (h *sessionHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// respondStoreError maps store errors to HTTP statuses.
func (h *sessionHandler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, session.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found", "session not found", h.logger)
		return
	}
	h.logger.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", op+" failed", h.logger)
}

// queryInt32 parses an int32 query parameter, falling back to def on
// absence or garbage.
func queryInt32(r *http.Request, key string, def int32) int32 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}
