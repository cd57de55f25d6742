package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"

	"github.com/gatehouse0/gatehouse/internal/session"
	"github.com/gatehouse0/gatehouse/internal/testutil"
)

// fakeSessionStore implements SessionStore in memory.
type fakeSessionStore struct {
	sessions map[uuid.UUID]*session.Session
	messages map[uuid.UUID][]*session.Message
	failWith error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[uuid.UUID]*session.Session),
		messages: make(map[uuid.UUID][]*session.Message),
	}
}

func (f *fakeSessionStore) Create(_ context.Context, title string) (*session.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	s := &session.Session{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessionStore) Session(_ context.Context, id uuid.UUID) (*session.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, session.ErrSessionNotFound)
	}
	return s, nil
}

func (f *fakeSessionStore) Sessions(_ context.Context, _, _ int32) ([]*session.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*session.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionStore) Messages(_ context.Context, id uuid.UUID, _, _ int32) ([]*session.Message, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.messages[id], nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, session.ErrSessionNotFound)
	}
	delete(f.sessions, id)
	return nil
}

func newTestHandler(store SessionStore) *sessionHandler {
	return &sessionHandler{store: store, logger: testutil.DiscardLogger()}
}

func TestSessionHandler_Create(t *testing.T) {
	store := newFakeSessionStore()
	h := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions",
		strings.NewReader(`{"title":"Apples from Victoria"}`))
	h.createSession(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var got sessionJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.Title != "Apples from Victoria" {
		t.Errorf("title = %q", got.Title)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("id is not a UUID: %q", got.ID)
	}
}

func TestSessionHandler_Create_DefaultTitle(t *testing.T) {
	h := newTestHandler(newFakeSessionStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{}`))
	h.createSession(rec, req)

	var got sessionJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.Title != "New conversation" {
		t.Errorf("title = %q, want default", got.Title)
	}
}

func TestSessionHandler_Create_BadBody(t *testing.T) {
	h := newTestHandler(newFakeSessionStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{broken`))
	h.createSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSessionHandler_Get(t *testing.T) {
	store := newFakeSessionStore()
	s, _ := store.Create(context.Background(), "Grape phylloxera check")
	h := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+s.ID.String(), nil)
	req.SetPathValue("id", s.ID.String())
	h.getSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var got sessionJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.ID != s.ID.String() {
		t.Errorf("id = %q, want %q", got.ID, s.ID)
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	h := newTestHandler(newFakeSessionStore())
	id := uuid.New().String()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id, nil)
	req.SetPathValue("id", id)
	h.getSession(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "session_not_found") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestSessionHandler_Get_InvalidID(t *testing.T) {
	h := newTestHandler(newFakeSessionStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	h.getSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSessionHandler_List(t *testing.T) {
	store := newFakeSessionStore()
	_, _ = store.Create(context.Background(), "first")
	_, _ = store.Create(context.Background(), "second")
	h := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	h.listSessions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got struct {
		Sessions []sessionJSON `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(got.Sessions) != 2 {
		t.Errorf("sessions = %d, want 2", len(got.Sessions))
	}
}

func TestSessionHandler_Messages(t *testing.T) {
	store := newFakeSessionStore()
	s, _ := store.Create(context.Background(), "transcript")
	store.messages[s.ID] = []*session.Message{
		{
			ID:             uuid.New(),
			SessionID:      s.ID,
			Role:           session.RoleUser,
			Content:        []*ai.Part{ai.NewTextPart("Can I bring apples from Victoria?")},
			SequenceNumber: 1,
			CreatedAt:      time.Now(),
		},
	}
	h := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+s.ID.String()+"/messages", nil)
	req.SetPathValue("id", s.ID.String())
	h.getSessionMessages(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Messages []messageJSON `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(got.Messages))
	}
	if got.Messages[0].Text != "Can I bring apples from Victoria?" {
		t.Errorf("text = %q", got.Messages[0].Text)
	}
	if got.Messages[0].Role != session.RoleUser {
		t.Errorf("role = %q", got.Messages[0].Role)
	}
}

func TestSessionHandler_Messages_MissingSession(t *testing.T) {
	h := newTestHandler(newFakeSessionStore())
	id := uuid.New().String()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/messages", nil)
	req.SetPathValue("id", id)
	h.getSessionMessages(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	store := newFakeSessionStore()
	s, _ := store.Create(context.Background(), "doomed")
	h := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+s.ID.String(), nil)
	req.SetPathValue("id", s.ID.String())
	h.deleteSession(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if _, ok := store.sessions[s.ID]; ok {
		t.Error("session should be gone")
	}
}

func TestQueryInt32(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&offset=junk", nil)

	if got := queryInt32(req, "limit", 50); got != 25 {
		t.Errorf("limit = %d, want 25", got)
	}
	if got := queryInt32(req, "offset", 0); got != 0 {
		t.Errorf("garbage offset = %d, want default 0", got)
	}
	if got := queryInt32(req, "absent", 7); got != 7 {
		t.Errorf("absent = %d, want default 7", got)
	}
}
