package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gatehouse0/gatehouse/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := NewServer(ServerConfig{
		Logger:       testutil.DiscardLogger(),
		SessionStore: newFakeSessionStore(),
		CORSOrigins:  []string{"https://app.example.com"},
		RateBurst:    1000, // keep rate limiting out of unrelated tests
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestNewServer_RequiresSessionStore(t *testing.T) {
	_, err := NewServer(ServerConfig{Logger: testutil.DiscardLogger()})
	if err == nil || !strings.Contains(err.Error(), "session store") {
		t.Errorf("err = %v, want session store requirement", err)
	}
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestServer_Ready_NilPool(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/ready")
	if err != nil {
		t.Fatalf("GET /ready: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestServer_SessionLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	// Create
	resp, err := http.Post(ts.URL+"/api/v1/sessions", "application/json",
		strings.NewReader(`{"title":"import check"}`))
	if err != nil {
		t.Fatalf("POST sessions: %v", err)
	}
	var created sessionJSON
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	// Get
	resp, err = http.Get(ts.URL + "/api/v1/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d", resp.StatusCode)
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/sessions/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	// Gone
	resp, err = http.Get(ts.URL + "/api/v1/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("GET deleted session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get-after-delete status = %d", resp.StatusCode)
	}
}

func TestServer_Ask_MissingQuery(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/ask", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST ask: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	events := testutil.ParseSSEEvents(t, string(body))

	errEvent := testutil.FindEvent(events, EventError)
	if errEvent == nil {
		t.Fatalf("no error event in: %s", body)
	}

	var payload ErrorPayload
	if err := json.Unmarshal([]byte(errEvent.Data), &payload); err != nil {
		t.Fatalf("decoding error payload: %v", err)
	}
	if payload.Code != "missing_query" {
		t.Errorf("code = %q, want missing_query", payload.Code)
	}
}

func TestServer_Ask_BadSessionID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/ask", "application/json",
		strings.NewReader(`{"query":"apples from victoria","sessionId":"nonsense"}`))
	if err != nil {
		t.Fatalf("POST ask: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	events := testutil.ParseSSEEvents(t, string(body))

	errEvent := testutil.FindEvent(events, EventError)
	if errEvent == nil {
		t.Fatalf("no error event in: %s", body)
	}
	if !strings.Contains(errEvent.Data, "invalid_session") {
		t.Errorf("error data = %q", errEvent.Data)
	}
}

// Flow is nil in the test server, so a well-formed question reports the
// capability as unavailable instead of hanging.
func TestServer_Ask_FlowNotConfigured(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/ask", "application/json",
		strings.NewReader(`{"query":"can I import apples from victoria?"}`))
	if err != nil {
		t.Fatalf("POST ask: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	events := testutil.ParseSSEEvents(t, string(body))

	errEvent := testutil.FindEvent(events, EventError)
	if errEvent == nil {
		t.Fatalf("no error event in: %s", body)
	}
	if !strings.Contains(errEvent.Data, "flow_not_configured") {
		t.Errorf("error data = %q", errEvent.Data)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_SecurityHeaders(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/sessions")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}
}
