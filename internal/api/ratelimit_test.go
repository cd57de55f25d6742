package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatehouse0/gatehouse/internal/testutil"
)

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	rl := newRateLimiter(1.0, 3)

	for i := range 3 {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}
}

func TestRateLimiter_PerIPIsolation(t *testing.T) {
	rl := newRateLimiter(1.0, 1)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first ip should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("first ip should now be exhausted")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second ip has its own bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := newRateLimiter(1.0, 2)
	mw := rateLimitMiddleware(rl, false, testutil.DiscardLogger())

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var lastCode int
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
		req.RemoteAddr = "192.0.2.7:54321"
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", lastCode)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.1:4242",
			want:       "192.0.2.1",
		},
		{
			name:       "untrusted proxy ignores headers",
			remoteAddr: "192.0.2.1:4242",
			realIP:     "203.0.113.9",
			want:       "192.0.2.1",
		},
		{
			name:       "trusted proxy uses x-real-ip",
			remoteAddr: "10.0.0.1:80",
			realIP:     "203.0.113.9",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "trusted proxy falls back to first forwarded",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.9, 10.0.0.1",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "garbage header falls through to remote addr",
			remoteAddr: "10.0.0.1:80",
			realIP:     "not-an-ip",
			trustProxy: true,
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := clientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiter_CleanupRemovesStale(t *testing.T) {
	rl := newRateLimiter(1.0, 1)

	for i := range 5 {
		rl.allow(fmt.Sprintf("10.0.0.%d", i))
	}
	if len(rl.visitors) != 5 {
		t.Fatalf("visitors = %d, want 5", len(rl.visitors))
	}

	// Age every entry past the stale threshold and force a cleanup pass.
	rl.mu.Lock()
	for _, v := range rl.visitors {
		v.lastSeen = v.lastSeen.Add(-staleVisitorAt - sweepEvery)
	}
	rl.lastSweep = rl.lastSweep.Add(-sweepEvery - 1)
	rl.mu.Unlock()

	rl.allow("10.0.1.1")

	if len(rl.visitors) != 1 {
		t.Errorf("visitors after cleanup = %d, want 1", len(rl.visitors))
	}
}
