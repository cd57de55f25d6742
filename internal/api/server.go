package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse0/gatehouse/internal/chat"
)

// ServerConfig carries the server's dependencies.
type ServerConfig struct {
	Logger       *slog.Logger
	Agent        *chat.Agent   // Optional: nil disables AI session titles
	Flow         *chat.Flow    // Optional: nil makes /api/v1/ask return an error event
	SessionStore SessionStore  // Required
	Pool         *pgxpool.Pool // Optional: nil disables the /ready database check
	CORSOrigins  []string
	TrustProxy   bool // Trust X-Real-IP/X-Forwarded-For (behind a reverse proxy)
	RateBurst    int  // Per-IP burst size (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a server with all routes and middleware configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.SessionStore == nil {
		return nil, errors.New("session store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sh := &sessionHandler{store: cfg.SessionStore, logger: logger}
	ah := &askHandler{
		flow:     cfg.Flow,
		agent:    cfg.Agent,
		sessions: cfg.SessionStore,
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/ask", ah.ask)

	mux.HandleFunc("GET /api/v1/sessions", sh.listSessions)
	mux.HandleFunc("POST /api/v1/sessions", sh.createSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}", sh.getSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}/messages", sh.getSessionMessages)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", sh.deleteSession)

	// Per-IP token bucket, 1 token/sec refill.
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Middleware stack, outermost first:
	//   Recovery → RequestID → Logging → CORS → RateLimit → Routes
	// RequestID precedes Logging so request_id appears in log attributes.
	// CORS precedes RateLimit so preflight OPTIONS gets proper headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		handler.ServeHTTP(w, r)
	})

	// Health probes bypass the middleware stack so load balancers never
	// trip the rate limiter.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Pool))
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
