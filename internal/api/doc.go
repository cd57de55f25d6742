// Package api implements the JSON HTTP API for the quarantine assistant.
//
// Endpoints:
//
//	GET  /health                        liveness probe
//	GET  /ready                         readiness probe (checks the DB pool)
//	POST /api/v1/ask                    ask a question, answer streamed as SSE
//	GET  /api/v1/sessions               list sessions
//	POST /api/v1/sessions               create a session
//	GET  /api/v1/sessions/{id}          session metadata
//	GET  /api/v1/sessions/{id}/messages session transcript
//	DELETE /api/v1/sessions/{id}        delete a session
//
// The middleware stack, outermost first: recovery, request ID, logging,
// CORS, per-IP rate limiting. Health probes bypass the stack so load
// balancers are never rate limited.
package api
