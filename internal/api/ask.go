package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gatehouse0/gatehouse/internal/chat"
	"github.com/gatehouse0/gatehouse/internal/session"
)

// SSE event types emitted by POST /api/v1/ask.
const (
	// EventChunk carries partial answer text as the model streams it.
	EventChunk = "chunk"
	// EventDone closes a successful stream with the full answer.
	EventDone = "done"
	// EventError closes a failed stream.
	EventError = "error"
)

// ChunkPayload is the data payload of a chunk event.
type ChunkPayload struct {
	Text string `json:"text"`
}

// DonePayload is the data payload of a done event. SessionID lets the
// client continue the conversation, including when the server created the
// session implicitly.
type DonePayload struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// ErrorPayload is the data payload of an error event.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// askRequest is the POST /api/v1/ask body. SessionID is optional; when
// omitted a session is created and its ID returned in the done event.
type askRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId,omitempty"`
}

type askHandler struct {
	flow     *chat.Flow
	agent    *chat.Agent // optional, used for AI session titles
	sessions SessionStore
	logger   *slog.Logger
}

// ask answers a quarantine question over SSE. Events: zero or more chunk
// events, then exactly one done or error event.
func (h *askHandler) ask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	var req askRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{
			Code:    "invalid_request",
			Message: "invalid request body",
		})
		return
	}

	if req.Query == "" {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{
			Code:    "missing_query",
			Message: "query is required",
		})
		return
	}

	if h.flow == nil {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{
			Code:    "flow_not_configured",
			Message: "question answering is not available",
		})
		return
	}

	ctx := r.Context()

	sessionID := req.SessionID
	if sessionID == "" {
		title := req.Query
		if h.agent != nil {
			title = h.agent.GenerateTitle(ctx, req.Query)
		}
		s, err := h.sessions.Create(ctx, title)
		if err != nil {
			h.logger.Error("creating session for ask", "error", err)
			_ = writeEvent(w, flusher, EventError, ErrorPayload{
				Code:    "internal_error",
				Message: "creating session failed",
			})
			return
		}
		sessionID = s.ID.String()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{
			Code:    "invalid_session",
			Message: "sessionId must be a UUID",
		})
		return
	}

	h.logger.Debug("ask stream started",
		"sessionId", sessionID,
		"request_id", requestIDFromContext(ctx),
	)

	var (
		finalOutput chat.Output
		streamErr   error
	)

	for streamValue, err := range h.flow.Stream(ctx, chat.Input{Query: req.Query, SessionID: sessionID}) {
		select {
		case <-ctx.Done():
			h.logger.Info("client disconnected", "sessionId", sessionID)
			return
		default:
		}

		if err != nil {
			streamErr = err
			break
		}

		if streamValue.Done {
			finalOutput = streamValue.Output
			break
		}

		if streamValue.Stream.Text != "" {
			if err := writeEvent(w, flusher, EventChunk, ChunkPayload{Text: streamValue.Stream.Text}); err != nil {
				// Write failure usually means the connection closed.
				h.logger.Debug("writing chunk", "error", err)
				return
			}
		}
	}

	if streamErr != nil {
		h.writeStreamError(w, flusher, streamErr)
		return
	}

	_ = writeEvent(w, flusher, EventDone, DonePayload{
		Response:  finalOutput.Response,
		SessionID: sessionID,
	})

	h.logger.Info("ask stream completed", "sessionId", sessionID)
}

// writeStreamError maps agent errors to SSE error events.
func (h *askHandler) writeStreamError(w io.Writer, f http.Flusher, err error) {
	code := "stream_error"

	switch {
	case errors.Is(err, chat.ErrInvalidSession):
		code = "invalid_session"
	case errors.Is(err, session.ErrSessionNotFound):
		code = "session_not_found"
	case errors.Is(err, chat.ErrBreakerOpen):
		code = "model_unavailable"
	case errors.Is(err, chat.ErrExecutionFailed):
		code = "execution_failed"
	}

	h.logger.Warn("ask stream failed", "code", code, "error", err)
	_ = writeEvent(w, f, EventError, ErrorPayload{
		Code:    code,
		Message: err.Error(),
	})
}

// writeEvent writes one SSE event: "event: <type>\ndata: <json>\n\n".
func writeEvent[T any](w io.Writer, flusher http.Flusher, event string, data T) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	flusher.Flush()
	return nil
}
