package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/uuid"
)

// Input is the request payload for the chat flow.
type Input struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId"` // Required
}

// Output is the response payload from the chat flow.
type Output struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// StreamChunk carries one piece of partial answer text to the client.
type StreamChunk struct {
	Text string `json:"text"`
}

// FlowName is the flow's registered name in Genkit.
const FlowName = "gatehouse/chat"

// Flow is the Genkit streaming flow wrapping the agent. Exported as a
// type alias so the api package can mount it with genkit.Handler().
type Flow = core.Flow[Input, Output, StreamChunk]

// Genkit panics when a flow name is registered twice, so the flow is a
// package-level singleton guarded by sync.Once.
var (
	flowOnce sync.Once
	flow     *Flow
)

// NewFlow returns the chat flow singleton, defining it on first call.
// Later calls return the existing flow and ignore the arguments.
func NewFlow(g *genkit.Genkit, agent *Agent) *Flow {
	flowOnce.Do(func() {
		flow = agent.DefineFlow(g)
	})
	return flow
}

// ResetFlowForTesting clears the singleton so tests can define the flow
// against a fresh Genkit instance. Not safe for concurrent use.
func ResetFlowForTesting() {
	flowOnce = sync.Once{}
	flow = nil
}

// DefineFlow registers the streaming flow with Genkit. Use NewFlow
// instead of calling this directly; a second registration panics.
//
// The flow is a thin layer over Agent.ExecuteStream. It exists for the
// schema (Input/Output types), Genkit tracing, and the HTTP handler
// mount point; all agent behavior lives in the Agent. Failures are
// wrapped in the package sentinels so HTTP handlers can map them to
// status codes with errors.Is.
func (a *Agent) DefineFlow(g *genkit.Genkit) *Flow {
	handler := func(ctx context.Context, input Input, emit func(context.Context, StreamChunk) error) (Output, error) {
		sessionID, err := uuid.Parse(input.SessionID)
		if err != nil {
			return Output{SessionID: input.SessionID}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
		}

		// When the flow is invoked via Run rather than Stream, emit is
		// nil and the agent runs non-streaming.
		var callback StreamCallback
		if emit != nil {
			callback = func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
				if chunk == nil {
					return nil
				}
				for _, part := range chunk.Content {
					if part.Text == "" {
						continue
					}
					if err := emit(ctx, StreamChunk{Text: part.Text}); err != nil {
						return err
					}
				}
				return nil
			}
		}

		resp, err := a.ExecuteStream(ctx, sessionID, input.Query, callback)
		if err != nil {
			return Output{SessionID: input.SessionID}, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
		}
		return Output{Response: resp.FinalText, SessionID: input.SessionID}, nil
	}

	return genkit.DefineStreamingFlow(g, FlowName, handler)
}
