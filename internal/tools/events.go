package tools

import "github.com/firebase/genkit/go/ai"

// WithEvents decorates a typed tool handler with lifecycle notifications
// so streaming frontends can show which tool the agent is running. The
// generic signature matches genkit.DefineTool directly.
//
// An Emitter is looked up in the request context on every call:
// OnToolStart fires before the handler, then OnToolComplete or
// OnToolError depending on the returned error. A Result carrying a
// domain failure with a nil error counts as complete. With no emitter
// in context the handler runs undecorated.
func WithEvents[In, Out any](name string, handler func(*ai.ToolContext, In) (Out, error)) func(*ai.ToolContext, In) (Out, error) {
	return func(toolCtx *ai.ToolContext, input In) (Out, error) {
		emitter := EmitterFromContext(toolCtx.Context)
		if emitter == nil {
			return handler(toolCtx, input)
		}

		emitter.OnToolStart(name)
		out, err := handler(toolCtx, input)
		if err != nil {
			emitter.OnToolError(name)
		} else {
			emitter.OnToolComplete(name)
		}
		return out, err
	}
}
