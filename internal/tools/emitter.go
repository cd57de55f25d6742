package tools

import (
	"context"
)

// emitterKey is an unexported context key type; the empty struct costs
// nothing to allocate.
type emitterKey struct{}

// Emitter receives tool lifecycle events. The interface carries only the
// tool name; presentation (spinners, icons, wording) belongs to whichever
// surface registered the emitter.
//
// Usage:
//  1. A surface creates an emitter bound to its output channel
//  2. The surface stores it in the request context via ContextWithEmitter
//  3. WithEvents-wrapped tools retrieve it via EmitterFromContext
//  4. The wrapper calls OnToolStart/Complete/Error around execution
type Emitter interface {
	// OnToolStart signals that a tool has started execution.
	OnToolStart(name string)

	// OnToolComplete signals that a tool completed successfully.
	OnToolComplete(name string)

	// OnToolError signals that a tool execution failed.
	OnToolError(name string)
}

// EmitterFromContext retrieves the Emitter from context. Returns nil when
// none is set; callers treat that as "emit nothing".
func EmitterFromContext(ctx context.Context) Emitter {
	emitter, _ := ctx.Value(emitterKey{}).(Emitter)
	return emitter
}

// ContextWithEmitter stores an Emitter in the context for the duration of
// one request.
func ContextWithEmitter(ctx context.Context, emitter Emitter) context.Context {
	return context.WithValue(ctx, emitterKey{}, emitter)
}
