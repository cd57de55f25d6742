// Package tools implements the quarantine toolset the agent calls to
// answer import questions.
//
// # Tools
//
//   - import_lookup: the main lookup pipeline. Resolves a commodity and
//     origin state against the structured register, falls back to
//     semantic search over the manual text when the structured result is
//     absent or incomplete, and renders the fixed four-section response
//     with citations. Structured findings win on overlap.
//   - pest_status: direct Table 1 presence check for a pest in a state.
//   - manual_search: raw semantic search over the indexed manual text.
//
// # Result envelope
//
// Every tool returns a Result envelope. Business failures (unknown pest,
// missing argument) travel inside the envelope with StatusError and a
// nil Go error, so the model can read the failure and correct its next
// call. A non-nil Go error is reserved for infrastructure failures.
//
// # Events
//
// Handlers are registered through WithEvents, which emits tool lifecycle
// events to an Emitter carried in the context. Interfaces that stream
// progress (the TUI) install an Emitter; everything else pays nothing.
package tools
