package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/gatehouse0/gatehouse/internal/chat"
	"github.com/gatehouse0/gatehouse/internal/tools"
)

// streamBufferSize absorbs chunk bursts during UI render delays without
// blocking the producer; ~100 strings is a few KB at typical chunk size.
const streamBufferSize = 100

// streamEvent is a discriminated union carried on a single channel.
// Exactly one field is set per event.
type streamEvent struct {
	text       string      // answer chunk
	output     chat.Output // final output, valid when done
	err        error
	done       bool
	toolStatus string // tool activity line, e.g. "Checking the host register..."
}

// Bubble Tea message types produced by the stream machinery.
type streamStartedMsg struct {
	eventCh <-chan streamEvent
	cancel  context.CancelFunc
}

type streamTextMsg struct{ text string }

type streamDoneMsg struct{ output chat.Output }

type streamErrorMsg struct{ err error }

type streamToolMsg struct{ status string }

// toolActivity gives each quarantine tool a short progress line.
var toolActivity = map[string]string{
	tools.ImportLookupName: "Checking the host register",
	tools.PestStatusName:   "Checking pest presence records",
	tools.ManualSearchName: "Searching the manual",
}

// statusEmitter implements tools.Emitter, relaying tool start/finish
// through the stream event channel so the transcript shows what the
// agent is doing. Sends are best effort: a full channel must never
// block a tool call.
type statusEmitter struct {
	eventCh chan<- streamEvent
}

func (e *statusEmitter) OnToolStart(name string) {
	status, ok := toolActivity[name]
	if !ok {
		status = name
	}
	select {
	case e.eventCh <- streamEvent{toolStatus: status + "..."}:
	default:
	}
}

func (e *statusEmitter) OnToolComplete(_ string) {
	select {
	case e.eventCh <- streamEvent{toolStatus: ""}:
	default:
	}
}

func (e *statusEmitter) OnToolError(_ string) {
	select {
	case e.eventCh <- streamEvent{toolStatus: ""}:
	default:
	}
}

var _ tools.Emitter = (*statusEmitter)(nil)

// startStream launches the flow call in a goroutine and returns its
// event channel. The goroutine exits when the stream completes, errors,
// or the context is canceled; closing the channel signals exit.
func (m *Model) startStream(query string) tea.Cmd {
	return func() tea.Msg {
		eventCh := make(chan streamEvent, streamBufferSize)

		ctx, cancel := context.WithTimeout(m.ctx, streamTimeout)
		ctx = tools.ContextWithEmitter(ctx, &statusEmitter{eventCh: eventCh})

		go func() {
			defer cancel()
			defer close(eventCh)

			// A panic here would lock the interface; convert it to an
			// error event instead.
			defer func() {
				if r := recover(); r != nil {
					slog.Error("stream panic recovered", "panic", r)
					select {
					case eventCh <- streamEvent{err: fmt.Errorf("stream panic: %v", r)}:
					default:
					}
				}
			}()

			var chunkCount int
			for sv, err := range m.chatFlow.Stream(ctx, chat.Input{
				Query:     query,
				SessionID: m.sessionID.String(),
			}) {
				if err != nil {
					select {
					case eventCh <- streamEvent{err: fmt.Errorf("chunk %d: %w", chunkCount, err)}:
					case <-ctx.Done():
					}
					return
				}
				if sv.Done {
					select {
					case eventCh <- streamEvent{done: true, output: sv.Output}:
					case <-ctx.Done():
					}
					return
				}
				if sv.Stream.Text != "" {
					chunkCount++
					select {
					case eventCh <- streamEvent{text: sv.Stream.Text}:
					case <-ctx.Done():
						return
					}
				}
			}

			// The iterator exited without a Done marker: canceled context
			// or an upstream that terminated early. Always emit something.
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("stream ended without completion")
				slog.Warn("stream iterator exited without completion signal")
			}
			select {
			case eventCh <- streamEvent{err: err}:
			default:
			}
		}()

		return streamStartedMsg{eventCh: eventCh, cancel: cancel}
	}
}

// listenForStream waits for the next stream event. Empty events are
// skipped with a loop rather than recursion.
func listenForStream(eventCh <-chan streamEvent) tea.Cmd {
	return func() tea.Msg {
		if eventCh == nil {
			return nil
		}
		for {
			event, ok := <-eventCh
			if !ok {
				return streamErrorMsg{err: fmt.Errorf("stream ended without completion signal")}
			}
			switch {
			case event.err != nil:
				return streamErrorMsg{err: event.err}
			case event.done:
				return streamDoneMsg{output: event.output}
			case event.toolStatus != "":
				return streamToolMsg{status: event.toolStatus}
			case event.text != "":
				return streamTextMsg{text: event.text}
			default:
				continue
			}
		}
	}
}
