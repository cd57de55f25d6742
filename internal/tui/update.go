package tui

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // Bubble Tea Update requires a type switch over all message types
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputHeight := m.input.Height() + promptLines
		fixedHeight := separatorLines + inputHeight + helpLines
		vpHeight := max(msg.Height-fixedHeight, minViewport)

		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(vpHeight)
		m.input.SetWidth(msg.Width - 4) // room for the "> " prompt
		m.help.SetWidth(msg.Width)
		m.markdown.UpdateWidth(msg.Width)

		m.rebuildViewport()
		return m, nil

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.phase == phaseWaiting || (m.phase == phaseStreaming && m.toolStatus != "") {
			m.rebuildViewport()
		}
		return m, cmd

	case streamStartedMsg:
		m.streamCancel = msg.cancel
		m.streamEventCh = msg.eventCh
		m.phase = phaseStreaming
		m.rebuildViewport()
		m.viewport.GotoBottom()
		return m, listenForStream(msg.eventCh)

	case streamToolMsg:
		m.toolStatus = msg.status
		m.rebuildViewport()
		m.viewport.GotoBottom()
		return m, listenForStream(m.streamEventCh)

	case streamTextMsg:
		m.toolStatus = "" // text arriving means the tool finished
		m.output.WriteString(msg.text)
		m.rebuildViewport()
		m.viewport.GotoBottom()
		return m, listenForStream(m.streamEventCh)

	case streamDoneMsg:
		m.finishStream()

		// The final Output.Response is authoritative; accumulated chunks
		// are the fallback for models that sent everything in chunks.
		finalText := msg.output.Response
		if finalText == "" {
			finalText = m.output.String()
		}
		m.addEntry(entry{role: roleAssistant, text: finalText})
		m.output.Reset()
		m.rebuildViewport()
		m.viewport.GotoBottom()
		return m, m.input.Focus()

	case streamErrorMsg:
		m.finishStream()

		switch {
		case errors.Is(msg.err, context.Canceled):
			m.addEntry(entry{role: roleSystem, text: "(Canceled)"})
		case errors.Is(msg.err, context.DeadlineExceeded):
			m.addEntry(entry{role: roleError, text: "Question timed out (>5 min). Try asking about one commodity at a time."})
		default:
			m.addEntry(entry{role: roleError, text: msg.err.Error()})
		}
		m.output.Reset()
		m.rebuildViewport()
		m.viewport.GotoBottom()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// finishStream returns the model to input phase and releases stream
// resources.
func (m *Model) finishStream() {
	m.phase = phaseInput
	m.toolStatus = ""
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
	m.streamEventCh = nil
}
