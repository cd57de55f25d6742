package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// View implements tea.Model. AltScreen with a viewport gives a
// scrollable transcript above a fixed input row.
func (m *Model) View() tea.View {
	m.viewBuf.Reset()

	m.viewBuf.WriteString(m.viewport.View())
	m.viewBuf.WriteString("\n")

	m.viewBuf.WriteString(m.renderSeparator())
	m.viewBuf.WriteString("\n")

	// The input stays live in every phase so the next question can be
	// typed while an answer streams.
	m.viewBuf.WriteString(m.styles.Prompt.Render("> "))
	m.viewBuf.WriteString(m.input.View())
	m.viewBuf.WriteString("\n")

	m.viewBuf.WriteString(m.renderSeparator())
	m.viewBuf.WriteString("\n")

	m.viewBuf.WriteString(m.renderStatusBar())

	v := tea.NewView(m.viewBuf.String())
	v.AltScreen = true
	return v
}

// rebuildViewport reconstructs the transcript view. Called whenever
// entries, streaming output, or the phase change.
func (m *Model) rebuildViewport() {
	var b strings.Builder

	b.WriteString(m.styles.RenderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.RenderWelcomeTips())
	b.WriteString("\n")

	for _, e := range m.transcript {
		switch e.role {
		case roleUser:
			b.WriteString(m.styles.User.Render("You> "))
			b.WriteString(e.text)
		case roleAssistant:
			b.WriteString(m.styles.Assistant.Render("Gatehouse> "))
			b.WriteString(m.markdown.Render(e.text))
		case roleSystem:
			b.WriteString(m.styles.System.Render(e.text))
		case roleError:
			b.WriteString(m.styles.Error.Render("Error: " + e.text))
		}
		b.WriteString("\n\n")
	}

	if m.phase == phaseStreaming && m.output.Len() > 0 {
		b.WriteString(m.styles.Assistant.Render("Gatehouse> "))
		b.WriteString(m.output.String())
		b.WriteString("\n\n")
	}

	if m.phase == phaseStreaming && m.toolStatus != "" {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.System.Render(m.toolStatus))
		b.WriteString("\n\n")
	}

	if m.phase == phaseWaiting {
		b.WriteString(m.spinner.View())
		b.WriteString(" Thinking...\n\n")
	}

	m.viewport.SetContent(b.String())
}

func (m *Model) renderSeparator() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return m.styles.Separator.Render(strings.Repeat("─", width))
}

// renderStatusBar shows phase-appropriate keyboard shortcuts.
func (m *Model) renderStatusBar() string {
	var bindings []key.Binding
	switch m.phase {
	case phaseInput:
		bindings = []key.Binding{
			m.keys.Submit, m.keys.NewLine, m.keys.History,
			m.keys.Cancel, m.keys.Quit, m.keys.ScrollUp,
		}
	case phaseWaiting, phaseStreaming:
		bindings = []key.Binding{
			m.keys.EscCancel, m.keys.Cancel,
			m.keys.ScrollUp, m.keys.ScrollDown,
		}
	}
	return m.help.ShortHelpView(bindings)
}
