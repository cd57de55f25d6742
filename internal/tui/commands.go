package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Slash commands.
const (
	cmdHelp    = "/help"
	cmdClear   = "/clear"
	cmdSession = "/session"
	cmdExit    = "/exit"
	cmdQuit    = "/quit"
)

const helpText = "Commands: /help, /clear, /session, /exit\n" +
	"Shortcuts:\n" +
	"  Enter: send question\n" +
	"  Shift+Enter: new line\n" +
	"  Ctrl+C: cancel/clear (twice to exit)\n" +
	"  Ctrl+D: exit\n" +
	"  Up/Down: question history\n" +
	"  PgUp/PgDn: scroll transcript"

// handleSubmit sends the typed question, or dispatches it as a slash
// command.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}

	if strings.HasPrefix(query, "/") {
		return m.handleSlashCommand(query)
	}

	m.history = append(m.history, query)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.historyIdx = len(m.history)

	m.addEntry(entry{role: roleUser, text: query})
	m.input.Reset()
	m.phase = phaseWaiting

	return m, tea.Batch(
		m.spinner.Tick,
		m.startStream(query),
	)
}

func (m *Model) handleSlashCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case cmdHelp:
		m.addEntry(entry{role: roleSystem, text: helpText})
	case cmdClear:
		m.transcript = nil
	case cmdSession:
		m.addEntry(entry{role: roleSystem, text: "Session: " + m.sessionID.String()})
	case cmdExit, cmdQuit:
		return m, m.cleanup()
	default:
		m.addEntry(entry{role: roleError, text: "Unknown command: " + cmd})
	}
	m.input.Reset()
	m.rebuildViewport()
	m.viewport.GotoBottom()
	return m, nil
}
