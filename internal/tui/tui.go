// Package tui is the Bubble Tea terminal interface for gatehouse. It
// renders the conversation in a scrollable viewport, streams answers as
// they generate, and surfaces tool activity (manual lookups, pest
// checks) while the agent works.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/gatehouse0/gatehouse/internal/chat"
)

// phase is the interaction state machine.
type phase int

const (
	phaseInput     phase = iota // awaiting user input
	phaseWaiting                // request sent, nothing received yet
	phaseStreaming              // answer chunks arriving
)

// Transcript and history are bounded so long sessions cannot grow the
// model without limit.
const (
	maxTranscript = 100
	maxHistory    = 100
)

// streamTimeout bounds a single question end to end, tool calls included.
const streamTimeout = 5 * time.Minute

// entry roles for transcript display.
const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleSystem    = "system"
	roleError     = "error"
)

// Layout constants for viewport height calculation.
const (
	separatorLines = 2 // above and below the input
	helpLines      = 1
	promptLines    = 1
	minViewport    = 3
)

// entry is one transcript item.
type entry struct {
	role string
	text string
}

// Model is the Bubble Tea model for the gatehouse terminal interface.
type Model struct {
	input      textarea.Model
	history    []string
	historyIdx int

	phase     phase
	lastCtrlC time.Time

	spinner    spinner.Model
	output     strings.Builder
	viewBuf    strings.Builder // reused by View to reduce allocations
	transcript []entry

	viewport viewport.Model

	help help.Model
	keys keyMap

	// Stream management. No WaitGroup: Bubble Tea's event loop provides
	// the synchronization, and a single union channel carries all events.
	streamCancel  context.CancelFunc
	streamEventCh <-chan streamEvent
	toolStatus    string // current tool activity line, empty when idle

	chatFlow  *chat.Flow
	sessionID uuid.UUID
	ctx       context.Context
	ctxCancel context.CancelFunc

	width  int
	height int

	styles   Styles
	markdown *markdownRenderer
}

// New creates the chat interface model.
//
// ctx must be the same context passed to tea.WithContext so cancellation
// behaves consistently.
func New(ctx context.Context, flow *chat.Flow, sessionID uuid.UUID) (*Model, error) {
	if ctx == nil {
		return nil, errors.New("tui.New: ctx is required")
	}
	if sessionID == uuid.Nil {
		return nil, errors.New("tui.New: session ID is required")
	}
	if flow == nil {
		return nil, errors.New("tui.New: flow is required")
	}

	ctx, cancel := context.WithCancel(ctx)

	// Multi-line input: Enter submits, Shift+Enter inserts a newline.
	ta := textarea.New()
	ta.Placeholder = "Ask about importing plants into Tasmania..."
	ta.SetHeight(1)
	ta.SetWidth(120) // updated on WindowSizeMsg
	ta.MaxWidth = 0
	ta.ShowLineNumbers = false

	// Plain text input, no backgrounds.
	plain := textarea.StyleState{
		Base:        lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Prompt:      lipgloss.NewStyle(),
	}
	ta.SetStyles(textarea.Styles{Focused: plain, Blurred: plain})
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Keyboard handling is routed explicitly in handleKey; the viewport's
	// own bindings would fight the textarea and history navigation.
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(20))
	vp.MouseWheelEnabled = true
	vp.SoftWrap = true
	vp.KeyMap = viewport.KeyMap{}

	return &Model{
		chatFlow:  flow,
		sessionID: sessionID,
		ctx:       ctx,
		ctxCancel: cancel,
		input:     ta,
		spinner:   sp,
		viewport:  vp,
		help:      help.New(),
		keys:      newKeyMap(),
		styles:    DefaultStyles(),
		history:   make([]string, 0, maxHistory),
		markdown:  newMarkdownRenderer(80),
		width:     80, // until the first WindowSizeMsg
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.input.Focus(),
	)
}

// addEntry appends a transcript entry and enforces the transcript bound.
func (m *Model) addEntry(e entry) {
	m.transcript = append(m.transcript, e)
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
}
