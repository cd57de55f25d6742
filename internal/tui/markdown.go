package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const fallbackWidth = 80

// markdownRenderer converts Markdown answers to styled terminal output.
// A nil renderer degrades to plain text; the citation template is still
// readable unstyled.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

func newGlamour(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

func newMarkdownRenderer(width int) *markdownRenderer {
	if width <= 0 {
		width = fallbackWidth
	}
	r, err := newGlamour(width)
	if err != nil {
		return nil
	}
	return &markdownRenderer{renderer: r, width: width}
}

// UpdateWidth recreates the renderer when the terminal width actually
// changed. Reports whether an update happened; on error the previous
// renderer is kept.
func (m *markdownRenderer) UpdateWidth(width int) bool {
	if m == nil || width <= 0 || width == m.width {
		return false
	}
	r, err := newGlamour(width)
	if err != nil {
		return false
	}
	m.renderer = r
	m.width = width
	return true
}

// Render returns the input unchanged when rendering is unavailable or
// fails. Glamour pads output with a trailing newline, which the
// transcript layout adds itself, so it is trimmed here.
func (m *markdownRenderer) Render(markdown string) string {
	if m == nil || m.renderer == nil {
		return markdown
	}
	styled, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimSuffix(styled, "\n")
}
