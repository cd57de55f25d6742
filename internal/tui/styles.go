package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Tasmanian eucalyptus green, the gatehouse brand color.
const brandGreen = "#2E8B57"

// Gatehouse banner (filled block style).
var bannerArt = []string{
	" ██████╗  █████╗ ████████╗███████╗██╗  ██╗ ██████╗ ██╗   ██╗███████╗███████╗",
	"██╔════╝ ██╔══██╗╚══██╔══╝██╔════╝██║  ██║██╔═══██╗██║   ██║██╔════╝██╔════╝",
	"██║  ███╗███████║   ██║   █████╗  ███████║██║   ██║██║   ██║███████╗█████╗  ",
	"██║   ██║██╔══██║   ██║   ██╔══╝  ██╔══██║██║   ██║██║   ██║╚════██║██╔══╝  ",
	"╚██████╔╝██║  ██║   ██║   ███████╗██║  ██║╚██████╔╝╚██████╔╝███████║███████╗",
	" ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚══════╝╚══════╝",
}

// Styles holds the lipgloss styles for the interface.
type Styles struct {
	Banner    lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	System    lipgloss.Style
	Tips      lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
	Separator lipgloss.Style
	StatusBar lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Banner:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(brandGreen)),
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(brandGreen)),
		System:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		Tips:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}

// RenderBanner returns the styled banner.
func (s Styles) RenderBanner() string {
	var b strings.Builder
	for _, line := range bannerArt {
		b.WriteString(s.Banner.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// welcomeTips are shown under the banner until the transcript fills.
var welcomeTips = []string{
	"Tasmanian plant quarantine import assistant",
	"",
	"Tips for getting started:",
	"  • Name the commodity and the origin state, e.g. \"apples from Victoria\"",
	"  • Answers cite the Plant Quarantine Manual; verify before consigning",
	"  • Use /help to see available commands",
	"  • Press Ctrl+C to cancel, Ctrl+D to exit",
}

// RenderWelcomeTips returns the styled tips block.
func (s Styles) RenderWelcomeTips() string {
	var b strings.Builder
	for _, tip := range welcomeTips {
		b.WriteString(s.Tips.Render(tip))
		b.WriteString("\n")
	}
	return b.String()
}
