package wizard

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/mark3labs/sway/internal/tui/theme"
)

// renderMarkdown renders a step description with glamour.
// Falls back to plain text if rendering fails.
func renderMarkdown(content string, width int) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	style := "dark"
	if !theme.Current().IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	// Glamour pads with blank lines.
	return strings.Trim(rendered, "\n")
}
