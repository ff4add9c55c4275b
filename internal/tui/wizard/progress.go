package wizard

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/sway/internal/tui/theme"
)

// renderProgress draws a gradient bar for progress (0-100) followed by the
// percentage.
func renderProgress(progress float64, width int) string {
	label := fmt.Sprintf(" %3.0f%%", progress)
	barWidth := width - len(label)
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(math.Round(progress / 100 * float64(barWidth)))
	filled = max(0, min(filled, barWidth))

	t := theme.Current()
	s := t.S()
	var b strings.Builder
	for _, c := range theme.Gradient(t.Primary, t.Secondary, filled) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("█"))
	}
	b.WriteString(s.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(s.ProgressText.Render(label))
	return b.String()
}
