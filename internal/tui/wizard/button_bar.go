package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/sway/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateNavButtons creates the Previous and Next (or Submit) buttons.
// focused is 0 for Previous, 1 for Next and -1 for neither.
func CreateNavButtons(hasPrevious, nextEnabled, last bool, focused int) []Button {
	prevLabel := "← Previous"
	nextLabel := "Next →"
	if last {
		nextLabel = "Submit"
	}

	prev := Button{Label: prevLabel, State: ButtonNormal}
	if !hasPrevious {
		prev.State = ButtonDisabled
	}
	next := Button{Label: nextLabel, State: ButtonNormal}
	if !nextEnabled {
		next.State = ButtonDisabled
	}

	// Focus wins over disabled so the cursor stays visible.
	switch focused {
	case 0:
		prev.State = ButtonFocused
	case 1:
		next.State = ButtonFocused
	}
	return []Button{prev, next}
}
