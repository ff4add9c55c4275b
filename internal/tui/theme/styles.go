package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	Direction      lipgloss.Style

	Description lipgloss.Style
	Label       lipgloss.Style
	LabelFocus  lipgloss.Style
	Required    lipgloss.Style
	FieldError  lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style

	ProgressEmpty lipgloss.Style
	ProgressText  lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	return &Styles{
		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Tertiary)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Direction: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),

		Description: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		LabelFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Tertiary)).
			Bold(true),
		Required: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		FieldError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgSurface1)),
		ProgressText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),

		ButtonNormal: button.
			Foreground(lipgloss.Color(t.FgBase)).
			Background(lipgloss.Color(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(lipgloss.Color(t.BgOverlay)).
			Background(lipgloss.Color(t.BgMantle)),
		ButtonFocused: button.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Tertiary)).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgSurface2)),
	}
}
