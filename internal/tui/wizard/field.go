package wizard

import (
	"slices"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/sway/internal/definition"
	"github.com/mark3labs/sway/internal/tui/theme"
)

// fieldInput edits one field. Text and number fields use a textinput,
// textarea fields a textarea; bool and choice fields are toggled and cycled
// with the keyboard.
type fieldInput struct {
	def   *definition.FieldDef
	input textinput.Model
	area  textarea.Model
	value string // bool and choice fields
	focus bool
}

func newFieldInput(def *definition.FieldDef, value string, width int) *fieldInput {
	fi := &fieldInput{def: def, value: value}
	t := theme.Current()

	switch def.Kind {
	case definition.KindText, definition.KindNumber:
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = def.Placeholder
		in.SetStyles(textinput.Styles{
			Focused: textinput.StyleState{
				Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
				Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
				Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tertiary)),
			},
			Blurred: textinput.StyleState{
				Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
				Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
				Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
			},
			Cursor: textinput.CursorStyle{
				Color: lipgloss.Color(t.Primary),
				Shape: tea.CursorBar,
				Blink: true,
			},
		})
		if def.MaxLength > 0 {
			in.CharLimit = def.MaxLength
		}
		in.SetValue(value)
		fi.input = in
	case definition.KindTextarea:
		ta := textarea.New()
		ta.Prompt = ""
		ta.Placeholder = def.Placeholder
		ta.ShowLineNumbers = false
		ta.SetHeight(3)
		styles := textarea.DefaultStyles(t.IsDark)
		styles.Cursor.Color = lipgloss.Color(t.Primary)
		styles.Cursor.Shape = tea.CursorBlock
		styles.Cursor.Blink = true
		ta.SetStyles(styles)
		if def.MaxLength > 0 {
			ta.CharLimit = def.MaxLength
		}
		ta.SetValue(value)
		fi.area = ta
	}
	fi.SetWidth(width)
	return fi
}

func (fi *fieldInput) multiline() bool { return fi.def.Kind == definition.KindTextarea }

// Value returns the field's current value.
func (fi *fieldInput) Value() string {
	switch fi.def.Kind {
	case definition.KindText, definition.KindNumber:
		return fi.input.Value()
	case definition.KindTextarea:
		return fi.area.Value()
	default:
		return fi.value
	}
}

// SetValue replaces the value without moving focus.
func (fi *fieldInput) SetValue(v string) {
	switch fi.def.Kind {
	case definition.KindText, definition.KindNumber:
		fi.input.SetValue(v)
	case definition.KindTextarea:
		fi.area.SetValue(v)
	default:
		fi.value = v
	}
}

func (fi *fieldInput) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	fi.input.SetWidth(w)
	fi.area.SetWidth(w)
}

func (fi *fieldInput) Focus() tea.Cmd {
	fi.focus = true
	switch fi.def.Kind {
	case definition.KindText, definition.KindNumber:
		return fi.input.Focus()
	case definition.KindTextarea:
		return fi.area.Focus()
	}
	return nil
}

func (fi *fieldInput) Blur() {
	fi.focus = false
	fi.input.Blur()
	fi.area.Blur()
}

// Update handles a message while the field is focused.
func (fi *fieldInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch fi.def.Kind {
	case definition.KindText, definition.KindNumber:
		fi.input, cmd = fi.input.Update(msg)
	case definition.KindTextarea:
		fi.area, cmd = fi.area.Update(msg)
	case definition.KindBool:
		if k, ok := msg.(tea.KeyPressMsg); ok {
			switch k.String() {
			case "space", "x", "left", "right", "h", "l":
				b, _ := strconv.ParseBool(strings.TrimSpace(fi.value))
				fi.value = strconv.FormatBool(!b)
			case "y":
				fi.value = "true"
			case "n":
				fi.value = "false"
			}
		}
	case definition.KindChoice:
		if k, ok := msg.(tea.KeyPressMsg); ok {
			switch k.String() {
			case "right", "l", "space", "down", "j":
				fi.value = fi.cycle(1)
			case "left", "h", "up", "k":
				fi.value = fi.cycle(-1)
			}
		}
	}
	return cmd
}

// cycle returns the option delta steps away from the current one.
func (fi *fieldInput) cycle(delta int) string {
	opts := fi.def.Options
	if len(opts) == 0 {
		return fi.value
	}
	i := slices.Index(opts, strings.TrimSpace(fi.value))
	if i < 0 {
		if delta > 0 {
			return opts[0]
		}
		return opts[len(opts)-1]
	}
	return opts[(i+delta+len(opts))%len(opts)]
}

func (fi *fieldInput) View() string {
	t := theme.Current()
	switch fi.def.Kind {
	case definition.KindText, definition.KindNumber:
		return fi.input.View()
	case definition.KindTextarea:
		return fi.area.View()
	case definition.KindBool:
		b, _ := strconv.ParseBool(strings.TrimSpace(fi.value))
		box := "[ ]"
		if b {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
		if fi.focus {
			style = style.Foreground(lipgloss.Color(t.Tertiary))
		}
		return style.Render(box)
	default:
		var parts []string
		for _, opt := range fi.def.Options {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
			if opt == strings.TrimSpace(fi.value) {
				style = style.Foreground(lipgloss.Color(t.BgBase)).Background(lipgloss.Color(t.Secondary))
				if fi.focus {
					style = style.Background(lipgloss.Color(t.Tertiary))
				}
			}
			parts = append(parts, style.Render(" "+opt+" "))
		}
		return strings.Join(parts, " ")
	}
}
