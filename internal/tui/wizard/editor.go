package wizard

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/sway/internal/logger"
)

// fieldEditedMsg is sent when the external editor returns with new content.
type fieldEditedMsg struct {
	Step    string
	Field   string
	Content string
}

// editorFailedMsg reports that the editor could not be run.
type editorFailedMsg struct{ err error }

// openEditor launches $EDITOR on the value of a field.
func openEditor(step, field, value string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "sway_"+field+"_*.md")
	if err != nil {
		return func() tea.Msg { return editorFailedMsg{err: err} }
	}
	path := tmpfile.Name()

	if _, err := tmpfile.WriteString(value); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		return func() tea.Msg { return editorFailedMsg{err: err} }
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("sway", path)
	if err != nil {
		_ = os.Remove(path)
		return func() tea.Msg { return editorFailedMsg{err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return editorFailedMsg{err: err}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return editorFailedMsg{err: err}
		}
		logger.Debug("Editor returned %d bytes for %s.%s", len(content), step, field)
		return fieldEditedMsg{
			Step:  step,
			Field: field,
			// Editors append a final newline.
			Content: strings.TrimSuffix(string(content), "\n"),
		}
	})
}
