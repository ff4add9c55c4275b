package testfixtures

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
)

// Initialize test environment
func init() {
	// Ascii profile keeps rendered output free of color codes
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Conservative timeout for WaitFor (CI compatibility)
const (
	DefaultWaitDuration  = 5 * time.Second
	DefaultCheckInterval = 10 * time.Millisecond
)

// Render draws content onto a canvas of the canonical size and returns the
// screen with trailing blank space removed from each line.
func Render(content string) string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	uv.NewStyledString(content).Draw(canvas, uv.Rect(0, 0, TestTermWidth, TestTermHeight))
	return TrimLines(canvas.Render())
}

// TrimLines removes trailing spaces from every line and trailing empty lines.
func TrimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// WaitFor polls cond until it returns true or DefaultWaitDuration passes.
func WaitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(DefaultWaitDuration)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(DefaultCheckInterval)
	}
	t.Fatalf("condition not met within %s", DefaultWaitDuration)
}
