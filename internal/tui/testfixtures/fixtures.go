package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/sway/internal/definition"
	"github.com/mark3labs/sway/internal/form"
)

// Fixed test values for consistent rendering
const (
	FixedRunID = "test-run"
)

var (
	FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
)

// SignupYAML is a three step form covering every field kind.
const SignupYAML = `
name: signup
title: Newsletter Signup
summary: "Thanks {{answer.contact.name}}"
steps:
  - id: contact
    title: Contact
    description: "Tell us **who** you are."
    fields:
      - name: name
        label: Name
        required: true
      - name: bio
        kind: textarea
  - id: prefs
    title: Preferences
    fields:
      - name: weekly
        kind: bool
      - name: topic
        kind: choice
        options: [go, rust]
  - id: confirm
    title: Confirm
    fields:
      - name: agree
        kind: bool
        required: true
`

// Definition parses src and fails the test on error.
func Definition(t *testing.T, src string) *definition.Definition {
	t.Helper()
	def, err := definition.Parse([]byte(src))
	if err != nil {
		t.Fatalf("failed to parse definition: %v", err)
	}
	return def
}

// NewForm starts a run of src with a fixed run id and clock. Hooks run in a
// temporary directory. Extra options are applied last.
func NewForm(t *testing.T, src string, opts ...form.Option) *form.Form {
	t.Helper()
	opts = append([]form.Option{
		form.WithRunID(FixedRunID),
		form.WithWorkDir(t.TempDir()),
		form.WithClock(func() time.Time { return FixedTime }),
	}, opts...)

	f, err := form.New(context.Background(), Definition(t, src), opts...)
	if err != nil {
		t.Fatalf("failed to start form: %v", err)
	}
	return f
}
