package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/sway/internal/definition"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     Variables
		want     string
	}{
		{
			name:     "simple substitution",
			template: "Form: {{form}}, Step: {{step}}",
			vars: Variables{
				Form: "signup",
				Step: "contact",
			},
			want: "Form: signup, Step: contact",
		},
		{
			name:     "all variables",
			template: "{{form}}|{{title}}|{{run}}|{{step}}|{{progress}}|{{answers}}",
			vars: Variables{
				Form:     "f",
				Title:    "T",
				Run:      "r1",
				Step:     "s",
				Progress: "50",
				Answers:  "a",
			},
			want: "f|T|r1|s|50|a",
		},
		{
			name:     "single answers",
			template: "Hello {{answer.contact.name}} <{{answer.contact.email}}>",
			vars: Variables{
				Values: map[string]string{
					"contact.name":  "Ada",
					"contact.email": "ada@example.com",
				},
			},
			want: "Hello Ada <ada@example.com>",
		},
		{
			name:     "values are not re-expanded",
			template: "{{answer.a.x}}",
			vars: Variables{
				Form:   "oops",
				Values: map[string]string{"a.x": "{{form}}"},
			},
			want: "{{form}}",
		},
		{
			name:     "placeholder not replaced if variable missing",
			template: "{{form}} {{unknown}} {{answer.nope}}",
			vars: Variables{
				Form: "test",
			},
			want: "test {{unknown}} {{answer.nope}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, tt.vars)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func testDefinition(t *testing.T) *definition.Definition {
	t.Helper()
	def, err := definition.Parse([]byte(`
name: signup
title: Newsletter Signup
steps:
  - id: contact
    title: Contact
    fields:
      - name: name
        label: Name
      - name: bio
        kind: textarea
  - id: prefs
    title: Preferences
    fields:
      - name: topic
`))
	if err != nil {
		t.Fatal(err)
	}
	return def
}

func TestVariablesFor(t *testing.T) {
	def := testDefinition(t)
	answers := map[string]string{
		"contact.name": "Ada",
		"contact.bio":  "line one\nline two",
		"prefs.topic":  "",
	}

	vars := VariablesFor(def, answers, 66.6666)

	if vars.Form != "signup" || vars.Title != "Newsletter Signup" {
		t.Errorf("unexpected names: %+v", vars)
	}
	if vars.Progress != "67" {
		t.Errorf("Progress = %q, want 67", vars.Progress)
	}
	want := "## Answers\nContact:\n  - Name: Ada\n  - bio: line one\n    line two\n"
	if vars.Answers != want {
		t.Errorf("Answers = %q, want %q", vars.Answers, want)
	}
}

func TestVariablesFor_NoAnswers(t *testing.T) {
	def := testDefinition(t)
	def.Title = ""

	vars := VariablesFor(def, map[string]string{}, 0)
	if vars.Answers != "" {
		t.Errorf("Answers = %q, want empty", vars.Answers)
	}
	if vars.Title != "signup" {
		t.Errorf("Title = %q, want the form name", vars.Title)
	}
}

func TestRenderWithDefaultSummary(t *testing.T) {
	def := testDefinition(t)
	vars := VariablesFor(def, map[string]string{"contact.name": "Ada"}, 100)
	vars.Run = "signup-1"

	result := Render(SummaryTemplate(def), vars)

	for _, placeholder := range []string{"{{title}}", "{{run}}", "{{progress}}", "{{answers}}", "{{form}}"} {
		if strings.Contains(result, placeholder) {
			t.Errorf("%s placeholder not replaced", placeholder)
		}
	}
	if !strings.Contains(result, "# Newsletter Signup") {
		t.Error("Title not included")
	}
	if !strings.Contains(result, "Run: signup-1 | Progress: 100%") {
		t.Error("Run/progress not properly formatted")
	}
	if !strings.Contains(result, "  - Name: Ada") {
		t.Error("Answers not included")
	}
}

func TestSummaryTemplate(t *testing.T) {
	def := testDefinition(t)
	if SummaryTemplate(def) != DefaultSummary {
		t.Error("Expected default summary")
	}
	if SummaryTemplate(nil) != DefaultSummary {
		t.Error("Expected default summary for nil definition")
	}

	def.Summary = "Thanks {{answer.contact.name}}"
	if SummaryTemplate(def) != def.Summary {
		t.Error("Expected the definition's summary")
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) string // Returns file path
		wantErr     bool
		wantContent string
	}{
		{
			name: "load existing file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "summary.md")
				if err := os.WriteFile(path, []byte("Done: {{form}}"), 0644); err != nil {
					t.Fatal(err)
				}
				return path
			},
			wantContent: "Done: {{form}}",
		},
		{
			name: "file does not exist",
			setup: func(t *testing.T) string {
				return "/nonexistent/path/summary.md"
			},
			wantErr: true,
		},
		{
			name: "empty file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "empty.md")
				if err := os.WriteFile(path, []byte(""), 0644); err != nil {
					t.Fatal(err)
				}
				return path
			},
			wantContent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			got, err := LoadFromFile(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadFromFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.wantContent {
				t.Errorf("LoadFromFile() = %q, want %q", got, tt.wantContent)
			}
		})
	}
}

func TestGetTemplate(t *testing.T) {
	got, err := GetTemplate("")
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if got != DefaultSummary {
		t.Error("Expected default summary when no custom path")
	}

	path := filepath.Join(t.TempDir(), "custom.md")
	if err := os.WriteFile(path, []byte("## Custom {{form}}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = GetTemplate(path)
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if !strings.Contains(got, "## Custom") {
		t.Error("Expected custom template content")
	}

	if _, err := GetTemplate("/nonexistent/template.md"); err == nil {
		t.Error("Expected error for missing template")
	}
}
