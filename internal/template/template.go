package template

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mark3labs/sway/internal/definition"
)

// Variables holds the data to be injected into template placeholders.
type Variables struct {
	Form     string            // Form name
	Title    string            // Form title, the name when unset
	Run      string            // Run id
	Step     string            // Current step id
	Progress string            // Progress percentage, no sign
	Answers  string            // Formatted answers grouped by step
	Values   map[string]string // Raw answers keyed "step.field"
}

// Render replaces {{variable}} placeholders in template with actual values.
// Supports the following variables:
// - {{form}} - Form name
// - {{title}} - Form title
// - {{run}} - Run id
// - {{step}} - Current step id
// - {{progress}} - Progress percentage
// - {{answers}} - Formatted answers (empty if none)
// - {{answer.<step>.<field>}} - A single answer
//
// Unknown placeholders are left as they are.
func Render(template string, vars Variables) string {
	pairs := []string{
		"{{form}}", vars.Form,
		"{{title}}", vars.Title,
		"{{run}}", vars.Run,
		"{{step}}", vars.Step,
		"{{progress}}", vars.Progress,
		"{{answers}}", vars.Answers,
	}
	for key, value := range vars.Values {
		pairs = append(pairs, "{{answer."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// LoadFromFile loads a template from a file.
// If the file doesn't exist or can't be read, returns an error.
func LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return string(data), nil
}

// GetTemplate returns the template content.
// If customPath is non-empty, loads from that file.
// Otherwise returns the default embedded template.
func GetTemplate(customPath string) (string, error) {
	if customPath == "" {
		return DefaultSummary, nil
	}
	return LoadFromFile(customPath)
}

// SummaryTemplate returns the definition's summary template, or the default.
func SummaryTemplate(def *definition.Definition) string {
	if def != nil && strings.TrimSpace(def.Summary) != "" {
		return def.Summary
	}
	return DefaultSummary
}

// VariablesFor builds the variables for a run of def.
func VariablesFor(def *definition.Definition, answers map[string]string, progress float64) Variables {
	title := def.Title
	if title == "" {
		title = def.Name
	}
	return Variables{
		Form:     def.Name,
		Title:    title,
		Progress: strconv.FormatFloat(progress, 'f', 0, 64),
		Answers:  formatAnswers(def, answers),
		Values:   answers,
	}
}

// formatAnswers formats answers grouped by step in definition order.
// Returns empty string if no step has an answer (section header will be omitted).
func formatAnswers(def *definition.Definition, answers map[string]string) string {
	var sb strings.Builder
	for _, step := range def.Steps {
		var lines []string
		for _, field := range step.Fields {
			value := answers[step.ID+"."+field.Name]
			if value == "" {
				continue
			}
			if field.Kind == definition.KindTextarea {
				value = strings.ReplaceAll(value, "\n", "\n    ")
			}
			lines = append(lines, fmt.Sprintf("  - %s: %s\n", field.Label, value))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(step.Title + ":\n")
		for _, l := range lines {
			sb.WriteString(l)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "## Answers\n" + sb.String()
}
