// Package definition loads multi-step form definitions from YAML and
// validates answers against the field rules they declare.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/mark3labs/sway/internal/hooks"
	"github.com/mark3labs/sway/internal/logger"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSteps       = errors.New("form has no steps")
	ErrDuplicateStep = errors.New("duplicate step id")
	ErrInvalidField  = errors.New("invalid field")
)

// Kind is the input type of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindNumber   Kind = "number"
	KindBool     Kind = "bool"
	KindChoice   Kind = "choice"
)

// Definition is a complete form as read from a YAML file.
type Definition struct {
	Name        string       `yaml:"name"`
	Title       string       `yaml:"title,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Config      FormConfig   `yaml:"config"`
	Hooks       hooks.Config `yaml:"hooks,omitempty"`
	Steps       []StepDef    `yaml:"steps"`
	// Summary is a template rendered after submit. Empty uses the default.
	Summary string `yaml:"summary,omitempty"`
}

// FormConfig controls navigation and presentation.
type FormConfig struct {
	// Linear restricts jumps to visited steps and the immediate next step.
	Linear         bool       `yaml:"linear"`
	ShowNavigation bool       `yaml:"show_navigation"`
	ShowProgress   bool       `yaml:"show_progress"`
	Transition     Transition `yaml:"transition"`
}

// Transition describes how the renderer animates step changes.
type Transition struct {
	Type     string `yaml:"type"` // slide, fade or none
	Duration int    `yaml:"duration"`
	Easing   string `yaml:"easing"`
}

// DefaultFormConfig returns the configuration used for keys a file omits.
func DefaultFormConfig() FormConfig {
	return FormConfig{
		ShowNavigation: true,
		ShowProgress:   true,
		Transition: Transition{
			Type:     "slide",
			Duration: 300,
			Easing:   "ease-in-out",
		},
	}
}

// StepDef is one step of a form.
type StepDef struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Fields      []FieldDef `yaml:"fields,omitempty"`
}

// FieldDef is one input within a step.
type FieldDef struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label,omitempty"`
	Kind        Kind     `yaml:"kind,omitempty"`
	Required    bool     `yaml:"required,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	MinLength   int      `yaml:"min_length,omitempty"`
	MaxLength   int      `yaml:"max_length,omitempty"`
	Options     []string `yaml:"options,omitempty"`
	Default     string   `yaml:"default,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`

	re *regexp.Regexp
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Loaded form %q from %s (%d steps)", def.Name, path, len(def.Steps))
	return def, nil
}

// Parse decodes a definition and normalises it: missing ids and kinds are
// filled in and patterns are compiled.
func Parse(data []byte) (*Definition, error) {
	def := Definition{Config: DefaultFormConfig()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}
	if err := def.normalise(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) normalise() error {
	if len(d.Steps) == 0 {
		return ErrNoSteps
	}
	if d.Name == "" {
		d.Name = slug.Make(d.Title)
	}
	if d.Name == "" {
		d.Name = "form"
	}

	seen := make(map[string]bool, len(d.Steps))
	for i := range d.Steps {
		step := &d.Steps[i]
		if step.ID == "" {
			step.ID = slug.Make(step.Title)
		}
		if step.ID == "" {
			step.ID = "step-" + strconv.Itoa(i+1)
		}
		if seen[step.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateStep, step.ID)
		}
		seen[step.ID] = true
		if step.Title == "" {
			step.Title = step.ID
		}
		if err := step.normalise(); err != nil {
			return fmt.Errorf("step %q: %w", step.ID, err)
		}
	}
	return nil
}

func (s *StepDef) normalise() error {
	names := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidField, i+1)
		}
		if names[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidField, f.Name)
		}
		names[f.Name] = true

		if f.Label == "" {
			f.Label = f.Name
		}
		switch f.Kind {
		case "":
			f.Kind = KindText
		case KindText, KindTextarea, KindNumber, KindBool:
		case KindChoice:
			if len(f.Options) == 0 {
				return fmt.Errorf("%w: choice field %q has no options", ErrInvalidField, f.Name)
			}
		default:
			return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidField, f.Name, f.Kind)
		}
		if f.MaxLength > 0 && f.MinLength > f.MaxLength {
			return fmt.Errorf("%w: field %q min_length exceeds max_length", ErrInvalidField, f.Name)
		}
		if f.Pattern != "" {
			re, err := regexp.Compile(f.Pattern)
			if err != nil {
				return fmt.Errorf("%w: field %q pattern: %v", ErrInvalidField, f.Name, err)
			}
			f.re = re
		}
	}
	return nil
}

// Step returns the step with the given id.
func (d *Definition) Step(id string) (*StepDef, bool) {
	for i := range d.Steps {
		if d.Steps[i].ID == id {
			return &d.Steps[i], true
		}
	}
	return nil, false
}

// Field returns the named field of the step.
func (s *StepDef) Field(name string) (*FieldDef, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Defaults returns the default value of every field of the step, keyed by
// field name.
func (s *StepDef) Defaults() map[string]string {
	values := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Name] = f.Default
	}
	return values
}

// Marshal encodes the normalised definition as YAML.
func (d *Definition) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode form definition: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode form definition: %w", err)
	}
	return buf.Bytes(), nil
}
