package definition

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/sway/internal/navigator"
)

// Validate checks values, keyed by field name, against the step's rules.
// Errors are keyed by field name.
func (s *StepDef) Validate(values map[string]string) navigator.ValidationResult {
	errs := make(map[string]string)
	for i := range s.Fields {
		f := &s.Fields[i]
		if msg := f.check(values[f.Name]); msg != "" {
			errs[f.Name] = msg
		}
	}
	if len(errs) == 0 {
		return navigator.ValidationResult{Valid: true}
	}
	return navigator.ValidationResult{Valid: false, Errors: errs}
}

// check returns a message describing why value is unacceptable, or "".
func (f *FieldDef) check(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if f.Required {
			return "required"
		}
		return ""
	}

	switch f.Kind {
	case KindNumber:
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return "must be a number"
		}
	case KindBool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return "must be true or false"
		}
		// A required checkbox has to be ticked.
		if f.Required && !b {
			return "required"
		}
	case KindChoice:
		if !slices.Contains(f.Options, trimmed) {
			return fmt.Sprintf("must be one of: %s", strings.Join(f.Options, ", "))
		}
	}

	n := utf8.RuneCountInString(value)
	if f.MinLength > 0 && n < f.MinLength {
		return fmt.Sprintf("must be at least %d characters", f.MinLength)
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		return fmt.Sprintf("must be at most %d characters", f.MaxLength)
	}
	if f.re != nil && !f.re.MatchString(value) {
		return "invalid format"
	}
	return ""
}
