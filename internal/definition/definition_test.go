package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const signupYAML = `
title: Newsletter Signup
config:
  linear: true
hooks:
  hooks:
    on_submit:
      command: echo submitted
steps:
  - title: Contact Details
    description: How can we **reach** you?
    fields:
      - name: email
        required: true
        pattern: '^[^@]+@[^@]+$'
      - name: age
        kind: number
  - id: prefs
    title: Preferences
    fields:
      - name: topic
        kind: choice
        options: [go, rust, zig]
        default: go
      - name: terms
        kind: bool
        required: true
  - title: ""
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(signupYAML))
	require.NoError(t, err)

	require.Equal(t, "newsletter-signup", def.Name)
	require.True(t, def.Config.Linear)
	require.True(t, def.Config.ShowNavigation, "omitted keys keep defaults")
	require.True(t, def.Config.ShowProgress)
	require.Equal(t, "slide", def.Config.Transition.Type)
	require.NotNil(t, def.Hooks.Hooks.OnSubmit)
	require.Equal(t, "echo submitted", def.Hooks.Hooks.OnSubmit.Command)

	require.Len(t, def.Steps, 3)
	require.Equal(t, "contact-details", def.Steps[0].ID)
	require.Equal(t, "prefs", def.Steps[1].ID)
	require.Equal(t, "step-3", def.Steps[2].ID)
	require.Equal(t, "step-3", def.Steps[2].Title)

	email, ok := def.Steps[0].Field("email")
	require.True(t, ok)
	require.Equal(t, KindText, email.Kind)
	require.Equal(t, "email", email.Label)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no steps",
			yaml:    "name: empty\n",
			wantErr: ErrNoSteps,
		},
		{
			name:    "duplicate step",
			yaml:    "steps:\n  - title: A\n  - id: a\n",
			wantErr: ErrDuplicateStep,
		},
		{
			name:    "duplicate field",
			yaml:    "steps:\n  - title: A\n    fields:\n      - name: x\n      - name: x\n",
			wantErr: ErrInvalidField,
		},
		{
			name:    "unnamed field",
			yaml:    "steps:\n  - title: A\n    fields:\n      - label: X\n",
			wantErr: ErrInvalidField,
		},
		{
			name:    "unknown kind",
			yaml:    "steps:\n  - title: A\n    fields:\n      - name: x\n        kind: date\n",
			wantErr: ErrInvalidField,
		},
		{
			name:    "choice without options",
			yaml:    "steps:\n  - title: A\n    fields:\n      - name: x\n        kind: choice\n",
			wantErr: ErrInvalidField,
		},
		{
			name:    "bad pattern",
			yaml:    "steps:\n  - title: A\n    fields:\n      - name: x\n        pattern: '('\n",
			wantErr: ErrInvalidField,
		},
		{
			name:    "inverted lengths",
			yaml:    "steps:\n  - title: A\n    fields:\n      - name: x\n        min_length: 5\n        max_length: 2\n",
			wantErr: ErrInvalidField,
		},
		{
			name:    "unknown key",
			yaml:    "steps:\n  - title: A\n    colour: red\n",
			wantMsg: "failed to parse form definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.yml")
	require.NoError(t, os.WriteFile(path, []byte(signupYAML), 0644))

	def, err := Load(path)
	require.NoError(t, err)
	require.Len(t, def.Steps, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStepDefaults(t *testing.T) {
	def, err := Parse([]byte(signupYAML))
	require.NoError(t, err)

	step, ok := def.Step("prefs")
	require.True(t, ok)
	require.Equal(t, map[string]string{"topic": "go", "terms": ""}, step.Defaults())

	_, ok = def.Step("missing")
	require.False(t, ok)
}

func TestMarshal_RoundTripsNormalisedForm(t *testing.T) {
	def, err := Parse([]byte(signupYAML))
	require.NoError(t, err)

	out, err := def.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(out), "id: contact-details")

	again, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, def.Name, again.Name)
	require.Equal(t, def.Steps[0].ID, again.Steps[0].ID)
	require.Equal(t, def.Config, again.Config)
}
