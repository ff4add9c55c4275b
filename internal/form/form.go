// Package form drives a navigator from a form definition. It owns the
// answers, keeps step validity in sync with them, runs lifecycle hooks and
// publishes events for every change.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/sway/internal/definition"
	"github.com/mark3labs/sway/internal/hooks"
	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/navigator"
	"github.com/mark3labs/sway/internal/template"
)

var (
	ErrStepInvalid   = errors.New("current step is not valid")
	ErrNotComplete   = errors.New("form is not complete")
	ErrExitBlocked   = errors.New("leaving the step was blocked")
	ErrNotReachable  = errors.New("step is not reachable")
	ErrNoStep        = errors.New("no step in that direction")
	ErrUnknownStep   = errors.New("unknown step")
	ErrUnknownField  = errors.New("unknown field")
	ErrSubmitFailed  = errors.New("submit hook failed")
	ErrNoCurrentStep = errors.New("no current step")
)

// Form is one run of a form definition.
type Form struct {
	def *definition.Definition
	nav *navigator.Navigator
	run string

	workDir   string
	publisher Publisher
	now       func() time.Time
	navOpts   []navigator.Option

	// op serialises navigation, submit and reset, which may run hooks.
	op sync.Mutex

	mu         sync.Mutex
	answers    map[string]map[string]string
	errors     map[string]map[string]string
	direction  navigator.Direction
	submitted  bool
	hookOutput string
}

// Option configures a Form.
type Option func(*Form)

// WithPublisher sends every event to p.
func WithPublisher(p Publisher) Option {
	return func(f *Form) { f.publisher = p }
}

// WithRunID sets the run id. By default it is derived from the form name and
// the start time.
func WithRunID(id string) Option {
	return func(f *Form) { f.run = id }
}

// WithWorkDir sets the directory hooks run in.
func WithWorkDir(dir string) Option {
	return func(f *Form) { f.workDir = dir }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
			f.navOpts = append(f.navOpts, navigator.WithClock(now))
		}
	}
}

// WithNavigatorOptions passes options through to the navigator.
func WithNavigatorOptions(opts ...navigator.Option) Option {
	return func(f *Form) { f.navOpts = append(f.navOpts, opts...) }
}

// New registers every step of def, seeds the answers from field defaults and
// derives each step's validity from them.
func New(ctx context.Context, def *definition.Definition, opts ...Option) (*Form, error) {
	if def == nil || len(def.Steps) == 0 {
		return nil, definition.ErrNoSteps
	}

	f := &Form{
		def:       def,
		now:       time.Now,
		direction: navigator.Forward,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.run == "" {
		f.run = slug.Make(def.Name + " " + f.now().Format("20060102 150405"))
	}

	f.nav = navigator.New(f.navOpts...)
	for i, step := range def.Steps {
		f.nav.RegisterStep(navigator.StepID(step.ID), i, step.Title)
	}
	f.resetAnswers()
	f.syncValidity()

	logger.Info("Started form %q run %s (%d steps)", def.Name, f.run, len(def.Steps))
	f.publish(ctx, Event{Type: EventStart, Step: def.Steps[0].ID, Answers: f.Answers()})
	return f, nil
}

// Definition returns the form definition.
func (f *Form) Definition() *definition.Definition { return f.def }

// RunID returns the run id.
func (f *Form) RunID() string { return f.run }

// Navigator returns the underlying navigator.
func (f *Form) Navigator() *navigator.Navigator { return f.nav }

// Snapshot returns the navigator state.
func (f *Form) Snapshot() navigator.Snapshot { return f.nav.Snapshot() }

// Subscribe forwards navigator changes to h.
func (f *Form) Subscribe(h navigator.Handler) func() { return f.nav.Subscribe(h) }

// Direction returns the direction of the last transition.
func (f *Form) Direction() navigator.Direction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.direction
}

// Submitted reports whether the form has been submitted since the last reset.
func (f *Form) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

// HookOutput returns the output of the most recent hook that printed anything.
func (f *Form) HookOutput() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hookOutput
}

// CurrentStep returns the definition of the current step.
func (f *Form) CurrentStep() (*definition.StepDef, bool) {
	id, ok := f.nav.CurrentStepID()
	if !ok {
		return nil, false
	}
	return f.def.Step(string(id))
}

// Value returns the answer for field of step.
func (f *Form) Value(step, field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers[step][field]
}

// StepValues returns a copy of the answers of one step, keyed by field.
func (f *Form) StepValues(step string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := make(map[string]string, len(f.answers[step]))
	for k, v := range f.answers[step] {
		values[k] = v
	}
	return values
}

// Answers returns every answer keyed "step.field".
func (f *Form) Answers() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flatAnswersLocked()
}

func (f *Form) flatAnswersLocked() map[string]string {
	out := make(map[string]string)
	for step, fields := range f.answers {
		for field, v := range fields {
			out[step+"."+field] = v
		}
	}
	return out
}

// Errors returns the validation errors of step from the last check, keyed by
// field.
func (f *Form) Errors(step string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.errors[step]))
	for k, v := range f.errors[step] {
		errs[k] = v
	}
	return errs
}

// SetValue stores an answer and pushes the step's resulting validity into
// the navigator.
func (f *Form) SetValue(ctx context.Context, step, field, value string) error {
	def, ok := f.def.Step(step)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	if _, ok := def.Field(field); !ok {
		return fmt.Errorf("%w: %q in step %q", ErrUnknownField, field, step)
	}

	f.mu.Lock()
	f.answers[step][field] = value
	values := make(map[string]string, len(f.answers[step]))
	for k, v := range f.answers[step] {
		values[k] = v
	}
	f.mu.Unlock()

	res := def.Validate(values)
	f.setErrors(step, res.Errors)
	f.nav.SetStepValidity(navigator.StepID(step), res.Valid)

	f.publish(ctx, Event{Type: EventAnswer, Step: step, Field: field, Value: value})
	return nil
}

// Status is a serialisable view of a run.
type Status struct {
	Form      string              `json:"form"`
	Run       string              `json:"run"`
	Submitted bool                `json:"submitted"`
	Direction navigator.Direction `json:"direction"`
	State     navigator.Snapshot  `json:"state"`
	Answers   map[string]string   `json:"answers"`
	// Errors holds the current step's validation errors.
	Errors map[string]string `json:"errors,omitempty"`
}

// Status returns the current status of the run.
func (f *Form) Status() Status {
	state := f.nav.Snapshot()
	st := Status{
		Form:      f.def.Name,
		Run:       f.run,
		Submitted: f.Submitted(),
		Direction: f.Direction(),
		State:     state,
		Answers:   f.Answers(),
	}
	if state.HasCurrent {
		if errs := f.Errors(string(state.CurrentStepID)); len(errs) > 0 {
			st.Errors = errs
		}
	}
	return st
}

// Summary renders the completion summary.
func (f *Form) Summary() string {
	vars := template.VariablesFor(f.def, f.Answers(), f.nav.Progress())
	vars.Run = f.run
	if id, ok := f.nav.CurrentStepID(); ok {
		vars.Step = string(id)
	}
	return template.Render(template.SummaryTemplate(f.def), vars)
}

func (f *Form) resetAnswers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = make(map[string]map[string]string, len(f.def.Steps))
	f.errors = make(map[string]map[string]string, len(f.def.Steps))
	for i := range f.def.Steps {
		step := &f.def.Steps[i]
		f.answers[step.ID] = step.Defaults()
	}
}

// syncValidity recomputes every step's validity from the stored answers
// without recording errors, so untouched steps are not shown as failing.
func (f *Form) syncValidity() {
	for i := range f.def.Steps {
		step := &f.def.Steps[i]
		res := step.Validate(f.StepValues(step.ID))
		f.nav.SetStepValidity(navigator.StepID(step.ID), res.Valid)
	}
}

func (f *Form) setErrors(step string, errs map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(errs) == 0 {
		delete(f.errors, step)
		return
	}
	f.errors[step] = errs
}

func (f *Form) publish(ctx context.Context, e Event) {
	if f.publisher == nil {
		return
	}
	e.Form = f.def.Name
	e.Run = f.run
	if e.Timestamp.IsZero() {
		e.Timestamp = f.now()
	}
	if err := f.publisher.Publish(ctx, e); err != nil {
		logger.Warn("Failed to publish %s event for run %s: %v", e.Type, f.run, err)
	}
}

// runHook executes hook for step and records its output.
func (f *Form) runHook(ctx context.Context, hook *hooks.HookConfig, step string, dir navigator.Direction) (hooks.Result, error) {
	if hook == nil {
		return hooks.Result{OK: true}, nil
	}
	res, err := hooks.Execute(ctx, hook, f.workDir, hooks.Variables{
		Form:      f.def.Name,
		Step:      step,
		Direction: string(dir),
		Answers:   f.Answers(),
	})
	if err != nil {
		return res, err
	}
	if res.Output != "" {
		f.mu.Lock()
		f.hookOutput = res.Output
		f.mu.Unlock()
	}
	return res, nil
}
