package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/navigator"
)

// Next advances one step. It returns ErrStepInvalid, with the step's errors
// recorded for display, when the current step does not validate.
func (f *Form) Next(ctx context.Context) error {
	f.op.Lock()
	defer f.op.Unlock()

	from, ok := f.nav.CurrentStepID()
	if !ok {
		return ErrNoCurrentStep
	}
	if !f.nav.HasNext() {
		return ErrNoStep
	}
	if !f.nav.CanNavigateNext() {
		f.recordErrors(string(from))
		return fmt.Errorf("%w: %s", ErrStepInvalid, from)
	}
	if err := f.checkExit(ctx, string(from)); err != nil {
		return err
	}
	if !f.nav.Next(true) {
		return ErrNoStep
	}
	return f.afterMove(ctx, string(from), navigator.Forward)
}

// ForceNext advances one step without checking validity or consulting the
// can_exit hook.
func (f *Form) ForceNext(ctx context.Context) error {
	f.op.Lock()
	defer f.op.Unlock()

	from, ok := f.nav.CurrentStepID()
	if !ok {
		return ErrNoCurrentStep
	}
	if !f.nav.Next(true) {
		return ErrNoStep
	}
	return f.afterMove(ctx, string(from), navigator.Forward)
}

// Previous moves back one step. It is never gated.
func (f *Form) Previous(ctx context.Context) error {
	f.op.Lock()
	defer f.op.Unlock()

	from, ok := f.nav.CurrentStepID()
	if !ok {
		return ErrNoCurrentStep
	}
	if !f.nav.Previous() {
		return ErrNoStep
	}
	return f.afterMove(ctx, string(from), navigator.Backward)
}

// GoTo jumps to step. In linear forms only visited steps and the step right
// after the current one are reachable, and the latter only while the current
// step is valid.
func (f *Form) GoTo(ctx context.Context, step string) error {
	f.op.Lock()
	defer f.op.Unlock()

	target, ok := f.nav.StepMetadata(navigator.StepID(step))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	from, hasFrom := f.nav.CurrentStepID()
	if hasFrom && from == target.ID {
		return nil
	}
	current := f.nav.CurrentStepIndex()

	if f.def.Config.Linear && !target.IsVisited {
		if target.Index != current+1 {
			return fmt.Errorf("%w: %q", ErrNotReachable, step)
		}
		if !f.nav.CanNavigateNext() {
			f.recordErrors(string(from))
			return fmt.Errorf("%w: %s", ErrStepInvalid, from)
		}
	}

	dir := navigator.Backward
	if target.Index > current {
		dir = navigator.Forward
		if hasFrom {
			if err := f.checkExit(ctx, string(from)); err != nil {
				return err
			}
		}
	}

	if !f.nav.GoToStep(target.ID) {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	return f.afterMove(ctx, string(from), dir)
}

// ValidateAndNext checks the current step against its field rules and the
// can_exit hook, then advances. A failed check returns ErrStepInvalid or
// ErrExitBlocked and leaves the position unchanged.
func (f *Form) ValidateAndNext(ctx context.Context) error {
	f.op.Lock()
	defer f.op.Unlock()

	from, ok := f.nav.CurrentStepID()
	if !ok {
		return ErrNoCurrentStep
	}
	step, ok := f.def.Step(string(from))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStep, from)
	}

	var blocked error
	validator := navigator.ValidatorFunc(func(ctx context.Context) (navigator.ValidationResult, error) {
		res := step.Validate(f.StepValues(step.ID))
		f.setErrors(step.ID, res.Errors)
		if !res.Valid {
			return res, nil
		}
		if err := f.checkExit(ctx, step.ID); err != nil {
			blocked = err
			return navigator.ValidationResult{Valid: false}, nil
		}
		return res, nil
	})

	moved, err := f.nav.ValidateAndNext(ctx, validator)
	switch {
	case err != nil:
		return err
	case blocked != nil:
		return blocked
	case !moved && !f.nav.HasNext():
		return ErrNoStep
	case !moved:
		return fmt.Errorf("%w: %s", ErrStepInvalid, from)
	}
	return f.afterMove(ctx, step.ID, navigator.Forward)
}

// Submit runs the on_submit hook and publishes the answers. The last step
// must be current and valid.
func (f *Form) Submit(ctx context.Context) error {
	f.op.Lock()
	defer f.op.Unlock()

	if !f.nav.IsComplete() {
		if id, ok := f.nav.CurrentStepID(); ok {
			f.recordErrors(string(id))
		}
		return ErrNotComplete
	}

	current, _ := f.nav.CurrentStepID()
	res, err := f.runHook(ctx, f.def.Hooks.Hooks.OnSubmit, string(current), navigator.Forward)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%w: %s", ErrSubmitFailed, strings.TrimSpace(res.Output))
	}

	f.mu.Lock()
	f.submitted = true
	f.mu.Unlock()

	logger.Info("Form %q run %s submitted", f.def.Name, f.run)
	f.publish(ctx, Event{Type: EventSubmit, Step: string(current), Answers: f.Answers()})
	return nil
}

// Reset restores the answers to their defaults and returns to the first
// step. Validity is then re-derived from the defaults.
func (f *Form) Reset(ctx context.Context) {
	f.op.Lock()
	defer f.op.Unlock()

	f.nav.Reset()
	f.resetAnswers()
	f.syncValidity()

	f.mu.Lock()
	f.submitted = false
	f.direction = navigator.Forward
	f.hookOutput = ""
	f.mu.Unlock()

	current, _ := f.nav.CurrentStepID()
	logger.Debug("Form %q run %s reset", f.def.Name, f.run)
	f.publish(ctx, Event{Type: EventReset, Step: string(current), Answers: f.Answers()})
}

// checkExit consults the can_exit hook before a forward move.
func (f *Form) checkExit(ctx context.Context, step string) error {
	res, err := f.runHook(ctx, f.def.Hooks.Hooks.CanExit, step, navigator.Forward)
	if err != nil {
		return err
	}
	if !res.OK {
		logger.Debug("can_exit blocked leaving step %q", step)
		return fmt.Errorf("%w: %s", ErrExitBlocked, strings.TrimSpace(res.Output))
	}
	return nil
}

// afterMove records the direction, runs on_exit and on_enter and publishes
// the transition. Hook failures never undo the move.
func (f *Form) afterMove(ctx context.Context, from string, dir navigator.Direction) error {
	f.mu.Lock()
	f.direction = dir
	f.mu.Unlock()

	to, _ := f.nav.CurrentStepID()
	snap := f.nav.Snapshot()

	if _, err := f.runHook(ctx, f.def.Hooks.Hooks.OnExit, from, dir); err != nil {
		return err
	}
	if _, err := f.runHook(ctx, f.def.Hooks.Hooks.OnEnter, string(to), dir); err != nil {
		return err
	}

	f.publish(ctx, Event{
		Type:       EventStepChange,
		Step:       string(to),
		Navigation: snap.LastEvent,
		Answers:    f.Answers(),
	})
	return nil
}

// recordErrors validates step so its errors can be shown.
func (f *Form) recordErrors(step string) {
	def, ok := f.def.Step(step)
	if !ok {
		return
	}
	res := def.Validate(f.StepValues(step))
	f.setErrors(step, res.Errors)
}
