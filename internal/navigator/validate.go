package navigator

import (
	"context"
	"fmt"

	"github.com/mark3labs/sway/internal/logger"
)

// ValidateAndNext advances to the next step once the current step is known
// to be valid.
//
// With a nil validator it gates on the step's validity flag, like
// Next(false). Otherwise it awaits v.Validate. While validation is pending,
// validity writes for the step are held back and applied after the decision,
// so the flag cannot change underneath it. A failed validation, a validator
// error or a cancelled ctx leaves the navigation state as it was. Calls are
// serialised.
func (n *Navigator) ValidateAndNext(ctx context.Context, v Validator) (bool, error) {
	n.validateMu.Lock()
	defer n.validateMu.Unlock()

	if v == nil {
		n.mu.Lock()
		var m move
		if n.canNavigateNextLocked() {
			m = n.nextLocked(true)
		}
		state := n.snapshotLocked()
		n.mu.Unlock()

		n.publishMove(m, state)
		return m.ok, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	n.mu.Lock()
	if !n.hasNextLocked() {
		n.mu.Unlock()
		return false, nil
	}
	stepID := n.current
	n.pending, n.hasPending = stepID, true
	n.mu.Unlock()

	logger.Debug("Validating step %q before advancing", stepID)
	result, err := v.Validate(ctx)
	if err == nil {
		err = ctx.Err()
	}

	n.mu.Lock()
	n.hasPending = false
	deferred := n.deferredValid
	n.deferredValid = nil

	var m move
	switch {
	case err != nil:
		logger.Debug("Validation of step %q aborted: %v", stepID, err)
		err = fmt.Errorf("validating step %q: %w", stepID, err)
	case !n.hasCurrent || n.current != stepID:
		logger.Debug("Current step changed while validating %q", stepID)
	case !result.Valid:
		logger.Debug("Step %q failed validation (%d errors)", stepID, len(result.Errors))
	default:
		if rec, ok := n.steps[stepID]; ok {
			rec.IsValid = true
			m = n.nextLocked(true)
		}
	}

	if deferred != nil {
		if rec, ok := n.steps[stepID]; ok {
			rec.IsValid = *deferred
		}
	}
	state := n.snapshotLocked()
	n.mu.Unlock()

	if deferred != nil {
		n.publish(Change{Kind: ChangeUpdated, Step: stepID, State: state})
	}
	n.publishMove(m, state)
	return m.ok, err
}
