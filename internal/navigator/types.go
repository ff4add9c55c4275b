package navigator

import (
	"context"
	"time"
)

// StepID identifies a step. It is opaque to the navigator. Callers with
// numeric ids format them, e.g. StepID(strconv.Itoa(n)).
type StepID string

// Direction is the direction of a transition between two steps.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// StepMetadata is the navigator's record for one registered step.
type StepMetadata struct {
	ID        StepID `json:"id"`
	Index     int    `json:"index"`
	Title     string `json:"title,omitempty"`
	IsValid   bool   `json:"is_valid"`
	IsVisited bool   `json:"is_visited"`
	IsActive  bool   `json:"is_active"`
}

// MetadataUpdate is a partial update for a step record. Nil fields are left
// unchanged. Id and index are not updatable; re-register the step instead.
type MetadataUpdate struct {
	Title     *string
	IsValid   *bool
	IsVisited *bool
	IsActive  *bool
}

// NavigationEvent records one successful transition.
type NavigationEvent struct {
	From      StepID    `json:"from"`
	To        StepID    `json:"to"`
	Direction Direction `json:"direction"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationResult is the outcome of validating a step.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Validator validates the current step before a guarded advance.
// Validate may block; it must honour ctx cancellation.
type Validator interface {
	Validate(ctx context.Context) (ValidationResult, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context) (ValidationResult, error)

// Validate calls f(ctx).
func (f ValidatorFunc) Validate(ctx context.Context) (ValidationResult, error) {
	return f(ctx)
}

// Snapshot is a consistent copy of every derived value, taken under a single
// lock. History is summarised by its length and last event; use
// Navigator.History for the full log.
type Snapshot struct {
	CurrentStepID    StepID           `json:"current_step_id,omitempty"`
	HasCurrent       bool             `json:"has_current"`
	CurrentStepIndex int              `json:"current_step_index"`
	TotalSteps       int              `json:"total_steps"`
	CurrentStep      *StepMetadata    `json:"current_step,omitempty"`
	HasPrevious      bool             `json:"has_previous"`
	HasNext          bool             `json:"has_next"`
	Progress         float64          `json:"progress"`
	IsComplete       bool             `json:"is_complete"`
	CanNavigateNext  bool             `json:"can_navigate_next"`
	Steps            []StepMetadata   `json:"steps"`
	HistoryLen       int              `json:"history_len"`
	LastEvent        *NavigationEvent `json:"last_event,omitempty"`
}

// slot is one position in the step order. Positions can be empty when
// steps register out of index order.
type slot struct {
	id StepID
	ok bool
}
