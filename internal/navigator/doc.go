// Package navigator implements the step-navigation state engine behind a
// multi-step form.
//
// A [Navigator] owns every piece of step state for one form instance: the
// per-step records, the ordered sequence of step ids, the current step and
// the append-only history of transitions. Callers mutate it only through its
// methods and read it through derived values that are recomputed on demand.
//
// # Lifecycle
//
//	nav := navigator.New()
//	nav.RegisterStep("contact", 0, "Contact") // first step activates itself
//	nav.RegisterStep("address", 1, "Address")
//	nav.RegisterStep("confirm", 2, "Confirm")
//
//	nav.SetStepValidity("contact", false)
//	nav.Next(false) // false: guarded and the current step is invalid
//	nav.Next(true)  // true: forced navigation ignores validity
//
// # Failure reporting
//
// Navigation never returns an error. Moving to an unknown step, moving past
// either end of the sequence or a guarded move off an invalid step all return
// false and leave the state untouched. Only [Navigator.ValidateAndNext]
// returns an error, for validator failures and context cancellation.
//
// # Sharp edges
//
// Registering an id that already exists replaces its record with a fresh
// one: valid, unvisited and inactive. Re-registering the current step
// therefore leaves the form with no active step until the next navigation.
// Registering a different id at an occupied index takes over the position
// only. The previous occupant keeps its record, can still be reached with
// [Navigator.GoToStep] and reports index -1 while current. Unregistering
// the current step leaves the current id dangling unless the navigator was
// built with [WithAutoAdvanceOnRemove].
//
// # Observation
//
// [Navigator.Subscribe] registers a [Handler] that receives a [Change] after
// every mutation. Handlers run synchronously once the mutation has finished
// and the internal lock is released, so they may call back into the
// navigator. Changes arrive in mutation order only when a single goroutine
// mutates the navigator. With concurrent writers two changes may be
// delivered out of order, so a handler that needs the latest state should
// read it again rather than trust [Change.State].
package navigator
