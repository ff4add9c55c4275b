package navigator

import (
	"sync"
	"time"

	"github.com/mark3labs/sway/internal/logger"
)

// Navigator tracks the steps of one form instance. It is safe for concurrent
// use; every mutation completes before the next one starts.
type Navigator struct {
	mu         sync.Mutex
	steps      map[StepID]*StepMetadata
	order      []slot
	current    StepID
	hasCurrent bool
	history    []NavigationEvent

	now         func() time.Time
	autoAdvance bool

	// Guarded advance bookkeeping, see ValidateAndNext.
	validateMu    sync.Mutex
	pending       StepID
	hasPending    bool
	deferredValid *bool

	subsMu    sync.RWMutex
	subs      []subscription
	nextSubID uint64
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithClock overrides the time source used to stamp navigation events.
func WithClock(now func() time.Time) Option {
	return func(n *Navigator) {
		if now != nil {
			n.now = now
		}
	}
}

// WithAutoAdvanceOnRemove makes UnregisterStep activate a neighbouring step
// when the current step is removed, instead of leaving the current id
// dangling.
func WithAutoAdvanceOnRemove() Option {
	return func(n *Navigator) {
		n.autoAdvance = true
	}
}

// New creates an empty Navigator.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		steps: make(map[StepID]*StepMetadata),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// maxIndexGap bounds how far past the end of the order a step may be
// registered. Positions in between are left empty.
const maxIndexGap = 1024

// RegisterStep adds or replaces the step id at position index. The record
// is always replaced by a fresh one that is valid, unvisited and inactive,
// even when id is the current step. A different id already at index loses
// its position but keeps its record, and the current step is never changed
// except that index 0 is activated when no step is current.
func (n *Navigator) RegisterStep(id StepID, index int, title string) {
	if index < 0 {
		logger.Warn("Ignoring registration of step %q at negative index %d", id, index)
		return
	}

	n.mu.Lock()

	if index > len(n.order)+maxIndexGap {
		n.mu.Unlock()
		logger.Warn("Ignoring registration of step %q at index %d, order has %d positions", id, index, len(n.order))
		return
	}

	// A re-registered id leaves its previous position.
	for i, s := range n.order {
		if s.ok && s.id == id && i != index {
			n.order[i] = slot{}
		}
	}
	for len(n.order) <= index {
		n.order = append(n.order, slot{})
	}

	if prev := n.order[index]; prev.ok && prev.id != id {
		logger.Warn("Step %q displaced by %q at index %d", prev.id, id, index)
	}

	n.steps[id] = &StepMetadata{
		ID:      id,
		Index:   index,
		Title:   title,
		IsValid: true,
	}
	n.order[index] = slot{id: id, ok: true}
	logger.Debug("Registered step %q at index %d", id, index)

	var activated move
	if !n.hasCurrent && index == 0 {
		activated = n.goToStepLocked(id)
	}
	state := n.snapshotLocked()
	n.mu.Unlock()

	n.publish(Change{Kind: ChangeRegistered, Step: id, State: state})
	n.publishMove(activated, state)
}

// UnregisterStep removes the step. The order is compacted and the remaining
// records are renumbered. Removing the current step leaves the current id
// pointing at a missing record unless WithAutoAdvanceOnRemove is set.
func (n *Navigator) UnregisterStep(id StepID) {
	n.mu.Lock()

	_, known := n.steps[id]
	removedAt := -1
	compacted := make([]slot, 0, len(n.order))
	for _, s := range n.order {
		if !s.ok {
			continue
		}
		if s.id == id {
			removedAt = len(compacted)
			continue
		}
		compacted = append(compacted, s)
	}
	if !known && removedAt < 0 {
		n.mu.Unlock()
		return
	}

	delete(n.steps, id)
	n.order = compacted
	for i, s := range n.order {
		if rec, ok := n.steps[s.id]; ok {
			rec.Index = i
		}
	}
	logger.Debug("Unregistered step %q", id)

	var event *NavigationEvent
	if n.hasCurrent && n.current == id {
		if n.autoAdvance {
			event = n.advanceFromRemovedLocked(id, removedAt)
		} else {
			logger.Debug("Current step %q was unregistered; current step is dangling", id)
		}
	}
	state := n.snapshotLocked()
	n.mu.Unlock()

	n.publish(Change{Kind: ChangeUnregistered, Step: id, State: state})
	if event != nil {
		n.publish(Change{Kind: ChangeNavigated, Step: event.To, Event: event, State: state})
	}
}

// advanceFromRemovedLocked activates the step that slid into the removed
// step's position, or the one before it when the last step was removed.
func (n *Navigator) advanceFromRemovedLocked(removed StepID, removedAt int) *NavigationEvent {
	if len(n.order) == 0 || removedAt < 0 {
		n.current = ""
		n.hasCurrent = false
		return nil
	}

	pos, dir := removedAt, Forward
	if pos >= len(n.order) {
		pos, dir = len(n.order)-1, Backward
	}
	target := n.order[pos].id
	rec := n.steps[target]
	rec.IsActive = true
	rec.IsVisited = true
	n.current = target

	event := NavigationEvent{From: removed, To: target, Direction: dir, Timestamp: n.now()}
	n.history = append(n.history, event)
	logger.Debug("Auto-advanced from removed step %q to %q", removed, target)
	return &event
}

// GoToStep makes target the current step. It returns true without side
// effects when target is already current and false when target is not
// registered.
func (n *Navigator) GoToStep(target StepID) bool {
	n.mu.Lock()
	m := n.goToStepLocked(target)
	state := n.snapshotLocked()
	n.mu.Unlock()

	n.publishMove(m, state)
	return m.ok
}

// move is the outcome of a navigation attempt. moved is false for failures
// and for the idempotent no-op.
type move struct {
	ok    bool
	moved bool
	event *NavigationEvent
}

func (n *Navigator) publishMove(m move, state Snapshot) {
	if !m.moved {
		return
	}
	n.publish(Change{Kind: ChangeNavigated, Step: state.CurrentStepID, Event: m.event, State: state})
}

func (n *Navigator) goToStepLocked(target StepID) move {
	if n.hasCurrent && n.current == target {
		return move{ok: true}
	}

	rec, ok := n.steps[target]
	if !ok {
		return move{}
	}

	currentIndex := n.currentIndexLocked()
	targetIndex := n.indexOfLocked(target)
	direction := Backward
	if targetIndex > currentIndex {
		direction = Forward
	}

	previous, hadPrevious := n.current, n.hasCurrent
	if hadPrevious {
		if prev, ok := n.steps[previous]; ok {
			prev.IsActive = false
		}
	}

	rec.IsActive = true
	rec.IsVisited = true
	n.current = target
	n.hasCurrent = true

	if !hadPrevious {
		logger.Debug("Activated initial step %q", target)
		return move{ok: true, moved: true}
	}

	event := NavigationEvent{
		From:      previous,
		To:        target,
		Direction: direction,
		Timestamp: n.now(),
	}
	n.history = append(n.history, event)
	logger.Debug("Navigated %s from %q to %q", direction, previous, target)
	return move{ok: true, moved: true, event: &event}
}

// Next advances to the following step. With force false the move is
// refused while the current step is invalid. Next(true) is the unguarded
// default call shape.
func (n *Navigator) Next(force bool) bool {
	n.mu.Lock()
	m := n.nextLocked(force)
	state := n.snapshotLocked()
	n.mu.Unlock()

	n.publishMove(m, state)
	return m.ok
}

// NextGuarded is Next(false).
func (n *Navigator) NextGuarded() bool {
	return n.Next(false)
}

func (n *Navigator) nextLocked(force bool) move {
	if !n.hasNextLocked() {
		return move{}
	}
	if !force && !n.canNavigateNextLocked() {
		logger.Debug("Guarded next refused: step %q is invalid", n.current)
		return move{}
	}

	next := n.order[n.currentIndexLocked()+1]
	if !next.ok {
		return move{}
	}
	return n.goToStepLocked(next.id)
}

// Previous moves back one step. It is never validity gated.
func (n *Navigator) Previous() bool {
	n.mu.Lock()
	m := n.previousLocked()
	state := n.snapshotLocked()
	n.mu.Unlock()

	n.publishMove(m, state)
	return m.ok
}

func (n *Navigator) previousLocked() move {
	if !n.hasPreviousLocked() {
		return move{}
	}
	prev := n.order[n.currentIndexLocked()-1]
	if !prev.ok {
		return move{}
	}
	return n.goToStepLocked(prev.id)
}

// UpdateStepMetadata merges update into the record for id. Unknown ids are
// ignored.
func (n *Navigator) UpdateStepMetadata(id StepID, update MetadataUpdate) {
	n.mu.Lock()
	rec, ok := n.steps[id]
	if !ok {
		n.mu.Unlock()
		return
	}

	if update.Title != nil {
		rec.Title = *update.Title
	}
	if update.IsValid != nil {
		if n.hasPending && n.pending == id {
			v := *update.IsValid
			n.deferredValid = &v
		} else {
			rec.IsValid = *update.IsValid
		}
	}
	if update.IsVisited != nil {
		rec.IsVisited = *update.IsVisited
	}
	if update.IsActive != nil {
		rec.IsActive = *update.IsActive
	}
	state := n.snapshotLocked()
	n.mu.Unlock()

	n.publish(Change{Kind: ChangeUpdated, Step: id, State: state})
}

// SetStepValidity sets only the validity flag of id.
func (n *Navigator) SetStepValidity(id StepID, valid bool) {
	n.UpdateStepMetadata(id, MetadataUpdate{IsValid: &valid})
}

// Reset returns to a fresh, unvalidated state: the first step is current,
// visited and active, every step is invalid and the history is empty.
func (n *Navigator) Reset() {
	n.mu.Lock()

	var first StepID
	hasFirst := len(n.order) > 0 && n.order[0].ok
	if hasFirst {
		first = n.order[0].id
	}

	for id, rec := range n.steps {
		isFirst := hasFirst && id == first
		rec.IsValid = false
		rec.IsVisited = isFirst
		rec.IsActive = isFirst
	}

	n.current = first
	n.hasCurrent = hasFirst
	n.history = nil
	state := n.snapshotLocked()
	n.mu.Unlock()

	logger.Debug("Navigator reset, current step %q", first)
	n.publish(Change{Kind: ChangeReset, Step: first, State: state})
}
