package navigator

// Derived values are computed on every read from the current model. None of
// them walk the history.

func (n *Navigator) indexOfLocked(id StepID) int {
	for i, s := range n.order {
		if s.ok && s.id == id {
			return i
		}
	}
	return -1
}

func (n *Navigator) currentIndexLocked() int {
	if !n.hasCurrent {
		return -1
	}
	return n.indexOfLocked(n.current)
}

func (n *Navigator) currentRecordLocked() *StepMetadata {
	if !n.hasCurrent {
		return nil
	}
	return n.steps[n.current]
}

func (n *Navigator) hasPreviousLocked() bool {
	return n.currentIndexLocked() > 0
}

func (n *Navigator) hasNextLocked() bool {
	idx := n.currentIndexLocked()
	return idx >= 0 && idx < len(n.order)-1
}

func (n *Navigator) progressLocked() float64 {
	total := len(n.order)
	if total == 0 {
		return 0
	}
	return float64(n.currentIndexLocked()+1) / float64(total) * 100
}

func (n *Navigator) isCompleteLocked() bool {
	rec := n.currentRecordLocked()
	return n.currentIndexLocked() == len(n.order)-1 && rec != nil && rec.IsValid
}

func (n *Navigator) canNavigateNextLocked() bool {
	rec := n.currentRecordLocked()
	return rec != nil && rec.IsValid
}

func (n *Navigator) stepsLocked() []StepMetadata {
	steps := make([]StepMetadata, 0, len(n.order))
	for _, s := range n.order {
		if !s.ok {
			continue
		}
		if rec, ok := n.steps[s.id]; ok {
			steps = append(steps, *rec)
		}
	}
	return steps
}

func (n *Navigator) snapshotLocked() Snapshot {
	s := Snapshot{
		CurrentStepID:    n.current,
		HasCurrent:       n.hasCurrent,
		CurrentStepIndex: n.currentIndexLocked(),
		TotalSteps:       len(n.order),
		HasPrevious:      n.hasPreviousLocked(),
		HasNext:          n.hasNextLocked(),
		Progress:         n.progressLocked(),
		IsComplete:       n.isCompleteLocked(),
		CanNavigateNext:  n.canNavigateNextLocked(),
		Steps:            n.stepsLocked(),
		HistoryLen:       len(n.history),
	}
	if rec := n.currentRecordLocked(); rec != nil {
		cp := *rec
		s.CurrentStep = &cp
	}
	if len(n.history) > 0 {
		last := n.history[len(n.history)-1]
		s.LastEvent = &last
	}
	return s
}

// CurrentStepID returns the current step id. The boolean is false when no
// step is current.
func (n *Navigator) CurrentStepID() (StepID, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.hasCurrent
}

// CurrentStepIndex returns the position of the current step, or -1.
func (n *Navigator) CurrentStepIndex() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.currentIndexLocked()
}

// TotalSteps returns the length of the step order.
func (n *Navigator) TotalSteps() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.order)
}

// CurrentStepMetadata returns a copy of the current step's record.
func (n *Navigator) CurrentStepMetadata() (StepMetadata, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	rec := n.currentRecordLocked()
	if rec == nil {
		return StepMetadata{}, false
	}
	return *rec, true
}

// StepMetadata returns a copy of the record for id.
func (n *Navigator) StepMetadata(id StepID) (StepMetadata, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	rec, ok := n.steps[id]
	if !ok {
		return StepMetadata{}, false
	}
	return *rec, true
}

// Steps returns copies of all records in step order.
func (n *Navigator) Steps() []StepMetadata {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stepsLocked()
}

// HasPrevious reports whether a step precedes the current one.
func (n *Navigator) HasPrevious() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hasPreviousLocked()
}

// HasNext reports whether a step follows the current one.
func (n *Navigator) HasNext() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hasNextLocked()
}

// Progress returns completion as a percentage in [0, 100].
func (n *Navigator) Progress() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.progressLocked()
}

// IsComplete reports whether the last step is current and valid.
func (n *Navigator) IsComplete() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isCompleteLocked()
}

// CanNavigateNext reports whether the current step is valid.
func (n *Navigator) CanNavigateNext() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.canNavigateNextLocked()
}

// History returns a copy of the navigation history.
func (n *Navigator) History() []NavigationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	history := make([]NavigationEvent, len(n.history))
	copy(history, n.history)
	return history
}

// Snapshot returns every derived value from a single consistent read.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}
