package navigator

import (
	"runtime/debug"
	"sync"

	"github.com/mark3labs/sway/internal/logger"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeRegistered   ChangeKind = "registered"
	ChangeUnregistered ChangeKind = "unregistered"
	ChangeNavigated    ChangeKind = "navigated"
	ChangeUpdated      ChangeKind = "updated"
	ChangeReset        ChangeKind = "reset"
)

// Change describes one completed mutation. Event is set for navigations
// that were recorded in the history.
type Change struct {
	Kind  ChangeKind
	Step  StepID
	Event *NavigationEvent
	State Snapshot
}

// Handler receives changes.
type Handler func(Change)

type subscription struct {
	id      uint64
	handler Handler
}

// Subscribe registers h and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (n *Navigator) Subscribe(h Handler) func() {
	n.subsMu.Lock()
	n.nextSubID++
	id := n.nextSubID
	n.subs = append(n.subs, subscription{id: id, handler: h})
	n.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.subsMu.Lock()
			defer n.subsMu.Unlock()
			for i, sub := range n.subs {
				if sub.id == id {
					n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish delivers c to every handler in registration order. It must be
// called without n.mu held.
func (n *Navigator) publish(c Change) {
	n.subsMu.RLock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.subsMu.RUnlock()

	for _, sub := range subs {
		safeCall(sub.handler, c)
	}
}

// safeCall keeps one panicking handler from starving the others.
func safeCall(h Handler, c Change) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("navigator change handler panicked on %s: %v\n%s", c.Kind, r, debug.Stack())
		}
	}()
	h(c)
}
