package testfixtures

import (
	"context"
	"sync"

	"github.com/mark3labs/sway/internal/form"
)

// MockPublisher is a thread-safe form.Publisher that records events.
type MockPublisher struct {
	mu     sync.Mutex
	events []form.Event

	// PublishErr, when set, is returned by Publish after recording.
	PublishErr error
}

// NewMockPublisher creates an empty MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish implements form.Publisher.
func (m *MockPublisher) Publish(ctx context.Context, e form.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.PublishErr
}

// Events returns a copy of every published event.
func (m *MockPublisher) Events() []form.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]form.Event, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the type of every published event in order.
func (m *MockPublisher) Types() []form.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]form.EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

// Reset clears recorded events.
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
	m.PublishErr = nil
}
