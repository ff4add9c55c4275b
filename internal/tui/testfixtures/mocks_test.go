package testfixtures

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/sway/internal/form"
)

func TestMockPublisher_Records(t *testing.T) {
	m := NewMockPublisher()
	ctx := context.Background()

	if err := m.Publish(ctx, form.Event{Type: form.EventStart, Step: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Publish(ctx, form.Event{Type: form.EventAnswer, Step: "a", Field: "x", Value: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types := m.Types()
	if len(types) != 2 || types[0] != form.EventStart || types[1] != form.EventAnswer {
		t.Errorf("unexpected types: %v", types)
	}
	if got := m.Events()[1].Value; got != "1" {
		t.Errorf("expected value 1, got %q", got)
	}
}

func TestMockPublisher_Error(t *testing.T) {
	m := NewMockPublisher()
	m.PublishErr = errors.New("boom")

	if err := m.Publish(context.Background(), form.Event{Type: form.EventStart}); err == nil {
		t.Fatal("expected error")
	}
	if len(m.Events()) != 1 {
		t.Errorf("failed publish should still be recorded")
	}

	m.Reset()
	if len(m.Events()) != 0 || m.PublishErr != nil {
		t.Errorf("reset should clear events and error")
	}
}

func TestMockPublisher_ThreadSafety(t *testing.T) {
	m := NewMockPublisher()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Publish(context.Background(), form.Event{Type: form.EventAnswer})
		}()
	}
	wg.Wait()
	if len(m.Events()) != 20 {
		t.Errorf("expected 20 events, got %d", len(m.Events()))
	}
}

func TestNewForm_PublishesStart(t *testing.T) {
	pub := NewMockPublisher()
	f := NewForm(t, SignupYAML, form.WithPublisher(pub))

	if f.RunID() != FixedRunID {
		t.Errorf("expected run id %q, got %q", FixedRunID, f.RunID())
	}
	types := pub.Types()
	if len(types) != 1 || types[0] != form.EventStart {
		t.Errorf("expected a single start event, got %v", types)
	}
	if got := pub.Events()[0].Timestamp; !got.Equal(FixedTime) {
		t.Errorf("expected fixed timestamp, got %v", got)
	}
}

func TestRender_TrimsCanvas(t *testing.T) {
	out := Render("hello\nworld")
	if out != "hello\nworld" {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestTrimLines(t *testing.T) {
	if got := TrimLines("a  \nb \n\n\n"); got != "a\nb" {
		t.Errorf("unexpected: %q", got)
	}
}
