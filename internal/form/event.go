package form

import (
	"context"
	"time"

	"github.com/mark3labs/sway/internal/navigator"
)

// EventType identifies what happened to a form run.
type EventType string

const (
	EventStart      EventType = "start"
	EventAnswer     EventType = "answer"
	EventStepChange EventType = "step_change"
	EventSubmit     EventType = "submit"
	EventReset      EventType = "reset"
)

// Event is one entry in the record of a form run.
type Event struct {
	Type       EventType                  `json:"type"`
	Form       string                     `json:"form"`
	Run        string                     `json:"run"`
	Step       string                     `json:"step,omitempty"`
	Field      string                     `json:"field,omitempty"`
	Value      string                     `json:"value,omitempty"`
	Navigation *navigator.NavigationEvent `json:"navigation,omitempty"`
	Answers    map[string]string          `json:"answers,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// Publisher receives form events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
