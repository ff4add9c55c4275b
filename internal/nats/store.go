package nats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName    = "sway_events"
	subjectPrefix = "sway"

	// Retention for recorded runs.
	maxAge = 30 * 24 * time.Hour
)

// SubjectAll matches every event of every run.
const SubjectAll = subjectPrefix + ".>"

// SubjectForRun returns the wildcard subject for all events of a run.
// Example: "sway.signup-20261016.>"
func SubjectForRun(run string) string {
	return fmt.Sprintf("%s.%s.>", subjectPrefix, run)
}

// SubjectForEvent returns the subject for one event type of a run.
// Example: "sway.signup-20261016.step_change"
func SubjectForEvent(run, eventType string) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, run, eventType)
}

// ValidateRunID rejects ids that cannot be used as a single subject token.
func ValidateRunID(run string) error {
	if run == "" {
		return fmt.Errorf("run id is empty")
	}
	if strings.ContainsAny(run, ".*> \t\r\n") {
		return fmt.Errorf("run id %q contains characters not allowed in a subject", run)
	}
	return nil
}

// SetupStream creates or updates the stream that records every run.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{SubjectAll},
		Storage:  jetstream.FileStorage,
		MaxAge:   maxAge,
	})
}
