// Package journal records form events in JetStream and rebuilds the story
// of a run from them. It never restores a live form.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/sway/internal/form"
	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/nats"
	"github.com/mark3labs/sway/internal/navigator"
	"github.com/nats-io/nats.go/jetstream"
)

// ErrRunNotFound is returned when a run has no recorded events.
var ErrRunNotFound = errors.New("run not found")

// batchSize is the number of messages fetched per round trip.
const batchSize = 1000

// Store publishes form events and reads them back.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a Store on the sway_events stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// Publish appends e to the journal under sway.<run>.<type>.
func (s *Store) Publish(ctx context.Context, e form.Event) error {
	if err := nats.ValidateRunID(e.Run); err != nil {
		return err
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(e.Run, string(e.Type))
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return fmt.Errorf("failed to publish event: %w", err)
	}
	logger.Debug("Published %s event for run %s: seq=%d", e.Type, e.Run, ack.Sequence)
	return nil
}

// Snapshot is the state of the answers right after an event that moved or
// finished the run.
type Snapshot struct {
	Seq     uint64            `json:"seq"`
	Type    form.EventType    `json:"type"`
	Step    string            `json:"step"`
	At      time.Time         `json:"at"`
	Answers map[string]string `json:"answers"`
}

// Run is the history of one form run, rebuilt from its events.
type Run struct {
	ID          string                      `json:"id"`
	Form        string                      `json:"form"`
	Started     time.Time                   `json:"started"`
	Updated     time.Time                   `json:"updated"`
	Events      int                         `json:"events"`
	CurrentStep string                      `json:"current_step"`
	Transitions []navigator.NavigationEvent `json:"transitions"`
	Snapshots   []Snapshot                  `json:"snapshots"`
	Answers     map[string]string           `json:"answers"`
	Submitted   bool                        `json:"submitted"`
	SubmittedAt time.Time                   `json:"submitted_at,omitempty"`
}

// Apply folds one event into the run.
func (r *Run) Apply(seq uint64, e form.Event) {
	r.Events++
	if r.Form == "" {
		r.Form = e.Form
	}
	if r.Started.IsZero() || e.Type == form.EventStart {
		r.Started = e.Timestamp
	}
	r.Updated = e.Timestamp
	if r.Answers == nil {
		r.Answers = make(map[string]string)
	}

	switch e.Type {
	case form.EventStart:
		r.CurrentStep = e.Step
		r.Answers = copyAnswers(e.Answers)
		r.snapshot(seq, e)
	case form.EventAnswer:
		r.Answers[e.Step+"."+e.Field] = e.Value
	case form.EventStepChange:
		r.CurrentStep = e.Step
		if e.Navigation != nil {
			r.Transitions = append(r.Transitions, *e.Navigation)
		}
		if e.Answers != nil {
			r.Answers = copyAnswers(e.Answers)
		}
		r.snapshot(seq, e)
	case form.EventSubmit:
		r.Submitted = true
		r.SubmittedAt = e.Timestamp
		if e.Answers != nil {
			r.Answers = copyAnswers(e.Answers)
		}
		r.snapshot(seq, e)
	case form.EventReset:
		r.CurrentStep = e.Step
		r.Submitted = false
		r.SubmittedAt = time.Time{}
		r.Transitions = nil
		r.Answers = copyAnswers(e.Answers)
		r.snapshot(seq, e)
	default:
		logger.Debug("Ignoring unknown event type %q in run %s", e.Type, r.ID)
	}
}

func (r *Run) snapshot(seq uint64, e form.Event) {
	r.Snapshots = append(r.Snapshots, Snapshot{
		Seq:     seq,
		Type:    e.Type,
		Step:    e.Step,
		At:      e.Timestamp,
		Answers: copyAnswers(r.Answers),
	})
}

func copyAnswers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// LoadRun replays every event of run. Malformed events are skipped.
func (s *Store) LoadRun(ctx context.Context, run string) (*Run, error) {
	if err := nats.ValidateRunID(run); err != nil {
		return nil, err
	}
	logger.Debug("Loading run: %s", run)

	r := &Run{ID: run, Answers: make(map[string]string)}
	err := s.replay(ctx, nats.SubjectForRun(run), func(seq uint64, e form.Event) {
		r.Apply(seq, e)
	})
	if err != nil {
		return nil, err
	}
	if r.Events == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, run)
	}
	logger.Debug("Run %s loaded: %d events, %d transitions", run, r.Events, len(r.Transitions))
	return r, nil
}

// RunInfo summarises a run for listings.
type RunInfo struct {
	ID        string    `json:"id"`
	Form      string    `json:"form"`
	Started   time.Time `json:"started"`
	Updated   time.Time `json:"updated"`
	Events    int       `json:"events"`
	Submitted bool      `json:"submitted"`
}

// ListRuns returns every recorded run, most recently updated first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	runs := make(map[string]*Run)
	err := s.replay(ctx, nats.SubjectAll, func(seq uint64, e form.Event) {
		r, ok := runs[e.Run]
		if !ok {
			r = &Run{ID: e.Run}
			runs[e.Run] = r
		}
		r.Apply(seq, e)
	})
	if err != nil {
		return nil, err
	}

	infos := make([]RunInfo, 0, len(runs))
	for _, r := range runs {
		infos = append(infos, RunInfo{
			ID:        r.ID,
			Form:      r.Form,
			Started:   r.Started,
			Updated:   r.Updated,
			Events:    r.Events,
			Submitted: r.Submitted,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Updated.Equal(infos[j].Updated) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Updated.After(infos[j].Updated)
	})
	return infos, nil
}

// replay feeds every event on subject to fn in stream order.
func (s *Store) replay(ctx context.Context, subject string, fn func(seq uint64, e form.Event)) error {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: subject,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		logger.Error("Failed to create consumer for %s: %v", subject, err)
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	malformed := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var seq uint64
			if meta, err := msg.Metadata(); err == nil {
				seq = meta.Sequence.Stream
			}

			var e form.Event
			if err := json.Unmarshal(msg.Data(), &e); err != nil {
				malformed++
				logger.Warn("Skipping malformed event (seq=%d): %v", seq, err)
				_ = msg.Ack()
				continue
			}
			fn(seq, e)
			_ = msg.Ack()
		}
		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed events on %s", malformed, subject)
	}
	return nil
}
