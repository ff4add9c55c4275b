package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/sway/internal/definition"
	"github.com/mark3labs/sway/internal/form"
	"github.com/mark3labs/sway/internal/journal"
	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/nats"
	"github.com/mark3labs/sway/internal/navigator"
	"github.com/mark3labs/sway/internal/template"
)

// formFlags are shared by the commands that start a form run.
type formFlags struct {
	run     string
	summary string
	linear  bool
}

// formRun is a live form run together with its journal, if any.
type formRun struct {
	form   *form.Form
	events *nats.Embedded
}

func (r *formRun) Close() {
	if err := r.events.Close(); err != nil {
		logger.Warn("Error shutting down journal: %v", err)
	}
}

// loadDefinition reads a form definition and applies configuration and flag
// overrides to it.
func loadDefinition(path string, flags formFlags) (*definition.Definition, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.summary != "" {
		tmpl, err := template.GetTemplate(flags.summary)
		if err != nil {
			return nil, fmt.Errorf("failed to load summary template: %w", err)
		}
		def.Summary = tmpl
	}
	if cfg.Linear || flags.linear {
		def.Config.Linear = true
	}
	if !cfg.ShowProgress {
		def.Config.ShowProgress = false
	}
	if !cfg.ShowNavigation {
		def.Config.ShowNavigation = false
	}
	return def, nil
}

// openJournal starts the embedded NATS server under the data directory.
func openJournal(ctx context.Context) (*nats.Embedded, *journal.Store, error) {
	events, err := nats.Start(ctx, filepath.Join(cfg.DataDir, "nats"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start journal: %w", err)
	}
	return events, journal.NewStore(events.JetStream, events.Stream), nil
}

// startRun creates a form run for def. Hooks run in the directory of the
// definition file.
func startRun(ctx context.Context, def *definition.Definition, path string, flags formFlags) (*formRun, error) {
	opts := []form.Option{
		form.WithWorkDir(filepath.Dir(path)),
	}
	if flags.run != "" {
		if err := nats.ValidateRunID(flags.run); err != nil {
			return nil, err
		}
		opts = append(opts, form.WithRunID(flags.run))
	}
	if cfg.AutoAdvanceOnRemove {
		opts = append(opts, form.WithNavigatorOptions(navigator.WithAutoAdvanceOnRemove()))
	}

	rt := &formRun{}
	if cfg.Journal {
		events, store, err := openJournal(ctx)
		if err != nil {
			return nil, err
		}
		rt.events = events
		opts = append(opts, form.WithPublisher(store))
	}

	f, err := form.New(ctx, def, opts...)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.form = f
	return rt, nil
}
