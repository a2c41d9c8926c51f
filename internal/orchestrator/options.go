package orchestrator

import (
	"context"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/classify"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/ledger"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/planner"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/roles"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPauseHook installs a function the scheduler calls at every phase
// boundary; it blocks while a pause is in effect and returns an error
// to stop the run. control.Watcher.WaitWhilePaused fits this signature.
func WithPauseHook(fn func(context.Context) error) Option {
	return func(o *Orchestrator) {
		o.pauseWait = fn
	}
}

// WithMaxParallel bounds concurrent task execution within a phase.
// Values below 1 keep the default.
func WithMaxParallel(n int) Option {
	return func(o *Orchestrator) {
		if n >= 1 {
			o.maxParallel = n
		}
	}
}

// WithSkipDependentsOnFailure makes the scheduler skip tasks whose
// dependencies failed instead of dispatching them anyway.
func WithSkipDependentsOnFailure(skip bool) Option {
	return func(o *Orchestrator) {
		o.skipDependents = skip
	}
}

// WithTimeouts overrides the per-role task timeouts.
func WithTimeouts(t config.TimeoutsConfig) Option {
	return func(o *Orchestrator) {
		o.timeouts = t
	}
}

// WithLedger attaches an outcome ledger. Nil is ignored.
func WithLedger(l ledger.Ledger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.ledger = l
		}
	}
}

// WithLogger attaches a debug logger. Nil is ignored.
func WithLogger(l *DebugLogger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRoles overrides the role prompt table.
func WithRoles(t *roles.Table) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.roles = t
		}
	}
}

// WithClassifier overrides the workflow classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithPlanner overrides the plan constructor.
func WithPlanner(p *planner.Planner) Option {
	return func(o *Orchestrator) {
		o.planner = p
	}
}

// WithEventBuffer sets the event channel capacity.
func WithEventBuffer(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.events = make(chan Event, n)
		}
	}
}
