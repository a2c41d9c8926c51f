// Package ledger provides durable storage for orchestration outcomes.
// Every completed run appends one Outcome per workflow so that later
// audits can answer what ran, when, and how it went.
package ledger

import (
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// Outcome classifications.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)

// Outcome is one recorded orchestration result.
type Outcome struct {
	ID           int64
	TaskType     string              // role or synthetic kind, e.g. "scout", "workflow"
	WorkflowType models.WorkflowType // classified workflow category
	Summary      string              // truncated human-readable summary
	Outcome      string              // success, failure, or partial
	Notes        string              // failure details or warnings, optional
	DurationMs   int64
	CreatedAt    time.Time
}

// Ledger records and retrieves outcomes. Implementations must be safe
// for concurrent use; RecordOutcome is called from the aggregator while
// tasks may still be reporting.
type Ledger interface {
	RecordOutcome(o *Outcome) error
	Recent(limit int) ([]*Outcome, error)
	Close() error
}

// Nop is a Ledger that records nothing. Used when persistence is
// disabled or the store failed to open.
type Nop struct{}

func (Nop) RecordOutcome(*Outcome) error { return nil }

func (Nop) Recent(int) ([]*Outcome, error) { return nil, nil }

func (Nop) Close() error { return nil }
