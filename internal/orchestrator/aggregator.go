package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/ledger"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// summaryTruncateLen bounds per-task output recorded in the ledger.
const summaryTruncateLen = 200

// Aggregator condenses phase results into a run summary and records
// outcomes to the ledger. Ledger write failures are logged, never
// propagated; a run's verdict does not depend on persistence.
type Aggregator struct {
	ledger ledger.Ledger
	logger *DebugLogger
}

// NewAggregator creates an aggregator. A nil ledger records nothing.
func NewAggregator(l ledger.Ledger, logger *DebugLogger) *Aggregator {
	if l == nil {
		l = ledger.Nop{}
	}
	return &Aggregator{ledger: l, logger: logger}
}

// Summarize builds the human-readable run summary. A run with any
// failed task alongside successes is reported as degraded; a run where
// nothing succeeded is reported as failed.
func (a *Aggregator) Summarize(workflow models.WorkflowType, phases [][]models.Result) string {
	succeeded, failedCount, warnings := tally(phases)
	total := succeeded + failedCount

	var b strings.Builder
	fmt.Fprintf(&b, "Workflow %s %s: %d/%d tasks succeeded", workflow, verdict(succeeded, failedCount), succeeded, total)
	if warnings > 0 {
		fmt.Fprintf(&b, ", %d warnings", warnings)
	}
	b.WriteString("\n")

	for phaseIdx, results := range phases {
		fmt.Fprintf(&b, "\nPhase %d:\n", phaseIdx)
		for _, r := range results {
			status := "ok"
			if !r.Success {
				status = "failed: " + r.Error
			} else if r.Findings != nil && len(r.Findings.Warnings) > 0 {
				status = fmt.Sprintf("ok with %d warnings", len(r.Findings.Warnings))
			}
			fmt.Fprintf(&b, "  %s (%s, %s): %s\n", r.TaskID, r.Role, r.ExecutionTime.Round(time.Millisecond), status)
		}
	}

	return b.String()
}

// RecordRun writes one ledger outcome per task plus a workflow-level
// outcome covering the whole run.
func (a *Aggregator) RecordRun(workflow models.WorkflowType, phases [][]models.Result, duration time.Duration) {
	for _, results := range phases {
		for _, r := range results {
			a.record(&ledger.Outcome{
				TaskType:     string(r.Role),
				WorkflowType: workflow,
				Summary:      truncate(firstNonEmpty(r.Output, r.Error), summaryTruncateLen),
				Outcome:      outcomeFor(r),
				Notes:        notesFor(r),
				DurationMs:   r.DurationMs(),
			})
		}
	}

	succeeded, failedCount, _ := tally(phases)
	overall := ledger.OutcomeSuccess
	switch {
	case succeeded == 0 && failedCount > 0:
		overall = ledger.OutcomeFailure
	case failedCount > 0:
		overall = ledger.OutcomePartial
	}
	a.record(&ledger.Outcome{
		TaskType:     "workflow",
		WorkflowType: workflow,
		Summary:      fmt.Sprintf("%s %s", workflow, verdict(succeeded, failedCount)),
		Outcome:      overall,
		DurationMs:   duration.Milliseconds(),
	})
}

func (a *Aggregator) record(o *ledger.Outcome) {
	if err := a.ledger.RecordOutcome(o); err != nil {
		a.logger.Log("ledger write failed: %v", err)
	}
}

// outcomeFor classifies one task result: failure on error, partial
// when the task succeeded but surfaced warnings, success otherwise.
func outcomeFor(r models.Result) string {
	switch {
	case !r.Success:
		return ledger.OutcomeFailure
	case r.Findings != nil && len(r.Findings.Warnings) > 0:
		return ledger.OutcomePartial
	default:
		return ledger.OutcomeSuccess
	}
}

func notesFor(r models.Result) string {
	if !r.Success {
		return r.Error
	}
	if r.Findings != nil && len(r.Findings.Warnings) > 0 {
		return strings.Join(r.Findings.Warnings, "; ")
	}
	return ""
}

func verdict(succeeded, failed int) string {
	switch {
	case failed == 0:
		return "completed"
	case succeeded == 0:
		return "failed"
	default:
		return "degraded"
	}
}

func tally(phases [][]models.Result) (succeeded, failed, warnings int) {
	for _, results := range phases {
		for _, r := range results {
			if r.Success {
				succeeded++
				if r.Findings != nil {
					warnings += len(r.Findings.Warnings)
				}
			} else {
				failed++
			}
		}
	}
	return succeeded, failed, warnings
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
