package models

// WorkflowType is the closed classification of a user request. It selects
// which plan template applies.
type WorkflowType string

const (
	// WorkflowLeakFix repairs a filter that let PHI slip through.
	WorkflowLeakFix WorkflowType = "leak_fix"
	// WorkflowBatchScan fans out scouts over a set of files.
	WorkflowBatchScan WorkflowType = "batch_scan"
	// WorkflowComplianceAudit runs a structured compliance review.
	WorkflowComplianceAudit WorkflowType = "compliance_audit"
	// WorkflowFilterTuning adjusts detection thresholds and rules.
	WorkflowFilterTuning WorkflowType = "filter_tuning"
	// WorkflowSetup prepares an environment or integration.
	WorkflowSetup WorkflowType = "setup"
	// WorkflowCustom is the fallback for unmatched requests.
	WorkflowCustom WorkflowType = "custom"
)

// Valid returns true if the workflow type is a known value.
func (w WorkflowType) Valid() bool {
	switch w {
	case WorkflowLeakFix, WorkflowBatchScan, WorkflowComplianceAudit,
		WorkflowFilterTuning, WorkflowSetup, WorkflowCustom:
		return true
	default:
		return false
	}
}

// PlanMode is a descriptive label derived from phase shapes.
// The executor never branches on it.
type PlanMode string

const (
	// ModeSerial means every phase has exactly one task.
	ModeSerial PlanMode = "serial"
	// ModeParallel means the plan has exactly one phase.
	ModeParallel PlanMode = "parallel"
	// ModeHybrid is everything else.
	ModeHybrid PlanMode = "hybrid"
)

// Plan is the ordered list of phases produced for one workflow invocation.
// Each phase is a set of tasks with no intra-phase dependency edges.
// Plans are immutable once constructed by the planner.
type Plan struct {
	Type        WorkflowType `json:"type"`
	Mode        PlanMode     `json:"mode"`
	Phases      [][]Task     `json:"phases"`
	Description string       `json:"description"`
}

// DeriveMode computes the descriptive mode label for a phase layout:
// serial when every phase holds exactly one task, parallel when there is
// exactly one phase, hybrid otherwise. A single phase with a single task
// counts as serial.
func DeriveMode(phases [][]Task) PlanMode {
	serial := true
	for _, phase := range phases {
		if len(phase) != 1 {
			serial = false
			break
		}
	}
	if serial && len(phases) >= 1 {
		return ModeSerial
	}
	if len(phases) == 1 {
		return ModeParallel
	}
	return ModeHybrid
}

// TaskCount returns the total number of tasks across all phases.
func (p *Plan) TaskCount() int {
	n := 0
	for _, phase := range p.Phases {
		n += len(phase)
	}
	return n
}

// Tasks returns all tasks flattened in phase order.
func (p *Plan) Tasks() []Task {
	out := make([]Task, 0, p.TaskCount())
	for _, phase := range p.Phases {
		out = append(out, phase...)
	}
	return out
}
