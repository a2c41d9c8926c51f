// Package models defines the shared data structures for workflow orchestration.
package models

import "time"

// Role identifies the specialist an executed task is delegated to.
// The set is closed: the planner only ever assigns these values, and the
// role tables map each of them to a prompt template and an allowed tool set.
type Role string

const (
	// RoleScout locates PHI exposures and gathers context.
	RoleScout Role = "scout"
	// RoleAnalyst performs root-cause analysis on findings.
	RoleAnalyst Role = "analyst"
	// RoleEngineer implements filter and rule changes.
	RoleEngineer Role = "engineer"
	// RoleTester verifies redaction behavior after a change.
	RoleTester Role = "tester"
	// RoleAuditor assesses residual compliance risk.
	RoleAuditor Role = "auditor"
	// RoleSetup prepares environments and integrations.
	RoleSetup Role = "setup"
)

// AllRoles lists every known role in a stable order.
var AllRoles = []Role{RoleScout, RoleAnalyst, RoleEngineer, RoleTester, RoleAuditor, RoleSetup}

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleScout, RoleAnalyst, RoleEngineer, RoleTester, RoleAuditor, RoleSetup:
		return true
	default:
		return false
	}
}

// Priority is a scheduling hint used to order dispatch within a phase when
// the concurrency bound is saturated. It never affects correctness.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
	PriorityLow      Priority = "low"
)

// Weight returns a sortable weight for the priority; higher dispatches first.
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	case PriorityLow:
		return 0
	default:
		return 1
	}
}

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	default:
		return false
	}
}

// Task is one unit of delegated work inside a plan.
// Tasks are immutable once the planner has constructed them; execution
// state lives in the scheduler, never on the task.
type Task struct {
	// ID is unique within the plan.
	ID string `json:"id"`
	// Role selects the prompt template and allowed tool set.
	Role Role `json:"role"`
	// Prompt is the instruction text for the executor capability.
	Prompt string `json:"prompt"`
	// Context carries auxiliary data (file paths, counts, prior findings).
	Context map[string]any `json:"context,omitempty"`
	// Priority is the intra-phase dispatch tie-break.
	Priority Priority `json:"priority"`
	// Timeout is the maximum duration allowed for execution.
	Timeout time.Duration `json:"timeout"`
	// DependsOn lists task IDs that must belong to a strictly earlier phase.
	DependsOn []string `json:"depends_on,omitempty"`
	// Phase is the zero-based index of the phase this task runs in.
	Phase int `json:"phase"`
}
