package models

import "time"

// TokenUsage holds informational token counters for one execution.
type TokenUsage struct {
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
}

// Total returns the combined token count.
func (u TokenUsage) Total() int64 {
	return u.Input + u.Output
}

// Findings is the structured payload a capability may attach to a result,
// distinct from the free-text output.
type Findings struct {
	// Warnings flags unresolved risk; a non-empty list marks the
	// task outcome as partial during aggregation.
	Warnings []string `json:"warnings,omitempty"`
	// Detections is the number of PHI hits reported.
	Detections int `json:"detections,omitempty"`
	// Files lists the files the task touched or examined.
	Files []string `json:"files,omitempty"`
}

// Result is the outcome of one executed task. It is created exactly once
// by the phase runner and never mutated afterwards.
type Result struct {
	// TaskID and Role are copied from the task for traceability.
	TaskID string `json:"task_id"`
	Role   Role   `json:"role"`
	// Success reports whether the task reached a successful terminal state.
	Success bool `json:"success"`
	// Output holds the capability's text response when Success is true.
	Output string `json:"output,omitempty"`
	// Error holds the failure message when Success is false.
	Error string `json:"error,omitempty"`
	// ExecutionTime is the wall-clock duration of the attempt,
	// populated even on failure.
	ExecutionTime time.Duration `json:"execution_time"`
	// TokensUsed is informational only.
	TokensUsed *TokenUsage `json:"tokens_used,omitempty"`
	// Findings is the optional structured payload.
	Findings *Findings `json:"findings,omitempty"`
}

// DurationMs returns the execution time in whole milliseconds, the unit
// the outcome ledger records.
func (r Result) DurationMs() int64 {
	return r.ExecutionTime.Milliseconds()
}
