package orchestrator

import (
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// EventType represents the type of engine event.
type EventType string

const (
	// EventTaskQueued indicates a task is ready and queued for execution.
	EventTaskQueued EventType = "task_queued"
	// EventTaskStarted indicates a task has started execution.
	EventTaskStarted EventType = "task_started"
	// EventTaskCompleted indicates a task completed successfully.
	EventTaskCompleted EventType = "task_completed"
	// EventTaskFailed indicates a task failed, timed out, or was cancelled.
	EventTaskFailed EventType = "task_failed"
	// EventPhaseStarted indicates a plan phase has begun.
	EventPhaseStarted EventType = "phase_started"
	// EventPhaseCompleted indicates a plan phase has finished.
	EventPhaseCompleted EventType = "phase_completed"
	// EventRunCompleted indicates the whole orchestration run is done.
	EventRunCompleted EventType = "run_completed"
)

// Event represents a progress event emitted by the engine.
// These events drive the TUI and log output.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// TaskID is the ID of the related task, if applicable.
	TaskID string
	// Role is the specialist role of the related task, if applicable.
	Role models.Role
	// Phase is the zero-based phase index, if applicable.
	Phase int
	// Message provides additional context about the event.
	Message string
	// Err contains failure details for task_failed events.
	Err string
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emitFunc delivers an event; implementations must never block.
type emitFunc func(Event)
