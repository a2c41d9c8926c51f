package orchestrator

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/provider"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/roles"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// defaultTaskTimeout applies when a task carries no timeout of its own.
const defaultTaskTimeout = 5 * time.Minute

// PhaseRunner executes one phase's tasks concurrently, bounded by
// maxParallel. Every submitted task produces exactly one Result: a
// backend fault, timeout, or cancellation becomes a failed Result
// rather than an error return.
type PhaseRunner struct {
	capability  provider.Capability
	roles       *roles.Table
	maxParallel int
	logger      *DebugLogger
	emit        emitFunc
}

// NewPhaseRunner creates a runner. A maxParallel of zero or less means
// unbounded by the runner (callers normally pass the configured bound).
func NewPhaseRunner(capability provider.Capability, table *roles.Table, maxParallel int, logger *DebugLogger, emit emitFunc) *PhaseRunner {
	if table == nil {
		table = roles.Defaults()
	}
	if emit == nil {
		emit = func(Event) {}
	}
	return &PhaseRunner{
		capability:  capability,
		roles:       table,
		maxParallel: maxParallel,
		logger:      logger,
		emit:        emit,
	}
}

// Run executes all tasks and blocks until every dispatched task has
// reported. Results are returned in the input task order. Higher
// priority tasks are dispatched first; ties keep their input order.
// On context cancellation, undispatched tasks become failed Results
// with error "cancelled" and Run still returns a Result per task.
func (r *PhaseRunner) Run(ctx context.Context, tasks []models.Task) []models.Result {
	if len(tasks) == 0 {
		return nil
	}

	// Dispatch order is priority-major, input-order-minor; slots keep
	// the caller's order regardless.
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tasks[order[a]].Priority.Weight() > tasks[order[b]].Priority.Weight()
	})

	slots := make([]models.Result, len(tasks))

	sem := make(chan struct{}, r.bound(len(tasks)))
	done := make(chan int, len(tasks))
	dispatched := 0

dispatch:
	for _, idx := range order {
		task := tasks[idx]
		r.emit(Event{Type: EventTaskQueued, TaskID: task.ID, Role: task.Role, Phase: task.Phase, Timestamp: time.Now()})

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break dispatch
		}

		dispatched++
		go func(idx int, task models.Task) {
			defer func() { <-sem }()
			slots[idx] = r.runTask(ctx, task)
			done <- idx
		}(idx, task)
	}

	for i := 0; i < dispatched; i++ {
		<-done
	}

	// Anything never dispatched was cut off by cancellation.
	for i, task := range tasks {
		if slots[i].TaskID == "" {
			slots[i] = failedResult(task, "cancelled", 0)
			r.emit(Event{Type: EventTaskFailed, TaskID: task.ID, Role: task.Role, Phase: task.Phase, Err: "cancelled", Timestamp: time.Now()})
		}
	}

	return slots
}

func (r *PhaseRunner) bound(phaseSize int) int {
	if r.maxParallel > 0 {
		return r.maxParallel
	}
	return phaseSize
}

// runTask executes one task under its timeout and maps every failure
// shape onto a Result. The capability call runs in its own goroutine so
// the deadline is enforced even against a capability that ignores its
// context: when the timer fires first, the task is forced to a failed
// Result and any late response is discarded.
func (r *PhaseRunner) runTask(ctx context.Context, task models.Task) models.Result {
	timeout := task.Timeout
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.emit(Event{Type: EventTaskStarted, TaskID: task.ID, Role: task.Role, Phase: task.Phase, Timestamp: time.Now()})
	r.logger.Log("task %s (%s) started, timeout %s", task.ID, task.Role, timeout)

	type execOut struct {
		resp *provider.Response
		err  error
	}
	// Buffered so a late capability return never leaks the goroutine.
	out := make(chan execOut, 1)

	start := time.Now()
	go func() {
		resp, err := r.capability.Execute(tctx, provider.Request{
			Role:         task.Role,
			SystemPrompt: r.roles.Prompt(task.Role),
			Prompt:       r.roles.BuildPrompt(task),
			Tools:        r.roles.Tools(task.Role),
			Timeout:      timeout,
		})
		out <- execOut{resp: resp, err: err}
	}()

	var result models.Result
	select {
	case o := <-out:
		elapsed := time.Since(start)
		if o.err != nil {
			result = r.failureFor(task, o.err, elapsed, timeout)
		} else {
			result = models.Result{
				TaskID:        task.ID,
				Role:          task.Role,
				Success:       true,
				Output:        o.resp.Text,
				ExecutionTime: elapsed,
				TokensUsed:    o.resp.TokensUsed,
				Findings:      o.resp.Findings,
			}
		}
	case <-tctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			result = failedResult(task, "cancelled", time.Since(start))
		} else {
			result = failedResult(task, "timeout", timeout)
		}
	}

	if !result.Success {
		r.emit(Event{Type: EventTaskFailed, TaskID: task.ID, Role: task.Role, Phase: task.Phase, Err: result.Error, Timestamp: time.Now()})
		r.logger.Log("task %s failed after %s: %s", task.ID, result.ExecutionTime, result.Error)
		return result
	}

	r.emit(Event{Type: EventTaskCompleted, TaskID: task.ID, Role: task.Role, Phase: task.Phase, Timestamp: time.Now()})
	r.logger.Log("task %s completed in %s", task.ID, result.ExecutionTime)
	return result
}

// failureFor maps an execution error onto the failed Result shape.
// A deadline hit reports error "timeout" with ExecutionTime pinned to
// the configured timeout; outer cancellation reports "cancelled".
func (r *PhaseRunner) failureFor(task models.Task, err error, elapsed, timeout time.Duration) models.Result {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return failedResult(task, "timeout", timeout)
	case errors.Is(err, context.Canceled):
		return failedResult(task, "cancelled", elapsed)
	default:
		return failedResult(task, err.Error(), elapsed)
	}
}

func failedResult(task models.Task, errMsg string, elapsed time.Duration) models.Result {
	return models.Result{
		TaskID:        task.ID,
		Role:          task.Role,
		Success:       false,
		Error:         errMsg,
		ExecutionTime: elapsed,
	}
}
