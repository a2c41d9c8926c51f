package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// Scheduler walks a plan phase by phase with a strict barrier: phase
// N+1 does not start until every task in phase N has reported. Task
// failures never abort the run; by default later phases still execute,
// and with skipDependents enabled tasks whose dependencies failed are
// skipped with a synthetic failed Result instead of being dispatched.
type Scheduler struct {
	runner         *PhaseRunner
	skipDependents bool
	// pauseWait blocks at each phase boundary while a pause is in
	// effect; nil means no pause control.
	pauseWait func(context.Context) error
	logger    *DebugLogger
	emit      emitFunc
}

// NewScheduler creates a scheduler over the given runner.
func NewScheduler(runner *PhaseRunner, skipDependents bool, pauseWait func(context.Context) error, logger *DebugLogger, emit emitFunc) *Scheduler {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Scheduler{
		runner:         runner,
		skipDependents: skipDependents,
		pauseWait:      pauseWait,
		logger:         logger,
		emit:           emit,
	}
}

// Run executes the plan and returns one Result slice per phase, in
// phase task order. On cancellation it returns the results accumulated
// so far (the in-flight phase included, its remaining tasks marked
// cancelled) together with the context error.
func (s *Scheduler) Run(ctx context.Context, plan *models.Plan) ([][]models.Result, error) {
	phases := make([][]models.Result, 0, len(plan.Phases))
	failed := make(map[string]bool)

	for phaseIdx, tasks := range plan.Phases {
		if err := ctx.Err(); err != nil {
			return phases, err
		}
		if s.pauseWait != nil {
			if err := s.pauseWait(ctx); err != nil {
				return phases, err
			}
		}

		s.emit(Event{Type: EventPhaseStarted, Phase: phaseIdx, Message: fmt.Sprintf("%d tasks", len(tasks)), Timestamp: time.Now()})
		s.logger.Log("phase %d started (%d tasks)", phaseIdx, len(tasks))

		runnable, skipped := s.partition(tasks, failed)
		ran := s.runner.Run(ctx, runnable)

		// Reassemble in the plan's task order.
		byID := make(map[string]models.Result, len(ran))
		for _, r := range ran {
			byID[r.TaskID] = r
		}
		for id, r := range skipped {
			byID[id] = r
		}

		results := make([]models.Result, 0, len(tasks))
		for _, task := range tasks {
			r := byID[task.ID]
			if !r.Success {
				failed[task.ID] = true
			}
			results = append(results, r)
		}
		phases = append(phases, results)

		s.emit(Event{Type: EventPhaseCompleted, Phase: phaseIdx, Timestamp: time.Now()})
		s.logger.Log("phase %d completed", phaseIdx)

		if err := ctx.Err(); err != nil {
			return phases, err
		}
	}

	return phases, nil
}

// partition splits a phase into tasks to dispatch and synthetic
// skip results for tasks whose dependencies already failed.
func (s *Scheduler) partition(tasks []models.Task, failed map[string]bool) ([]models.Task, map[string]models.Result) {
	if !s.skipDependents {
		return tasks, nil
	}

	var runnable []models.Task
	skipped := make(map[string]models.Result)
	for _, task := range tasks {
		if dep := firstFailedDep(task, failed); dep != "" {
			skipped[task.ID] = failedResult(task, "skipped: dependency failed", 0)
			s.emit(Event{Type: EventTaskFailed, TaskID: task.ID, Role: task.Role, Phase: task.Phase, Err: "skipped: dependency failed", Timestamp: time.Now()})
			s.logger.Log("task %s skipped, dependency %s failed", task.ID, dep)
			continue
		}
		runnable = append(runnable, task)
	}
	return runnable, skipped
}

func firstFailedDep(task models.Task, failed map[string]bool) string {
	for _, dep := range task.DependsOn {
		if failed[dep] {
			return dep
		}
	}
	return ""
}
