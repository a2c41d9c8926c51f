package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/classify"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/ledger"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/planner"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/provider"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/roles"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// defaultEventBuffer is the capacity of the event channel when no
// override is given. Events beyond a full buffer are dropped, not
// blocked on.
const defaultEventBuffer = 256

// RequiredConfig holds the orchestrator parameters that have no
// sensible default.
type RequiredConfig struct {
	// WorkingDir is the project directory the engine operates on.
	WorkingDir string
	// Capability executes individual tasks.
	Capability provider.Capability
}

// OrchestrationResult is the outcome of one full orchestration run.
type OrchestrationResult struct {
	// RunID uniquely identifies this run.
	RunID string
	// Workflow is the classified workflow category.
	Workflow models.WorkflowType
	// Response is the human-readable run summary.
	Response string
	// Plan is the executed plan.
	Plan *models.Plan
	// Phases holds one Result slice per plan phase, in task order.
	Phases [][]models.Result
	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Orchestrator is the engine entry point: it classifies a request,
// constructs a plan, executes it phase by phase, and aggregates the
// results.
type Orchestrator struct {
	workingDir string
	capability provider.Capability

	classifier *classify.Classifier
	planner    *planner.Planner
	roles      *roles.Table
	ledger     ledger.Ledger
	logger     *DebugLogger

	maxParallel    int
	skipDependents bool
	pauseWait      func(context.Context) error
	timeouts       config.TimeoutsConfig

	runner     *PhaseRunner
	scheduler  *Scheduler
	aggregator *Aggregator

	events        chan Event
	droppedEvents atomic.Int64
	closed        atomic.Bool
}

// New creates an orchestrator. The capability is required; everything
// else defaults sensibly and can be overridden with options.
func New(cfg RequiredConfig, opts ...Option) (*Orchestrator, error) {
	if cfg.Capability == nil {
		return nil, fmt.Errorf("orchestrator requires a capability")
	}

	o := &Orchestrator{
		workingDir:  cfg.WorkingDir,
		capability:  cfg.Capability,
		classifier:  classify.New(nil),
		roles:       roles.Defaults(),
		ledger:      ledger.Nop{},
		logger:      NopLogger(),
		maxParallel: config.DefaultMaxParallel,
		timeouts:    config.DefaultTimeouts(),
		events:      make(chan Event, defaultEventBuffer),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.planner == nil {
		o.planner = planner.New(o.timeouts, planner.WithWarnLog(o.logger.Log))
	}

	o.runner = NewPhaseRunner(o.capability, o.roles, o.maxParallel, o.logger, o.emit)
	o.scheduler = NewScheduler(o.runner, o.skipDependents, o.pauseWait, o.logger, o.emit)
	o.aggregator = NewAggregator(o.ledger, o.logger)

	return o, nil
}

// Events returns the engine's progress event stream. The channel is
// buffered; when consumers fall behind, events are dropped rather than
// stalling execution.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// DroppedEvents reports how many events were discarded because the
// event buffer was full.
func (o *Orchestrator) DroppedEvents() int64 {
	return o.droppedEvents.Load()
}

func (o *Orchestrator) emit(e Event) {
	if o.closed.Load() {
		return
	}
	select {
	case o.events <- e:
	default:
		o.droppedEvents.Add(1)
	}
}

// Orchestrate runs the full pipeline for one request: classify,
// plan, execute, aggregate. Task failures degrade the summary but do
// not produce an error; only plan construction faults and context
// cancellation do.
func (o *Orchestrator) Orchestrate(ctx context.Context, message string, taskContext map[string]any) (*OrchestrationResult, error) {
	runID := uuid.NewString()
	workflow := o.classifier.Classify(message)
	o.logger.Log("run %s: classified %q as %s", runID, message, workflow)

	planCtx := map[string]any{"request": message}
	for k, v := range taskContext {
		planCtx[k] = v
	}

	plan, err := o.planner.Plan(workflow, planCtx)
	if err != nil {
		return nil, fmt.Errorf("construct plan: %w", err)
	}
	o.logger.Log("run %s: plan %s/%s, %d phases, %d tasks", runID, plan.Type, plan.Mode, len(plan.Phases), plan.TaskCount())

	start := time.Now()
	phases, runErr := o.scheduler.Run(ctx, plan)
	duration := time.Since(start)

	summary := o.aggregator.Summarize(workflow, phases)
	o.aggregator.RecordRun(workflow, phases, duration)
	o.emit(Event{Type: EventRunCompleted, Message: string(workflow), Timestamp: time.Now()})

	result := &OrchestrationResult{
		RunID:    runID,
		Workflow: workflow,
		Response: summary,
		Plan:     plan,
		Phases:   phases,
		Duration: duration,
	}
	if runErr != nil {
		return result, fmt.Errorf("run %s interrupted: %w", runID, runErr)
	}
	return result, nil
}

// QuickScan runs a single scout task directly through the runner,
// bypassing classification and planning. The scout's Result is
// returned as-is, failure shapes included.
func (o *Orchestrator) QuickScan(ctx context.Context, message string) (models.Result, error) {
	if err := ctx.Err(); err != nil {
		return models.Result{}, err
	}

	task := models.Task{
		ID:       "quick-scan",
		Role:     models.RoleScout,
		Prompt:   message,
		Priority: models.PriorityHigh,
		Timeout:  o.timeouts.ForRole(models.RoleScout),
	}

	results := o.runner.Run(ctx, []models.Task{task})
	result := results[0]

	o.aggregator.RecordRun(models.WorkflowCustom, [][]models.Result{results}, result.ExecutionTime)
	return result, nil
}

// FullAudit runs the compliance audit workflow over the given scope,
// regardless of how the request would classify.
func (o *Orchestrator) FullAudit(ctx context.Context, scope string) (*OrchestrationResult, error) {
	runID := uuid.NewString()
	o.logger.Log("run %s: full audit of %q", runID, scope)

	plan, err := o.planner.Plan(models.WorkflowComplianceAudit, map[string]any{"request": scope})
	if err != nil {
		return nil, fmt.Errorf("construct audit plan: %w", err)
	}

	start := time.Now()
	phases, runErr := o.scheduler.Run(ctx, plan)
	duration := time.Since(start)

	summary := o.aggregator.Summarize(models.WorkflowComplianceAudit, phases)
	o.aggregator.RecordRun(models.WorkflowComplianceAudit, phases, duration)
	o.emit(Event{Type: EventRunCompleted, Message: string(models.WorkflowComplianceAudit), Timestamp: time.Now()})

	result := &OrchestrationResult{
		RunID:    runID,
		Workflow: models.WorkflowComplianceAudit,
		Response: summary,
		Plan:     plan,
		Phases:   phases,
		Duration: duration,
	}
	if runErr != nil {
		return result, fmt.Errorf("run %s interrupted: %w", runID, runErr)
	}
	return result, nil
}

// Close releases the ledger and debug log. The event channel is closed
// so watchers drain and exit.
func (o *Orchestrator) Close() error {
	if !o.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(o.events)
	err := o.ledger.Close()
	if cerr := o.logger.Close(); err == nil {
		err = cerr
	}
	return err
}
