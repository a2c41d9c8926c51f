// Package planner turns a workflow classification into a concrete phased
// plan. It is the only component allowed to construct a Plan, and it alone
// is responsible for the plan invariants: unique task ids, dependencies
// only on strictly earlier phases, and at least one task.
package planner

import (
	"fmt"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/graph"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// ConstructionError reports a plan that violates the structural invariants.
// It indicates a defect in the template table itself, not a runtime
// condition, and is the only error that aborts an orchestration before
// execution begins.
type ConstructionError struct {
	Workflow models.WorkflowType
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("plan construction for %s: %v", e.Workflow, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// templateFunc builds the phase/task structure for one workflow type.
type templateFunc func(p *Planner, ctx map[string]any) *models.Plan

// Planner holds the fixed template table and the per-role timeouts the
// templates stamp onto tasks.
type Planner struct {
	templates map[models.WorkflowType]templateFunc
	timeouts  config.TimeoutsConfig
	// warnLog is called for planning fallbacks; never nil.
	warnLog func(format string, args ...interface{})
}

// Option configures a Planner.
type Option func(*Planner)

// WithWarnLog sets the warning log function used for planning fallbacks.
func WithWarnLog(fn func(format string, args ...interface{})) Option {
	return func(p *Planner) {
		if fn != nil {
			p.warnLog = fn
		}
	}
}

// New creates a Planner with the built-in template table.
func New(timeouts config.TimeoutsConfig, opts ...Option) *Planner {
	p := &Planner{
		timeouts: timeouts,
		warnLog:  func(format string, args ...interface{}) {},
	}
	p.templates = map[models.WorkflowType]templateFunc{
		models.WorkflowLeakFix:         (*Planner).leakFixPlan,
		models.WorkflowBatchScan:       (*Planner).batchScanPlan,
		models.WorkflowComplianceAudit: (*Planner).complianceAuditPlan,
		models.WorkflowFilterTuning:    (*Planner).filterTuningPlan,
		models.WorkflowSetup:           (*Planner).setupPlan,
		models.WorkflowCustom:          (*Planner).customPlan,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan looks up the template for a workflow type and builds its plan.
// A missing template never fails: it falls back to the minimal single-scout
// plan and logs a warning. The built plan is validated before it is
// returned; a violation yields a *ConstructionError.
func (p *Planner) Plan(category models.WorkflowType, ctx map[string]any) (*models.Plan, error) {
	tmpl, ok := p.templates[category]
	if !ok {
		p.warnLog("[planner] no template for workflow %q, falling back to single scout task", category)
		tmpl = (*Planner).customPlan
	}

	plan := tmpl(p, ctx)
	plan.Type = category
	plan.Mode = models.DeriveMode(plan.Phases)

	if err := p.validate(plan); err != nil {
		return nil, &ConstructionError{Workflow: category, Err: err}
	}
	return plan, nil
}

// validate checks the structural invariants via the dependency graph.
func (p *Planner) validate(plan *models.Plan) error {
	g := graph.New()
	g.SetDebugLog(p.warnLog)
	return g.Build(plan.Phases)
}

// task stamps out one task with the role's configured timeout.
func (p *Planner) task(id string, role models.Role, prompt string, ctx map[string]any, priority models.Priority, phase int, deps ...string) models.Task {
	return models.Task{
		ID:        id,
		Role:      role,
		Prompt:    prompt,
		Context:   ctx,
		Priority:  priority,
		Timeout:   p.timeouts.ForRole(role),
		DependsOn: deps,
		Phase:     phase,
	}
}
