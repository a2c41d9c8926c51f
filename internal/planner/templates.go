package planner

import (
	"fmt"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// requestFrom extracts the original user request from the planning context.
func requestFrom(ctx map[string]any) string {
	if req, ok := ctx["request"].(string); ok {
		return req
	}
	return ""
}

// fileCountFrom extracts the batch size from the planning context, min 1.
func fileCountFrom(ctx map[string]any) int {
	switch v := ctx["fileCount"].(type) {
	case int:
		if v > 0 {
			return v
		}
	case int64:
		if v > 0 {
			return int(v)
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	}
	return 1
}

// leakFixPlan is the serial chain: scout -> analyst -> engineer -> tester
// -> auditor, one task per phase, each depending on its predecessor.
func (p *Planner) leakFixPlan(ctx map[string]any) *models.Plan {
	req := requestFrom(ctx)
	return &models.Plan{
		Description: "Diagnose and close a PHI leak, then verify and audit the fix",
		Phases: [][]models.Task{
			{p.task("locate-leak", models.RoleScout,
				fmt.Sprintf("Locate the reported exposure: %s", req), ctx,
				models.PriorityHigh, 0)},
			{p.task("diagnose-leak", models.RoleAnalyst,
				"Determine which filter or rule let the data through and why.", ctx,
				models.PriorityHigh, 1, "locate-leak")},
			{p.task("fix-filter", models.RoleEngineer,
				"Implement the smallest change that closes the diagnosed gap.", ctx,
				models.PriorityCritical, 2, "diagnose-leak")},
			{p.task("verify-fix", models.RoleTester,
				"Re-run the failing input and representative clean input against the change.", ctx,
				models.PriorityHigh, 3, "fix-filter")},
			{p.task("audit-fix", models.RoleAuditor,
				"Assess residual risk after the fix and flag anything unresolved.", ctx,
				models.PriorityNormal, 4, "verify-fix")},
		},
	}
}

// batchScanPlan fans one scout out per input file and aggregates in a
// second phase. The fan-out width comes from context["fileCount"], min 1.
func (p *Planner) batchScanPlan(ctx map[string]any) *models.Plan {
	n := fileCountFrom(ctx)

	scouts := make([]models.Task, 0, n)
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("scout-%d", i)
		ids = append(ids, id)
		scouts = append(scouts, p.task(id, models.RoleScout,
			fmt.Sprintf("Scan input unit %d of %d for PHI exposures.", i, n), ctx,
			models.PriorityNormal, 0))
	}

	return &models.Plan{
		Description: fmt.Sprintf("Scan %d input units in parallel and aggregate findings", n),
		Phases: [][]models.Task{
			scouts,
			{p.task("aggregate-findings", models.RoleAnalyst,
				"Merge all scout findings into a single prioritized exposure report.", ctx,
				models.PriorityHigh, 1, ids...)},
		},
	}
}

// complianceAuditPlan is the hybrid shape: an independent scout and analyst
// in phase 0, an auditor joining both in phase 1, and a final report task.
func (p *Planner) complianceAuditPlan(ctx map[string]any) *models.Plan {
	req := requestFrom(ctx)
	return &models.Plan{
		Description: "Survey the system, review detection posture, and produce an audit report",
		Phases: [][]models.Task{
			{
				p.task("survey-surfaces", models.RoleScout,
					"Inventory every surface where PHI can enter or leave the system.", ctx,
					models.PriorityNormal, 0),
				p.task("review-detections", models.RoleAnalyst,
					"Review current filter coverage and recent detection history.", ctx,
					models.PriorityNormal, 0),
			},
			{p.task("assess-compliance", models.RoleAuditor,
				fmt.Sprintf("Assess compliance posture against the request: %s", req), ctx,
				models.PriorityHigh, 1, "survey-surfaces", "review-detections")},
			{p.task("write-report", models.RoleAnalyst,
				"Write the final audit report with findings and remediation priorities.", ctx,
				models.PriorityNormal, 2, "assess-compliance")},
		},
	}
}

// filterTuningPlan is a short serial chain: analyst -> engineer -> tester.
func (p *Planner) filterTuningPlan(ctx map[string]any) *models.Plan {
	req := requestFrom(ctx)
	return &models.Plan{
		Description: "Analyze detection quality, adjust thresholds, and verify",
		Phases: [][]models.Task{
			{p.task("analyze-quality", models.RoleAnalyst,
				fmt.Sprintf("Analyze the reported detection quality issue: %s", req), ctx,
				models.PriorityHigh, 0)},
			{p.task("adjust-thresholds", models.RoleEngineer,
				"Adjust the identified thresholds or rules per the analysis.", ctx,
				models.PriorityHigh, 1, "analyze-quality")},
			{p.task("verify-tuning", models.RoleTester,
				"Verify precision and recall did not regress after the adjustment.", ctx,
				models.PriorityNormal, 2, "adjust-thresholds")},
		},
	}
}

// setupPlan is a single setup task.
func (p *Planner) setupPlan(ctx map[string]any) *models.Plan {
	req := requestFrom(ctx)
	return &models.Plan{
		Description: "Prepare the requested environment or integration",
		Phases: [][]models.Task{
			{p.task("prepare-environment", models.RoleSetup,
				fmt.Sprintf("Prepare the environment or integration: %s", req), ctx,
				models.PriorityNormal, 0)},
		},
	}
}

// customPlan is the minimal fallback: one scout task. It also backs any
// workflow type without a template entry, so it must never fail.
func (p *Planner) customPlan(ctx map[string]any) *models.Plan {
	req := requestFrom(ctx)
	prompt := "Investigate the request and report findings."
	if req != "" {
		prompt = fmt.Sprintf("Investigate the request and report findings: %s", req)
	}
	return &models.Plan{
		Description: "Single-task investigation of an unclassified request",
		Phases: [][]models.Task{
			{p.task("investigate", models.RoleScout, prompt, ctx,
				models.PriorityNormal, 0)},
		},
	}
}
