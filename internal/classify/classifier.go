// Package classify maps free-form requests to workflow types.
package classify

import (
	"strings"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// Rule pairs a workflow type with the keywords that select it.
type Rule struct {
	// Type is the workflow selected when any keyword matches.
	Type models.WorkflowType
	// Keywords are matched as case-insensitive substrings.
	Keywords []string
}

// DefaultRules is the authoritative, ordered rule table. Rules are
// evaluated top to bottom and the first match wins, so requests that
// mention both a leak and an audit always classify as leak_fix. This
// fixed total order is what makes classification deterministic for
// ambiguous input; changing it changes observable behavior.
var DefaultRules = []Rule{
	{
		Type: models.WorkflowLeakFix,
		Keywords: []string{
			"leak",
			"leaked",
			"slipped through",
			"got through",
			"missed",
			"unredacted",
			"false negative",
			"exposure",
			"exposed",
		},
	},
	{
		Type: models.WorkflowComplianceAudit,
		Keywords: []string{
			"audit",
			"compliance",
			"hipaa",
			"assessment",
			"certify",
			"certification",
		},
	},
	{
		Type: models.WorkflowBatchScan,
		Keywords: []string{
			"batch",
			"scan all",
			"all files",
			"every file",
			"directory",
			"folder",
			"bulk",
			"corpus",
		},
	},
	{
		Type: models.WorkflowFilterTuning,
		Keywords: []string{
			"threshold",
			"tune",
			"tuning",
			"false positive",
			"over-redact",
			"too aggressive",
			"precision",
			"recall",
		},
	},
	{
		Type: models.WorkflowSetup,
		Keywords: []string{
			"install",
			"set up",
			"setup",
			"configure",
			"integration",
			"onboard",
		},
	},
}

// Classifier evaluates an ordered rule table against request text.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier with the given rules. Passing nil uses
// DefaultRules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Classify returns the workflow type for a request. It is pure and
// deterministic: no I/O, no hidden state. Unmatched input yields
// WorkflowCustom, never an error.
func (c *Classifier) Classify(message string) models.WorkflowType {
	lower := strings.ToLower(message)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Type
			}
		}
	}

	return models.WorkflowCustom
}

// Classify is a convenience wrapper using the default rule table.
func Classify(message string) models.WorkflowType {
	return New(nil).Classify(message)
}
