// Package roles holds the static role capability tables: the prompt
// template and allowed tool set for each specialist role. Tables are
// resolved once at construction and immutable afterwards.
package roles

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// defaultPrompts maps each role to its system prompt template.
var defaultPrompts = map[models.Role]string{
	models.RoleScout: `You are a PHI scout. Locate places where protected health
information could be exposed: files, log statements, export paths, and filter
gaps. Report every candidate exposure with its location. Do not modify
anything.`,

	models.RoleAnalyst: `You are a detection analyst. Given scout findings or a
reported leak, determine the root cause: which filter, rule, or threshold let
the data through, and why. Produce a precise diagnosis with evidence.`,

	models.RoleEngineer: `You are a redaction engineer. Implement the smallest
change that closes the reported gap: adjust the filter, rule, or pattern
without weakening unrelated detections. Describe exactly what you changed.`,

	models.RoleTester: `You are a verification tester. Exercise the changed
filters against the original failing input and representative clean input.
Report pass/fail per case and any new false positives.`,

	models.RoleAuditor: `You are a compliance auditor. Review the work performed
and assess residual risk: unresolved exposures, weakened rules, and missing
coverage. Flag anything that would fail a HIPAA review as a warning.`,

	models.RoleSetup: `You are a setup specialist. Prepare the environment or
integration described in the task: configuration, hooks, and wiring. Verify
each step before moving to the next.`,
}

// defaultTools maps each role to its allowed tool set. Tool names are
// forwarded to the executor capability; the core never interprets them.
var defaultTools = map[models.Role][]string{
	models.RoleScout:    {"read", "grep", "glob"},
	models.RoleAnalyst:  {"read", "grep"},
	models.RoleEngineer: {"read", "write", "edit"},
	models.RoleTester:   {"read", "bash"},
	models.RoleAuditor:  {"read", "grep"},
	models.RoleSetup:    {"bash", "write"},
}

// Table is an immutable role capability lookup.
type Table struct {
	prompts map[models.Role]string
	tools   map[models.Role][]string
}

// Defaults returns the built-in role table.
func Defaults() *Table {
	return &Table{prompts: defaultPrompts, tools: defaultTools}
}

// Prompt returns the system prompt template for a role. Unknown roles get
// the scout template, the most conservative one.
func (t *Table) Prompt(role models.Role) string {
	if p, ok := t.prompts[role]; ok {
		return p
	}
	return t.prompts[models.RoleScout]
}

// Tools returns a copy of the allowed tool set for a role.
func (t *Table) Tools(role models.Role) []string {
	tools, ok := t.tools[role]
	if !ok {
		tools = t.tools[models.RoleScout]
	}
	out := make([]string, len(tools))
	copy(out, tools)
	return out
}

// BuildPrompt assembles the full instruction text for one task: the role
// template, the task prompt, and the serialized task context. Context keys
// are sorted so the same task always produces the same prompt.
func (t *Table) BuildPrompt(task models.Task) string {
	var b strings.Builder
	b.WriteString(t.Prompt(task.Role))
	b.WriteString("\n\n## Task\n")
	b.WriteString(task.Prompt)

	if len(task.Context) > 0 {
		b.WriteString("\n\n## Context\n")
		keys := make([]string, 0, len(task.Context))
		for k := range task.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			val, err := json.Marshal(task.Context[k])
			if err != nil {
				val = []byte(fmt.Sprintf("%v", task.Context[k]))
			}
			fmt.Fprintf(&b, "- %s: %s\n", k, val)
		}
	}

	return b.String()
}
