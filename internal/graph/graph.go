// Package graph provides the dependency graph used to validate plans.
package graph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// ErrCycleDetected indicates a circular dependency was found in the plan.
var ErrCycleDetected = errors.New("circular dependency detected")

// ErrEmptyPlan indicates a plan with zero tasks.
var ErrEmptyPlan = errors.New("plan contains no tasks")

// DependencyGraph is a directed acyclic graph of task dependencies.
// Tasks are nodes, edges represent "blocked by" relationships, and each
// node carries the phase index the planner scheduled it in.
type DependencyGraph struct {
	mu sync.RWMutex
	// nodes maps task ID to the task itself.
	nodes map[string]models.Task
	// edges maps task ID to IDs of tasks it depends on.
	edges map[string][]string
	// debugLog is an optional logging function.
	debugLog func(format string, args ...interface{})
}

// New creates a new empty dependency graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes:    make(map[string]models.Task),
		edges:    make(map[string][]string),
		debugLog: func(format string, args ...interface{}) {},
	}
}

// SetDebugLog sets the debug logging function.
func (g *DependencyGraph) SetDebugLog(fn func(format string, args ...interface{})) {
	if fn != nil {
		g.debugLog = fn
	}
}

// Build constructs the graph from a plan's phases and checks the plan
// invariants: at least one task, unique IDs, every dependency resolvable,
// dependencies only on strictly earlier phases, dependent phase index equal
// to max(dependency phase)+1, and no cycles.
func (g *DependencyGraph) Build(phases [][]models.Task) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	total := 0
	for _, phase := range phases {
		total += len(phase)
	}
	if total == 0 {
		return ErrEmptyPlan
	}
	g.debugLog("[graph.Build] building graph from %d tasks in %d phases", total, len(phases))

	// First pass: register nodes, rejecting duplicate IDs.
	for phaseIdx, phase := range phases {
		for _, task := range phase {
			if _, exists := g.nodes[task.ID]; exists {
				return fmt.Errorf("duplicate task id %q", task.ID)
			}
			if task.Phase != phaseIdx {
				return fmt.Errorf("task %s carries phase %d but sits in phase %d", task.ID, task.Phase, phaseIdx)
			}
			g.nodes[task.ID] = task
			g.edges[task.ID] = nil
		}
	}

	// Second pass: build edges and check phase ordering.
	for _, phase := range phases {
		for _, task := range phase {
			maxDepPhase := -1
			for _, depID := range task.DependsOn {
				dep, exists := g.nodes[depID]
				if !exists {
					return fmt.Errorf("task %s depends on unknown task %s", task.ID, depID)
				}
				if dep.Phase >= task.Phase {
					return fmt.Errorf("task %s (phase %d) depends on task %s in phase %d", task.ID, task.Phase, depID, dep.Phase)
				}
				if dep.Phase > maxDepPhase {
					maxDepPhase = dep.Phase
				}
				g.edges[task.ID] = append(g.edges[task.ID], depID)
			}
			if len(task.DependsOn) > 0 && task.Phase != maxDepPhase+1 {
				return fmt.Errorf("task %s sits in phase %d but its latest dependency completes in phase %d", task.ID, task.Phase, maxDepPhase)
			}
		}
	}

	if g.hasCycleLocked() {
		return ErrCycleDetected
	}

	g.debugLog("[graph.Build] graph built successfully with %d nodes", len(g.nodes))
	return nil
}

// HasCycle returns true if the graph contains a circular dependency.
// Uses depth-first search with coloring to detect back edges.
func (g *DependencyGraph) HasCycle() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.hasCycleLocked()
}

// hasCycleLocked is the internal implementation that assumes the lock is held.
func (g *DependencyGraph) hasCycleLocked() bool {
	// Color states: 0 = white (unvisited), 1 = gray (in progress), 2 = black (done).
	colors := make(map[string]int, len(g.nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		colors[id] = 1

		for _, depID := range g.edges[id] {
			switch colors[depID] {
			case 1:
				// Back edge: cycle.
				return true
			case 0:
				if visit(depID) {
					return true
				}
			}
		}

		colors[id] = 2
		return false
	}

	for id := range g.nodes {
		if colors[id] == 0 {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

// Size returns the number of tasks in the graph.
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the IDs of tasks the given task depends on.
func (g *DependencyGraph) Dependencies(taskID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges[taskID]
}

// Dependents returns the IDs of tasks that depend on the given task.
func (g *DependencyGraph) Dependents(taskID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var dependents []string
	for id, deps := range g.edges {
		for _, depID := range deps {
			if depID == taskID {
				dependents = append(dependents, id)
				break
			}
		}
	}
	return dependents
}
