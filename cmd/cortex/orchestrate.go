package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/control"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/orchestrator"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/tui"
)

var (
	flagWatch          bool
	flagSkipDependents bool
	flagMaxParallel    int
	flagFileCount      int
)

var orchestrateCmd = &cobra.Command{
	Use:   "orchestrate <request>",
	Short: "Classify a request and run the full remediation workflow",
	Long: `Orchestrate classifies the request into a workflow category, builds a
phased plan, and executes it with bounded concurrency.

Examples:
  cortex orchestrate "there's a PHI leak in the SSN filter"
  cortex orchestrate "batch scan the intake corpus" --file-count 10 --watch

A cancel file dropped in .cortex/control stops the run cooperatively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")

		watcher, err := control.NewWatcher(workingDir())
		if err != nil {
			return fmt.Errorf("control watcher: %w", err)
		}
		defer watcher.Close()
		watcher.Clear()

		opts := []orchestrator.Option{
			orchestrator.WithPauseHook(watcher.WaitWhilePaused),
		}
		if cmd.Flags().Changed("max-parallel") {
			opts = append(opts, orchestrator.WithMaxParallel(flagMaxParallel))
		}
		if cmd.Flags().Changed("skip-dependents") {
			opts = append(opts, orchestrator.WithSkipDependentsOnFailure(flagSkipDependents))
		}

		o, _, err := buildOrchestrator(cmd.Context(), opts...)
		if err != nil {
			return err
		}
		defer o.Close()

		ctx, cancel := watcher.BindContext(cmd.Context())
		defer cancel()

		var taskContext map[string]any
		if cmd.Flags().Changed("file-count") {
			taskContext = map[string]any{"fileCount": flagFileCount}
		}

		if flagWatch {
			return runWatched(ctx, o, message, taskContext)
		}

		result, err := o.Orchestrate(ctx, message, taskContext)
		if result != nil {
			printSummary(result)
		}
		return err
	},
}

// runWatched executes the orchestration behind a live TUI and prints
// the summary once the program exits.
func runWatched(ctx context.Context, o *orchestrator.Orchestrator, message string, taskContext map[string]any) error {
	model := tui.NewWatchModel(message, o.Events())
	program := tea.NewProgram(model)

	type outcome struct {
		result *orchestrator.OrchestrationResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := o.Orchestrate(ctx, message, taskContext)
		summary := ""
		if result != nil {
			summary = result.Response
		}
		program.Send(tui.RunDoneMsg{Summary: summary, Err: err})
		done <- outcome{result: result, err: err}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	out := <-done
	if out.result != nil {
		printSummary(out.result)
	}
	return out.err
}

func init() {
	orchestrateCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Show live progress in a TUI")
	orchestrateCmd.Flags().BoolVar(&flagSkipDependents, "skip-dependents", false, "Skip tasks whose dependencies failed")
	orchestrateCmd.Flags().IntVar(&flagMaxParallel, "max-parallel", 0, "Override the concurrent task bound")
	orchestrateCmd.Flags().IntVar(&flagFileCount, "file-count", 1, "File count hint for batch scans")
}
