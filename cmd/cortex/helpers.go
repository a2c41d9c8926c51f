package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/ledger"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/orchestrator"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/provider"
	"github.com/DocHatty/Vulpes-Celare-sub003/internal/roles"
)

var (
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	dimColor  = color.New(color.Faint)
)

// loadConfig resolves configuration from the explicit --config path or
// the standard lookup chain.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFromPath(flagConfig)
	}
	return config.Load(workingDir())
}

func workingDir() string {
	dir, err := filepath.Abs(flagDir)
	if err != nil {
		return flagDir
	}
	return dir
}

// buildOrchestrator assembles the engine from configuration. The caller
// owns the returned orchestrator and must Close it.
func buildOrchestrator(ctx context.Context, extraOpts ...orchestrator.Option) (*orchestrator.Orchestrator, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	dir := workingDir()

	capability, err := provider.New(ctx, cfg.Provider)
	if err != nil {
		return nil, nil, err
	}

	var store ledger.Ledger
	store, err = ledger.Open(cfg.LedgerPath(dir))
	if err != nil {
		warnColor.Fprintf(os.Stderr, "ledger unavailable, outcomes will not be recorded: %v\n", err)
		store = ledger.Nop{}
	}

	table := roles.Defaults()
	if cfg.Roles.File != "" {
		table, err = roles.LoadFile(cfg.Roles.File)
		if err != nil {
			return nil, nil, fmt.Errorf("load roles file: %w", err)
		}
	}

	opts := []orchestrator.Option{
		orchestrator.WithMaxParallel(cfg.Defaults.MaxParallel),
		orchestrator.WithSkipDependentsOnFailure(cfg.Defaults.SkipDependentsOnFailure),
		orchestrator.WithTimeouts(cfg.Timeouts),
		orchestrator.WithLedger(store),
		orchestrator.WithRoles(table),
		orchestrator.WithLogger(orchestrator.NewDebugLoggerForDir(dir)),
	}
	opts = append(opts, extraOpts...)

	o, err := orchestrator.New(orchestrator.RequiredConfig{
		WorkingDir: dir,
		Capability: capability,
	}, opts...)
	if err != nil {
		return nil, nil, err
	}
	return o, cfg, nil
}

func printSummary(result *orchestrator.OrchestrationResult) {
	dimColor.Printf("run %s · workflow %s · %s\n\n", result.RunID, result.Workflow, result.Duration.Round(time.Millisecond))
	fmt.Println(result.Response)
}
