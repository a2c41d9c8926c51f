package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDir    string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "cortex",
	Short: "PHI remediation orchestration engine",
	Long: `Cortex coordinates specialist workers over a PHI redaction codebase.

A request is classified into a workflow category (leak fix, batch scan,
compliance audit, filter tuning, setup), expanded into a phased plan, and
executed with bounded concurrency. Results are aggregated into a summary
and recorded in the outcome ledger.

Configuration is read from ~/.config/cortex/config.yaml with project
overrides in {dir}/.cortex/config.yaml.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", ".", "Working directory the engine operates on")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Explicit config file path")

	rootCmd.AddCommand(orchestrateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
