package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Config prints the merged configuration: built-in defaults, the user
config at ~/.config/cortex/config.yaml, the project override at
{dir}/.cortex/config.yaml, and environment variables, in that order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "provider.name\t%s\n", cfg.Provider.Name)
		fmt.Fprintf(w, "provider.model\t%s\n", cfg.Provider.Model)
		fmt.Fprintf(w, "provider.use_bedrock\t%t\n", cfg.Provider.UseBedrock)
		fmt.Fprintf(w, "defaults.max_parallel\t%d\n", cfg.Defaults.MaxParallel)
		fmt.Fprintf(w, "defaults.mode\t%s\n", cfg.Mode())
		fmt.Fprintf(w, "defaults.skip_dependents_on_failure\t%t\n", cfg.Defaults.SkipDependentsOnFailure)
		fmt.Fprintf(w, "timeouts.scout\t%s\n", cfg.Timeouts.Scout)
		fmt.Fprintf(w, "timeouts.analyst\t%s\n", cfg.Timeouts.Analyst)
		fmt.Fprintf(w, "timeouts.engineer\t%s\n", cfg.Timeouts.Engineer)
		fmt.Fprintf(w, "timeouts.tester\t%s\n", cfg.Timeouts.Tester)
		fmt.Fprintf(w, "timeouts.auditor\t%s\n", cfg.Timeouts.Auditor)
		fmt.Fprintf(w, "timeouts.setup\t%s\n", cfg.Timeouts.Setup)
		fmt.Fprintf(w, "ledger.path\t%s\n", cfg.LedgerPath(workingDir()))
		fmt.Fprintf(w, "roles.file\t%s\n", cfg.Roles.File)
		return w.Flush()
	},
}
