package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <request>",
	Short: "Run a single quick scout pass without planning",
	Long: `Scan dispatches one scout task directly, bypassing workflow
classification and plan construction. Useful for fast spot checks:

  cortex scan "spot check the discharge notes for unredacted MRNs"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, _, err := buildOrchestrator(cmd.Context())
		if err != nil {
			return err
		}
		defer o.Close()

		result, err := o.QuickScan(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if !result.Success {
			failColor.Printf("scan failed: %s\n", result.Error)
			return fmt.Errorf("scan failed: %s", result.Error)
		}

		okColor.Printf("scan completed in %s\n\n", result.ExecutionTime)
		fmt.Println(result.Output)
		return nil
	},
}
