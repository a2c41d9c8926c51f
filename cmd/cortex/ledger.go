package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/ledger"
)

var flagLedgerLimit int

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show recent orchestration outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := ledger.Open(cfg.LedgerPath(workingDir()))
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer store.Close()

		outcomes, err := store.Recent(flagLedgerLimit)
		if err != nil {
			return err
		}
		if len(outcomes) == 0 {
			dimColor.Println("no outcomes recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tWORKFLOW\tTASK\tOUTCOME\tDURATION\tSUMMARY")
		for _, o := range outcomes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dms\t%s\n",
				o.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				o.WorkflowType,
				o.TaskType,
				colorOutcome(o.Outcome),
				o.DurationMs,
				firstLine(o.Summary),
			)
		}
		return w.Flush()
	},
}

func colorOutcome(outcome string) string {
	switch outcome {
	case ledger.OutcomeSuccess:
		return okColor.Sprint(outcome)
	case ledger.OutcomeFailure:
		return failColor.Sprint(outcome)
	default:
		return warnColor.Sprint(outcome)
	}
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}

func init() {
	ledgerCmd.Flags().IntVarP(&flagLedgerLimit, "limit", "n", 20, "Number of outcomes to show")
}
