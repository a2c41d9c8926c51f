package main

import (
	"github.com/spf13/cobra"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/control"
)

var signalCmd = &cobra.Command{
	Use:   "signal <cancel|pause|resume|clear>",
	Short: "Send a control signal to a running orchestration",
	Long: `Signal drops a control file into {dir}/.cortex/control. A run started
in the same directory observes it within its next dispatch:

  cancel  stop the run cooperatively; in-flight tasks are cut off
  pause   hold the scheduler before the next dispatch
  resume  clear a pause
  clear   remove all signal files`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"cancel", "pause", "resume", "clear"},
	RunE: func(cmd *cobra.Command, args []string) error {
		watcher, err := control.NewWatcher(workingDir())
		if err != nil {
			return err
		}
		defer watcher.Close()

		switch args[0] {
		case "cancel":
			if err := watcher.SendCancel(); err != nil {
				return err
			}
			okColor.Println("cancel signal sent")
		case "pause":
			if err := watcher.SendPause(); err != nil {
				return err
			}
			okColor.Println("pause signal sent")
		case "resume":
			if err := watcher.SendResume(); err != nil {
				return err
			}
			okColor.Println("resume signal sent")
		case "clear":
			watcher.Clear()
			okColor.Println("signals cleared")
		default:
			return cmd.Usage()
		}
		return nil
	},
}
