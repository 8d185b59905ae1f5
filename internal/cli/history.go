package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relver/internal/history"
)

var historyLastFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List releases recorded by this tool",
	Long: `List releases that were cut with 'relver release', most recent last.

The history is a local log kept under the configured state directory. It
records only releases performed by this tool on this machine; tags created
by other means do not appear here.

Examples:
  relver history            # Show recorded releases
  relver history --last 10  # Show the 10 most recent`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd)
	},
}

func init() {
	historyCmd.GroupID = GroupInspection
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLastFlag, "last", 0, "Limit output to the N most recent releases (0 = all)")
}

func runHistory(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := history.Load(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("loading release history: %w", err)
	}

	entries := log.Entries
	if historyLastFlag > 0 && len(entries) > historyLastFlag {
		entries = entries[len(entries)-historyLastFlag:]
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No releases recorded yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		prev := e.Previous
		if prev == "" {
			prev = "(none)"
		}
		fmt.Fprintf(out, "%s  %-10s  %s -> %s  (%d commits)\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Increment, prev, e.Version, e.CommitCount)
	}
	return nil
}
