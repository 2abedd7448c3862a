package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyuwen/bankctl/internal/history"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded audit and repair runs",
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.Int("limit", 20, "Maximum number of runs to list")
	f.String("changes", "", "Show the change log for the given run ID instead")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)

	store, err := history.Open(v.GetString("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if runID := v.GetString("changes"); runID != "" {
		changes, err := store.Changes(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			fmt.Fprintln(out, "No changes recorded for this run.")
			return nil
		}
		for _, c := range changes {
			fmt.Fprintf(out, "%-12s  %-20s  %s\n", c.Action, c.QuestionID, c.Detail)
		}
		return nil
	}

	runs, err := store.Runs(cmd.Context(), v.GetInt("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-6s  %-19s  %-6s  %-6s  %-6s  %s\n",
		"ID", "Kind", "Started", "Total", "Pass", "Issues", "Warn")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-6s  %-19s  %-6d  %-6d  %-6d  %d\n",
			r.ID, r.Kind, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Total, r.Passed, r.IssueCount, r.WarningCount)
	}
	return nil
}
