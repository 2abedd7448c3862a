package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the bank inventory",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "Emit the inventory as JSON")
}

func runStats(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)

	b, err := bank.LoadBank(v.GetStringSlice("banks"))
	if err != nil {
		return err
	}
	inv := stats.Collect(b.Snapshot())

	if v.GetBool("json") {
		data, err := json.MarshalIndent(inv, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal inventory: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total questions: %d\n", inv.Total)
	fmt.Fprintf(out, "With explanation: %d\n\n", inv.WithExplanation)

	fmt.Fprintln(out, "By grade:")
	grades := make([]int, 0, len(inv.ByGrade))
	for g := range inv.ByGrade {
		grades = append(grades, g)
	}
	sort.Ints(grades)
	for _, g := range grades {
		fmt.Fprintf(out, "  %d年級: %d\n", g, inv.ByGrade[g])
	}

	fmt.Fprintln(out, "\nBy category:")
	printCounts(cmd, inv.ByCategory)
	fmt.Fprintln(out, "\nBy difficulty:")
	printCounts(cmd, inv.ByDifficulty)
	fmt.Fprintln(out, "\nBy source:")
	printCounts(cmd, inv.BySource)

	fmt.Fprintf(out, "\nAnswer positions: A=%d B=%d C=%d D=%d\n",
		inv.AnswerDist[0], inv.AnswerDist[1], inv.AnswerDist[2], inv.AnswerDist[3])

	if len(inv.MissingUnits) > 0 {
		fmt.Fprintf(out, "\nUncovered curriculum units: %v\n", inv.MissingUnits)
	}
	if len(inv.ShortContent) > 0 {
		fmt.Fprintf(out, "\nSuspiciously short content: %v\n", inv.ShortContent)
	}
	if len(inv.CurriculumFlags) > 0 {
		fmt.Fprintf(out, "\nCurriculum flags (%d):\n", len(inv.CurriculumFlags))
		for _, f := range inv.CurriculumFlags {
			fmt.Fprintf(out, "  %s: %s\n", f.QuestionID, f.Detail)
		}
	}
	return nil
}

func printCounts(cmd *cobra.Command, m map[string]int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", k, m[k])
	}
}
