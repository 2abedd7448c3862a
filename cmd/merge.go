package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liyuwen/bankctl/internal/bank"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Flatten grade-partitioned banks into one flat bank file",
	Long: "Merge reads grade-partitioned or flat bank files, stamps each record\n" +
		"with its grade and unit category, and writes a single flat bank.\n" +
		"Already-flat inputs pass through with only the difficulty and source\n" +
		"stamps applied.",
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	f := mergeCmd.Flags()
	f.String("out", "data/questions.json", "Destination bank file")
	f.String("difficulty", "", "Difficulty to stamp on every merged record")
	f.String("source", "", "Source label to stamp on every merged record, e.g. 段考題")
}

func runMerge(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	lg, err := newLogger(v)
	if err != nil {
		return err
	}
	defer lg.Sync()

	var sources []*bank.SourceFile
	for _, path := range args {
		s, err := bank.LoadSource(path)
		if err != nil {
			return err
		}
		sources = append(sources, s)
	}

	merged := bank.Merge(sources, bank.MergeOptions{
		Difficulty: v.GetString("difficulty"),
		Source:     v.GetString("source"),
	})

	out := bank.NewFlatSource(v.GetString("out"), merged)
	if err := out.Save(); err != nil {
		return err
	}

	lg.Info("merge complete",
		zap.Int("sources", len(sources)),
		zap.Int("questions", len(merged.Questions)),
		zap.String("out", v.GetString("out")),
	)
	return nil
}
