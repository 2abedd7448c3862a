package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liyuwen/bankctl/internal/audit"
	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/repair"
	"github.com/liyuwen/bankctl/internal/report"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Audit the bank and apply deterministic corrections in place",
	Long: "Repair fixes duplicate IDs, regenerates options and explanations for\n" +
		"verified math mismatches, infers missing grades, and removes records\n" +
		"that cannot be corrected with confidence. Repair is idempotent: a\n" +
		"second run over its own output changes nothing.",
	RunE: runRepair,
}

func init() {
	f := repairCmd.Flags()
	f.Int64("seed", 0, "Random seed for distractor generation (0 = time-based)")
	f.Bool("dry-run", false, "Report what would change without writing bank files")
	f.StringP("output", "o", "", "Audit report path (empty skips the report file)")
}

func runRepair(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	lg, err := newLogger(v)
	if err != nil {
		return err
	}
	defer lg.Sync()

	started := time.Now()
	b, err := bank.LoadBank(v.GetStringSlice("banks"))
	if err != nil {
		return err
	}

	rep := audit.Run(b.Snapshot())

	seed := v.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	changes := repair.New(seed).Run(b, rep)

	for _, c := range changes {
		lg.Debug("change",
			zap.String("questionId", c.QuestionID),
			zap.String("action", c.Action),
			zap.String("detail", c.Detail),
		)
	}
	lg.Info("repair complete",
		zap.Int("total", rep.Total),
		zap.Int("issues", len(rep.Issues)),
		zap.Int("changes", len(changes)),
		zap.Int("remaining", b.Len()),
		zap.Bool("dryRun", v.GetBool("dry-run")),
	)

	if !v.GetBool("dry-run") {
		if err := b.Save(); err != nil {
			return err
		}
	}

	if out := v.GetString("output"); out != "" {
		if err := report.WriteFile(out, report.Build(rep, started)); err != nil {
			return err
		}
	}

	return recordRun(cmd.Context(), v, lg, "repair", started, rep, changes)
}
