package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/liyuwen/bankctl/internal/audit"
	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/history"
	"github.com/liyuwen/bankctl/internal/repair"
	"github.com/liyuwen/bankctl/internal/report"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Validate every record and verify the math of known archetypes",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().StringP("output", "o", "-", "Report path (- for stdout)")
}

func runAudit(cmd *cobra.Command, _ []string) error {
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
	lg.Info("audit complete",
		zap.Int("total", rep.Total),
		zap.Int("passed", rep.Passed),
		zap.Int("issues", len(rep.Issues)),
		zap.Int("warnings", len(rep.Warnings)),
	)
	for kind, count := range rep.ByKind {
		lg.Debug("issue kind", zap.String("kind", string(kind)), zap.Int("count", count))
	}

	r := report.Build(rep, started)
	if err := report.WriteFile(v.GetString("output"), r); err != nil {
		return err
	}

	return recordRun(cmd.Context(), v, lg, "audit", started, rep, nil)
}

// recordRun persists the run in the history store unless recording is
// disabled with an empty --db.
func recordRun(ctx context.Context, v *viper.Viper, lg *zap.Logger, kind string, started time.Time, rep audit.Report, changes []repair.Change) error {
	dbPath := v.GetString("db")
	if dbPath == "" {
		return nil
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	reportJSON, err := json.Marshal(report.Build(rep, started))
	if err != nil {
		return err
	}
	runID, err := store.RecordRun(ctx, history.Run{
		Kind:         kind,
		StartedAt:    started,
		Total:        rep.Total,
		Passed:       rep.Passed,
		IssueCount:   len(rep.Issues),
		WarningCount: len(rep.Warnings),
		Report:       reportJSON,
	})
	if err != nil {
		return err
	}
	if err := store.RecordChanges(ctx, runID, changes); err != nil {
		return err
	}
	lg.Info("run recorded", zap.String("runId", runID), zap.String("db", dbPath))
	return nil
}
