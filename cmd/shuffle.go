package cmd

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/shuffle"
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Shuffle option order to even out the answer-position distribution",
	RunE:  runShuffle,
}

func init() {
	shuffleCmd.Flags().Int64("seed", 0, "Random seed (0 = time-based)")
}

func runShuffle(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	lg, err := newLogger(v)
	if err != nil {
		return err
	}
	defer lg.Sync()

	b, err := bank.LoadBank(v.GetStringSlice("banks"))
	if err != nil {
		return err
	}

	before := shuffle.Distribution(b.Snapshot())

	seed := v.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shuffled := shuffle.Bank(b.Records(), rand.New(rand.NewSource(seed)))

	after := shuffle.Distribution(b.Snapshot())
	lg.Info("shuffle complete",
		zap.Int("shuffled", shuffled),
		zap.Int("total", b.Len()),
		zap.Ints("before", before[:]),
		zap.Ints("after", after[:]),
	)

	return b.Save()
}
